package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/service"
	"github.com/samber/lo"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	filter := domain.ProductFilter{
		Query:  r.URL.Query().Get("q"),
		Limit:  limit,
		Offset: offset,
	}

	products, total, err := h.catalog.ListProducts(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ProductListResponse{
		Items: lo.Map(products, func(p domain.Product, _ int) ProductResponse {
			return mapProductToResponse(p)
		}),
		Total:  total,
		Limit:  lo.Ternary(limit == 0, service.DefaultProductListLimit, limit),
		Offset: offset,
	})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), productID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapProductToResponse(product))
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	product, err := req.toDomain()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	created, err := h.catalog.CreateProduct(r.Context(), product)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, mapProductToResponse(created))
}

func (h *Handler) SeedProducts(w http.ResponseWriter, r *http.Request) {
	inserted, err := h.catalog.Seed(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, SeedResponse{Inserted: inserted})
}
