package domain

// Outcome tells how an idempotent create call was satisfied.
// All three are successes and produce the same payload for the same key.
type Outcome string

const (
	OutcomeCreated      Outcome = "created"
	OutcomeReplayed     Outcome = "replayed"      // found by key before attempting the insert
	OutcomeRaceResolved Outcome = "race_resolved" // insert lost to a concurrent request, winner re-read
)
