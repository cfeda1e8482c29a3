package models

// VersionCheckPayload asks the worker to re-check one seller's onboarding version.
type VersionCheckPayload struct {
	UserID          string `json:"userId"`
	RequiredVersion int    `json:"requiredVersion"`
	Trigger         string `json:"trigger"` // "sweep" or "admin"
}

// SweepResult summarizes one pass of the version sweep.
type SweepResult struct {
	Found    int `json:"found"`
	Enqueued int `json:"enqueued"`
	Skipped  int `json:"skipped"`
}
