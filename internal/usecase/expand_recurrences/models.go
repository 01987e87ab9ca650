package expand_recurrences

import "time"

// ExpandResult aggregates one rule's expansion.
type ExpandResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// ExpandAllResult aggregates a whole run.
type ExpandAllResult struct {
	Created int       `json:"created"`
	Skipped int       `json:"skipped"`
	Errors  int       `json:"errors"`
	Rules   int       `json:"rules"`
	RunAt   time.Time `json:"run_at"`
}
