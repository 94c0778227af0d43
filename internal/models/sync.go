package models

// SyncResult reports the outcome of creating a single calendar event.
// Either ID and HTMLLink are set (success) or Error is set (failure);
// Title is always present so failures can be attributed.
type SyncResult struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title"`
	HTMLLink string `json:"htmlLink,omitempty"`
	Error    string `json:"error,omitempty"`
}

// SyncSummary aggregates one sync call. Created+Failed always equals the
// number of events that were attempted; partial success is the normal case.
type SyncSummary struct {
	Created  int          `json:"created"`
	Failed   int          `json:"failed"`
	Results  []SyncResult `json:"results"`
	Failures []SyncResult `json:"failures,omitempty"`
}
