package models

// CommitResult is the outcome of the single aggregated backend transaction.
type CommitResult struct {
	// CommitID is the transaction identifier returned by the backend.
	// May be empty when the backend does not return one.
	CommitID string `json:"commitId"`

	// Paths lists the target paths acknowledged by the transaction, in
	// batch order.
	Paths []string `json:"paths"`
}
