package models

// FileState tracks a prepared file through the two-phase commit pipeline.
// Every file moves Prepared → Staged → Committed; a file left in
// FileStaged after a failed transaction submission is the partial-upload
// condition surfaced to the caller.
type FileState int

const (
	// FilePrepared means the file is validated and decoded but no backend
	// call has been made for it yet.
	FilePrepared FileState = iota

	// FileStaged means the file's bytes are durably written to the backend
	// object store but not yet referenced by any committed transaction.
	FileStaged

	// FileCommitted means the file is referenced by a committed transaction
	// and reachable through its public path.
	FileCommitted
)

// String returns the lowercase state name.
func (s FileState) String() string {
	switch s {
	case FilePrepared:
		return "prepared"
	case FileStaged:
		return "staged"
	case FileCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// PreparedFile is one validated, decoded batch entry. The canonical fields
// are fixed once the budgeter builds the file; only State, OID, and SHA256
// are touched afterwards by the commit aggregator.
type PreparedFile struct {
	// Name is the canonical file name.
	Name string

	// Folder is the normalized target directory ("" for root).
	Folder string

	// Path is the full target path: "folder/name", or "name" at the root.
	// Unique within the batch.
	Path string

	// Data is the decoded payload. Always non-empty.
	Data []byte

	// Size is the exact decoded byte size, len(Data).
	Size int64

	// MimeType is the normalized content type.
	MimeType string

	// SHA256 is the hex digest of Data. Carried over from the caller when
	// supplied, otherwise computed by the aggregator before staging.
	SHA256 string

	// OID is the backend object identifier assigned by staging. Empty for
	// files small enough to be embedded in the transaction body.
	OID string

	// State is the file's position in the staged-then-committed pipeline.
	State FileState
}
