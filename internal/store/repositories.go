package store

// Repositories aggregates every persistence surface the services depend on.
// Both repositories share one database handle.
type Repositories struct {
	KV      KVStore
	Records RecordRepository
}
