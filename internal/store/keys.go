package store

// Namespace tags a key-value entry with the subsystem that owns it. Keys are
// always composed through [Key], so bookkeeping entries cannot collide with
// each other — or with user file paths — by construction, instead of relying
// on a string-prefix convention.
type Namespace string

const (
	// NamespaceIdempotency holds idempotency-ledger entries keyed by the
	// caller-supplied request identifier.
	NamespaceIdempotency Namespace = "idem"

	// NamespaceMeta holds internal bookkeeping values (schema markers,
	// counters).
	NamespaceMeta Namespace = "meta"
)

// Key builds the storage key for name under the given namespace.
func Key(ns Namespace, name string) string {
	return string(ns) + ":" + name
}
