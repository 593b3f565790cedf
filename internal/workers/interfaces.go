// Package workers provides the background task runner used for work that
// must outlive the request that scheduled it, such as moderation enrichment
// and deferred bookkeeping after an upload response has been sent.
package workers

import "context"

// Task is one unit of deferred background work. Errors are reported to the
// runner's logger, never propagated: by the time a task runs, the request
// that scheduled it has already been answered.
type Task func(ctx context.Context) error
