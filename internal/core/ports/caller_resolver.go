package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// CallerResolver extracts the authenticated caller's identity from a request
// context. Authentication itself is the host platform's concern; this port
// only surfaces the already-verified identity.
type CallerResolver interface {
	// CallerID returns the caller's user ID, or ok=false when the request
	// carries no identity.
	CallerID(ctx context.Context) (id kernel.UUID, ok bool)
}
