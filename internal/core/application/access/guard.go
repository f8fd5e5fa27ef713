// Package access enforces who may invoke an operation. Commands and queries
// resolve the caller through a Guard before touching any aggregate, so
// authorization failures surface before a transaction is ever opened.
package access

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// UserGetter loads a user by ID. Satisfied by ports.UserRepository; kept
// narrow so the guard can run outside a unit of work.
type UserGetter interface {
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}

// Guard resolves and authorizes the caller of an operation.
//
// The host platform authenticates requests; the guard only maps the resolved
// identity to a user record and checks roles. A request without an identity,
// or whose user record no longer exists, is unauthenticated. A caller whose
// role does not match the requirement is forbidden.
type Guard struct {
	resolver ports.CallerResolver
	users    UserGetter
}

// NewGuard creates a Guard backed by the given resolver and user source.
func NewGuard(resolver ports.CallerResolver, users UserGetter) Guard {
	return Guard{
		resolver: resolver,
		users:    users,
	}
}

// RequireCaller resolves the caller and returns their user record.
// Returns an UnauthenticatedError when the request carries no identity or
// the identified user no longer exists.
func (g Guard) RequireCaller(ctx context.Context) (*user.User, error) {
	id, ok := g.resolver.CallerID(ctx)
	if !ok {
		return nil, errs.NewUnauthenticatedError("request carries no caller identity")
	}

	caller, err := g.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, errs.NewUnauthenticatedErrorWithCause("caller does not exist", err)
		}
		return nil, err
	}

	return caller, nil
}

// RequireRole resolves the caller and additionally checks they hold role.
// Returns a ForbiddenError when the role differs.
func (g Guard) RequireRole(ctx context.Context, role user.Role) (*user.User, error) {
	caller, err := g.RequireCaller(ctx)
	if err != nil {
		return nil, err
	}

	if caller.Role() != role {
		return nil, errs.NewForbiddenError(
			fmt.Sprintf("operation requires the %s role", role))
	}

	return caller, nil
}
