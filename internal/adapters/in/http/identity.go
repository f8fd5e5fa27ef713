package http

import (
	"context"

	"github.com/labstack/echo/v4"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Identity headers set by the authenticating gateway in front of this
// service. The service trusts them; it performs no credential checks itself.
const (
	headerUserID    = "X-User-Id"
	headerUserName  = "X-User-Name"
	headerUserEmail = "X-User-Email"
)

type callerIDKey struct{}

// ContextWithCallerID stores the authenticated caller ID in the context.
func ContextWithCallerID(ctx context.Context, id kernel.UUID) context.Context {
	return context.WithValue(ctx, callerIDKey{}, id)
}

// ContextCallerResolver reads the caller identity placed in the request
// context by IdentityMiddleware. Implements ports.CallerResolver.
type ContextCallerResolver struct{}

// NewContextCallerResolver creates a resolver over the request context.
func NewContextCallerResolver() ContextCallerResolver {
	return ContextCallerResolver{}
}

// CallerID reports the authenticated caller, if any.
func (ContextCallerResolver) CallerID(ctx context.Context) (kernel.UUID, bool) {
	id, ok := ctx.Value(callerIDKey{}).(kernel.UUID)
	return id, ok
}

// IdentityMiddleware extracts the gateway identity headers, provisions the
// user account on first sight and stores the caller ID in the request
// context. Requests without identity pass through unauthenticated; the
// access guard rejects them later if the operation needs a caller.
func IdentityMiddleware(registerHandler commands.RegisterUserCommandHandler) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(headerUserID)
			if raw == "" {
				return next(c)
			}

			callerID, err := kernel.UUIDFromString(raw)
			if err != nil {
				return respondError(c, errs.NewUnauthenticatedErrorWithCause("caller id is not a valid UUID", err))
			}

			name := c.Request().Header.Get(headerUserName)
			email := c.Request().Header.Get(headerUserEmail)
			if name != "" && email != "" {
				cmd, cmdErr := commands.NewRegisterUserCommand(callerID, name, email)
				if cmdErr != nil {
					return respondError(c, cmdErr)
				}
				if handleErr := registerHandler.Handle(c.Request().Context(), cmd); handleErr != nil {
					return respondError(c, handleErr)
				}
			}

			ctx := ContextWithCallerID(c.Request().Context(), callerID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
