package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"marketplace/internal/core/application/access"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
)

// SearchOrdersQueryHandler finds orders by order number prefix. Admin only;
// support staff look up the number a user reads to them over the phone.
type SearchOrdersQueryHandler struct {
	db    *gorm.DB
	guard access.Guard
}

// NewSearchOrdersQueryHandler creates a handler for order number search.
func NewSearchOrdersQueryHandler(db *gorm.DB, guard access.Guard) SearchOrdersQueryHandler {
	return SearchOrdersQueryHandler{db: db, guard: guard}
}

// Handle executes the search. The prefix must be non-empty; LIKE wildcards
// in the input are escaped so they match literally.
func (h SearchOrdersQueryHandler) Handle(ctx context.Context, prefix string, limit int) ([]OrderResponse, error) {
	if _, err := h.guard.RequireRole(ctx, user.RoleAdmin); err != nil {
		return nil, err
	}

	if prefix == "" {
		return nil, errs.NewValueIsRequiredError("prefix")
	}

	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE order_number LIKE ?
		ORDER BY created_at DESC
		LIMIT ?
	`, escaped+"%", clampLimit(limit)).Rows()
	if err != nil {
		return nil, err
	}

	return collectOrders(rows)
}
