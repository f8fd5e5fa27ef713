// Package http exposes the application's use cases over a REST API built on
// the echo framework. Handlers translate between HTTP and the command and
// query layer; access decisions stay inside the application layer.
package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
)

// Handlers bundles every command and query handler the server routes to.
type Handlers struct {
	CreateOrder       commands.CreateOrderCommandHandler
	AcceptOrder       commands.AcceptOrderCommandHandler
	CancelOrder       commands.CancelOrderCommandHandler
	CompleteOrder     commands.CompleteOrderCommandHandler
	UpdateOrderStatus commands.UpdateOrderStatusCommandHandler

	RequestDeposit commands.RequestDepositCommandHandler
	ApproveDeposit commands.ApproveDepositCommandHandler
	RejectDeposit  commands.RejectDepositCommandHandler

	MarkNotificationRead     commands.MarkNotificationReadCommandHandler
	MarkAllNotificationsRead commands.MarkAllNotificationsReadCommandHandler

	ChangeUserRole       commands.ChangeUserRoleCommandHandler
	UpdateCourierProfile commands.UpdateCourierProfileCommandHandler

	GetOrderByID           queries.GetOrderByIDQueryHandler
	GetAvailableOrders     queries.GetAvailableOrdersQueryHandler
	GetUserOrders          queries.GetUserOrdersQueryHandler
	GetCourierOrders       queries.GetCourierOrdersQueryHandler
	GetAllOrders           queries.GetAllOrdersQueryHandler
	SearchOrders           queries.SearchOrdersQueryHandler
	GetUserTransactions    queries.GetUserTransactionsQueryHandler
	GetPendingTransactions queries.GetPendingTransactionsQueryHandler
	GetUserNotifications   queries.GetUserNotificationsQueryHandler
}

// Server wires the REST routes to the application layer.
type Server struct {
	handlers Handlers
}

// NewServer creates a new HTTP server over the given handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes mounts every route on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetAllOrders)
	api.GET("/orders/available", s.GetAvailableOrders)
	api.GET("/orders/my", s.GetUserOrders)
	api.GET("/orders/assigned", s.GetCourierOrders)
	api.GET("/orders/search", s.SearchOrders)
	api.GET("/orders/:id", s.GetOrderByID)
	api.POST("/orders/:id/accept", s.AcceptOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/complete", s.CompleteOrder)
	api.PUT("/orders/:id/status", s.UpdateOrderStatus)

	api.POST("/deposits", s.RequestDeposit)
	api.POST("/deposits/:id/approve", s.ApproveDeposit)
	api.POST("/deposits/:id/reject", s.RejectDeposit)
	api.GET("/transactions", s.GetUserTransactions)
	api.GET("/transactions/pending", s.GetPendingTransactions)

	api.GET("/notifications", s.GetUserNotifications)
	api.POST("/notifications/read-all", s.MarkAllNotificationsRead)
	api.POST("/notifications/:id/read", s.MarkNotificationRead)

	api.PUT("/users/:id/role", s.ChangeUserRole)
	api.PUT("/couriers/me", s.UpdateCourierProfile)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

func pathID(c echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return id, nil
}

func queryLimit(c echo.Context) int {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil {
		return 0
	}
	return limit
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	Item              string   `json:"item"`
	PickupAddress     string   `json:"pickup_address"`
	DeliveryAddress   string   `json:"delivery_address"`
	PickupLatitude    *float64 `json:"pickup_latitude"`
	PickupLongitude   *float64 `json:"pickup_longitude"`
	DeliveryLatitude  *float64 `json:"delivery_latitude"`
	DeliveryLongitude *float64 `json:"delivery_longitude"`
	TotalAmount       *float64 `json:"total_amount"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	pickupLoc, err := locationFromRequest(req.PickupLatitude, req.PickupLongitude)
	if err != nil {
		return respondError(c, err)
	}
	deliveryLoc, err := locationFromRequest(req.DeliveryLatitude, req.DeliveryLongitude)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		req.Item,
		req.PickupAddress,
		req.DeliveryAddress,
		pickupLoc,
		deliveryLoc,
		req.TotalAmount,
	)
	if err != nil {
		return respondError(c, err)
	}

	orderID, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

func locationFromRequest(lat *float64, lng *float64) (*kernel.Location, error) {
	if lat == nil && lng == nil {
		return nil, nil
	}
	if lat == nil || lng == nil {
		return nil, errs.NewValueIsRequiredError("latitude and longitude")
	}

	loc, err := kernel.NewLocation(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// GetOrderByID handles GET /api/v1/orders/:id.
func (s *Server) GetOrderByID(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetOrderByIDQuery(orderID)
	if err != nil {
		return respondError(c, err)
	}

	resp, err := s.handlers.GetOrderByID.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderView(resp))
}

// GetAvailableOrders handles GET /api/v1/orders/available.
func (s *Server) GetAvailableOrders(c echo.Context) error {
	resps, err := s.handlers.GetAvailableOrders.Handle(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderViews(resps))
}

// GetUserOrders handles GET /api/v1/orders/my.
func (s *Server) GetUserOrders(c echo.Context) error {
	resps, err := s.handlers.GetUserOrders.Handle(c.Request().Context(), queryLimit(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderViews(resps))
}

// GetCourierOrders handles GET /api/v1/orders/assigned.
func (s *Server) GetCourierOrders(c echo.Context) error {
	resps, err := s.handlers.GetCourierOrders.Handle(c.Request().Context(), queryLimit(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderViews(resps))
}

// GetAllOrders handles GET /api/v1/orders.
func (s *Server) GetAllOrders(c echo.Context) error {
	var status *order.Status
	if raw := c.QueryParam("status"); raw != "" {
		parsed, err := order.StatusFromString(raw)
		if err != nil {
			return respondError(c, err)
		}
		status = &parsed
	}

	resps, err := s.handlers.GetAllOrders.Handle(c.Request().Context(), status, queryLimit(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderViews(resps))
}

// SearchOrders handles GET /api/v1/orders/search.
func (s *Server) SearchOrders(c echo.Context) error {
	resps, err := s.handlers.SearchOrders.Handle(c.Request().Context(), c.QueryParam("prefix"), queryLimit(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderViews(resps))
}

// AcceptOrder handles POST /api/v1/orders/:id/accept.
func (s *Server) AcceptOrder(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.handlers.AcceptOrder.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.handlers.CancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CompleteOrderRequest is the body of POST /api/v1/orders/:id/complete.
type CompleteOrderRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// CompleteOrder handles POST /api/v1/orders/:id/complete.
func (s *Server) CompleteOrder(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req CompleteOrderRequest
	if err = c.Bind(&req); err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID, req.Rating, req.Review)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.handlers.CompleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UpdateOrderStatusRequest is the body of PUT /api/v1/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateOrderStatusRequest
	if err = c.Bind(&req); err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.handlers.UpdateOrderStatus.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// RequestDepositRequest is the body of POST /api/v1/deposits.
type RequestDepositRequest struct {
	Amount      float64 `json:"amount"`
	ProofRef    string  `json:"proof_ref"`
	Description string  `json:"description"`
}

// RequestDeposit handles POST /api/v1/deposits.
func (s *Server) RequestDeposit(c echo.Context) error {
	var req RequestDepositRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewRequestDepositCommand(req.Amount, req.ProofRef, req.Description)
	if err != nil {
		return respondError(c, err)
	}

	transactionID, err := s.handlers.RequestDeposit.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"id": transactionID.String()})
}

// ApproveDeposit handles POST /api/v1/deposits/:id/approve.
func (s *Server) ApproveDeposit(c echo.Context) error {
	transactionID, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewApproveDepositCommand(transactionID)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.handlers.ApproveDeposit.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// RejectDeposit handles POST /api/v1/deposits/:id/reject.
func (s *Server) RejectDeposit(c echo.Context) error {
	transactionID, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewRejectDepositCommand(transactionID)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.handlers.RejectDeposit.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetUserTransactions handles GET /api/v1/transactions.
func (s *Server) GetUserTransactions(c echo.Context) error {
	resps, err := s.handlers.GetUserTransactions.Handle(c.Request().Context(), queryLimit(c))
	if err != nil {
		return respondError(c, err)
	}

	views := make([]TransactionView, len(resps))
	for i, resp := range resps {
		views[i] = toTransactionView(resp)
	}

	return c.JSON(http.StatusOK, views)
}

// GetPendingTransactions handles GET /api/v1/transactions/pending.
func (s *Server) GetPendingTransactions(c echo.Context) error {
	resps, err := s.handlers.GetPendingTransactions.Handle(c.Request().Context(), queryLimit(c))
	if err != nil {
		return respondError(c, err)
	}

	views := make([]PendingTransactionView, len(resps))
	for i, resp := range resps {
		views[i] = toPendingTransactionView(resp)
	}

	return c.JSON(http.StatusOK, views)
}

// GetUserNotifications handles GET /api/v1/notifications.
func (s *Server) GetUserNotifications(c echo.Context) error {
	resps, err := s.handlers.GetUserNotifications.Handle(c.Request().Context(), queryLimit(c))
	if err != nil {
		return respondError(c, err)
	}

	views := make([]NotificationView, len(resps))
	for i, resp := range resps {
		views[i] = toNotificationView(resp)
	}

	return c.JSON(http.StatusOK, views)
}

// MarkNotificationRead handles POST /api/v1/notifications/:id/read.
func (s *Server) MarkNotificationRead(c echo.Context) error {
	notificationID, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewMarkNotificationReadCommand(notificationID)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.handlers.MarkNotificationRead.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// MarkAllNotificationsRead handles POST /api/v1/notifications/read-all.
func (s *Server) MarkAllNotificationsRead(c echo.Context) error {
	affected, err := s.handlers.MarkAllNotificationsRead.Handle(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]int64{"marked": affected})
}

// ChangeUserRoleRequest is the body of PUT /api/v1/users/:id/role.
type ChangeUserRoleRequest struct {
	Role string `json:"role"`
}

// ChangeUserRole handles PUT /api/v1/users/:id/role.
func (s *Server) ChangeUserRole(c echo.Context) error {
	userID, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req ChangeUserRoleRequest
	if err = c.Bind(&req); err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	role, err := user.RoleFromString(req.Role)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewChangeUserRoleCommand(userID, role)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.handlers.ChangeUserRole.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UpdateCourierProfileRequest is the body of PUT /api/v1/couriers/me.
type UpdateCourierProfileRequest struct {
	VehicleType  string   `json:"vehicle_type"`
	VehiclePlate string   `json:"vehicle_plate"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

// UpdateCourierProfile handles PUT /api/v1/couriers/me.
func (s *Server) UpdateCourierProfile(c echo.Context) error {
	var req UpdateCourierProfileRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	location, err := locationFromRequest(req.Latitude, req.Longitude)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewUpdateCourierProfileCommand(req.VehicleType, req.VehiclePlate, location)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.handlers.UpdateCourierProfile.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
