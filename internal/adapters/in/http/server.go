// Package http exposes the order use cases over an echo HTTP server.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"bondi/internal/core/application/usecases/commands"
	"bondi/internal/core/application/usecases/queries"
	"bondi/internal/core/domain/model/kernel"
	"bondi/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// HealthReporter reports the result of the last storage probe.
type HealthReporter interface {
	LastError() error
}

// Error is the JSON body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewOrder struct {
	ID     string `json:"id,omitempty"`
	Volume int    `json:"volume"`
}

type CreatedOrder struct {
	ID string `json:"id"`
}

type ChangeVolume struct {
	Volume int `json:"volume"`
}

type AssignCourier struct {
	Courier string `json:"courier"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler       commands.CreateOrderCommandHandler
	changeOrderVolumeHandler commands.ChangeOrderVolumeCommandHandler
	assignOrderHandler       commands.AssignOrderCommandHandler
	completeOrderHandler     commands.CompleteOrderCommandHandler
	getOrderHandler          queries.GetOrderQueryHandler

	health HealthReporter
	logger *slog.Logger
}

func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeOrderVolumeHandler commands.ChangeOrderVolumeCommandHandler,
	assignOrderHandler commands.AssignOrderCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	health HealthReporter,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		createOrderHandler:       createOrderHandler,
		changeOrderVolumeHandler: changeOrderVolumeHandler,
		assignOrderHandler:       assignOrderHandler,
		completeOrderHandler:     completeOrderHandler,
		getOrderHandler:          getOrderHandler,
		health:                   health,
		logger:                   logger.With("component", "http_server"),
	}
}

// Register mounts all routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/:id", s.GetOrder)
	v1.PUT("/orders/:id/volume", s.ChangeOrderVolume)
	v1.POST("/orders/:id/assign", s.AssignOrder)
	v1.POST("/orders/:id/complete", s.CompleteOrder)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	if s.health != nil {
		if err := s.health.LastError(); err != nil {
			return ctx.JSON(http.StatusServiceUnavailable, Error{
				Code:    http.StatusServiceUnavailable,
				Message: "Storage is unavailable: " + err.Error(),
			})
		}
	}
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders. A missing id is generated.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID := kernel.NewID()
	if body.ID != "" {
		id, err := kernel.IDFromString(body.ID)
		if err != nil {
			return badRequest(ctx, "Invalid order id: "+err.Error())
		}
		orderID = id
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, body.Volume)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, CreatedOrder{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.IDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, resp)
}

// ChangeOrderVolume handles PUT /api/v1/orders/:id/volume.
func (s *Server) ChangeOrderVolume(ctx echo.Context) error {
	orderID, err := kernel.IDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var body ChangeVolume
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewChangeOrderVolumeCommand(orderID, body.Volume)
	if err != nil {
		return badRequest(ctx, "Invalid volume: "+err.Error())
	}

	if err := s.changeOrderVolumeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to change order volume")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignOrder handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignOrder(ctx echo.Context) error {
	orderID, err := kernel.IDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var body AssignCourier
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, body.Courier)
	if err != nil {
		return badRequest(ctx, "Invalid assignment: "+err.Error())
	}

	if err := s.assignOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to assign order")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteOrder handles POST /api/v1/orders/:id/complete.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	orderID, err := kernel.IDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	if err := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to complete order")
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) fail(ctx echo.Context, err error, message string) error {
	code := StatusCode(err)
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), message,
			"path", ctx.Path(),
			"error", err,
		)
		return ctx.JSON(code, Error{Code: code, Message: message})
	}
	return ctx.JSON(code, Error{Code: code, Message: message + ": " + err.Error()})
}

// StatusCode maps use case errors to HTTP status codes. A storage failure
// wins over anything else joined into the same error.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrStorageFailure):
		return http.StatusInternalServerError
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
