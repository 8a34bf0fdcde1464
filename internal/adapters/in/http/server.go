// Package http exposes the chat webhook and a read-only order API over echo.
package http

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"studydesk/internal/core/application/usecases/queries"
	"studydesk/internal/core/domain/model/chat"
	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// SecretHeader carries the shared secret of the transport bridge.
const SecretHeader = "X-Webhook-Secret"

// EventHandler processes one inbound chat event.
type EventHandler interface {
	Handle(ctx context.Context, ev chat.Event) error
}

// Server coordinates between HTTP handlers and the application layer.
// The read API acts as the administrator.
type Server struct {
	events EventHandler
	secret string
	admin  kernel.Actor

	// Query handlers
	getOrderHandler      queries.GetOrderQueryHandler
	listOrdersHandler    queries.ListOrdersQueryHandler
	listExecutorsHandler queries.ListExecutorsQueryHandler

	logger *slog.Logger
}

func NewServer(
	events EventHandler,
	secret string,
	admin kernel.ActorID,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	listExecutorsHandler queries.ListExecutorsQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		events:               events,
		secret:               secret,
		admin:                kernel.Actor{ID: admin, Role: kernel.RoleAdmin},
		getOrderHandler:      getOrderHandler,
		listOrdersHandler:    listOrdersHandler,
		listExecutorsHandler: listExecutorsHandler,
		logger:               logger.With("component", "HTTPServer"),
	}
}

// Register mounts the routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.Validator = newRequestValidator()

	e.GET("/health", s.Health)

	api := e.Group("/api/v1", s.requireSecret)
	api.POST("/events", s.PostEvent)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/executors", s.GetExecutors)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// PostEvent handles POST /api/v1/events - one inbound chat event.
func (s *Server) PostEvent(ctx echo.Context) error {
	var req EventRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid event: "+err.Error())
	}

	ev, id, err := req.toEvent()
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid event: "+err.Error())
	}

	if err = s.events.Handle(ctx.Request().Context(), ev); err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "event failed",
			"event_id", id.String(), "type", req.Type, "error", err)
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to process event")
	}

	return ctx.JSON(http.StatusAccepted, EventAccepted{EventID: id.String()})
}

// GetOrders handles GET /api/v1/orders - confirmed orders, optionally
// filtered by ?status=tag[,tag].
func (s *Server) GetOrders(ctx echo.Context) error {
	var statuses []order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			status, err := order.ParseStatus(strings.TrimSpace(tag))
			if err != nil {
				return errorJSON(ctx, http.StatusBadRequest, "Unknown status: "+tag)
			}
			statuses = append(statuses, status)
		}
	}

	query, err := queries.NewListOrdersQuery(s.admin, statuses...)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid filter: "+err.Error())
	}

	views, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "list orders failed", "error", err)
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	response := make([]Order, len(views))
	for i, v := range views {
		response[i] = fromOrderView(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(s.admin, id)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, "Order not found")
	case err != nil:
		s.logger.ErrorContext(ctx.Request().Context(), "get order failed", "order_id", id, "error", err)
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, fromOrderView(view))
}

// GetExecutors handles GET /api/v1/executors - the executor registry.
func (s *Server) GetExecutors(ctx echo.Context) error {
	executors, err := s.listExecutorsHandler.Handle(ctx.Request().Context(), queries.NewListExecutorsQuery())
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "list executors failed", "error", err)
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve executors")
	}

	response := make([]Executor, len(executors))
	for i, e := range executors {
		response[i] = Executor{ID: e.ID.Int64(), Name: e.Name}
	}
	return ctx.JSON(http.StatusOK, response)
}

// requireSecret rejects requests without the shared secret. An empty secret
// disables the check.
func (s *Server) requireSecret(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if s.secret == "" {
			return next(ctx)
		}
		got := ctx.Request().Header.Get(SecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.secret)) != 1 {
			return errorJSON(ctx, http.StatusUnauthorized, "Invalid secret")
		}
		return next(ctx)
	}
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}
