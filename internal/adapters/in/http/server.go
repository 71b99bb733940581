// Package http exposes the tracking API over REST using the Echo framework.
// It coordinates between HTTP handlers and application use cases.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/actor"
	"tracking/internal/core/domain/model/checkpoint"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Identity headers. The gateway in front of this service authenticates the
// caller and forwards the resolved identity; the service only authorizes.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorRole = "X-Actor-Role"
	HeaderClientID  = "X-Client-Id"
)

// Server implements the REST API for order lifecycle tracking.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler
	updateOrderHandler       commands.UpdateOrderCommandHandler
	deleteOrderHandler       commands.DeleteOrderCommandHandler
	addCheckpointHandler     commands.AddCheckpointCommandHandler

	// Query handlers
	getOrdersHandler           queries.GetOrdersQueryHandler
	getOrderCheckpointsHandler queries.GetOrderCheckpointsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	addCheckpointHandler commands.AddCheckpointCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getOrderCheckpointsHandler queries.GetOrderCheckpointsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		updateOrderHandler:       updateOrderHandler,
		deleteOrderHandler:       deleteOrderHandler,
		addCheckpointHandler:     addCheckpointHandler,

		getOrdersHandler:           getOrdersHandler,
		getOrderCheckpointsHandler: getOrderCheckpointsHandler,
	}
}

// RegisterRoutes mounts all API routes on the given Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.PATCH("/orders/:id", s.UpdateOrder)
	api.DELETE("/orders/:id", s.DeleteOrder)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
	api.POST("/orders/:id/activate", s.ActivateOrder)
	api.POST("/orders/:id/finalize", s.FinalizeOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/checkpoints", s.AddCheckpoint)
	api.GET("/orders/:id/checkpoints", s.GetOrderCheckpoints)
}

// CreateOrder handles POST /api/v1/orders - registers a new shipment order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	requestedBy, err := actorFromHeaders(ctx)
	if err != nil {
		return unauthorized(ctx)
	}

	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	clientID, err := resolveClientID(request.ClientId, requestedBy)
	if err != nil {
		return badRequest(ctx, "Invalid client ID: "+err.Error())
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), clientID, request.OrderNumber, requestedBy)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapCommandError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

// GetOrders handles GET /api/v1/orders - lists orders visible to the actor.
// Supports status, page and limit query parameters.
func (s *Server) GetOrders(ctx echo.Context) error {
	requestedBy, err := actorFromHeaders(ctx)
	if err != nil {
		return unauthorized(ctx)
	}

	filter := queries.OrdersFilter{}
	if raw := ctx.QueryParam("status"); raw != "" {
		status, statusErr := order.StatusFromString(raw)
		if statusErr != nil {
			return badRequest(ctx, "Invalid status filter: "+raw)
		}
		filter.Status = &status
	}
	if raw := ctx.QueryParam("page"); raw != "" {
		page, pageErr := strconv.Atoi(raw)
		if pageErr != nil {
			return badRequest(ctx, "Invalid page parameter")
		}
		filter.Page = page
	}
	if raw := ctx.QueryParam("limit"); raw != "" {
		limit, limitErr := strconv.Atoi(raw)
		if limitErr != nil {
			return badRequest(ctx, "Invalid limit parameter")
		}
		filter.Limit = limit
	}

	query, err := queries.NewGetOrdersQuery(requestedBy, filter)
	if err != nil {
		return badRequest(ctx, "Invalid listing parameters: "+err.Error())
	}

	rows, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	response := make([]OrderSummary, len(rows))
	for i, row := range rows {
		response[i] = orderSummaryToResponse(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status - requests an
// arbitrary lifecycle transition by status name.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	var request ChangeStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+request.Status)
	}

	return s.transitionOrder(ctx, status)
}

// ActivateOrder handles POST /api/v1/orders/:id/activate - moves the order
// into InTransit.
func (s *Server) ActivateOrder(ctx echo.Context) error {
	return s.transitionOrder(ctx, order.StatusInTransit)
}

// FinalizeOrder handles POST /api/v1/orders/:id/finalize - moves the order
// into Delivered and records the arrival time.
func (s *Server) FinalizeOrder(ctx echo.Context) error {
	return s.transitionOrder(ctx, order.StatusDelivered)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - moves the order into
// Cancelled.
func (s *Server) CancelOrder(ctx echo.Context) error {
	return s.transitionOrder(ctx, order.StatusCancelled)
}

func (s *Server) transitionOrder(ctx echo.Context, status order.Status) error {
	requestedBy, err := actorFromHeaders(ctx)
	if err != nil {
		return unauthorized(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status, requestedBy)
	if err != nil {
		return badRequest(ctx, "Invalid transition request: "+err.Error())
	}

	updated, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapCommandError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// UpdateOrder handles PATCH /api/v1/orders/:id - applies free-form field
// changes outside the lifecycle graph.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	requestedBy, err := actorFromHeaders(ctx)
	if err != nil {
		return unauthorized(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var request UpdateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	changes := order.OrderChanges{
		RouteDescription: request.RouteDescription,
		Notes:            request.Notes,
	}
	if request.VehicleId != nil {
		vehicleID, idErr := kernel.UUIDFromString(*request.VehicleId)
		if idErr != nil {
			return badRequest(ctx, "Invalid vehicle ID")
		}
		changes.VehicleID = &vehicleID
	}
	if request.EscortId != nil {
		escortID, idErr := kernel.UUIDFromString(*request.EscortId)
		if idErr != nil {
			return badRequest(ctx, "Invalid escort ID")
		}
		changes.EscortID = &escortID
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, changes, requestedBy)
	if err != nil {
		return badRequest(ctx, "Invalid update request: "+err.Error())
	}

	updated, err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapCommandError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// DeleteOrder handles DELETE /api/v1/orders/:id - soft-deletes the order.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	requestedBy, err := actorFromHeaders(ctx)
	if err != nil {
		return unauthorized(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID, requestedBy)
	if err != nil {
		return badRequest(ctx, "Invalid delete request: "+err.Error())
	}

	if err := s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapCommandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddCheckpoint handles POST /api/v1/orders/:id/checkpoints - records a
// location report and refreshes the order's heartbeat.
func (s *Server) AddCheckpoint(ctx echo.Context) error {
	requestedBy, err := actorFromHeaders(ctx)
	if err != nil {
		return unauthorized(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var request AddCheckpointRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var point *kernel.GeoPoint
	if request.Latitude != nil || request.Longitude != nil {
		if request.Latitude == nil || request.Longitude == nil {
			return badRequest(ctx, "Latitude and longitude must be supplied together")
		}
		p, pointErr := kernel.NewGeoPoint(*request.Latitude, *request.Longitude)
		if pointErr != nil {
			return badRequest(ctx, "Invalid coordinates: "+pointErr.Error())
		}
		point = &p
	}

	cmd, err := commands.NewAddCheckpointCommand(
		kernel.NewUUID(),
		orderID,
		request.LocationName,
		request.Sequence,
		request.Notes,
		point,
		request.ReportedBy,
		requestedBy,
	)
	if err != nil {
		return badRequest(ctx, "Invalid checkpoint data: "+err.Error())
	}

	created, err := s.addCheckpointHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapCommandError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, checkpointToResponse(created))
}

// GetOrderCheckpoints handles GET /api/v1/orders/:id/checkpoints - lists the
// checkpoint reports of an order.
func (s *Server) GetOrderCheckpoints(ctx echo.Context) error {
	requestedBy, err := actorFromHeaders(ctx)
	if err != nil {
		return unauthorized(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	query, err := queries.NewGetOrderCheckpointsQuery(orderID, requestedBy)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	rows, err := s.getOrderCheckpointsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapCommandError(ctx, err)
	}

	response := make([]Checkpoint, len(rows))
	for i, row := range rows {
		response[i] = checkpointRowToResponse(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// actorFromHeaders builds the requesting actor from the identity headers.
func actorFromHeaders(ctx echo.Context) (actor.Actor, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderActorID))
	if err != nil {
		return actor.Actor{}, err
	}

	role, err := actor.RoleFromString(ctx.Request().Header.Get(HeaderActorRole))
	if err != nil {
		return actor.Actor{}, err
	}

	var clientID *kernel.UUID
	if raw := ctx.Request().Header.Get(HeaderClientID); raw != "" {
		parsed, clientErr := kernel.UUIDFromString(raw)
		if clientErr != nil {
			return actor.Actor{}, clientErr
		}
		clientID = &parsed
	}

	return actor.NewActor(id, clientID, role)
}

// resolveClientID picks the owning tenant for a new order: the explicit body
// value when present, the actor's own tenant otherwise.
func resolveClientID(raw string, requestedBy actor.Actor) (kernel.UUID, error) {
	if raw != "" {
		return kernel.UUIDFromString(raw)
	}
	if scope := requestedBy.ClientID(); scope != nil {
		return *scope, nil
	}
	return kernel.UUID{}, errs.NewValueIsRequiredError("client_id")
}

// mapCommandError translates domain and application failures to HTTP statuses.
func (s *Server) mapCommandError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return respondError(ctx, http.StatusNotFound, err.Error())

	case errors.Is(err, errs.ErrAccessDenied):
		return respondError(ctx, http.StatusForbidden, err.Error())

	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrOrderIsLocked),
		errors.Is(err, ports.ErrOrderStateChanged),
		errors.Is(err, commands.ErrOrderNumberAlreadyExists),
		errors.Is(err, commands.ErrOrderIsNotInTransit):
		return respondError(ctx, http.StatusConflict, err.Error())

	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, order.ErrOrderNumberIsRequired),
		errors.Is(err, checkpoint.ErrLocationNameIsRequired),
		errors.Is(err, checkpoint.ErrSequenceIsInvalid):
		return respondError(ctx, http.StatusBadRequest, err.Error())

	default:
		return internalError(ctx, "Internal server error")
	}
}

func badRequest(ctx echo.Context, message string) error {
	return respondError(ctx, http.StatusBadRequest, message)
}

func unauthorized(ctx echo.Context) error {
	return respondError(ctx, http.StatusUnauthorized, "Missing or invalid identity headers")
}

func internalError(ctx echo.Context, message string) error {
	return respondError(ctx, http.StatusInternalServerError, message)
}

func respondError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{
		Code:    code,
		Message: message,
	})
}
