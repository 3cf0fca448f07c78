// Package http is the REST adapter. It decodes requests, checks the caller's
// role, runs a command or query and maps the outcome to JSON.
package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"agrilogistics/internal/core/application/usecases/commands"
	"agrilogistics/internal/core/application/usecases/queries"
	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/domain/model/order"
	"agrilogistics/internal/core/domain/model/warehouse"
	"agrilogistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	allocateOrderHandler   commands.AllocateOrderCommandHandler
	createWarehouseHandler commands.CreateWarehouseCommandHandler

	// Query handlers
	getWarehousesHandler   queries.GetWarehousesQueryHandler
	getTraderStatsHandler  queries.GetTraderStatsQueryHandler
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler
	geocodeAddressHandler  queries.GeocodeAddressQueryHandler

	logger *slog.Logger
}

func NewServer(
	allocateOrderHandler commands.AllocateOrderCommandHandler,
	createWarehouseHandler commands.CreateWarehouseCommandHandler,
	getWarehousesHandler queries.GetWarehousesQueryHandler,
	getTraderStatsHandler queries.GetTraderStatsQueryHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
	geocodeAddressHandler queries.GeocodeAddressQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		allocateOrderHandler:   allocateOrderHandler,
		createWarehouseHandler: createWarehouseHandler,
		getWarehousesHandler:   getWarehousesHandler,
		getTraderStatsHandler:  getTraderStatsHandler,
		getOrderHistoryHandler: getOrderHistoryHandler,
		geocodeAddressHandler:  geocodeAddressHandler,
		logger:                 logger.With("component", "http_server"),
	}
}

// Register mounts the /api/v1 routes on e.
func (s *Server) Register(e *echo.Echo) {
	api := e.Group("/api/v1")

	trader := RequireRole(RoleTrader)
	admin := RequireRole(RoleAdmin)

	api.POST("/allocations", s.Allocate, trader)
	api.GET("/orders", s.GetOrderHistory, trader)
	api.GET("/stats", s.GetStats, trader)
	api.GET("/geocode", s.Geocode, RequireRole(RoleTrader, RoleAdmin))
	api.GET("/warehouses", s.GetWarehouses, admin)
	api.POST("/warehouses", s.CreateWarehouse, admin)
}

// Allocate godoc
//
//	@Summary	Allocate an order to the nearest warehouse with room
//	@Tags		allocations
//	@Accept		json
//	@Produce	json
//	@Param		X-User-Id	header		string				true	"Trader id"
//	@Param		X-Role		header		string				true	"trader"
//	@Param		request		body		AllocationRequest	true	"Order"
//	@Success	201			{object}	AllocationResponse
//	@Failure	400			{object}	Error
//	@Failure	404			{object}	Error	"No warehouse has enough free capacity"
//	@Failure	409			{object}	Error	"Capacity changed concurrently, resubmit"
//	@Failure	503			{object}	Error
//	@Router		/api/v1/allocations [post]
func (s *Server) Allocate(c echo.Context) error {
	var req AllocationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	location, err := requiredLocation(req.Lat, req.Lng)
	if err != nil {
		return s.fail(c, err)
	}
	if req.Quantity == nil {
		return s.fail(c, errs.NewValueIsRequiredError("quantity"))
	}

	cmd, err := commands.NewAllocateOrderCommand(
		identityFrom(c).UserID,
		order.Farmer{Name: req.FarmerName, Address: req.FarmerAddress, Location: location},
		order.Produce{Crop: req.CropType, Grade: req.Grade},
		*req.Quantity,
	)
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.allocateOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, AllocationResponse{
		Success:      true,
		Message:      "Allocated by proximity",
		OrderID:      result.Order.ID().String(),
		Warehouse:    result.Warehouse.Name(),
		WarehouseLat: result.Warehouse.Location().Lat(),
		WarehouseLng: result.Warehouse.Location().Lng(),
		DistanceKm:   result.Order.DistanceKm(),
		ETAMinutes:   result.Order.ETAMinutes(),
	})
}

// GetOrderHistory godoc
//
//	@Summary	List the trader's orders, newest first
//	@Tags		orders
//	@Produce	json
//	@Param		X-User-Id	header	string	true	"Trader id"
//	@Param		X-Role		header	string	true	"trader"
//	@Param		since		query	string	false	"RFC3339 lower bound on creation time"
//	@Success	200			{array}	Order
//	@Failure	400			{object}	Error
//	@Router		/api/v1/orders [get]
func (s *Server) GetOrderHistory(c echo.Context) error {
	var since time.Time
	if raw := strings.TrimSpace(c.QueryParam("since")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return s.fail(c, errs.NewValueIsInvalidErrorWithCause("since", err))
		}
		since = parsed
	}

	query, err := queries.NewGetOrderHistoryQuery(identityFrom(c).UserID, since)
	if err != nil {
		return s.fail(c, err)
	}

	views, err := s.getOrderHistoryHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrders(views))
}

// GetStats godoc
//
//	@Summary	Order totals and the five most recent orders of the trader
//	@Tags		orders
//	@Produce	json
//	@Param		X-User-Id	header	string	true	"Trader id"
//	@Param		X-Role		header	string	true	"trader"
//	@Success	200			{object}	TraderStats
//	@Router		/api/v1/stats [get]
func (s *Server) GetStats(c echo.Context) error {
	query, err := queries.NewGetTraderStatsQuery(identityFrom(c).UserID)
	if err != nil {
		return s.fail(c, err)
	}

	stats, err := s.getTraderStatsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, TraderStats{
		Total:  stats.TotalOrders,
		Active: stats.ActiveOrders,
		Volume: stats.TotalVolume,
		Orders: toOrders(stats.RecentOrders),
	})
}

// Geocode godoc
//
//	@Summary	Resolve an address to coordinates
//	@Tags		geocode
//	@Produce	json
//	@Param		address	query		string	true	"Free-text address"
//	@Success	200		{object}	GeocodeResult
//	@Failure	400		{object}	Error
//	@Failure	404		{object}	Error
//	@Failure	503		{object}	Error
//	@Router		/api/v1/geocode [get]
func (s *Server) Geocode(c echo.Context) error {
	query, err := queries.NewGeocodeAddressQuery(c.QueryParam("address"))
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.geocodeAddressHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, GeocodeResult{
		Success:     true,
		Lat:         result.Location.Lat(),
		Lng:         result.Location.Lng(),
		DisplayName: result.DisplayName,
	})
}

// GetWarehouses godoc
//
//	@Summary	Warehouse dashboard with load levels
//	@Tags		warehouses
//	@Produce	json
//	@Param		X-User-Id	header	string	true	"Admin id"
//	@Param		X-Role		header	string	true	"admin"
//	@Success	200			{array}	Warehouse
//	@Router		/api/v1/warehouses [get]
func (s *Server) GetWarehouses(c echo.Context) error {
	views, err := s.getWarehousesHandler.Handle(c.Request().Context(), queries.NewGetWarehousesQuery())
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]Warehouse, len(views))
	for i, v := range views {
		response[i] = toWarehouse(v)
	}
	return c.JSON(http.StatusOK, response)
}

// CreateWarehouse godoc
//
//	@Summary	Register a new empty warehouse
//	@Tags		warehouses
//	@Accept		json
//	@Produce	json
//	@Param		X-User-Id	header		string			true	"Admin id"
//	@Param		X-Role		header		string			true	"admin"
//	@Param		request		body		NewWarehouse	true	"Warehouse"
//	@Success	201			{object}	Warehouse
//	@Failure	400			{object}	Error
//	@Router		/api/v1/warehouses [post]
func (s *Server) CreateWarehouse(c echo.Context) error {
	var req NewWarehouse
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	location, err := requiredLocation(req.Lat, req.Lng)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateWarehouseCommand(
		kernel.NewUUID(),
		req.Name,
		req.Region,
		location,
		req.Capacity,
		warehouse.Details{Address: req.Address, ManagerName: req.Manager, ContactNumber: req.Contact},
	)
	if err != nil {
		return s.fail(c, err)
	}

	created, err := s.createWarehouseHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, Warehouse{
		ID:          created.ID().String(),
		Name:        created.Name(),
		Region:      created.Region().String(),
		Lat:         created.Location().Lat(),
		Lng:         created.Location().Lng(),
		Capacity:    created.Capacity(),
		CurrentLoad: created.CurrentLoad(),
		LoadPercent: created.LoadPercent(),
		LoadLevel:   string(created.LoadLevel()),
		Address:     created.Details().Address,
		Manager:     created.Details().ManagerName,
		Contact:     created.Details().ContactNumber,
	})
}

func requiredLocation(lat, lng *float64) (kernel.Location, error) {
	if lat == nil || lng == nil {
		return kernel.Location{}, errs.NewValueIsRequiredError("lat/lng")
	}
	return kernel.NewLocation(*lat, *lng)
}
