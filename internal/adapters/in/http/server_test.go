package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "agrilogistics/internal/adapters/in/http"
	"agrilogistics/internal/adapters/out/memory"
	"agrilogistics/internal/core/application/usecases/commands"
	"agrilogistics/internal/core/application/usecases/queries"
	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/domain/model/order"
	"agrilogistics/internal/core/domain/model/warehouse"
	"agrilogistics/internal/core/domain/services"
	"agrilogistics/internal/core/ports"
	"agrilogistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type allocationFactory struct{ f *memory.UnitOfWorkFactory }

func (a allocationFactory) Create() commands.AllocationUoW { return a.f.Create() }

type warehouseFactory struct{ f *memory.UnitOfWorkFactory }

func (w warehouseFactory) Create() commands.WarehouseUoW { return w.f.Create() }

type nopObserver struct{}

func (nopObserver) AllocationSucceeded(warehouse.Region, float64, int) {}
func (nopObserver) AllocationFailed(string)                            {}

type nopPublisher struct{}

func (nopPublisher) PublishOrderAllocated(context.Context, *order.Order) error { return nil }

type stubGeocoder struct {
	result ports.GeocodeResult
	err    error
}

func (s stubGeocoder) Geocode(context.Context, string) (ports.GeocodeResult, error) {
	return s.result, s.err
}

type testAPI struct {
	echo    *echo.Echo
	factory *memory.UnitOfWorkFactory
	north   *warehouse.Warehouse
	south   *warehouse.Warehouse
}

func newTestAPI(t *testing.T, geocoder ports.Geocoder) *testAPI {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)

	north := mustWarehouse(t, "North_Hub_1", warehouse.North, 28.7041, 77.1025, 1000)
	south := mustWarehouse(t, "South_Hub_1", warehouse.South, 13.0827, 80.2707, 2000)
	for _, w := range []*warehouse.Warehouse{north, south} {
		require.NoError(t, factory.Create().WarehouseRepository().Add(t.Context(), w))
	}

	policy, err := services.NewAllocationPolicy(services.DefaultAllocationConfig())
	require.NoError(t, err)

	server := httpadapter.NewServer(
		commands.NewAllocateOrderCommandHandler(allocationFactory{factory}, policy,
			commands.NewCapacityLedger(commands.SystemClock), nopPublisher{}, nopObserver{}, logger),
		commands.NewCreateWarehouseCommandHandler(warehouseFactory{factory}, logger),
		queries.NewGetWarehousesQueryHandler(store),
		queries.NewGetTraderStatsQueryHandler(store, commands.SystemClock),
		queries.NewGetOrderHistoryQueryHandler(store),
		queries.NewGeocodeAddressQueryHandler(geocoder),
		logger,
	)

	e := echo.New()
	server.Register(e)
	return &testAPI{echo: e, factory: factory, north: north, south: south}
}

func mustWarehouse(t *testing.T, name string, region warehouse.Region, lat, lng, capacity float64) *warehouse.Warehouse {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	w, err := warehouse.NewWarehouse(kernel.NewUUID(), name, region, loc, capacity, warehouse.Details{})
	require.NoError(t, err)
	return w
}

func (a *testAPI) do(method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func as(role string, userID kernel.UUID) map[string]string {
	return map[string]string{
		httpadapter.HeaderUserID: userID.String(),
		httpadapter.HeaderRole:   role,
	}
}

func allocationBody(quantity float64) string {
	return fmt.Sprintf(`{"farmerName":"Ramesh","farmerAddress":"Village Road 4","lat":28.61,"lng":77.20,`+
		`"cropType":"Wheat","grade":"A","quantity":%v}`, quantity)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestServer_Allocate(t *testing.T) {
	api := newTestAPI(t, stubGeocoder{})
	trader := kernel.NewUUID()

	rec := api.do(http.MethodPost, "/api/v1/allocations", allocationBody(500), as(httpadapter.RoleTrader, trader))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode[httpadapter.AllocationResponse](t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "North_Hub_1", body.Warehouse)
	assert.InDelta(t, 28.7041, body.WarehouseLat, 0)
	assert.InDelta(t, 77.1025, body.WarehouseLng, 0)
	assert.Greater(t, body.DistanceKm, 0.0)
	assert.Equal(t, body.DistanceKm, kernel.RoundKm(body.DistanceKm))
	assert.GreaterOrEqual(t, body.ETAMinutes, 15)
	_, err := kernel.UUIDFromString(body.OrderID)
	require.NoError(t, err)

	w, err := api.factory.Create().WarehouseRepository().Get(t.Context(), api.north.ID())
	require.NoError(t, err)
	assert.InDelta(t, 500.0, w.CurrentLoad(), 0)
}

func TestServer_Allocate_Errors(t *testing.T) {
	trader := kernel.NewUUID()

	tests := []struct {
		name     string
		body     string
		headers  map[string]string
		wantCode int
	}{
		{"no capacity", allocationBody(5000), as(httpadapter.RoleTrader, trader), http.StatusNotFound},
		{"zero quantity", allocationBody(0), as(httpadapter.RoleTrader, trader), http.StatusBadRequest},
		{"negative quantity", allocationBody(-3), as(httpadapter.RoleTrader, trader), http.StatusBadRequest},
		{
			"missing coordinates",
			`{"farmerName":"Ramesh","farmerAddress":"x","cropType":"Wheat","grade":"A","quantity":5}`,
			as(httpadapter.RoleTrader, trader),
			http.StatusBadRequest,
		},
		{
			"missing farmer name",
			`{"farmerAddress":"x","lat":1,"lng":2,"cropType":"Wheat","grade":"A","quantity":5}`,
			as(httpadapter.RoleTrader, trader),
			http.StatusBadRequest,
		},
		{"malformed body", `{"quantity":`, as(httpadapter.RoleTrader, trader), http.StatusBadRequest},
		{"no identity", allocationBody(10), nil, http.StatusUnauthorized},
		{"admin may not allocate", allocationBody(10), as(httpadapter.RoleAdmin, trader), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t, stubGeocoder{})

			rec := api.do(http.MethodPost, "/api/v1/allocations", tt.body, tt.headers)

			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantCode, decode[httpadapter.Error](t, rec).Code)

			for _, id := range []kernel.UUID{api.north.ID(), api.south.ID()} {
				w, err := api.factory.Create().WarehouseRepository().Get(t.Context(), id)
				require.NoError(t, err)
				assert.Zero(t, w.CurrentLoad())
			}
		})
	}
}

func TestServer_HistoryAndStats(t *testing.T) {
	api := newTestAPI(t, stubGeocoder{})
	trader := kernel.NewUUID()
	headers := as(httpadapter.RoleTrader, trader)

	for _, qty := range []float64{100, 200, 300} {
		rec := api.do(http.MethodPost, "/api/v1/allocations", allocationBody(qty), headers)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	other := api.do(http.MethodPost, "/api/v1/allocations", allocationBody(50), as(httpadapter.RoleTrader, kernel.NewUUID()))
	require.Equal(t, http.StatusCreated, other.Code)

	rec := api.do(http.MethodGet, "/api/v1/orders", "", headers)
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode[[]httpadapter.Order](t, rec)
	require.Len(t, orders, 3)
	assert.Equal(t, "North_Hub_1", orders[0].WarehouseName)
	assert.False(t, orders[0].CreatedAt.Before(orders[2].CreatedAt))

	future := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	rec = api.do(http.MethodGet, "/api/v1/orders?since="+future, "", headers)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]httpadapter.Order](t, rec))

	rec = api.do(http.MethodGet, "/api/v1/orders?since=yesterday", "", headers)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/stats", "", headers)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[httpadapter.TraderStats](t, rec)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 3, stats.Active)
	assert.InDelta(t, 600.0, stats.Volume, 1e-9)
	assert.Len(t, stats.Orders, 3)
}

func TestServer_Warehouses(t *testing.T) {
	api := newTestAPI(t, stubGeocoder{})
	admin := as(httpadapter.RoleAdmin, kernel.NewUUID())

	rec := api.do(http.MethodPost, "/api/v1/warehouses",
		`{"name":"East_Hub_1","address":"Salt Lake, Kolkata","region":"east","lat":22.5726,"lng":88.3639,`+
			`"capacity":1500,"manager":"Sen","contact":"+91 33 0000 0000"}`, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[httpadapter.Warehouse](t, rec)
	assert.Equal(t, "East", created.Region)
	assert.Equal(t, "Sen", created.Manager)
	assert.Zero(t, created.CurrentLoad)

	rec = api.do(http.MethodPost, "/api/v1/warehouses", `{"name":"Broken","region":"North","lat":1,"lng":2,"capacity":0}`, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/warehouses", "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]httpadapter.Warehouse](t, rec)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"East_Hub_1", "North_Hub_1", "South_Hub_1"},
		[]string{list[0].Name, list[1].Name, list[2].Name})
	assert.Equal(t, string(warehouse.LoadNormal), list[0].LoadLevel)

	rec = api.do(http.MethodGet, "/api/v1/warehouses", "", as(httpadapter.RoleTrader, kernel.NewUUID()))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServer_Geocode(t *testing.T) {
	loc, err := kernel.NewLocation(29.6857, 76.9905)
	require.NoError(t, err)

	tests := []struct {
		name     string
		geocoder stubGeocoder
		target   string
		role     string
		wantCode int
	}{
		{"found", stubGeocoder{result: ports.GeocodeResult{Location: loc, DisplayName: "Karnal"}}, "/api/v1/geocode?address=Karnal", httpadapter.RoleTrader, http.StatusOK},
		{"admin allowed", stubGeocoder{result: ports.GeocodeResult{Location: loc}}, "/api/v1/geocode?address=Karnal", httpadapter.RoleAdmin, http.StatusOK},
		{"missing address", stubGeocoder{}, "/api/v1/geocode", httpadapter.RoleTrader, http.StatusBadRequest},
		{"not found", stubGeocoder{err: errs.NewObjectNotFoundError("address", "Atlantis")}, "/api/v1/geocode?address=Atlantis", httpadapter.RoleTrader, http.StatusNotFound},
		{"upstream down", stubGeocoder{err: fmt.Errorf("%w: timeout", ports.ErrUpstreamUnavailable)}, "/api/v1/geocode?address=Karnal", httpadapter.RoleTrader, http.StatusServiceUnavailable},
		{"unknown role", stubGeocoder{}, "/api/v1/geocode?address=Karnal", "farmer", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t, tt.geocoder)

			rec := api.do(http.MethodGet, tt.target, "", as(tt.role, kernel.NewUUID()))

			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantCode == http.StatusOK {
				body := decode[httpadapter.GeocodeResult](t, rec)
				assert.InDelta(t, 29.6857, body.Lat, 0)
				assert.InDelta(t, 76.9905, body.Lng, 0)
			}
		})
	}
}
