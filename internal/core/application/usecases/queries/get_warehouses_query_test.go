package queries_test

import (
	"errors"
	"testing"

	"agrilogistics/internal/core/application/usecases/queries"
	"agrilogistics/internal/core/domain/model/warehouse"
	"agrilogistics/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetWarehousesQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetWarehousesQuery{}
	require.ErrorIs(t, query.Validate(), queries.ErrGetWarehousesQueryIsNotConstructed)
	require.NoError(t, queries.NewGetWarehousesQuery().Validate())
}

func TestGetWarehousesQueryHandler_Handle(t *testing.T) {
	f := newFixture()
	f.addWarehouse(t, "South_Hub_1", 2000, 1850)
	f.addWarehouse(t, "East_Hub_1", 1500, 1125)
	f.addWarehouse(t, "North_Hub_1", 1000, 333)

	views, err := queries.NewGetWarehousesQueryHandler(f.store).Handle(t.Context(), queries.NewGetWarehousesQuery())

	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, "East_Hub_1", views[0].Name)
	assert.InDelta(t, 75.0, views[0].LoadPercent, 1e-9)
	assert.Equal(t, warehouse.LoadHigh, views[0].LoadLevel)

	assert.Equal(t, "North_Hub_1", views[1].Name)
	assert.InDelta(t, 33.3, views[1].LoadPercent, 1e-9)
	assert.Equal(t, warehouse.LoadNormal, views[1].LoadLevel)

	assert.Equal(t, "South_Hub_1", views[2].Name)
	assert.InDelta(t, 92.5, views[2].LoadPercent, 1e-9)
	assert.Equal(t, warehouse.LoadCritical, views[2].LoadLevel)
	assert.InDelta(t, 1850.0, views[2].CurrentLoad, 0)
}

func TestGetWarehousesQueryHandler_Handle_Empty(t *testing.T) {
	views, err := queries.NewGetWarehousesQueryHandler(newFixture().store).Handle(t.Context(), queries.NewGetWarehousesQuery())

	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestGetWarehousesQueryHandler_Handle_ReadFailure(t *testing.T) {
	readModel := new(MockWarehouseReadModel)
	readModel.On("ListWarehouses", t.Context()).Return(nil, errors.New("timeout")).Once()

	_, err := queries.NewGetWarehousesQueryHandler(readModel).Handle(t.Context(), queries.NewGetWarehousesQuery())

	require.ErrorIs(t, err, ports.ErrUpstreamUnavailable)
	readModel.AssertExpectations(t)
}
