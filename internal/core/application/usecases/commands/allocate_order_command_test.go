package commands_test

import (
	"math"
	"testing"

	"agrilogistics/internal/core/application/usecases/commands"
	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/domain/model/order"
	"agrilogistics/internal/core/domain/services"
	"agrilogistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFarmer(t *testing.T) order.Farmer {
	t.Helper()
	loc, err := kernel.NewLocation(28.61, 77.20)
	require.NoError(t, err)
	return order.Farmer{Name: "Ramesh", Address: "Village Road 4", Location: loc}
}

func validProduce() order.Produce {
	return order.Produce{Crop: "Wheat", Grade: "A"}
}

func TestNewAllocateOrderCommand_Valid(t *testing.T) {
	traderID := kernel.NewUUID()
	farmer := validFarmer(t)
	farmer.Name = "  Ramesh  "

	cmd, err := commands.NewAllocateOrderCommand(traderID, farmer, validProduce(), 500)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, traderID, cmd.TraderID())
	assert.Equal(t, "Ramesh", cmd.Farmer().Name)
	assert.Equal(t, validProduce(), cmd.Produce())
	assert.InDelta(t, 500.0, cmd.Quantity(), 0)
}

func TestNewAllocateOrderCommand_InvalidQuantity(t *testing.T) {
	for _, q := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := commands.NewAllocateOrderCommand(kernel.NewUUID(), validFarmer(t), validProduce(), q)

		require.ErrorIs(t, err, services.ErrInvalidQuantity)
		assert.NotErrorIs(t, err, commands.ErrInvalidInput)
	}
}

func TestNewAllocateOrderCommand_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*kernel.UUID, *order.Farmer, *order.Produce)
		wantErr string
	}{
		{
			name:    "trader",
			mutate:  func(id *kernel.UUID, _ *order.Farmer, _ *order.Produce) { *id = kernel.UUID{} },
			wantErr: "trader id",
		},
		{
			name:    "farmer name",
			mutate:  func(_ *kernel.UUID, f *order.Farmer, _ *order.Produce) { f.Name = " " },
			wantErr: "farmer name",
		},
		{
			name:    "farmer address",
			mutate:  func(_ *kernel.UUID, f *order.Farmer, _ *order.Produce) { f.Address = "" },
			wantErr: "farmer address",
		},
		{
			name:    "farmer location",
			mutate:  func(_ *kernel.UUID, f *order.Farmer, _ *order.Produce) { f.Location = kernel.Location{} },
			wantErr: "farmer location",
		},
		{
			name:    "crop",
			mutate:  func(_ *kernel.UUID, _ *order.Farmer, p *order.Produce) { p.Crop = "" },
			wantErr: "crop type",
		},
		{
			name:    "grade",
			mutate:  func(_ *kernel.UUID, _ *order.Farmer, p *order.Produce) { p.Grade = "" },
			wantErr: "grade",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			traderID, farmer, produce := kernel.NewUUID(), validFarmer(t), validProduce()
			tt.mutate(&traderID, &farmer, &produce)

			cmd, err := commands.NewAllocateOrderCommand(traderID, farmer, produce, 10)

			require.ErrorIs(t, err, commands.ErrInvalidInput)
			require.ErrorIs(t, err, errs.ErrValueIsRequired)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Error(t, cmd.Validate())
		})
	}
}

func TestNewAllocateOrderCommand_ReportsEveryProblem(t *testing.T) {
	_, err := commands.NewAllocateOrderCommand(kernel.UUID{}, order.Farmer{}, order.Produce{}, 0)

	require.ErrorIs(t, err, commands.ErrInvalidInput)
	require.ErrorIs(t, err, services.ErrInvalidQuantity)
	for _, field := range []string{"trader id", "farmer name", "farmer address", "crop type", "grade"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestAllocateOrderCommand_ZeroValueIsNotConstructed(t *testing.T) {
	var cmd commands.AllocateOrderCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrAllocateOrderCommandIsNotConstructed)
}
