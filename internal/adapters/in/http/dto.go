package http

import (
	"time"

	"agrilogistics/internal/core/application/usecases/queries"
	"agrilogistics/internal/core/ports"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AllocationRequest is submitted by a trader on behalf of a farmer.
type AllocationRequest struct {
	FarmerName    string   `json:"farmerName"`
	FarmerAddress string   `json:"farmerAddress"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	CropType      string   `json:"cropType"`
	Grade         string   `json:"grade"`
	Quantity      *float64 `json:"quantity"`
}

type AllocationResponse struct {
	Success      bool    `json:"success"`
	Message      string  `json:"message"`
	OrderID      string  `json:"orderId"`
	Warehouse    string  `json:"warehouse"`
	WarehouseLat float64 `json:"warehouseLat"`
	WarehouseLng float64 `json:"warehouseLng"`
	DistanceKm   float64 `json:"distanceKm"`
	ETAMinutes   int     `json:"etaMinutes"`
}

type Order struct {
	ID            string    `json:"id"`
	FarmerName    string    `json:"farmerName"`
	FarmerAddress string    `json:"farmerAddress"`
	Crop          string    `json:"crop"`
	Grade         string    `json:"grade"`
	Quantity      float64   `json:"quantity"`
	DistanceKm    float64   `json:"distanceKm"`
	ETAMinutes    int       `json:"etaMinutes"`
	CreatedAt     time.Time `json:"createdAt"`
	WarehouseID   string    `json:"warehouseId"`
	WarehouseName string    `json:"warehouseName"`
	WarehouseLat  float64   `json:"warehouseLat"`
	WarehouseLng  float64   `json:"warehouseLng"`
}

func toOrders(views []ports.OrderView) []Order {
	out := make([]Order, len(views))
	for i, v := range views {
		out[i] = Order{
			ID:            v.ID.String(),
			FarmerName:    v.FarmerName,
			FarmerAddress: v.FarmerAddress,
			Crop:          v.Crop,
			Grade:         v.Grade,
			Quantity:      v.Quantity,
			DistanceKm:    v.DistanceKm,
			ETAMinutes:    v.ETAMinutes,
			CreatedAt:     v.CreatedAt,
			WarehouseID:   v.WarehouseID.String(),
			WarehouseName: v.WarehouseName,
			WarehouseLat:  v.WarehouseLocation.Lat(),
			WarehouseLng:  v.WarehouseLocation.Lng(),
		}
	}
	return out
}

type TraderStats struct {
	Total  int     `json:"total"`
	Active int     `json:"active"`
	Volume float64 `json:"volume"`
	Orders []Order `json:"orders"`
}

type Warehouse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Region      string  `json:"region"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Capacity    float64 `json:"capacity"`
	CurrentLoad float64 `json:"currentLoad"`
	LoadPercent float64 `json:"loadPercent"`
	LoadLevel   string  `json:"loadLevel"`
	Address     string  `json:"address"`
	Manager     string  `json:"manager"`
	Contact     string  `json:"contact"`
}

func toWarehouse(v queries.WarehouseView) Warehouse {
	return Warehouse{
		ID:          v.ID.String(),
		Name:        v.Name,
		Region:      v.Region.String(),
		Lat:         v.Location.Lat(),
		Lng:         v.Location.Lng(),
		Capacity:    v.Capacity,
		CurrentLoad: v.CurrentLoad,
		LoadPercent: v.LoadPercent,
		LoadLevel:   string(v.LoadLevel),
		Address:     v.Details.Address,
		Manager:     v.Details.ManagerName,
		Contact:     v.Details.ContactNumber,
	}
}

type NewWarehouse struct {
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Region   string   `json:"region"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Capacity float64  `json:"capacity"`
	Manager  string   `json:"manager"`
	Contact  string   `json:"contact"`
}

type GeocodeResult struct {
	Success     bool    `json:"success"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"displayName"`
}
