package model

type Truck struct {
	ID         int64   `gorm:"column:id" json:"id"`
	UnitNumber string  `gorm:"column:unit_number" json:"unit_number"`
	VIN        *string `gorm:"column:vin" json:"vin,omitempty"`
	Year       *int    `gorm:"column:year" json:"year,omitempty"`
	Make       *string `gorm:"column:make" json:"make,omitempty"`
	Model      *string `gorm:"column:model" json:"model,omitempty"`
	Engine     *string `gorm:"column:engine" json:"engine,omitempty"`
	Status     string  `gorm:"column:status" json:"status"`
	CurrentKm  float64 `gorm:"column:current_km" json:"current_km"`
}

type NewTruck struct {
	UnitNumber string   `json:"unit_number"`
	VIN        *string  `json:"vin"`
	Year       *int     `json:"year"`
	Make       *string  `json:"make"`
	Model      *string  `json:"model"`
	Engine     *string  `json:"engine"`
	Status     string   `json:"status"`
	CurrentKm  *float64 `json:"current_km"`
}

type Trailer struct {
	ID         int64   `gorm:"column:id" json:"id"`
	UnitNumber string  `gorm:"column:unit_number" json:"unit_number"`
	VIN        *string `gorm:"column:vin" json:"vin,omitempty"`
	Type       string  `gorm:"column:type" json:"type"`
	Status     string  `gorm:"column:status" json:"status"`
	CurrentKm  float64 `gorm:"column:current_km" json:"current_km"`
}

type NewTrailer struct {
	UnitNumber string   `json:"unit_number"`
	VIN        *string  `json:"vin"`
	Type       string   `json:"type"`
	Status     string   `json:"status"`
	CurrentKm  *float64 `json:"current_km"`
}

type Driver struct {
	ID      int64    `gorm:"column:id" json:"id"`
	Name    string   `gorm:"column:name" json:"name"`
	License *string  `gorm:"column:license" json:"license,omitempty"`
	Phone   *string  `gorm:"column:phone" json:"phone,omitempty"`
	PayType *string  `gorm:"column:pay_type" json:"pay_type,omitempty"`
	PayRate *float64 `gorm:"column:pay_rate" json:"pay_rate,omitempty"`
	Status  string   `gorm:"column:status" json:"status"`
}

type NewDriver struct {
	Name    string   `json:"name"`
	License *string  `json:"license"`
	Phone   *string  `json:"phone"`
	PayType *string  `json:"pay_type"`
	PayRate *float64 `json:"pay_rate"`
	Status  string   `json:"status"`
}

type Load struct {
	ID               int64    `gorm:"column:id" json:"id"`
	Reference        string   `gorm:"column:reference" json:"reference"`
	Shipper          *string  `gorm:"column:shipper" json:"shipper,omitempty"`
	PickupLocation   *string  `gorm:"column:pickup_location" json:"pickup_location,omitempty"`
	DeliveryLocation *string  `gorm:"column:delivery_location" json:"delivery_location,omitempty"`
	PickupDate       *string  `gorm:"column:pickup_date" json:"pickup_date,omitempty"`
	DeliveryDate     *string  `gorm:"column:delivery_date" json:"delivery_date,omitempty"`
	Commodity        *string  `gorm:"column:commodity" json:"commodity,omitempty"`
	WeightKg         *float64 `gorm:"column:weight_kg" json:"weight_kg,omitempty"`
	Rate             *float64 `gorm:"column:rate" json:"rate,omitempty"`
	Currency         string   `gorm:"column:currency" json:"currency"`
	DistanceKm       *float64 `gorm:"column:distance_km" json:"distance_km,omitempty"`
	Status           string   `gorm:"column:status" json:"status"`
	TruckID          int64    `gorm:"column:truck_id" json:"truck_id"`
	TrailerID        int64    `gorm:"column:trailer_id" json:"trailer_id"`
	DriverID         int64    `gorm:"column:driver_id" json:"driver_id"`
}

type NewLoad struct {
	Reference        string   `json:"reference"`
	Shipper          *string  `json:"shipper"`
	PickupLocation   *string  `json:"pickup_location"`
	DeliveryLocation *string  `json:"delivery_location"`
	PickupDate       *string  `json:"pickup_date"`
	DeliveryDate     *string  `json:"delivery_date"`
	Commodity        *string  `json:"commodity"`
	WeightKg         *float64 `json:"weight_kg"`
	Rate             *float64 `json:"rate" binding:"omitempty,gte=0"`
	Currency         string   `json:"currency" binding:"omitempty,len=3,alpha"`
	DistanceKm       *float64 `json:"distance_km"`
	Status           string   `json:"status"`
	TruckID          *int64   `json:"truck_id"`
	TrailerID        *int64   `json:"trailer_id"`
	DriverID         *int64   `json:"driver_id"`
}

const (
	StatusActive  = "active"
	StatusPlanned = "planned"
)

var (
	TrailerTypes = []string{"reefer", "dry_van", "flatbed"}
	PayTypes     = []string{"per_km", "percent", "salary"}
	LoadStatuses = []string{"planned", "in_transit", "delivered", "cancelled"}
)
