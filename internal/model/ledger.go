package model

type FuelEntry struct {
	ID         int64    `gorm:"column:id" json:"id"`
	TruckID    int64    `gorm:"column:truck_id" json:"truck_id"`
	LoadID     *int64   `gorm:"column:load_id" json:"load_id,omitempty"`
	DriverID   *int64   `gorm:"column:driver_id" json:"driver_id,omitempty"`
	Liters     float64  `gorm:"column:liters" json:"liters"`
	TotalCost  *float64 `gorm:"column:total_cost" json:"total_cost,omitempty"`
	Currency   *string  `gorm:"column:currency" json:"currency,omitempty"`
	OdometerKm *float64 `gorm:"column:odometer_km" json:"odometer_km,omitempty"`
	Location   *string  `gorm:"column:location" json:"location,omitempty"`
	FueledAt   string   `gorm:"column:fueled_at" json:"fueled_at"`
}

type NewFuelEntry struct {
	TruckID    int64    `json:"truck_id"`
	LoadID     *int64   `json:"load_id"`
	DriverID   *int64   `json:"driver_id"`
	Liters     float64  `json:"liters"`
	TotalCost  *float64 `json:"total_cost"`
	Currency   string   `json:"currency" binding:"omitempty,len=3,alpha"`
	OdometerKm *float64 `json:"odometer_km"`
	Location   *string  `json:"location"`
	FueledAt   string   `json:"fueled_at"`
}

type KmLog struct {
	ID            int64    `gorm:"column:id" json:"id"`
	TruckID       int64    `gorm:"column:truck_id" json:"truck_id"`
	LoadID        *int64   `gorm:"column:load_id" json:"load_id,omitempty"`
	Km            float64  `gorm:"column:km" json:"km"`
	OdometerStart *float64 `gorm:"column:odometer_start" json:"odometer_start,omitempty"`
	OdometerEnd   *float64 `gorm:"column:odometer_end" json:"odometer_end,omitempty"`
	LoggedAt      string   `gorm:"column:logged_at" json:"logged_at"`
}

type NewKmLog struct {
	TruckID       int64    `json:"truck_id"`
	LoadID        *int64   `json:"load_id"`
	Km            float64  `json:"km"`
	OdometerStart *float64 `json:"odometer_start"`
	OdometerEnd   *float64 `json:"odometer_end"`
	LoggedAt      string   `json:"logged_at"`
}

type DriverPayment struct {
	ID       int64   `gorm:"column:id" json:"id"`
	DriverID int64   `gorm:"column:driver_id" json:"driver_id"`
	LoadID   *int64  `gorm:"column:load_id" json:"load_id,omitempty"`
	Amount   float64 `gorm:"column:amount" json:"amount"`
	Currency *string `gorm:"column:currency" json:"currency,omitempty"`
	Method   *string `gorm:"column:method" json:"method,omitempty"`
	Notes    *string `gorm:"column:notes" json:"notes,omitempty"`
	PaidAt   string  `gorm:"column:paid_at" json:"paid_at"`
}

type NewDriverPayment struct {
	DriverID int64   `json:"driver_id"`
	LoadID   *int64  `json:"load_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency" binding:"omitempty,len=3,alpha"`
	Method   *string `json:"method"`
	Notes    *string `json:"notes"`
	PaidAt   string  `json:"paid_at"`
}
