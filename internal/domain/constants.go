package domain

// Slot grid defaults
const (
	DefaultGridStart              = "09:00"
	DefaultGridEnd                = "18:00"
	DefaultSlotIntervalMinutes    = 30
	DefaultSlotDisplayDuration    = 60
	DefaultFeaturedLimit          = 6
	DefaultServiceDurationMinutes = 60
)

// Search sentinels and price bands
const (
	CategoryAll = "all"

	PriceBandLowMax    = 50.0
	PriceBandMediumMax = 150.0
)

// Validation limits
const (
	MaxNotesLength   = 500
	MaxNameLength    = 200
	MinRating        = 0.0
	MaxRating        = 5.0
	CustomerIDPrefix = "customer_"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
