package ports

import (
	"context"
	"time"
)

// Vehicle is a rentable car as listed by the catalog.
type Vehicle struct {
	ID           string  `json:"id"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Category     string  `json:"category"`
	Location     string  `json:"location"`
	PricePerDay  float64 `json:"pricePerDay"`
	Seats        int     `json:"seats"`
	Transmission string  `json:"transmission"`
	Available    bool    `json:"available"`
	ImageURL     string  `json:"imageUrl,omitempty"`
}

// VehicleFilter carries the catalog query parameters. Zero values are
// omitted from the request.
type VehicleFilter struct {
	Category string
	Location string
	MaxPrice float64
	Search   string
	Page     int
	Limit    int
}

// VehicleInput is the create/update payload for the admin catalog views.
type VehicleInput struct {
	Make         string  `json:"make" validate:"required"`
	Model        string  `json:"model" validate:"required"`
	Year         int     `json:"year" validate:"required,gt=1950"`
	Category     string  `json:"category" validate:"required"`
	Location     string  `json:"location"`
	PricePerDay  float64 `json:"pricePerDay" validate:"required,gt=0"`
	Seats        int     `json:"seats" validate:"omitempty,gt=0"`
	Transmission string  `json:"transmission"`
	Available    bool    `json:"available"`
	ImageURL     string  `json:"imageUrl,omitempty"`
}

// VehicleAPI is the catalog transport behind the browsing and admin views.
type VehicleAPI interface {
	ListVehicles(ctx context.Context, filter VehicleFilter) ([]Vehicle, error)
	GetVehicle(ctx context.Context, id string) (*Vehicle, error)
	AvailableVehicles(ctx context.Context, from, to time.Time) ([]Vehicle, error)
	CreateVehicle(ctx context.Context, in VehicleInput) (*Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, in VehicleInput) (*Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error
}

// Booking is a reservation of one vehicle for a date range.
type Booking struct {
	ID         string    `json:"id"`
	VehicleID  string    `json:"vehicleId"`
	Username   string    `json:"username"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	TotalPrice float64   `json:"totalPrice"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BookingRequest is the payload of the booking wizard's final step.
type BookingRequest struct {
	VehicleID string    `json:"vehicleId" validate:"required"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}

// PriceQuote is the backend's answer to a price calculation.
type PriceQuote struct {
	Days        int     `json:"days"`
	PricePerDay float64 `json:"pricePerDay"`
	Total       float64 `json:"total"`
}

// BookingAPI is the reservation transport behind the booking flow.
type BookingAPI interface {
	CreateBooking(ctx context.Context, req BookingRequest) (*Booking, error)
	MyBookings(ctx context.Context) ([]Booking, error)
	GetBooking(ctx context.Context, id string) (*Booking, error)
	CancelBooking(ctx context.Context, id, reason string) (*Booking, error)
	CalculatePrice(ctx context.Context, req BookingRequest) (*PriceQuote, error)
}

// ProfileUpdate is the wholesale profile-edit payload; the stored user
// record is replaced, never patched.
type ProfileUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
}

// PasswordChange carries the change-password form.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// UserAPI is the profile and admin-user transport.
type UserAPI interface {
	FetchProfile(ctx context.Context) (*AuthUser, error)
	UpdateProfile(ctx context.Context, in ProfileUpdate) (*AuthUser, error)
	ChangePassword(ctx context.Context, in PasswordChange) error
	ListUsers(ctx context.Context) ([]AuthUser, error)
	ToggleUserStatus(ctx context.Context, id int64) error
}
