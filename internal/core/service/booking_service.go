package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/rentaride/client-go/internal/core/ports"
)

var (
	errEmptyBookingID  = errors.New("booking id required")
	errInvalidDateSpan = errors.New("booking must end after it starts")
)

// BookingService fronts the reservation endpoints for the booking wizard
// and the trip history view. Price and conflict rules live on the backend;
// the client only rejects requests that cannot possibly succeed.
type BookingService struct {
	api ports.BookingAPI
	log zerolog.Logger
}

func NewBookingService(api ports.BookingAPI, log zerolog.Logger) *BookingService {
	return &BookingService{api: api, log: log}
}

// Create places a reservation.
func (s *BookingService) Create(ctx context.Context, req ports.BookingRequest) (*ports.Booking, error) {
	if err := validateBookingRequest(req); err != nil {
		return nil, err
	}

	booking, err := s.api.CreateBooking(ctx, req)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("booking_id", booking.ID).Str("vehicle_id", booking.VehicleID).Msg("booking created")
	return booking, nil
}

// Quote asks the backend to price a prospective reservation.
func (s *BookingService) Quote(ctx context.Context, req ports.BookingRequest) (*ports.PriceQuote, error) {
	if err := validateBookingRequest(req); err != nil {
		return nil, err
	}
	return s.api.CalculatePrice(ctx, req)
}

// Mine lists the signed-in principal's bookings.
func (s *BookingService) Mine(ctx context.Context) ([]ports.Booking, error) {
	return s.api.MyBookings(ctx)
}

// Get returns one booking by id.
func (s *BookingService) Get(ctx context.Context, id string) (*ports.Booking, error) {
	if id == "" {
		return nil, errEmptyBookingID
	}
	return s.api.GetBooking(ctx, id)
}

// Cancel cancels a booking with an optional reason.
func (s *BookingService) Cancel(ctx context.Context, id, reason string) (*ports.Booking, error) {
	if id == "" {
		return nil, errEmptyBookingID
	}
	return s.api.CancelBooking(ctx, id, reason)
}

func validateBookingRequest(req ports.BookingRequest) error {
	if req.VehicleID == "" {
		return errEmptyVehicleID
	}
	if !req.EndDate.After(req.StartDate) {
		return errInvalidDateSpan
	}
	return nil
}
