package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rentaride/client-go/internal/core/ports"
)

// ── Vehicles ──────────────────────────────────────────────────────────────

func (c *Client) ListVehicles(ctx context.Context, filter ports.VehicleFilter) ([]ports.Vehicle, error) {
	q := url.Values{}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.Location != "" {
		q.Set("location", filter.Location)
	}
	if filter.MaxPrice > 0 {
		q.Set("maxPrice", strconv.FormatFloat(filter.MaxPrice, 'f', -1, 64))
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}

	var vehicles []ports.Vehicle
	if err := c.do(ctx, http.MethodGet, "/cars", q, nil, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (c *Client) GetVehicle(ctx context.Context, id string) (*ports.Vehicle, error) {
	var v ports.Vehicle
	if err := c.do(ctx, http.MethodGet, "/cars/"+url.PathEscape(id), nil, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) AvailableVehicles(ctx context.Context, from, to time.Time) ([]ports.Vehicle, error) {
	q := url.Values{}
	q.Set("from", from.Format(time.RFC3339))
	q.Set("to", to.Format(time.RFC3339))

	var vehicles []ports.Vehicle
	if err := c.do(ctx, http.MethodGet, "/cars/available", q, nil, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (c *Client) CreateVehicle(ctx context.Context, in ports.VehicleInput) (*ports.Vehicle, error) {
	var v ports.Vehicle
	if err := c.do(ctx, http.MethodPost, "/cars", nil, in, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) UpdateVehicle(ctx context.Context, id string, in ports.VehicleInput) (*ports.Vehicle, error) {
	var v ports.Vehicle
	if err := c.do(ctx, http.MethodPut, "/cars/"+url.PathEscape(id), nil, in, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) DeleteVehicle(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/cars/"+url.PathEscape(id), nil, nil, nil)
}

// ── Bookings ──────────────────────────────────────────────────────────────

func (c *Client) CreateBooking(ctx context.Context, req ports.BookingRequest) (*ports.Booking, error) {
	var b ports.Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", nil, req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) MyBookings(ctx context.Context) ([]ports.Booking, error) {
	var bookings []ports.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings/user", nil, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) GetBooking(ctx context.Context, id string) (*ports.Booking, error) {
	var b ports.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings/"+url.PathEscape(id), nil, nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) CancelBooking(ctx context.Context, id, reason string) (*ports.Booking, error) {
	path := fmt.Sprintf("/bookings/%s/cancel", url.PathEscape(id))
	var b ports.Booking
	if err := c.do(ctx, http.MethodPatch, path, nil, map[string]string{"reason": reason}, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) CalculatePrice(ctx context.Context, req ports.BookingRequest) (*ports.PriceQuote, error) {
	var quote ports.PriceQuote
	if err := c.do(ctx, http.MethodPost, "/bookings/calculate-price", nil, req, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// ── Users ─────────────────────────────────────────────────────────────────

func (c *Client) FetchProfile(ctx context.Context) (*ports.AuthUser, error) {
	var user ports.AuthUser
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, in ports.ProfileUpdate) (*ports.AuthUser, error) {
	var user ports.AuthUser
	if err := c.do(ctx, http.MethodPut, "/users/profile", nil, in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ChangePassword(ctx context.Context, in ports.PasswordChange) error {
	return c.do(ctx, http.MethodPut, "/users/change-password", nil, in, nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]ports.AuthUser, error) {
	var users []ports.AuthUser
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) ToggleUserStatus(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/users/%d/toggle-status", id)
	return c.do(ctx, http.MethodPatch, path, nil, nil, nil)
}
