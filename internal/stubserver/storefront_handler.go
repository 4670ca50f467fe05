package stubserver

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentaride/client-go/internal/core/ports"
)

// ── Vehicles ──────────────────────────────────────────────────────────────

func (s *Server) handleListVehicles(c echo.Context) error {
	category := c.QueryParam("category")
	location := c.QueryParam("location")
	search := strings.ToLower(c.QueryParam("search"))

	s.mu.Lock()
	out := make([]ports.Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		if category != "" && !strings.EqualFold(v.Category, category) {
			continue
		}
		if location != "" && !strings.EqualFold(v.Location, location) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(v.Make+" "+v.Model), search) {
			continue
		}
		out = append(out, *v)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetVehicle(c echo.Context) error {
	s.mu.Lock()
	v, ok := s.vehicles[c.Param("id")]
	s.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "vehicle not found"})
	}
	return c.JSON(http.StatusOK, v)
}

func (s *Server) handleAvailableVehicles(c echo.Context) error {
	s.mu.Lock()
	out := make([]ports.Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		if v.Available {
			out = append(out, *v)
		}
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleCreateVehicle(c echo.Context) error {
	var in ports.VehicleInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	v := &ports.Vehicle{
		ID:           uuid.NewString(),
		Make:         in.Make,
		Model:        in.Model,
		Year:         in.Year,
		Category:     in.Category,
		Location:     in.Location,
		PricePerDay:  in.PricePerDay,
		Seats:        in.Seats,
		Transmission: in.Transmission,
		Available:    in.Available,
		ImageURL:     in.ImageURL,
	}
	s.mu.Lock()
	s.vehicles[v.ID] = v
	s.mu.Unlock()

	return c.JSON(http.StatusCreated, v)
}

func (s *Server) handleUpdateVehicle(c echo.Context) error {
	var in ports.VehicleInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	s.mu.Lock()
	v, ok := s.vehicles[c.Param("id")]
	if ok {
		v.Make, v.Model, v.Year = in.Make, in.Model, in.Year
		v.Category, v.Location = in.Category, in.Location
		v.PricePerDay, v.Seats = in.PricePerDay, in.Seats
		v.Transmission, v.Available, v.ImageURL = in.Transmission, in.Available, in.ImageURL
	}
	s.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "vehicle not found"})
	}
	return c.JSON(http.StatusOK, v)
}

func (s *Server) handleDeleteVehicle(c echo.Context) error {
	s.mu.Lock()
	_, ok := s.vehicles[c.Param("id")]
	delete(s.vehicles, c.Param("id"))
	s.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "vehicle not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ── Bookings ──────────────────────────────────────────────────────────────

func (s *Server) handleCreateBooking(c echo.Context) error {
	var req ports.BookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vehicles[req.VehicleID]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "vehicle not found"})
	}
	if !v.Available {
		return c.JSON(http.StatusConflict, map[string]string{"error": "vehicle not available"})
	}

	b := &ports.Booking{
		ID:         uuid.NewString(),
		VehicleID:  v.ID,
		Username:   ctxUsername(c),
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		TotalPrice: float64(rentalDays(req.StartDate, req.EndDate)) * v.PricePerDay,
		Status:     "confirmed",
		CreatedAt:  time.Now().UTC(),
	}
	s.bookings[b.ID] = b
	return c.JSON(http.StatusCreated, b)
}

func (s *Server) handleMyBookings(c echo.Context) error {
	username := ctxUsername(c)

	s.mu.Lock()
	out := make([]ports.Booking, 0)
	for _, b := range s.bookings {
		if b.Username == username {
			out = append(out, *b)
		}
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetBooking(c echo.Context) error {
	s.mu.Lock()
	b, ok := s.bookings[c.Param("id")]
	s.mu.Unlock()
	if !ok || b.Username != ctxUsername(c) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "booking not found"})
	}
	return c.JSON(http.StatusOK, b)
}

func (s *Server) handleCancelBooking(c echo.Context) error {
	s.mu.Lock()
	b, ok := s.bookings[c.Param("id")]
	if ok && b.Username == ctxUsername(c) {
		b.Status = "cancelled"
	} else {
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "booking not found"})
	}
	return c.JSON(http.StatusOK, b)
}

func (s *Server) handleCalculatePrice(c echo.Context) error {
	var req ports.BookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	s.mu.Lock()
	v, ok := s.vehicles[req.VehicleID]
	s.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "vehicle not found"})
	}

	days := rentalDays(req.StartDate, req.EndDate)
	return c.JSON(http.StatusOK, ports.PriceQuote{
		Days:        days,
		PricePerDay: v.PricePerDay,
		Total:       float64(days) * v.PricePerDay,
	})
}

// rentalDays rounds partial days up: any started day is billed.
func rentalDays(from, to time.Time) int {
	span := to.Sub(from)
	if span <= 0 {
		return 0
	}
	days := int(span / (24 * time.Hour))
	if span%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// ── Users ─────────────────────────────────────────────────────────────────

func (s *Server) handleGetProfile(c echo.Context) error {
	return s.handleMe(c)
}

func (s *Server) handleUpdateProfile(c echo.Context) error {
	var in ports.ProfileUpdate
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	s.mu.Lock()
	acc, ok := s.accounts[ctxUsername(c)]
	if ok {
		acc.FirstName, acc.LastName = in.FirstName, in.LastName
		acc.Email, acc.Phone = in.Email, in.Phone
	}
	s.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unknown principal"})
	}
	return c.JSON(http.StatusOK, wireUser(acc))
}

func (s *Server) handleChangePassword(c echo.Context) error {
	var in ports.PasswordChange
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[ctxUsername(c)]
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unknown principal"})
	}
	if bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(in.CurrentPassword)) != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "current password is incorrect"})
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.MinCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "hashing failed"})
	}
	acc.PasswordHash = hash
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListUsers(c echo.Context) error {
	s.mu.Lock()
	out := make([]ports.AuthUser, 0, len(s.accounts))
	for _, acc := range s.accounts {
		out = append(out, *wireUser(acc))
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleToggleUserStatus(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		if idParam(c) == acc.ID {
			acc.Active = !acc.Active
			return c.JSON(http.StatusOK, map[string]bool{"active": acc.Active})
		}
	}
	return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
}
