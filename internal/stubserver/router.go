package stubserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/rentaride/client-go/internal/core/domain"
)

// NewRouter builds the Echo instance with the stub's routes registered.
// Mount it under httptest.NewServer for tests, or serve it directly for
// local development.
func NewRouter(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = newValidator()

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	auth := requireAuth(s.secret)
	admin := requireRole(domain.RoleAdmin)

	// --- Auth ---
	e.POST("/auth/login", s.handleLogin)
	e.POST("/auth/register", s.handleRegister)
	e.POST("/auth/logout", s.handleLogout)
	e.POST("/auth/refresh", s.handleRefresh)
	e.POST("/auth/forgot-password", s.handleForgotPassword)
	e.POST("/auth/reset-password", s.handleResetPassword)
	e.POST("/auth/verify-email", s.handleVerifyEmail)
	e.GET("/auth/me", s.handleMe, auth)

	// --- Catalog (browsing is public, mutation is admin-only) ---
	e.GET("/cars", s.handleListVehicles)
	e.GET("/cars/available", s.handleAvailableVehicles)
	e.GET("/cars/:id", s.handleGetVehicle)
	e.POST("/cars", s.handleCreateVehicle, auth, admin)
	e.PUT("/cars/:id", s.handleUpdateVehicle, auth, admin)
	e.DELETE("/cars/:id", s.handleDeleteVehicle, auth, admin)

	// --- Bookings ---
	e.POST("/bookings", s.handleCreateBooking, auth)
	e.GET("/bookings/user", s.handleMyBookings, auth)
	e.POST("/bookings/calculate-price", s.handleCalculatePrice, auth)
	e.GET("/bookings/:id", s.handleGetBooking, auth)
	e.PATCH("/bookings/:id/cancel", s.handleCancelBooking, auth)

	// --- Users ---
	e.GET("/users/profile", s.handleGetProfile, auth)
	e.PUT("/users/profile", s.handleUpdateProfile, auth)
	e.PUT("/users/change-password", s.handleChangePassword, auth)
	e.GET("/users", s.handleListUsers, auth, admin)
	e.PATCH("/users/:id/toggle-status", s.handleToggleUserStatus, auth, admin)

	// --- Health probe ---
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return e
}

func idParam(c echo.Context) int64 {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	return id
}
