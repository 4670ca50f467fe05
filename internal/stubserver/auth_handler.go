package stubserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentaride/client-go/internal/core/ports"
)

type authResponse struct {
	Token string          `json:"token,omitempty"`
	User  *ports.AuthUser `json:"user,omitempty"`
}

func (s *Server) handleLogin(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	s.mu.Lock()
	acc, ok := s.accounts[req.Username]
	s.mu.Unlock()
	if !ok || !acc.Active {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid username or password"})
	}
	if bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid username or password"})
	}

	token, err := s.mintToken(acc)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "token mint failed"})
	}
	return c.JSON(http.StatusOK, authResponse{Token: token, User: wireUser(acc)})
}

func (s *Server) handleRegister(c echo.Context) error {
	var req ports.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	s.mu.Lock()
	if _, exists := s.accounts[req.Username]; exists {
		s.mu.Unlock()
		return c.JSON(http.StatusConflict, map[string]string{"error": "username already taken"})
	}
	acc := s.addAccount(req.Username, req.Password, req.FirstName, req.LastName, req.Email, "USER")
	acc.Phone = req.Phone
	s.mu.Unlock()

	if s.registerWithoutToken {
		return c.JSON(http.StatusCreated, authResponse{User: wireUser(acc)})
	}

	token, err := s.mintToken(acc)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "token mint failed"})
	}
	return c.JSON(http.StatusCreated, authResponse{Token: token, User: wireUser(acc)})
}

func (s *Server) handleLogout(c echo.Context) error {
	// Stateless tokens: nothing to revoke. The client clears its own
	// session regardless of this answer.
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMe(c echo.Context) error {
	s.mu.Lock()
	acc, ok := s.accounts[ctxUsername(c)]
	s.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unknown principal"})
	}
	return c.JSON(http.StatusOK, wireUser(acc))
}

// handleRefresh mirrors the production backend, where refresh is only a
// stubbed attempt: it always rejects.
func (s *Server) handleRefresh(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": "refresh not supported"})
}

func (s *Server) handleForgotPassword(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleResetPassword(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVerifyEmail(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
