// Package stubserver is the in-memory RentaRide backend used by the test
// suite and for local development against a cold environment. It speaks
// the same wire contract as the production backend — bearer JWTs, the
// {token, user} auth envelope, {"error": ...} failures — but keeps all
// state in process and is reseeded per instance. It is not a deployable
// server.
package stubserver

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentaride/client-go/internal/core/ports"
)

const defaultTokenTTL = 5 * time.Minute

// account is a seeded or registered user.
type account struct {
	ID           int64
	Username     string
	PasswordHash []byte
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Role         string
	Active       bool
	CreatedAt    time.Time
}

// Server holds the stub's in-memory state.
type Server struct {
	secret   string
	tokenTTL time.Duration
	// registerWithoutToken reproduces the backend build that accepts a
	// registration but returns no credential.
	registerWithoutToken bool

	mu       sync.Mutex
	accounts map[string]*account
	vehicles map[string]*ports.Vehicle
	bookings map[string]*ports.Booking
	nextID   int64
}

// ServerOption customises a stub Server.
type ServerOption func(*Server)

// WithTokenTTL overrides the minted token lifetime.
func WithTokenTTL(ttl time.Duration) ServerOption {
	return func(s *Server) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

// WithoutRegisterToken makes registrations succeed without returning a
// credential, the degraded response the client must tolerate.
func WithoutRegisterToken() ServerOption {
	return func(s *Server) { s.registerWithoutToken = true }
}

// NewServer seeds a stub with the demo accounts and a small catalog.
func NewServer(secret string, opts ...ServerOption) *Server {
	s := &Server{
		secret:   secret,
		tokenTTL: defaultTokenTTL,
		accounts: make(map[string]*account),
		vehicles: make(map[string]*ports.Vehicle),
		bookings: make(map[string]*ports.Booking),
		nextID:   1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.seed()
	return s
}

func (s *Server) seed() {
	// Role spellings differ on purpose: the demo account uses the plain
	// lowercase form, the admin the uppercase Spring form, so the client's
	// normalization is exercised end to end.
	s.addAccount("demo", "demo123", "Demo", "User", "demo@rentaride.test", "user")
	s.addAccount("admin", "admin123", "Ada", "Ops", "admin@rentaride.test", "ADMIN")

	for _, v := range []ports.Vehicle{
		{Make: "Toyota", Model: "Corolla", Year: 2022, Category: "compact", Location: "Airport", PricePerDay: 39, Seats: 5, Transmission: "automatic", Available: true},
		{Make: "Tesla", Model: "Model 3", Year: 2023, Category: "electric", Location: "Downtown", PricePerDay: 89, Seats: 5, Transmission: "automatic", Available: true},
		{Make: "Ford", Model: "Transit", Year: 2021, Category: "van", Location: "Airport", PricePerDay: 65, Seats: 9, Transmission: "manual", Available: false},
	} {
		vehicle := v
		vehicle.ID = uuid.NewString()
		s.vehicles[vehicle.ID] = &vehicle
	}
}

func (s *Server) addAccount(username, password, first, last, email, role string) *account {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	acc := &account{
		ID:           s.nextID,
		Username:     username,
		PasswordHash: hash,
		FirstName:    first,
		LastName:     last,
		Email:        email,
		Role:         role,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	s.nextID++
	s.accounts[username] = acc
	return acc
}

// mintToken signs an HS256 bearer for the account.
func (s *Server) mintToken(acc *account) (string, error) {
	claims := jwt.MapClaims{
		"sub":     acc.Username,
		"role":    acc.Role,
		"user_id": acc.ID,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

// wireUser converts an account into the auth response's user object.
func wireUser(acc *account) *ports.AuthUser {
	return &ports.AuthUser{
		ID:        acc.ID,
		Username:  acc.Username,
		FirstName: acc.FirstName,
		LastName:  acc.LastName,
		Email:     acc.Email,
		Phone:     acc.Phone,
		Role:      acc.Role,
		CreatedAt: acc.CreatedAt,
	}
}
