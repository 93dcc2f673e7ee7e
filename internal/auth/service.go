package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"mediavault/internal/store"
	"mediavault/pkg/models"
)

// ErrInvalidCredentials is the single failure Login returns for a bad
// username or password. It deliberately does not say which of the two was
// wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Credential is one account record in the seeded credential set. Passwords
// are stored and compared in plaintext; this is a local toy credential check,
// not an authentication scheme, and is intentionally kept that way.
type Credential struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// DefaultCredentials is the seed set materialized into the store on first
// login attempt when no credential records exist yet.
var DefaultCredentials = []Credential{
	{ID: "admin", Username: "admin", Password: "admin123", Role: models.RoleAdmin},
	{ID: "user", Username: "user", Password: "user123", Role: models.RoleUser},
}

// Service provides login/logout session management over the persisted
// store. Sessions have no TTL: a session exists until logout removes it.
type Service struct {
	store  *store.Adapter
	seed   []Credential
	logger *logrus.Logger
}

// NewService creates an authorization service over the given store adapter.
// When seed is nil the default account set is used.
func NewService(adapter *store.Adapter, seed []Credential) *Service {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if seed == nil {
		seed = DefaultCredentials
	}

	return &Service{
		store:  adapter,
		seed:   seed,
		logger: logger,
	}
}

// Login authenticates against the stored credential set and persists the
// resulting session. On a failed match it returns ErrInvalidCredentials and
// leaves the persisted auth state untouched.
func (s *Service) Login(username, password string) (models.AuthState, error) {
	credentials := s.loadCredentials()

	for _, c := range credentials {
		if c.Username != username || c.Password != password {
			continue
		}

		user := &models.User{
			ID:        c.ID,
			Username:  c.Username,
			Role:      c.Role,
			CreatedAt: time.Now(),
		}

		state := models.AuthState{
			IsAuthenticated: true,
			User:            user,
			Token:           generateToken(user),
		}
		s.store.Save(store.KeyAuth, state)

		s.logger.WithFields(logrus.Fields{
			"username": user.Username,
			"role":     user.Role,
		}).Info("User logged in")

		return state, nil
	}

	s.logger.WithField("username", username).Warn("Login failed")
	return unauthenticated(), ErrInvalidCredentials
}

// Logout clears the persisted session unconditionally.
func (s *Service) Logout() {
	s.store.Remove(store.KeyAuth)
	s.logger.Info("User logged out")
}

// CurrentSession reads the persisted session. Absent, corrupt or partial
// records (missing token or user) all come back as the unauthenticated
// default; a broken session is an expected state, not an error.
func (s *Service) CurrentSession() models.AuthState {
	var state models.AuthState
	if !s.store.Load(store.KeyAuth, &state) {
		return unauthenticated()
	}
	if state.Token == "" || state.User == nil {
		return unauthenticated()
	}
	return state
}

// CurrentUser is a convenience accessor for the logged-in user, nil when
// nobody is logged in.
func (s *Service) CurrentUser() *models.User {
	return s.CurrentSession().User
}

// loadCredentials returns the stored credential records, lazily seeding the
// defaults when the key is absent or corrupt.
func (s *Service) loadCredentials() []Credential {
	var credentials []Credential
	if s.store.Load(store.KeyUsers, &credentials) && len(credentials) > 0 {
		return credentials
	}

	s.store.Save(store.KeyUsers, s.seed)
	s.logger.WithField("accounts", len(s.seed)).Info("Seeded default user accounts")
	return s.seed
}

// generateToken builds the opaque session marker: a base64 encoding of the
// user id and issue time. It is a session handle only and carries no
// cryptographic weight.
func generateToken(user *models.User) string {
	payload, err := json.Marshal(map[string]interface{}{
		"userId":    user.ID,
		"timestamp": time.Now().UnixMilli(),
	})
	if err != nil {
		// Marshalling a map of string and int cannot realistically fail;
		// fall back to the bare user id to keep the session usable.
		return base64.StdEncoding.EncodeToString([]byte(user.ID))
	}
	return base64.StdEncoding.EncodeToString(payload)
}

func unauthenticated() models.AuthState {
	return models.AuthState{
		IsAuthenticated: false,
		User:            nil,
		Token:           "",
	}
}
