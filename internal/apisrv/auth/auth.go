package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/akademia/backoffice-manager/internal/auth/jwt"
	"github.com/akademia/backoffice-manager/internal/auth/pwhash"
	"github.com/akademia/backoffice-manager/internal/dependency"
	"github.com/go-chi/jwtauth/v5"
)

// AuthHeaderKey is the header key to match auth token
const AuthHeaderKey = "Authorization"

// Server implements the admin auth service.
type Server struct {
	adminRepository dependency.Admin
	pwhash          *pwhash.PasswordHasher
	JwtAuth         *jwtauth.JWTAuth
	jwtTTL          time.Duration
	c               *Config
	masterHash      string
}

// Config contains the configuration for the auth server.
type Config struct {
	JWTSecret                string `mapstructure:"jwt_secret"`
	MasterPassword           string `mapstructure:"master_password"`
	PasswordHasherSaltSize   int    `mapstructure:"password_hasher_salt_size"`
	PasswordHasherIterations int    `mapstructure:"password_hasher_iterations"`
	JWTTTL                   string `mapstructure:"jwt_ttl"`
}

// New creates a new auth server.
func New(c *Config, ar dependency.Admin) (*Server, error) {
	ph, err := pwhash.New(c.PasswordHasherSaltSize, c.PasswordHasherIterations)
	if err != nil {
		return nil, err
	}
	hash, err := ph.HashPassword(c.MasterPassword)
	if err != nil {
		return nil, err
	}

	if err := ph.Validate(c.MasterPassword, hash); err != nil {
		return nil, err
	}

	ttl, err := time.ParseDuration(c.JWTTTL)
	if err != nil {
		return nil, err
	}
	s := &Server{
		adminRepository: ar,
		pwhash:          ph,
		JwtAuth:         jwtauth.New("HS256", []byte(c.JWTSecret), nil),
		c:               c,
		jwtTTL:          ttl,
		masterHash:      hash,
	}

	return s, nil
}

// Login gets an auth token for the provided username and password.
func (s *Server) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.ToLower(username)

	admin, err := s.adminRepository.GetAdminByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("not authenticated")
	}

	if err := s.pwhash.Validate(password, admin.PasswordHash); err != nil {
		return "", fmt.Errorf("not authenticated")
	}

	return jwt.NewToken(s.JwtAuth, s.jwtTTL, username)
}

// ChangePassword changes the password of the user. It requires the current
// password or the master password.
func (s *Server) ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	username = strings.ToLower(username)

	admin, err := s.adminRepository.GetAdminByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("cannot get admin: %w", err)
	}

	err = s.pwhash.Validate(currentPassword, s.masterHash)
	if err != nil {
		err = s.pwhash.Validate(currentPassword, admin.PasswordHash)
		if err != nil {
			return fmt.Errorf("neither master nor current password matched")
		}
	}

	newHash, err := s.pwhash.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.adminRepository.ChangePassword(ctx, username, newHash)
}

// VerifyToken checks an issued token.
func (s *Server) VerifyToken(ctx context.Context, token string) error {
	_, err := jwt.VerifyToken(s.JwtAuth, token)
	return err
}

// WithAuth middleware checks if the user is authenticated.
func (s *Server) WithAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get(AuthHeaderKey), "Bearer ")
		_, err := jwt.VerifyToken(s.JwtAuth, token)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid token %v", err.Error()), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
