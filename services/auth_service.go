package services

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"surveillance-map/be/config"
	"surveillance-map/be/models"
)

const DefaultSessionTTL = 24 * time.Hour

// Claims is the payload of a session token.
type Claims struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) User() models.User {
	return models.User{Username: c.Username, Role: c.Role}
}

type Session struct {
	Token     string
	User      models.User
	ExpiresAt time.Time
}

// AuthService checks the single configured privileged identity and issues
// stateless HS256 session tokens. There is no server-side session table, so
// a token stays valid until it expires.
type AuthService struct {
	admin  config.AdminConfig
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(admin config.AdminConfig, jwtCfg config.JWTConfig) (*AuthService, error) {
	if jwtCfg.Secret == "" {
		return nil, errors.New("JWT secret must not be empty")
	}
	ttl := DefaultSessionTTL
	if jwtCfg.Expiry != "" {
		d, err := time.ParseDuration(jwtCfg.Expiry)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT expiry %q: %w", jwtCfg.Expiry, err)
		}
		ttl = d
	}
	return &AuthService{
		admin:  admin,
		secret: []byte(jwtCfg.Secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// WithClock replaces the time source, for tests.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// Login returns ErrInvalidCredentials for any mismatch without saying which
// field was wrong. Both fields are always compared.
func (s *AuthService) Login(username, password string) (*Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1
	passOK := s.checkPassword(password)
	if !userOK || !passOK {
		return nil, ErrInvalidCredentials
	}

	user := models.User{Username: s.admin.Username, Role: models.RolePrivileged}
	token, expiresAt, err := s.Issue(user)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: user, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) checkPassword(password string) bool {
	if s.admin.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) == 1
}

// Issue signs a token for user valid for the configured TTL.
func (s *AuthService) Issue(user models.User) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)
	claims := Claims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks the signature and expiry of a token.
func (s *AuthService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
