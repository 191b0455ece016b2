package auth

import (
	"errors"
	"time"

	"github.com/Abraxas-365/seeker/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService issues and checks access tokens
type TokenService interface {
	GenerateAccessToken(identity kernel.Identity) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// TokenClaims is what a valid access token tells about its bearer
type TokenClaims struct {
	UserID    kernel.UserID
	Role      kernel.Role
	Scopes    []string
	ExpiresAt time.Time
}

// Identity converts the claims to the caller identity
func (c *TokenClaims) Identity() kernel.Identity {
	return kernel.Identity{UserID: c.UserID, Role: c.Role}
}

type jwtClaims struct {
	Role   kernel.Role `json:"role"`
	Scopes []string    `json:"scopes,omitempty"`
	jwt.RegisteredClaims
}

// JWTService signs HS256 tokens whose subject is the user id
type JWTService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService creates a token service. ttl <= 0 defaults to 24h.
func NewJWTService(secret, issuer string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

var _ TokenService = (*JWTService)(nil)

func (s *JWTService) GenerateAccessToken(identity kernel.Identity) (string, error) {
	if !identity.IsAuthenticated() {
		return "", ErrTokenGeneration().WithDetail("reason", "empty user id")
	}

	now := s.now()
	claims := jwtClaims{
		Role:   identity.Role,
		Scopes: ScopesForRole(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.UserID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", ErrTokenGeneration().WithCause(err)
	}
	return token, nil
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	claims := &jwtClaims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		e := ErrInvalidToken().WithCause(err)
		if errors.Is(err, jwt.ErrTokenExpired) {
			e.WithDetail("reason", "expired")
		}
		return nil, e
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken().WithDetail("reason", "missing subject")
	}

	out := &TokenClaims{
		UserID: kernel.UserID(claims.Subject),
		Role:   claims.Role,
		Scopes: claims.Scopes,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
