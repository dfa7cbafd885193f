// Package jwt issues and validates the HMAC-signed access and refresh
// tokens that guard the recruiter API. The two kinds are signed with
// separate secrets so leaking one never compromises the other.
package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	TokenType string    `json:"token_type"`

	IssuedAt  time.Time `json:"issued_at"`
	ExpiredAt time.Time `json:"expired_at"`

	jwtlib.RegisteredClaims
}

type Service interface {
	GenerateAccessToken(userID uuid.UUID, email string) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (string, error)
	ValidateToken(tokenString string) (Claims, error)
	IsRefreshToken(claims Claims) bool
}

type HMACService struct {
	accessSecret  []byte
	refreshSecret []byte

	accessExpiresIn  time.Duration
	refreshExpiresIn time.Duration

	now func() time.Time
}

func NewHMACService(accessSecret, refreshSecret string, accessExpiresIn, refreshExpiresIn time.Duration) *HMACService {
	return &HMACService{
		accessSecret:     []byte(accessSecret),
		refreshSecret:    []byte(refreshSecret),
		accessExpiresIn:  accessExpiresIn,
		refreshExpiresIn: refreshExpiresIn,
		now:              time.Now,
	}
}

func (s *HMACService) GenerateAccessToken(userID uuid.UUID, email string) (string, error) {
	if len(s.accessSecret) == 0 || s.accessExpiresIn <= 0 {
		return "", ErrTokenInvalid
	}
	return s.sign(newClaims(TokenTypeAccess, userID, email, s.now(), s.accessExpiresIn), s.accessSecret)
}

func (s *HMACService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	if len(s.refreshSecret) == 0 || s.refreshExpiresIn <= 0 {
		return "", ErrTokenInvalid
	}
	return s.sign(newClaims(TokenTypeRefresh, userID, "", s.now(), s.refreshExpiresIn), s.refreshSecret)
}

// ValidateToken checks the token against both secrets. A caller holding a
// refresh token cannot know which kind it is without decoding, so the
// service tries access first and refresh second; the claims' token_type
// tells the caller what it got back.
func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	expired := false
	for _, secret := range [][]byte{s.accessSecret, s.refreshSecret} {
		claims, err := parse(tokenString, secret)
		switch {
		case err == nil:
			return claims, nil
		case errors.Is(err, ErrTokenExpired):
			expired = true
		}
	}
	if expired {
		return Claims{}, ErrTokenExpired
	}
	return Claims{}, ErrTokenInvalid
}

func (s *HMACService) IsRefreshToken(claims Claims) bool {
	return claims.TokenType == TokenTypeRefresh
}

func (s *HMACService) sign(c Claims, secret []byte) (string, error) {
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(secret)
}

func newClaims(kind string, userID uuid.UUID, email string, now time.Time, ttl time.Duration) Claims {
	issued := now.UTC()
	expires := issued.Add(ttl)
	return Claims{
		UserID:    userID,
		Email:     email,
		TokenType: kind,
		IssuedAt:  issued,
		ExpiredAt: expires,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(issued),
			ExpiresAt: jwtlib.NewNumericDate(expires),
			Subject:   userID.String(),
		},
	}
}

func parse(tokenString string, secret []byte) (Claims, error) {
	parser := jwtlib.NewParser(jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))

	var c Claims
	tok, err := parser.ParseWithClaims(tokenString, &c, func(*jwtlib.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}

	// A token minted by anything other than this service shows up here
	// with an unknown type; reject it even when the signature checks out.
	if c.TokenType != TokenTypeAccess && c.TokenType != TokenTypeRefresh {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}
