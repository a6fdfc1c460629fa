package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/animetrack/anime-tracker/internal/core/domain"
	"github.com/animetrack/anime-tracker/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// tokenClaims is the payload carried by every identity token. ID is a pointer
// so a token without the claim can be told apart from user 0.
type tokenClaims struct {
	ID    *uint  `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 identity tokens. It is stateless:
// nothing is stored and nothing is looked up.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

var (
	_ ports.TokenIssuer   = (*TokenService)(nil)
	_ ports.TokenVerifier = (*TokenService)(nil)
)

// Issue signs a token for the given user that expires after the configured TTL.
func (s *TokenService) Issue(userID uint, email string) (ports.Token, error) {
	now := s.now()
	exp := now.Add(s.ttl)

	claims := tokenClaims{
		ID:    &userID,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return ports.Token{}, err
	}
	return ports.Token{Value: signed, ExpiresAt: exp}, nil
}

// Verify returns the user ID embedded in token. Expiry is checked against the
// service clock and an exp claim is mandatory.
func (s *TokenService) Verify(token string) (uint, error) {
	if token == "" {
		return 0, domain.ErrTokenMissing
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, domain.ErrTokenExpired
		}
		return 0, domain.ErrTokenInvalid
	}

	if claims.ID == nil {
		return 0, domain.ErrTokenMalformed
	}
	return *claims.ID, nil
}
