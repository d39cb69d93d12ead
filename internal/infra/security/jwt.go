package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domaccount "example.com/storefront/internal/domain/account"
)

var ErrInvalidToken = errors.New("invalid profile token")

// JWTService signs the profile cookie.
type JWTService struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

func NewJWTService(secret string, expiration time.Duration) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

type profileClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func (s *JWTService) GenerateToken(p domaccount.Profile) (string, error) {
	if p.ID == "" {
		return "", fmt.Errorf("%w: empty profile id", ErrInvalidToken)
	}
	now := s.now()
	claims := profileClaims{
		Email: p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTService) ParseToken(token string) (*domaccount.Profile, error) {
	parsed, err := jwt.ParseWithClaims(token, &profileClaims{}, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*profileClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &domaccount.Profile{
		ID:    claims.Subject,
		Email: claims.Email,
	}, nil
}
