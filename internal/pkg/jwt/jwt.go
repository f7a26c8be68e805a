package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Signature verification is never optional here: ValidateToken only accepts
// HS256, so unsigned ("none") or foreign-algorithm tokens fail before any
// claim is read.
var (
	ErrTokenMalformed   = errors.New("token is malformed")
	ErrTokenExpired     = errors.New("token is expired")
	ErrSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenInvalid     = errors.New("token is invalid")
)

var validMethods = []string{jwtlib.SigningMethodHS256.Alg()}

type Service struct {
	secret []byte
	ttl    time.Duration
}

type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwtlib.RegisteredClaims
}

// New creates a token service. The secret comes from runtime configuration;
// it must never be a compile-time constant and must never be logged.
func New(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (s *Service) GenerateToken(userID int64, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	}, jwtlib.WithValidMethods(validMethods), jwtlib.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwtlib.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwtlib.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwtlib.ErrTokenSignatureInvalid):
			return nil, ErrSignatureInvalid
		default:
			return nil, ErrTokenInvalid
		}
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
