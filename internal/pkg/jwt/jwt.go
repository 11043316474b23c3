package jwt

import (
	"errors"
	"time"

	"ration-slot-booking/internal/domain/user"
	"ration-slot-booking/internal/pkg/clock"
	"ration-slot-booking/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer is stamped on every token and required on validation.
const Issuer = "ration-slot-booking"

// leeway absorbs clock skew between the login service and this one.
const leeway = 30 * time.Second

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims carries the caller identity issued by the login service. ShopID is
// set for shopkeepers only.
type Claims struct {
	UserID uuid.UUID  `json:"user_id"`
	Role   string     `json:"role"`
	ShopID *uuid.UUID `json:"shop_id,omitempty"`
	jwt.RegisteredClaims
}

type Service struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
	parser *jwt.Parser
}

func NewService(secret string, ttl time.Duration, clk clock.Clock) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clk,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(Issuer),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(leeway),
			jwt.WithTimeFunc(clk.Now),
		),
	}
}

// GenerateToken signs an HS256 token for the given identity. Production
// tokens come from the login service; this is used by tooling and tests.
func (s *Service) GenerateToken(userID uuid.UUID, role user.Role, shopID *uuid.UUID) (string, error) {
	now := s.clock.Now()
	claims := Claims{
		UserID: userID,
		Role:   role.String(),
		ShopID: shopID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errs.Wrap(err, "sign token")
	}
	return signed, nil
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, errs.Wrap(ErrExpiredToken, err.Error())
	case err != nil:
		return nil, errs.Wrap(ErrInvalidToken, err.Error())
	case !token.Valid || claims.UserID == uuid.Nil:
		return nil, ErrInvalidToken
	}
	return claims, nil
}
