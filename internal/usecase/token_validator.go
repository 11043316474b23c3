package usecase

import (
	"ration-slot-booking/internal/domain/user"
	"ration-slot-booking/internal/pkg/jwt"
	"ration-slot-booking/internal/usecase/shared"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (shared.Actor, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (shared.Actor, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return shared.Actor{}, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return shared.Actor{}, err
	}

	actor := shared.Actor{UserID: claims.UserID, Role: role}
	if role == user.RoleShopkeeper {
		actor.ShopID = claims.ShopID
	}
	return actor, nil
}
