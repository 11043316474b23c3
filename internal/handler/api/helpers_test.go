//go:build unit

package api_test

import (
	"errors"

	"ration-slot-booking/internal/handler/middleware"
	"ration-slot-booking/internal/testutil/builder"
	"ration-slot-booking/internal/usecase/queries"
	"ration-slot-booking/internal/usecase/shared"
)

// stubValidator maps opaque test tokens straight to actors.
type stubValidator map[string]shared.Actor

func (v stubValidator) ValidateToken(token string) (shared.Actor, error) {
	actor, ok := v[token]
	if !ok {
		return shared.Actor{}, errors.New("unknown token")
	}
	return actor, nil
}

func newAuth(tokens map[string]shared.Actor) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(stubValidator(tokens))
}

func toViews(bs []*builder.BookingBuilder) []*queries.BookingView {
	out := make([]*queries.BookingView, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.BuildView())
	}
	return out
}
