package api

import (
	"net/http"

	resdto "ration-slot-booking/internal/handler/dto/response"
	"ration-slot-booking/internal/handler/middleware"
	"ration-slot-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type EntitlementHandler struct {
	q queries.EntitlementQueries
}

func NewEntitlementHandler(q queries.EntitlementQueries) *EntitlementHandler {
	return &EntitlementHandler{q: q}
}

// @Summary My entitlement
// @Description Monthly ration the caller's household can book
// @Tags entitlement
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.EntitlementResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/me/entitlement [get]
func (h *EntitlementHandler) Me(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		unauthorized(c)
		return
	}
	view, err := h.q.ForActor(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	res, err := resdto.FromEntitlementView(view)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
