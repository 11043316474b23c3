package api

import (
	"net/http"

	reqdto "ration-slot-booking/internal/handler/dto/request"
	resdto "ration-slot-booking/internal/handler/dto/response"
	"ration-slot-booking/internal/handler/middleware"
	"ration-slot-booking/internal/usecase/commands"
	"ration-slot-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Book a slot
// @Description Reserve the caller's monthly entitlement in a slot
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Shop and slot"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		unauthorized(c)
		return
	}
	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		badRequest(c, bindErr, "Invalid request format")
		return
	}

	result, err := h.cmds.Reserve(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), actor, result.BookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeOne(c, http.StatusCreated, view)
}

// @Summary List all bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Router /api/bookings [get]
func (h *BookingHandler) ListAll(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		unauthorized(c)
		return
	}
	views, err := h.q.ListAll(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeList(c, views)
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err, "Invalid booking id")
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeOne(c, http.StatusOK, view)
}

// @Summary Update booking status
// @Description Complete (shopkeeper) or cancel (shopkeeper or owner) a confirmed booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingStatusRequest true "Target status"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err, "Invalid booking id")
		return
	}
	var req reqdto.UpdateBookingStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		badRequest(c, bindErr, "Invalid request format")
		return
	}

	if err = h.cmds.UpdateStatus(c.Request.Context(), actor, id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeOne(c, http.StatusOK, view)
}

// @Summary List a user's bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/users/{userId}/bookings [get]
func (h *BookingHandler) ListByUser(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		unauthorized(c)
		return
	}
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		badRequest(c, err, "Invalid user id")
		return
	}
	views, err := h.q.ListByUser(c.Request.Context(), actor, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeList(c, views)
}

// @Summary List a shop's bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param shopId path string true "Shop ID"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/shops/{shopId}/bookings [get]
func (h *BookingHandler) ListByShop(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		unauthorized(c)
		return
	}
	shopID, err := uuid.Parse(c.Param("shopId"))
	if err != nil {
		badRequest(c, err, "Invalid shop id")
		return
	}
	views, err := h.q.ListByShop(c.Request.Context(), actor, shopID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeList(c, views)
}

// @Summary Verify booking
// @Description Look up a booking at the shopkeeper's shop by id or verification code
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.VerifyBookingRequest true "Code from the beneficiary"
// @Success 200 {object} resdto.VerifyBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/verify [post]
func (h *BookingHandler) Verify(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		unauthorized(c)
		return
	}
	var req reqdto.VerifyBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		badRequest(c, bindErr, "Invalid request format")
		return
	}
	view, err := h.q.Verify(c.Request.Context(), actor, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	res, err := resdto.FromBookingView(view)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.VerifyBookingResponse{Valid: true, Booking: res})
}

func (h *BookingHandler) writeOne(c *gin.Context, status int, view *queries.BookingView) {
	res, err := resdto.FromBookingView(view)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, res)
}

func (h *BookingHandler) writeList(c *gin.Context, views []*queries.BookingView) {
	res, err := resdto.FromBookingViews(views)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
