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

type SlotHandler struct {
	cmds commands.SlotCommands
	q    queries.SlotQueries
}

func NewSlotHandler(cmds commands.SlotCommands, q queries.SlotQueries) *SlotHandler {
	return &SlotHandler{cmds: cmds, q: q}
}

// @Summary List shop slots
// @Description List the slots a shop offers, ordered by date
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param shopId path string true "Shop ID"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/shops/{shopId}/slots [get]
func (h *SlotHandler) ListByShop(c *gin.Context) {
	shopID, err := uuid.Parse(c.Param("shopId"))
	if err != nil {
		badRequest(c, err, "Invalid shop id")
		return
	}
	views, err := h.q.ListByShop(c.Request.Context(), shopID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeList(c, views)
}

// @Summary Create slot
// @Description Open a new slot at the shopkeeper's own shop
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shopId path string true "Shop ID"
// @Param request body reqdto.CreateSlotRequest true "Slot definition"
// @Success 201 {object} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/shops/{shopId}/slots [post]
func (h *SlotHandler) Create(c *gin.Context) {
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
	var req reqdto.CreateSlotRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		badRequest(c, bindErr, "Invalid request format")
		return
	}

	result, err := h.cmds.CreateSlot(c.Request.Context(), actor, shopID, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), result.SlotID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeOne(c, http.StatusCreated, view)
}

// @Summary List all slots
// @Description Admin view over every shop's slots
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.SlotResponse
// @Failure 403 {object} httperr.Response
// @Router /api/slots [get]
func (h *SlotHandler) ListAll(c *gin.Context) {
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

// @Summary Get slot
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 200 {object} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/slots/{id} [get]
func (h *SlotHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err, "Invalid slot id")
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeOne(c, http.StatusOK, view)
}

func (h *SlotHandler) writeOne(c *gin.Context, status int, view *queries.SlotView) {
	res, err := resdto.FromSlotView(view)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, res)
}

func (h *SlotHandler) writeList(c *gin.Context, views []*queries.SlotView) {
	res, err := resdto.FromSlotViews(views)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
