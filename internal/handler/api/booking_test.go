//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"ration-slot-booking/internal/domain/booking"
	"ration-slot-booking/internal/domain/slot"
	"ration-slot-booking/internal/domain/stock"
	"ration-slot-booking/internal/domain/user"
	"ration-slot-booking/internal/handler/api"
	resdto "ration-slot-booking/internal/handler/dto/response"
	commandsmock "ration-slot-booking/internal/mock/commands"
	queriesmock "ration-slot-booking/internal/mock/queries"
	"ration-slot-booking/internal/pkg/errs"
	"ration-slot-booking/internal/testutil"
	"ration-slot-booking/internal/testutil/builder"
	"ration-slot-booking/internal/testutil/httptest"
	"ration-slot-booking/internal/usecase/commands"
	"ration-slot-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	beneficiaryToken = "beneficiary-token"
	keeperToken      = "keeper-token"
	adminToken       = "admin-token"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler

	shopID      uuid.UUID
	beneficiary shared.Actor
	keeper      shared.Actor
	admin       shared.Actor
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.shopID = uuid.New()
	s.beneficiary = builder.NewUserBuilder().BuildActor()
	s.keeper = builder.NewUserBuilder().AsShopkeeper(s.shopID).BuildActor()
	s.admin = builder.NewUserBuilder().AsAdmin().BuildActor()

	auth := newAuth(map[string]shared.Actor{
		beneficiaryToken: s.beneficiary,
		keeperToken:      s.keeper,
		adminToken:       s.admin,
	})

	g := s.router.Group("/api", auth.RequireAuth())
	g.POST("/bookings", auth.RequireRole(user.RoleBeneficiary), s.handler.Create)
	g.GET("/bookings", auth.RequireRole(user.RoleAdmin), s.handler.ListAll)
	g.POST("/bookings/verify", auth.RequireRole(user.RoleShopkeeper), s.handler.Verify)
	g.GET("/bookings/:id", s.handler.Get)
	g.PATCH("/bookings/:id/status", s.handler.UpdateStatus)
	g.GET("/users/:userId/bookings", s.handler.ListByUser)
	g.GET("/shops/:shopId/bookings", s.handler.ListByShop)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/api/bookings"
	view := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.BeneficiaryID = s.beneficiary.UserID
		b.ShopID = s.shopID
	}).BuildView()
	reqBody := map[string]any{"shop_id": s.shopID.String(), "slot_id": view.SlotID.String()}

	s.Run("success: returns 201 with the booking", func() {
		s.mockCommands.EXPECT().
			Reserve(gomock.Any(), s.beneficiary, commands.ReserveInput{ShopID: s.shopID, SlotID: view.SlotID}).
			Return(&commands.ReserveResult{BookingID: view.ID, VerificationCode: view.VerificationCode, Attempts: 1}, nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.beneficiary, view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, beneficiaryToken)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID.String(), body.ID)
		s.Equal("confirmed", body.Status)
		s.Equal(view.VerificationCode, body.VerificationCode)
		s.Equal(view.CreatedAt.Unix(), body.CreatedAt)
		s.Equal(20.0, body.Entitlement.Rice)
	})

	s.Run("error: 400 on missing or malformed fields", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{"missing shop_id", testutil.Field("shop_id", nil)},
			{"missing slot_id", testutil.Field("slot_id", nil)},
			{"malformed slot_id", testutil.Field("slot_id", "not-a-uuid")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), beneficiaryToken)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: 403 for shopkeepers", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, keeperToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	outcomes := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"full slot", errs.Mark(slot.ErrCapacityExceeded, errs.ErrCapacityExceeded), http.StatusConflict, "fully booked"},
		{"shop not approved", errs.Mark(errs.New("pending"), errs.ErrShopNotApproved), http.StatusConflict, "not accepting"},
		{"unknown slot", errs.Mark(errs.New("slot"), errs.ErrNotFound), http.StatusNotFound, "Not found"},
		{"invalid family", errs.Mark(errs.New("family"), errs.ErrValidation), http.StatusBadRequest, "Invalid request"},
		{"unexpected", errs.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range outcomes {
		s.Run("error: "+tc.name, func() {
			s.mockCommands.EXPECT().Reserve(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, beneficiaryToken)
			httptest.AssertErrorResponse(s.T(), rec, tc.status, tc.msg)
		})
	}

	s.Run("error: insufficient stock lists the short goods", func() {
		cause := &slot.InsufficientStockError{Short: []stock.Good{stock.Sugar}}
		s.mockCommands.EXPECT().Reserve(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(cause, errs.ErrInsufficientStock))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, beneficiaryToken)
		body := httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Insufficient stock")
		s.JSONEq(`{"short_goods":["sugar"]}`, string(body.Detail))
	})

	s.Run("error: 503 with Retry-After once retries are spent", func() {
		s.mockCommands.EXPECT().Reserve(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("lost"), errs.ErrConflictRetryable))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, beneficiaryToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "retry")
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Retry-After": "1"})
	})
}

// ================================================================================
// TestUpdateStatus
// ================================================================================

func (s *BookingHandlerTestSuite) TestUpdateStatus() {
	view := builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).BuildView()
	url := "/api/bookings/" + view.ID.String() + "/status"

	s.Run("success: returns the updated booking", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), s.beneficiary, view.ID, "cancelled").Return(nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.beneficiary, view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "cancelled"}, beneficiaryToken)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("cancelled", body.Status)
	})

	s.Run("error: 409 on a terminal booking", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), view.ID, "completed").
			Return(errs.Mark(errs.New("terminal"), errs.ErrInvalidStatusTransition))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "completed"}, keeperToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Invalid status transition")
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/api/bookings/xyz/status", map[string]any{"status": "cancelled"}, keeperToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking id")
	})

	s.Run("error: 400 without status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{}, keeperToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 403 passes through", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errs.Mark(errs.New("nope"), errs.ErrForbidden))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "completed"}, beneficiaryToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})
}

// ================================================================================
// TestVerify
// ================================================================================

func (s *BookingHandlerTestSuite) TestVerify() {
	url := "/api/bookings/verify"
	view := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.ShopID = s.shopID }).BuildView()

	s.Run("success: valid booking at own shop", func() {
		s.mockQueries.EXPECT().Verify(gomock.Any(), s.keeper, view.VerificationCode).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": view.VerificationCode}, keeperToken)

		var body resdto.VerifyBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Valid)
		s.Require().NotNil(body.Booking)
		s.Equal(view.ID.String(), body.Booking.ID)
		s.Equal(view.BeneficiaryName, body.Booking.BeneficiaryName)
	})

	s.Run("error: 404 on unknown code", func() {
		s.mockQueries.EXPECT().Verify(gomock.Any(), s.keeper, "BKG-x").Return(nil, errs.Mark(errs.New("none"), errs.ErrNotFound))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": "BKG-x"}, keeperToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})

	s.Run("error: 400 on empty body", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, keeperToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 403 for beneficiaries", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": "x"}, beneficiaryToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}

// ================================================================================
// TestLists
// ================================================================================

func (s *BookingHandlerTestSuite) TestLists() {
	views := []*builder.BookingBuilder{builder.NewBookingBuilder(), builder.NewBookingBuilder()}

	s.Run("user bookings", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.beneficiary, s.beneficiary.UserID).
			Return(toViews(views), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/users/"+s.beneficiary.UserID.String()+"/bookings", nil, beneficiaryToken)

		var body []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 2)
	})

	s.Run("shop bookings", func() {
		s.mockQueries.EXPECT().ListByShop(gomock.Any(), s.keeper, s.shopID).Return(toViews(views[:1]), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/shops/"+s.shopID.String()+"/bookings", nil, keeperToken)

		var body []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
	})

	s.Run("empty list is an empty array", func() {
		s.mockQueries.EXPECT().ListAll(gomock.Any(), s.admin).Return(toViews(nil), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings", nil, adminToken)
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`[]`, rec.Body.String())
	})

	s.Run("all bookings is admin only", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings", nil, keeperToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}
