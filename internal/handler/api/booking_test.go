//go:build unit

package api_test

import (
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"conference-booking/internal/domain/booking"
	"conference-booking/internal/handler/api"
	"conference-booking/internal/handler/middleware"
	"conference-booking/internal/pkg/errs"
	"conference-booking/internal/usecase/commands"
	"conference-booking/internal/usecase/queries"
	"conference-booking/tests/common/builder"
	"conference-booking/tests/common/httptest"
	"conference-booking/tests/common/testutil"
	commandsmock "conference-booking/tests/mock/commands"
	queriesmock "conference-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler(slog.New(slog.DiscardHandler)))

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/api/conferences/:id/bookings", s.handler.Book)
	s.router.GET("/api/bookings/:id", s.handler.Get)
	s.router.POST("/api/bookings/:id/confirm", s.handler.Confirm)
	s.router.POST("/api/bookings/:id/cancel", s.handler.Cancel)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type bookingResponseBody struct {
	ID           string     `json:"id"`
	ConferenceID string     `json:"conference_id"`
	UserID       string     `json:"user_id"`
	Status       string     `json:"status"`
	Position     *int       `json:"position"`
	ConfirmBy    *time.Time `json:"confirm_by"`
}

// ================================================================================
// TestBook
// ================================================================================

func (s *BookingHandlerTestSuite) TestBook() {
	url := "/api/conferences/gophercon-2026/bookings"
	reqBody := map[string]any{"user_id": "alice"}

	s.Run("success: confirmed seat returns 201 without position", func() {
		bb := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.Status = booking.StatusConfirmed })
		s.mockCommands.EXPECT().Book(gomock.Any(), "gophercon-2026", "alice").Return(bb.BuildResult(0), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body bookingResponseBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(bb.ID.String(), body.ID)
		s.Equal("confirmed", body.Status)
		s.Nil(body.Position)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/bookings/" + bb.ID.String()})
	})

	s.Run("success: full conference returns waitlist position", func() {
		bb := builder.NewBookingBuilder()
		s.mockCommands.EXPECT().Book(gomock.Any(), "gophercon-2026", "alice").Return(bb.BuildResult(3), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body bookingResponseBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("waitlisted", body.Status)
		s.Require().NotNil(body.Position)
		s.Equal(3, *body.Position)
	})

	s.Run("error: 400 on invalid body", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing user_id", mutate: testutil.Field("user_id", nil)},
			{name: "empty user_id", mutate: testutil.Field("user_id", "")},
			{name: "wrong type", mutate: testutil.Field("user_id", 42)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: maps engine errors to proper statuses", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
		}{
			{"conference not found", commands.ErrConferenceNotFound, http.StatusNotFound, "Conference not found"},
			{"user not found", commands.ErrUserNotFound, http.StatusNotFound, "User not found"},
			{"already booked", commands.ErrAlreadyBooked, http.StatusConflict, "already booked"},
			{"time conflict", commands.ErrTimeConflict, http.StatusConflict, "overlaps"},
			{"conference started", commands.ErrConferenceStarted, http.StatusUnprocessableEntity, "already started"},
			{"wrapped business rule", errs.Wrap(commands.ErrTimeConflict, "book"), http.StatusConflict, "overlaps"},
			{"database failure", errs.Mark(errors.New("connection reset"), commands.ErrDatabaseOperationFailed), http.StatusInternalServerError, "Internal server error"},
			{"unknown error", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Book(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("error: business rule failures carry the reason", func() {
		s.mockCommands.EXPECT().Book(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, commands.ErrTimeConflict)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body struct {
			Detail struct {
				Reason string `json:"reason"`
			} `json:"detail"`
		}
		s.Require().NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &body))
		s.Equal("time_conflict", body.Detail.Reason)
	})
}

// ================================================================================
// TestConfirm / TestCancel
// ================================================================================

func (s *BookingHandlerTestSuite) TestConfirm() {
	bb := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.Status = booking.StatusConfirmed })
	url := "/api/bookings/" + bb.ID.String() + "/confirm"

	s.Run("success: returns 200", func() {
		s.mockCommands.EXPECT().Confirm(gomock.Any(), bb.ID).Return(bb.BuildResult(0), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)

		var body bookingResponseBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("confirmed", body.Status)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/not-a-uuid/confirm", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking id")
	})

	s.Run("error: maps engine errors to proper statuses", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedReason string
		}{
			{"booking not found", commands.ErrBookingNotFound, http.StatusNotFound, "booking_not_found"},
			{"canceled", commands.ErrBookingCanceled, http.StatusUnprocessableEntity, "booking_canceled"},
			{"not waitlisted", commands.ErrNotWaitlisted, http.StatusUnprocessableEntity, "not_waitlisted"},
			{"deadline passed", commands.ErrDeadlinePassed, http.StatusUnprocessableEntity, "deadline_passed"},
			{"no capacity", commands.ErrNoCapacity, http.StatusUnprocessableEntity, "no_capacity"},
			{"conference started", commands.ErrConferenceStarted, http.StatusUnprocessableEntity, "conference_started"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Confirm(gomock.Any(), bb.ID).Return(nil, tc.err)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)
				httptest.AssertRejection(s.T(), rec, tc.expectedStatus, tc.expectedReason)
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestCancel() {
	bb := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.Status = booking.StatusCanceled })
	url := "/api/bookings/" + bb.ID.String() + "/cancel"

	s.Run("success: returns 200", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), bb.ID).Return(bb.BuildResult(0), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)

		var body bookingResponseBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("canceled", body.Status)
		s.Nil(body.ConfirmBy)
	})

	s.Run("error: 422 once the conference started", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), bb.ID).Return(nil, commands.ErrConferenceStarted)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "already started")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	deadline := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	bb := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.ConfirmBy = &deadline })
	url := "/api/bookings/" + bb.ID.String()

	s.Run("success: waitlisted booking includes position and deadline", func() {
		view := bb.BuildView()
		pos := 1
		view.Position = &pos
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bb.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		var body struct {
			bookingResponseBody
			CreatedAt time.Time `json:"created_at"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(bb.ID.String(), body.ID)
		s.Require().NotNil(body.Position)
		s.Equal(1, *body.Position)
		s.Require().NotNil(body.ConfirmBy)
		s.True(deadline.Equal(*body.ConfirmBy))
		s.True(bb.CreatedAt.Equal(body.CreatedAt))
	})

	s.Run("error: 404 when missing", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(nil, queries.ErrBookingNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/"+uuid.NewString(), nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}
