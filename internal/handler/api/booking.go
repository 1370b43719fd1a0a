package api

import (
	"net/http"

	reqdto "conference-booking/internal/handler/dto/request"
	resdto "conference-booking/internal/handler/dto/response"
	"conference-booking/internal/handler/httperr"
	"conference-booking/internal/usecase/commands"
	"conference-booking/internal/usecase/queries"

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

// @Summary Book a conference
// @Description Take a seat if one is free, otherwise join the waitlist
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Conference ID"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/conferences/{id}/bookings [post]
func (h *BookingHandler) Book(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Book(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, result)
}

// @Summary Confirm a waitlisted booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	id, ok := parseBookingID(c)
	if !ok {
		return
	}
	result, err := h.cmds.Confirm(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respond(c, http.StatusOK, result)
}

// @Summary Cancel a booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := parseBookingID(c)
	if !ok {
		return
	}
	result, err := h.cmds.Cancel(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respond(c, http.StatusOK, result)
}

// @Summary Get booking
// @Description Get a booking by ID, with its waitlist position while waitlisted
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingDetailResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := parseBookingID(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.Internal(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *BookingHandler) respond(c *gin.Context, status int, result *commands.BookingResult) {
	res, err := resdto.FromBookingResult(result)
	if err != nil {
		httperr.Internal(c, err)
		return
	}
	if status == http.StatusCreated {
		c.Header("Location", "/api/bookings/"+res.ID)
	}
	c.JSON(status, res)
}

func parseBookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking id", nil)
		return uuid.Nil, false
	}
	return id, true
}
