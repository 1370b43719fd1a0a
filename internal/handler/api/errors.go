package api

import (
	"net/http"

	"conference-booking/internal/handler/httperr"
	"conference-booking/internal/pkg/errs"
	"conference-booking/internal/usecase/commands"
	"conference-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target error
	status int
	msg    string
}

var errorMappings = []errorMapping{
	{commands.ErrConferenceNotFound, http.StatusNotFound, "Conference not found"},
	{queries.ErrConferenceNotFound, http.StatusNotFound, "Conference not found"},
	{commands.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{commands.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{queries.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{commands.ErrAlreadyBooked, http.StatusConflict, "User already booked this conference"},
	{commands.ErrTimeConflict, http.StatusConflict, "Booking overlaps another booking of the user"},
	{commands.ErrConferenceExists, http.StatusConflict, "Conference already exists"},
	{commands.ErrUserExists, http.StatusConflict, "User already exists"},
	{commands.ErrConferenceStarted, http.StatusUnprocessableEntity, "Conference has already started"},
	{commands.ErrDeadlinePassed, http.StatusUnprocessableEntity, "Confirmation deadline has passed"},
	{commands.ErrNoCapacity, http.StatusUnprocessableEntity, "No seats available"},
	{commands.ErrBookingCanceled, http.StatusUnprocessableEntity, "Booking is already canceled"},
	{commands.ErrNotWaitlisted, http.StatusUnprocessableEntity, "Booking is not waitlisted"},
	{commands.ErrInvalidInput, http.StatusBadRequest, "Invalid request"},
}

// abortWithUseCaseError translates a use case failure into the error envelope.
// Business-rule failures carry their reason in detail.
func abortWithUseCaseError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if !errs.Is(err, m.target) {
			continue
		}
		var detail any
		if commands.IsBusinessRule(err) {
			detail = gin.H{"reason": commands.RejectionReason(err)}
		}
		httperr.AbortWithError(c, m.status, err, m.msg, detail)
		return
	}
	httperr.Internal(c, err)
}
