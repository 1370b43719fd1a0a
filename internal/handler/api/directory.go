package api

import (
	"net/http"

	reqdto "conference-booking/internal/handler/dto/request"
	resdto "conference-booking/internal/handler/dto/response"
	"conference-booking/internal/handler/httperr"
	"conference-booking/internal/usecase/commands"
	"conference-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DirectoryHandler struct {
	cmds commands.DirectoryCommands
	q    queries.ConferenceQueries
}

func NewDirectoryHandler(cmds commands.DirectoryCommands, q queries.ConferenceQueries) *DirectoryHandler {
	return &DirectoryHandler{cmds: cmds, q: q}
}

// @Summary Create conference
// @Tags conferences
// @Accept json
// @Produce json
// @Param request body reqdto.CreateConferenceRequest true "Conference"
// @Success 201 {object} resdto.ConferenceResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/conferences [post]
func (h *DirectoryHandler) CreateConference(c *gin.Context) {
	var req reqdto.CreateConferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	conf, err := h.cmds.CreateConference(c.Request.Context(), cmd)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), conf.ID())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load conference", nil)
		return
	}
	h.respondConference(c, http.StatusCreated, view)
}

// @Summary Get conference
// @Tags conferences
// @Produce json
// @Param id path string true "Conference ID"
// @Success 200 {object} resdto.ConferenceResponse
// @Failure 404 {object} httperr.Response
// @Router /api/conferences/{id} [get]
func (h *DirectoryHandler) GetConference(c *gin.Context) {
	view, err := h.q.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respondConference(c, http.StatusOK, view)
}

// @Summary List conference waitlist
// @Description Waitlisted bookings ordered by position
// @Tags conferences
// @Produce json
// @Param id path string true "Conference ID"
// @Success 200 {array} resdto.WaitlistEntryResponse
// @Failure 404 {object} httperr.Response
// @Router /api/conferences/{id}/waitlist [get]
func (h *DirectoryHandler) ListWaitlist(c *gin.Context) {
	entries, err := h.q.ListWaitlist(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromWaitlist(entries)
	if err != nil {
		httperr.Internal(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param request body reqdto.CreateUserRequest true "User"
// @Success 201 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/users [post]
func (h *DirectoryHandler) CreateUser(c *gin.Context) {
	var req reqdto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	u, err := h.cmds.CreateUser(c.Request.Context(), cmd)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.Header("Location", "/api/users/"+u.ID())
	c.JSON(http.StatusCreated, resdto.FromUser(u))
}

func (h *DirectoryHandler) respondConference(c *gin.Context, status int, view *queries.ConferenceView) {
	res, err := resdto.FromConferenceView(view)
	if err != nil {
		httperr.Internal(c, err)
		return
	}
	if status == http.StatusCreated {
		c.Header("Location", "/api/conferences/"+res.ID)
	}
	c.JSON(status, res)
}
