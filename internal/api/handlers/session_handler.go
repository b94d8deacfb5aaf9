package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecolemusique/backoffice/internal/api/middleware"
	"github.com/ecolemusique/backoffice/internal/models"
	"github.com/ecolemusique/backoffice/internal/services"
	"github.com/ecolemusique/backoffice/internal/utils"
)

type SessionHandler struct {
	profiles services.ProfileService
}

func NewSessionHandler(profiles services.ProfileService) *SessionHandler {
	return &SessionHandler{profiles: profiles}
}

// Get returns the caller's identity and profile. A signed-in user without a
// profile row gets "profile": null rather than an error.
func (h *SessionHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	out := models.Session{
		User: models.SessionUser{ID: userID, Email: c.GetString(middleware.CtxEmail)},
	}

	p, err := h.profiles.GetMe(c.Request.Context(), userID)
	switch {
	case err == nil:
		out.Profile = p
	case utils.IsCode(err, utils.CodeNotFound):
	default:
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}
