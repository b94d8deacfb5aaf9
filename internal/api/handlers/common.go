package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ecolemusique/backoffice/internal/api/middleware"
	"github.com/ecolemusique/backoffice/internal/utils"
)

type APIError struct {
	Error string     `json:"error"`
	Code  utils.Code `json:"code"`
}

// writeError renders err as {error, code}. The full chain is attached to the
// gin context for the request logger.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(utils.HTTPStatus(err), APIError{
		Error: utils.PublicMessage(err),
		Code:  utils.CodeOf(err),
	})
}

func requireUserID(c *gin.Context) (string, bool) {
	if s := c.GetString(middleware.CtxUserID); s != "" {
		return s, true
	}

	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "unauthorized", nil))
	return "", false
}

func bindJSON(c *gin.Context, op string, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return false
	}
	return true
}
