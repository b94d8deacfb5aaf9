package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ecolemusique/backoffice/internal/utils"
)

type apiError struct {
	Error string     `json:"error"`
	Code  utils.Code `json:"code"`
}

func abortWith(c *gin.Context, status int, code utils.Code, msg string) {
	c.AbortWithStatusJSON(status, apiError{Error: msg, Code: code})
}
