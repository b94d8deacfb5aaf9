package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ecolemusique/backoffice/internal/authz"
	"github.com/ecolemusique/backoffice/internal/models"
	"github.com/ecolemusique/backoffice/internal/utils"
)

type RoleResolver interface {
	RoleOf(ctx context.Context, userID string) (models.Role, error)
}

// ResolveRole loads the caller's profile role. A caller without a profile
// gets an empty role and is left to the policy.
func ResolveRole(roles RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(CtxUserID)
		if userID == "" {
			abortWith(c, http.StatusUnauthorized, utils.CodeUnauthorized, "unauthorized")
			return
		}
		role, err := roles.RoleOf(c.Request.Context(), userID)
		if err != nil {
			_ = c.Error(err)
			abortWith(c, utils.HTTPStatus(err), utils.CodeOf(err), utils.PublicMessage(err))
			return
		}
		c.Set(CtxRole, role)
		c.Next()
	}
}

// TargetFunc extracts the user id a request acts on.
type TargetFunc func(c *gin.Context) string

// QueryTarget reads the target user id from a query parameter.
func QueryTarget(name string) TargetFunc {
	return func(c *gin.Context) string { return c.Query(name) }
}

// SelfTarget marks endpoints that always act on the caller.
func SelfTarget(c *gin.Context) string { return c.GetString(CtxUserID) }

// Authorize asks the policy whether the caller's role may run action.
// When target is nil the request is never considered self-scoped.
func Authorize(az authz.Authorizer, log *logrus.Logger, action authz.Action, target TargetFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(CtxUserID)
		role, _ := c.Get(CtxRole)
		r, _ := role.(models.Role)

		req := authz.Request{Role: r, Action: action}
		if target != nil {
			t := target(c)
			req.Self = t != "" && t == userID
		}

		ok, err := az.Allow(c.Request.Context(), req)
		if err != nil {
			log.WithError(err).WithField("action", action).Error("authorization policy failed")
			abortWith(c, http.StatusInternalServerError, utils.CodeInternal, http.StatusText(http.StatusInternalServerError))
			return
		}
		if !ok {
			abortWith(c, http.StatusForbidden, utils.CodeForbidden, "forbidden")
			return
		}
		c.Next()
	}
}
