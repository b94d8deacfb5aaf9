package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ecolemusique/backoffice/internal/api/handlers"
	"github.com/ecolemusique/backoffice/internal/api/middleware"
	"github.com/ecolemusique/backoffice/internal/authz"
)

type Deps struct {
	Users        *handlers.UserHandler
	Catalog      *handlers.CatalogHandler
	Associations *handlers.AssociationHandler
	Session      *handlers.SessionHandler

	JWT        middleware.JWTConfig
	Roles      middleware.RoleResolver
	Authorizer authz.Authorizer
	Log        *logrus.Logger
}

// RegisterRoutes mounts the API. Function routes keep the paths the existing
// client calls under /functions/v1.
func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middleware.CORS())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	auth := r.Group("/")
	auth.Use(middleware.JWTAuth(d.JWT), middleware.ResolveRole(d.Roles))

	allow := func(action authz.Action) gin.HandlerFunc {
		return middleware.Authorize(d.Authorizer, d.Log, action, nil)
	}
	allowFor := func(action authz.Action, target middleware.TargetFunc) gin.HandlerFunc {
		return middleware.Authorize(d.Authorizer, d.Log, action, target)
	}

	auth.GET("/session", allowFor(authz.ActionSessionRead, middleware.SelfTarget), d.Session.Get)

	fn := auth.Group("/functions/v1")

	fn.POST("/create-user", allow(authz.ActionUsersCreate), d.Users.Create)
	fn.POST("/update-user", allow(authz.ActionUsersUpdate), d.Users.Update)
	fn.POST("/delete-user", allow(authz.ActionUsersDelete), d.Users.Delete)
	fn.GET("/get-all-users", allow(authz.ActionUsersList), d.Users.List)

	fn.GET("/get-instruments", allow(authz.ActionCatalogRead), d.Catalog.ListInstruments)
	fn.GET("/get-orchestras", allow(authz.ActionCatalogRead), d.Catalog.ListOrchestras)
	fn.POST("/manage-instruments", allow(authz.ActionCatalogWrite), d.Catalog.ManageInstruments)
	fn.POST("/manage-orchestras", allow(authz.ActionCatalogWrite), d.Catalog.ManageOrchestras)

	fn.GET("/get-user-instruments", allowFor(authz.ActionAssociationsRead, middleware.QueryTarget("userId")), d.Associations.UserInstruments)
	fn.GET("/get-user-orchestras", allowFor(authz.ActionAssociationsRead, middleware.QueryTarget("userId")), d.Associations.UserOrchestras)
	fn.POST("/manage-user-instruments", allow(authz.ActionAssociationsWrite), d.Associations.SetUserInstruments)
	fn.POST("/manage-user-orchestras", allow(authz.ActionAssociationsWrite), d.Associations.SetUserOrchestras)
}
