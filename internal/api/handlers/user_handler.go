package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecolemusique/backoffice/internal/models"
	"github.com/ecolemusique/backoffice/internal/services"
)

type UserHandler struct {
	svc services.UserService
}

func NewUserHandler(svc services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type CreateUserRequest struct {
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Role      models.Role `json:"role"`
}

type CreateUserResponse struct {
	Success bool             `json:"success"`
	User    *models.Identity `json:"user"`
}

func (h *UserHandler) Create(c *gin.Context) {
	actor, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateUserRequest
	if !bindJSON(c, "UserHandler.Create", &req) {
		return
	}

	ident, err := h.svc.Create(c.Request.Context(), actor, services.CreateUserInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, CreateUserResponse{Success: true, User: ident})
}

type UpdateUserRequest struct {
	ID        string      `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Role      models.Role `json:"role"`
	Password  string      `json:"password,omitempty"`
}

func (h *UserHandler) Update(c *gin.Context) {
	actor, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !bindJSON(c, "UserHandler.Update", &req) {
		return
	}

	err := h.svc.Update(c.Request.Context(), actor, services.UpdateUserInput{
		ID:        req.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Password:  req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Utilisateur mis à jour"})
}

type DeleteUserRequest struct {
	UserID string `json:"userId"`
}

func (h *UserHandler) Delete(c *gin.Context) {
	actor, ok := requireUserID(c)
	if !ok {
		return
	}

	var req DeleteUserRequest
	if !bindJSON(c, "UserHandler.Delete", &req) {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), actor, req.UserID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Utilisateur supprimé avec succès"})
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
