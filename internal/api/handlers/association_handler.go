package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecolemusique/backoffice/internal/services"
)

type AssociationHandler struct {
	svc services.AssociationService
}

func NewAssociationHandler(svc services.AssociationService) *AssociationHandler {
	return &AssociationHandler{svc: svc}
}

func (h *AssociationHandler) UserInstruments(c *gin.Context) {
	out, err := h.svc.Instruments(c.Request.Context(), c.Query("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AssociationHandler) UserOrchestras(c *gin.Context) {
	out, err := h.svc.Orchestras(c.Request.Context(), c.Query("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type SetUserInstrumentsRequest struct {
	UserID        string   `json:"userId"`
	InstrumentIDs []string `json:"instrumentIds"`
}

func (h *AssociationHandler) SetUserInstruments(c *gin.Context) {
	actor, ok := requireUserID(c)
	if !ok {
		return
	}

	var req SetUserInstrumentsRequest
	if !bindJSON(c, "AssociationHandler.SetUserInstruments", &req) {
		return
	}

	if err := h.svc.SetInstruments(c.Request.Context(), actor, req.UserID, req.InstrumentIDs); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Instruments mis à jour avec succès"})
}

type SetUserOrchestrasRequest struct {
	UserID       string   `json:"userId"`
	OrchestraIDs []string `json:"orchestraIds"`
}

func (h *AssociationHandler) SetUserOrchestras(c *gin.Context) {
	actor, ok := requireUserID(c)
	if !ok {
		return
	}

	var req SetUserOrchestrasRequest
	if !bindJSON(c, "AssociationHandler.SetUserOrchestras", &req) {
		return
	}

	if err := h.svc.SetOrchestras(c.Request.Context(), actor, req.UserID, req.OrchestraIDs); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Orchestres mis à jour avec succès"})
}
