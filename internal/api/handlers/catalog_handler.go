package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/ecolemusique/backoffice/internal/services"
	"github.com/ecolemusique/backoffice/internal/utils"
)

type CatalogHandler struct {
	instruments services.InstrumentService
	orchestras  services.OrchestraService
}

func NewCatalogHandler(instruments services.InstrumentService, orchestras services.OrchestraService) *CatalogHandler {
	return &CatalogHandler{instruments: instruments, orchestras: orchestras}
}

func (h *CatalogHandler) ListInstruments(c *gin.Context) {
	out, err := h.instruments.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) ListOrchestras(c *gin.Context) {
	out, err := h.orchestras.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type ManageInstrumentRequest struct {
	Action string `json:"action"`
	ID     string `json:"id"`
	Name   string `json:"name"`
}

func (h *CatalogHandler) ManageInstruments(c *gin.Context) {
	actor, ok := requireUserID(c)
	if !ok {
		return
	}

	var req ManageInstrumentRequest
	if !bindCommand(c, "CatalogHandler.ManageInstruments", &req) {
		return
	}

	cmd, err := services.ParseInstrumentCommand(req.Action, req.ID, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	res, err := h.instruments.Execute(c.Request.Context(), actor, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type ManageOrchestraRequest struct {
	Action      string  `json:"action"`
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (h *CatalogHandler) ManageOrchestras(c *gin.Context) {
	actor, ok := requireUserID(c)
	if !ok {
		return
	}

	var req ManageOrchestraRequest
	if !bindCommand(c, "CatalogHandler.ManageOrchestras", &req) {
		return
	}

	cmd, err := services.ParseOrchestraCommand(req.Action, req.ID, req.Name, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	res, err := h.orchestras.Execute(c.Request.Context(), actor, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// bindCommand reads the action before the typed payload, so an unknown
// action is reported as such whatever the other fields hold.
func bindCommand(c *gin.Context, op string, dst any) bool {
	var head struct {
		Action any `json:"action"`
	}
	if err := c.ShouldBindBodyWith(&head, binding.JSON); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return false
	}
	if action, _ := head.Action.(string); !services.SupportedAction(action) {
		writeError(c, services.UnsupportedAction(op))
		return false
	}
	if err := c.ShouldBindBodyWith(dst, binding.JSON); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return false
	}
	return true
}
