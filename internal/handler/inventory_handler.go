package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NicolasGomez268/PuntoTecno/internal/dto"
	"github.com/NicolasGomez268/PuntoTecno/internal/service"
)

type InventoryHandler struct {
	inventory service.InventoryService
}

func NewInventoryHandler(inventory service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// Movements lists the stock ledger, filterable by product, type and date.
func (h *InventoryHandler) Movements(c *gin.Context) {
	var filter dto.MovementFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.inventory.ListMovements(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
