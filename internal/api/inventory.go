package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/fight-tracker/internal/constants"
	"github.com/ericogr/fight-tracker/internal/tracker"
)

func (h *Handler) ListInventory(c *gin.Context) {
	items, err := h.inventory.List(c.Request.Context())
	if err != nil {
		writeError(c, err, constants.ErrFailedFetchItems, nil)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateInventoryItem(c *gin.Context) {
	var in tracker.InventoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.inventory.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err, constants.ErrFailedCreateItem, nil)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateInventoryItem(c *gin.Context) {
	id, ok := parseIDParam(c, "itemID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidItemID})
		return
	}
	var in tracker.InventoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.inventory.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err, constants.ErrFailedUpdateItem, nil)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteInventoryItem(c *gin.Context) {
	id, ok := parseIDParam(c, "itemID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidItemID})
		return
	}
	if err := h.inventory.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err, constants.ErrFailedDeleteItem, nil)
		return
	}
	c.Status(http.StatusNoContent)
}
