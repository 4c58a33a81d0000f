package api

import (
	"github.com/ericogr/fight-tracker/internal/service"
)

// Handler groups the fight and inventory HTTP handlers.
type Handler struct {
	fights    *service.FightService
	inventory *service.InventoryService
}

// NewHandler creates a Handler over the given services.
func NewHandler(fights *service.FightService, inventory *service.InventoryService) *Handler {
	return &Handler{fights: fights, inventory: inventory}
}
