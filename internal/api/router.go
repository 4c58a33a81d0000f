package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ericogr/fight-tracker/internal/constants"
)

// NewRouter registers every route under the API prefix.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteHealth, Health)
		apiRoutes.GET(constants.RouteVersion, Version)

		apiRoutes.GET(constants.RouteFights, h.ListFights)
		apiRoutes.POST(constants.RouteFights, h.CreateFight)
		apiRoutes.POST(constants.RouteMockFight, h.CreateMockFight)
		apiRoutes.GET(constants.RouteFightByID, h.GetFight)
		apiRoutes.DELETE(constants.RouteFightByID, h.DeleteFight)
		apiRoutes.PUT(constants.RouteFightName, h.RenameFight)

		apiRoutes.POST(constants.RouteFightRows, h.AddRow)
		apiRoutes.PUT(constants.RouteFightRowByID, h.UpdateRow)
		apiRoutes.DELETE(constants.RouteFightRowByID, h.DeleteRow)
		apiRoutes.POST(constants.RouteFightReset, h.ResetRows)
		apiRoutes.PUT(constants.RouteFightAttacker, h.SetAttacker)
		apiRoutes.POST(constants.RouteFightAttack, h.ApplyAttack)
		apiRoutes.POST(constants.RouteFightDeathSaves, h.ToggleDeathSave)

		apiRoutes.GET(constants.RouteFightLogEntry, h.GetLogEntry)
		apiRoutes.POST(constants.RouteFightHistory, h.EnterHistory)
		apiRoutes.DELETE(constants.RouteFightHistory, h.LeaveHistory)
		apiRoutes.POST(constants.RouteFightRetry, h.Retry)

		apiRoutes.GET(constants.RouteInventory, h.ListInventory)
		apiRoutes.POST(constants.RouteInventory, h.CreateInventoryItem)
		apiRoutes.PUT(constants.RouteInventoryByID, h.UpdateInventoryItem)
		apiRoutes.DELETE(constants.RouteInventoryByID, h.DeleteInventoryItem)
	}
	return router
}
