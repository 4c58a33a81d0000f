package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/fight-tracker/internal/constants"
	"github.com/ericogr/fight-tracker/internal/service"
)

type fightNameRequest struct {
	Name string `json:"name"`
}

// ListFights returns every fight, newest first.
func (h *Handler) ListFights(c *gin.Context) {
	fights, err := h.fights.List(c.Request.Context())
	if err != nil {
		writeError(c, err, constants.ErrFailedFetchFights, nil)
		return
	}
	c.JSON(http.StatusOK, fights)
}

// CreateFight creates an empty fight. The body is optional.
func (h *Handler) CreateFight(c *gin.Context) {
	var req fightNameRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest, constants.JSONKeyDetails: err.Error()})
		return
	}
	fs, err := h.fights.Create(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err, constants.ErrFailedCreateFight, nil)
		return
	}
	c.JSON(http.StatusCreated, fs.View())
}

// CreateMockFight creates a fight pre-filled with random combatants.
func (h *Handler) CreateMockFight(c *gin.Context) {
	fs, err := h.fights.CreateMockFight(c.Request.Context())
	if err != nil {
		writeError(c, err, constants.ErrFailedCreateFight, nil)
		return
	}
	c.JSON(http.StatusCreated, fs.View())
}

// GetFight returns the live view of a fight.
func (h *Handler) GetFight(c *gin.Context) {
	fs, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, fs.View())
}

func (h *Handler) RenameFight(c *gin.Context) {
	id, ok := parseIDParam(c, "fightID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidFightID})
		return
	}
	var req fightNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest, constants.JSONKeyDetails: err.Error()})
		return
	}
	f, err := h.fights.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		writeError(c, err, constants.ErrFailedUpdateFight, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": f.ID, "name": f.Name, "updated_at": f.UpdatedAt})
}

func (h *Handler) DeleteFight(c *gin.Context) {
	id, ok := parseIDParam(c, "fightID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidFightID})
		return
	}
	if err := h.fights.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err, constants.ErrFailedDeleteFight, nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// session resolves the :fightID parameter to a live session, writing the
// error response itself when it cannot.
func (h *Handler) session(c *gin.Context) (*service.FightSession, bool) {
	id, ok := parseIDParam(c, "fightID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidFightID})
		return nil, false
	}
	fs, err := h.fights.Session(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, constants.ErrFailedFetchFight, nil)
		return nil, false
	}
	return fs, true
}
