package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/fight-tracker/internal/constants"
	"github.com/ericogr/fight-tracker/internal/service"
	"github.com/ericogr/fight-tracker/internal/tracker"
)

type attackerRequest struct {
	AttackerID *string `json:"attacker_id"`
}

type deathSaveRequest struct {
	Role  string `json:"role" binding:"required"`
	Kind  string `json:"kind" binding:"required"`
	Index *int   `json:"index" binding:"required"`
}

type historyRequest struct {
	Index *int `json:"index" binding:"required"`
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest, constants.JSONKeyDetails: err.Error()})
}

func (h *Handler) AddRow(c *gin.Context) {
	fs, ok := h.session(c)
	if !ok {
		return
	}
	var row tracker.Row
	if err := c.ShouldBindJSON(&row); err != nil {
		badRequest(c, err)
		return
	}
	added, view, err := fs.AddRow(c.Request.Context(), row)
	if err != nil {
		writeError(c, err, constants.ErrFailedSaveFight, nilIfEmpty(view))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"row": added, "fight": view})
}

func (h *Handler) UpdateRow(c *gin.Context) {
	fs, ok := h.session(c)
	if !ok {
		return
	}
	var row tracker.Row
	if err := c.ShouldBindJSON(&row); err != nil {
		badRequest(c, err)
		return
	}
	view, err := fs.UpdateRow(c.Request.Context(), c.Param("rowID"), row)
	writeMutationOrError(c, view, err)
}

func (h *Handler) DeleteRow(c *gin.Context) {
	fs, ok := h.session(c)
	if !ok {
		return
	}
	view, err := fs.DeleteRow(c.Request.Context(), c.Param("rowID"))
	writeMutationOrError(c, view, err)
}

// ResetRows clears the combatants and death saves of a fight.
func (h *Handler) ResetRows(c *gin.Context) {
	fs, ok := h.session(c)
	if !ok {
		return
	}
	view, err := fs.ResetRows(c.Request.Context())
	writeMutationOrError(c, view, err)
}

func (h *Handler) SetAttacker(c *gin.Context) {
	fs, ok := h.session(c)
	if !ok {
		return
	}
	var req attackerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, err := fs.SetAttacker(c.Request.Context(), req.AttackerID)
	writeMutationOrError(c, view, err)
}

// ApplyAttack resolves one attack. An attack that does not meet the
// preconditions is answered with applied=false and changes nothing.
func (h *Handler) ApplyAttack(c *gin.Context) {
	fs, ok := h.session(c)
	if !ok {
		return
	}
	var req service.AttackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, applied, err := fs.ApplyAttack(c.Request.Context(), req)
	if err != nil {
		writeError(c, err, constants.ErrFailedSaveFight, nilIfEmpty(view))
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": applied, "fight": view})
}

func (h *Handler) ToggleDeathSave(c *gin.Context) {
	fs, ok := h.session(c)
	if !ok {
		return
	}
	var req deathSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, err := fs.ToggleDeathSave(c.Request.Context(), req.Role, req.Kind, *req.Index)
	writeMutationOrError(c, view, err)
}

// GetLogEntry returns the snapshot recorded by one log entry.
func (h *Handler) GetLogEntry(c *gin.Context) {
	fs, ok := h.session(c)
	if !ok {
		return
	}
	k, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidLogIndex})
		return
	}
	snap, err := fs.LogEntry(k)
	if err != nil {
		writeError(c, err, constants.ErrFailedFetchFight, nil)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) EnterHistory(c *gin.Context) {
	fs, ok := h.session(c)
	if !ok {
		return
	}
	var req historyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, err := fs.ViewHistory(*req.Index)
	writeMutationOrError(c, view, err)
}

func (h *Handler) LeaveHistory(c *gin.Context) {
	fs, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, fs.ReturnToLive())
}

// Retry resends the last fight state whose write failed.
func (h *Handler) Retry(c *gin.Context) {
	fs, ok := h.session(c)
	if !ok {
		return
	}
	view, err := fs.Retry(c.Request.Context())
	writeMutationOrError(c, view, err)
}

func writeMutationOrError(c *gin.Context, view service.FightView, err error) {
	if err != nil {
		writeError(c, err, constants.ErrFailedSaveFight, nilIfEmpty(view))
		return
	}
	c.JSON(http.StatusOK, view)
}

// nilIfEmpty drops the zero view returned alongside validation errors.
func nilIfEmpty(view service.FightView) *service.FightView {
	if view.ID == 0 {
		return nil
	}
	return &view
}
