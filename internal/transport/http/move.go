package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/bot/internal/domain"
	"github.com/iamasit07/4-in-a-row/bot/internal/repository/postgres"
	"github.com/iamasit07/4-in-a-row/bot/internal/service/decision"
)

// StatsSource reports the recorded results; the postgres MoveRepo is one.
type StatsSource interface {
	GetStats(ctx context.Context) (*postgres.Stats, error)
}

type MoveHandler struct {
	Service *decision.Service
	Stats   StatsSource // Optional, can be nil
}

func NewMoveHandler(svc *decision.Service, stats StatsSource) *MoveHandler {
	return &MoveHandler{Service: svc, Stats: stats}
}

// Decide answers POST /api/move
func (h *MoveHandler) Decide(c *gin.Context) {
	var req decision.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	d, err := h.Service.Decide(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// Finish answers POST /api/games/finish
func (h *MoveHandler) Finish(c *gin.Context) {
	var res decision.Result
	if err := c.ShouldBindJSON(&res); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.Service.RecordResult(c.Request.Context(), &res); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"game_id": res.GameID, "won": res.Won()})
}

// GetStats answers GET /api/stats
func (h *MoveHandler) GetStats(c *gin.Context) {
	if h.Stats == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage not configured"})
		return
	}
	stats, err := h.Stats.GetStats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *MoveHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "depth": h.Service.Engine().Depth()})
}

func writeError(c *gin.Context, err error) {
	switch {
	case decision.IsClientError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNoValidMove):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Error().Str("component", "http").Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
