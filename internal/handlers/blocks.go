package handlers

import (
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"social-service/internal/apperrors"
	"social-service/internal/metrics"
	"social-service/internal/services"
	"social-service/internal/telemetry"
)

type BlockHandler struct {
	blocks *services.BlockService
	audit  *telemetry.AuditEmitter
}

func NewBlockHandler(blocks *services.BlockService, audit *telemetry.AuditEmitter) *BlockHandler {
	return &BlockHandler{blocks: blocks, audit: audit}
}

type blockBody struct {
	BlockedID int64 `json:"blocked_id" binding:"required"`
}

func (h *BlockHandler) Block(c *gin.Context) {
	requestID := requestIDFromHeader(c)
	userID := userIDFromContext(c)
	if userID == nil {
		metrics.IncBlock(metrics.StatusFailed)
		c.JSON(nethttp.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body blockBody
	if err := c.ShouldBindJSON(&body); err != nil {
		metrics.IncBlock(metrics.StatusFailed)
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	entry, err := h.blocks.Block(ctx, *userID, body.BlockedID)
	if err != nil {
		h.emitAudit(c, "ERROR", apperrors.MessageOf(err), requestID, userID)
		metrics.IncBlock(metrics.StatusFailed)
		respondError(c, err)
		return
	}

	h.emitAudit(c, "INFO", "User '"+strconv.FormatInt(body.BlockedID, 10)+"' blocked", requestID, userID)
	metrics.IncBlock(metrics.StatusSuccess)
	c.JSON(nethttp.StatusCreated, entry)
}

func (h *BlockHandler) Unblock(c *gin.Context) {
	idStr := c.Param("id")
	blockedID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		metrics.IncUnblock(metrics.StatusFailed)
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	requestID := requestIDFromHeader(c)
	userID := userIDFromContext(c)
	if userID == nil {
		metrics.IncUnblock(metrics.StatusFailed)
		c.JSON(nethttp.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	if err := h.blocks.Unblock(ctx, *userID, blockedID); err != nil {
		h.emitAudit(c, "ERROR", apperrors.MessageOf(err), requestID, userID)
		metrics.IncUnblock(metrics.StatusFailed)
		respondError(c, err)
		return
	}

	h.emitAudit(c, "INFO", "User '"+idStr+"' unblocked", requestID, userID)
	metrics.IncUnblock(metrics.StatusSuccess)
	c.JSON(nethttp.StatusOK, gin.H{"status": "unblocked"})
}

func (h *BlockHandler) emitAudit(c *gin.Context, level, text, requestID string, userID *int64) {
	if h.audit == nil {
		return
	}
	h.audit.EmitAudit(c.Request.Context(), level, text, requestID, userID)
}
