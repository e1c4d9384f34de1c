package handlers

import (
	"context"
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"social-service/internal/apperrors"
	"social-service/internal/metrics"
	"social-service/internal/models"
	"social-service/internal/services"
	"social-service/internal/telemetry"
)

type FriendHandler struct {
	friends *services.FriendService
	audit   *telemetry.AuditEmitter
}

func NewFriendHandler(friends *services.FriendService, audit *telemetry.AuditEmitter) *FriendHandler {
	return &FriendHandler{friends: friends, audit: audit}
}

type sendRequestBody struct {
	ReceiverID int64 `json:"receiver_id" binding:"required"`
}

func (h *FriendHandler) SendRequest(c *gin.Context) {
	requestID := requestIDFromHeader(c)
	userID := userIDFromContext(c)
	if userID == nil {
		h.emitAudit(c.Request.Context(), "ERROR", "internal error", requestID, nil)
		metrics.IncFriendRequest(metrics.StatusFailed)
		c.JSON(nethttp.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body sendRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.emitAudit(c.Request.Context(), "ERROR", "invalid request payload", requestID, userID)
		metrics.IncFriendRequest(metrics.StatusFailed)
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	req, err := h.friends.SendRequest(ctx, *userID, body.ReceiverID)
	if err != nil {
		h.emitAudit(ctx, "ERROR", apperrors.MessageOf(err), requestID, userID)
		metrics.IncFriendRequest(metrics.StatusFailed)
		respondError(c, err)
		return
	}

	h.emitAudit(ctx, "INFO", "Friend request sent to '"+strconv.FormatInt(body.ReceiverID, 10)+"'", requestID, userID)
	metrics.IncFriendRequest(metrics.StatusSuccess)
	c.JSON(nethttp.StatusCreated, req)
}

func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	h.handleDecision(c, models.StatusAccepted, metrics.IncFriendAccept)
}

func (h *FriendHandler) RejectRequest(c *gin.Context) {
	h.handleDecision(c, models.StatusRejected, metrics.IncFriendReject)
}

func (h *FriendHandler) handleDecision(c *gin.Context, action string, inc func(string)) {
	idStr := c.Param("id")
	reqID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		inc(metrics.StatusFailed)
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	requestID := requestIDFromHeader(c)
	userID := userIDFromContext(c)
	if userID == nil {
		h.emitAudit(c.Request.Context(), "ERROR", "internal error", requestID, nil)
		inc(metrics.StatusFailed)
		c.JSON(nethttp.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	updated, err := h.friends.Transition(ctx, reqID, *userID, action)
	if err != nil {
		h.emitAudit(ctx, "ERROR", apperrors.MessageOf(err), requestID, userID)
		inc(metrics.StatusFailed)
		respondError(c, err)
		return
	}

	h.emitAudit(ctx, "INFO", "Friend request "+updated.Status, requestID, userID)
	inc(metrics.StatusSuccess)
	c.JSON(nethttp.StatusOK, updated)
}

func (h *FriendHandler) ListIncoming(c *gin.Context) {
	userID := userIDFromContext(c)
	if userID == nil {
		c.JSON(nethttp.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	orderBySentAt := c.Query("ordering") == "sent_at"
	requests, err := h.friends.ListPendingRequests(c.Request.Context(), *userID, orderBySentAt)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "failed to load requests"})
		return
	}

	c.JSON(nethttp.StatusOK, requests)
}

func (h *FriendHandler) ListFriends(c *gin.Context) {
	userID := userIDFromContext(c)
	if userID == nil {
		c.JSON(nethttp.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	friends, err := h.friends.ListFriends(c.Request.Context(), *userID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "failed to fetch friends"})
		return
	}

	c.JSON(nethttp.StatusOK, friends)
}

func (h *FriendHandler) emitAudit(ctx context.Context, level, text, requestID string, userID *int64) {
	if h.audit == nil {
		return
	}
	h.audit.EmitAudit(ctx, level, text, requestID, userID)
}
