package handlers

import (
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"social-service/internal/services"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Search(c *gin.Context) {
	userID := userIDFromContext(c)
	if userID == nil {
		c.JSON(nethttp.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	query := c.Query("search")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	results, err := h.users.SearchUsers(c.Request.Context(), query, *userID, page, pageSize)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "failed to search users"})
		return
	}

	c.JSON(nethttp.StatusOK, gin.H{
		"page":      page,
		"page_size": pageSize,
		"results":   results,
	})
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.users.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(nethttp.StatusOK, user)
}
