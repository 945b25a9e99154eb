package handlers

import (
	"net/http"

	"wizspeek/service"

	"github.com/gin-gonic/gin"
)

// GetMyAccount returns the caller's identity record.
func GetMyAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := accountService.Get(ctx, userID)
	if err != nil {
		respondError(c, "GetMyAccount", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func UpdateMyAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.AccountUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := accountService.Update(ctx, userID, req)
	if err != nil {
		respondError(c, "UpdateMyAccount", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func UpdateUserStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required,oneof=available busy offline"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := accountService.UpdateStatus(ctx, userID, req.Status); err != nil {
		respondError(c, "UpdateUserStatus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "status": req.Status})
}
