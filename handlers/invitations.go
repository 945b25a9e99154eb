package handlers

import (
	"net/http"

	"wizspeek/models"

	"github.com/gin-gonic/gin"
)

func CreateInvitation(c *gin.Context) {
	inviterID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		RelationshipType models.RelationshipType `json:"relationshipType"`
	}
	// empty body means a basic invitation
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	inv, err := contactService.CreateInvitation(ctx, inviterID, req.RelationshipType)
	if err != nil {
		respondError(c, "CreateInvitation", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"code":             inv.Code,
		"relationshipType": inv.RelationshipType,
		"expiresAt":        inv.ExpiresAt,
	})
}

func AcceptInvitation(c *gin.Context) {
	accepterID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	inv, err := contactService.AcceptInvitation(ctx, c.Param("code"), accepterID)
	if err != nil {
		respondError(c, "AcceptInvitation", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Invitation accepted",
		"inviterId": inv.InviterID.Hex(),
	})
}
