package handlers

import (
	"net/http"

	"wizspeek/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func AddContact(c *gin.Context) {
	var req struct {
		ContactID        string                  `json:"contactId" binding:"required"`
		RelationshipType models.RelationshipType `json:"relationshipType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	contactID, err := primitive.ObjectIDFromHex(req.ContactID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rel, err := contactService.AddContact(ctx, ownerID, contactID, req.RelationshipType)
	if err != nil {
		respondError(c, "AddContact", err)
		return
	}
	c.JSON(http.StatusCreated, rel)
}

func UpdateContact(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	contactID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	var req struct {
		RelationshipType  models.RelationshipType  `json:"relationshipType" binding:"required"`
		ProfileVisibility models.ProfileVisibility `json:"profileVisibility"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rel, err := contactService.UpdateRelationship(ctx, ownerID, contactID, req.RelationshipType, req.ProfileVisibility)
	if err != nil {
		respondError(c, "UpdateContact", err)
		return
	}
	c.JSON(http.StatusOK, rel)
}

func RemoveContact(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	contactID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := contactService.RemoveContact(ctx, ownerID, contactID); err != nil {
		respondError(c, "RemoveContact", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contact removed"})
}

func GetContacts(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	contacts, err := contactService.ListContacts(ctx, ownerID)
	if err != nil {
		respondError(c, "GetContacts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts, "count": len(contacts)})
}
