package handlers

import (
	"net/http"

	"wizspeek/models"
	"wizspeek/service"

	"github.com/gin-gonic/gin"
)

func SetNameDisplayDefaults(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		DefaultNameDisplay models.NameDisplayType `json:"defaultNameDisplay"`
		DefaultPseudonym   string                 `json:"defaultPseudonym" binding:"max=50"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := profileService.SetNameDisplayDefaults(ctx, userID, req.DefaultNameDisplay, req.DefaultPseudonym)
	if err != nil {
		respondError(c, "SetNameDisplayDefaults", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"defaultNameDisplay": profile.DefaultNameDisplay,
		"defaultPseudonym":   profile.DefaultPseudonym,
	})
}

func SetContactOverride(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	contactID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	var req service.OverrideUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	override, err := profileService.SetContactOverride(ctx, ownerID, contactID, req)
	if err != nil {
		respondError(c, "SetContactOverride", err)
		return
	}
	c.JSON(http.StatusOK, override)
}

func SetFieldVisibility(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	contactID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Action service.FieldAction `json:"action" binding:"required,oneof=hide show default"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	override, err := profileService.SetFieldVisibility(ctx, ownerID, contactID, c.Param("field"), req.Action)
	if err != nil {
		respondError(c, "SetFieldVisibility", err)
		return
	}
	c.JSON(http.StatusOK, override)
}

// PreviewContactView shows the caller what one contact currently sees and why.
func PreviewContactView(c *gin.Context) {
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

	view, reasons, err := profileService.PreviewAsContact(ctx, ownerID, contactID)
	if err != nil {
		respondError(c, "PreviewContactView", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": view, "reasons": reasons})
}
