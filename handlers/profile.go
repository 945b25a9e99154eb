package handlers

import (
	"net/http"

	"wizspeek/models"
	"wizspeek/service"

	"github.com/gin-gonic/gin"
)

// GetUserProfile returns the target's profile as the caller is allowed to see it.
func GetUserProfile(c *gin.Context) {
	viewerID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	view, err := profileService.GetVisibleProfile(ctx, viewerID, targetID)
	if err != nil {
		respondError(c, "GetUserProfile", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetMyProfile returns the caller's stored profile including privacy settings.
func GetMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := profileService.GetOwnProfile(ctx, userID)
	if err != nil {
		respondError(c, "GetMyProfile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func UpdateMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := profileService.UpdateOwnProfile(ctx, userID, req)
	if err != nil {
		respondError(c, "UpdateMyProfile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PreviewDisplayName renders a name live while the user edits settings.
// Nothing is stored. Without fullName the caller's own name is used.
func PreviewDisplayName(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		FullName        string                 `json:"fullName"`
		NameDisplayType models.NameDisplayType `json:"nameDisplayType"`
		Pseudonym       string                 `json:"pseudonym"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.FullName == "" {
		ctx, cancel := requestContext(c)
		defer cancel()

		user, err := accountService.Get(ctx, userID)
		if err != nil {
			respondError(c, "PreviewDisplayName", err)
			return
		}
		req.FullName = user.Name
	}

	c.JSON(http.StatusOK, gin.H{
		"displayName": profileService.PreviewDisplayName(req.FullName, req.NameDisplayType, req.Pseudonym),
	})
}
