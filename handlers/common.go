package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"wizspeek/push"
	"wizspeek/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const requestTimeout = 10 * time.Second

var (
	authService    *service.AuthService
	accountService *service.AccountService
	profileService *service.ProfileService
	contactService *service.ContactService
	pushSender     *push.Sender
)

type Services struct {
	Auth     *service.AuthService
	Account  *service.AccountService
	Profile  *service.ProfileService
	Contacts *service.ContactService
	Push     *push.Sender
}

// SetServices wires the handlers to their services. Call before serving.
func SetServices(s Services) {
	authService = s.Auth
	accountService = s.Account
	profileService = s.Profile
	contactService = s.Contacts
	pushSender = s.Push
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// currentUserID reads the id set by JWTAuthMiddleware, answering 401 if unusable.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return userID, true
}

func paramObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, tag string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrContactNotFound),
		errors.Is(err, service.ErrInvitationNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyContact),
		errors.Is(err, service.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrInvitationExpired):
		status = http.StatusGone
	case errors.Is(err, service.ErrSelfContact),
		errors.Is(err, service.ErrInvalidField),
		errors.Is(err, service.ErrInvalidRelationshipType),
		errors.Is(err, service.ErrInvalidProfile):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		log.Printf("[%s] %v", tag, err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
