package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := authService.Signup(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		respondError(c, "Signup", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"token":   res.Token,
		"userId":  res.User.ID.Hex(),
	})
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, "Login", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   res.Token,
		"userId":  res.User.ID.Hex(),
		"message": "Login successful",
	})
}
