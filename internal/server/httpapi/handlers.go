package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token  string `json:"token"`
	AuthID string `json:"authId"`
}

func (s *Server) handleAlive(c *gin.Context) {
	c.String(http.StatusOK, "Server is alive!")
}

func (s *Server) handleSignIn(c *gin.Context) {
	ctx := c.Request.Context()
	log := logging.FromContext(ctx, s.logger)

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn(ctx, "Malformed request body", "operation", "signin", "error", err.Error())
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	log.Debug(ctx, "Signin attempt started", "operation", "signin", "email", req.Email)

	res, err := s.auth.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		s.respondAuthError(c, "signin", req.Email, err)
		return
	}

	log.Info(ctx, "Successful authentication", "operation", "signin", "auth_id", res.AuthID)
	c.JSON(http.StatusOK, authResponse{Token: res.Token, AuthID: res.AuthID})
}

func (s *Server) handleSignUp(c *gin.Context) {
	ctx := c.Request.Context()
	log := logging.FromContext(ctx, s.logger)

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn(ctx, "Malformed request body", "operation", "signup", "error", err.Error())
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	log.Debug(ctx, "Signup attempt started", "operation", "signup", "email", req.Email)

	res, err := s.auth.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		s.respondAuthError(c, "signup", req.Email, err)
		return
	}

	log.Info(ctx, "New credential created successfully", "operation", "signup", "auth_id", res.AuthID)
	c.JSON(http.StatusOK, authResponse{Token: res.Token, AuthID: res.AuthID})
}

// respondAuthError is the single translation boundary from service outcomes
// to HTTP status codes. Business outcomes are surfaced verbatim; config and
// internal failures become an opaque 500, with the detail kept in the logs.
func (s *Server) respondAuthError(c *gin.Context, operation, email string, err error) {
	ctx := c.Request.Context()
	log := logging.FromContext(ctx, s.logger)

	switch {
	case errors.Is(err, common.ErrorValidation):
		log.Warn(ctx, "Invalid credentials format", "operation", operation, "email", email)
		c.String(http.StatusBadRequest, "Invalid email or password format")
	case errors.Is(err, common.ErrorNotFound):
		log.Warn(ctx, "Auth record not found", "operation", operation, "email", email)
		c.String(http.StatusNotFound, "Auth record not found")
	case errors.Is(err, common.ErrorInvalidPassword):
		log.Warn(ctx, "Invalid password provided", "operation", operation, "email", email)
		c.String(http.StatusForbidden, "Invalid password")
	case errors.Is(err, common.ErrorAlreadyExists):
		log.Warn(ctx, "Auth already exists", "operation", operation, "email", email)
		c.String(http.StatusConflict, "Auth already exists")
	case errors.Is(err, common.ErrorMissingSecret):
		log.Error(ctx, "JWT secret not configured", "operation", operation)
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Internal server error")
	default:
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
	}
}

func (s *Server) handleJWTCheck(c *gin.Context) {
	v, ok := c.Get(claimsKey)
	if !ok {
		// the gate always sets claims; reaching here means a wiring bug
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "message": "Missing token claims"})
		return
	}
	claims := v.(*auth.Claims)

	// recompute the remaining lifetime here: time has passed since the
	// gate verified the signature
	remaining := auth.ExpiresIn(claims, time.Now())
	if remaining <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{
			"valid":   false,
			"message": "Token has expired",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":     true,
		"expiresIn": int64(remaining.Seconds()),
	})
}
