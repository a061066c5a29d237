package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/expense-auth/internal/api/grpc/authapi"
	"github.com/dtroode/expense-auth/internal/apperr"
	"github.com/dtroode/expense-auth/internal/birthdate"
	"github.com/dtroode/expense-auth/internal/logger"
	"github.com/dtroode/expense-auth/internal/model"
)

const msgInvalidBody = "request body must be a JSON object"

// CredentialService defines signup, login and profile operations.
type CredentialService interface {
	Signup(ctx context.Context, params model.SignupParams) (model.AuthResult, error)
	Login(ctx context.Context, email, password string) (model.AuthResult, error)
	Profile(ctx context.Context, userID int64) (model.User, error)
}

// RecoveryService defines password recovery operations.
type RecoveryService interface {
	RequestRecovery(ctx context.Context, email, birthDate string) (model.Ack, error)
	ResetPassword(ctx context.Context, email, code, newPassword string) (model.Ack, error)
}

// Auth serves the public /auth endpoints.
// Request and response bodies share their JSON shape with the gRPC API.
type Auth struct {
	credentialService CredentialService
	recoveryService   RecoveryService
	logger            *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(credentialService CredentialService, recoveryService RecoveryService, logger *logger.Logger) *Auth {
	return &Auth{
		credentialService: credentialService,
		recoveryService:   recoveryService,
		logger:            logger,
	}
}

// Signup handles POST /auth/signup.
func (h *Auth) Signup(c *gin.Context) {
	var req authapi.SignupRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.credentialService.Signup(c.Request.Context(), model.SignupParams{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		BirthDate:       req.BirthDate,
	})
	if err != nil {
		h.logger.Error("Auth handler: signup failed",
			"email", req.Email,
			"error", err.Error())
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toAuthResponse(result))
}

// Login handles POST /auth/login.
func (h *Auth) Login(c *gin.Context) {
	var req authapi.LoginRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.credentialService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"email", req.Email,
			"error", err.Error())
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAuthResponse(result))
}

// ForgotPassword handles POST /auth/forgot-password.
func (h *Auth) ForgotPassword(c *gin.Context) {
	var req authapi.RequestRecoveryRequest
	if !h.bind(c, &req) {
		return
	}

	ack, err := h.recoveryService.RequestRecovery(c.Request.Context(), req.Email, req.BirthDate)
	if err != nil {
		h.logger.Error("Auth handler: recovery request failed",
			"email", req.Email,
			"error", err.Error())
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, authapi.AckResponse{Success: ack.Success, Message: ack.Message})
}

// ResetPassword handles POST /auth/reset-password.
func (h *Auth) ResetPassword(c *gin.Context) {
	var req authapi.ResetPasswordRequest
	if !h.bind(c, &req) {
		return
	}

	ack, err := h.recoveryService.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		h.logger.Error("Auth handler: password reset failed",
			"email", req.Email,
			"error", err.Error())
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, authapi.AckResponse{Success: ack.Success, Message: ack.Message})
}

func (h *Auth) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Debug("Auth handler: malformed request body",
			"path", c.FullPath(),
			"error", err.Error())
		respondWithError(c, apperr.Validation(msgInvalidBody))
		return false
	}
	return true
}

func toAuthResponse(result model.AuthResult) authapi.AuthResponse {
	return authapi.AuthResponse{
		User:        toUser(result.User),
		AccessToken: result.AccessToken.Token,
		ExpiresAt:   result.AccessToken.ExpiresAt,
	}
}

func toUser(u model.User) authapi.User {
	return authapi.User{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		BirthDate: birthdate.FromTime(u.BirthDate).String(),
	}
}
