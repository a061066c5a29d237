package handler

import (
	"context"

	"github.com/dtroode/expense-auth/internal/api/grpc/authapi"
	"github.com/dtroode/expense-auth/internal/birthdate"
	"github.com/dtroode/expense-auth/internal/logger"
	"github.com/dtroode/expense-auth/internal/model"
)

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

// Auth handles the public gRPC endpoints for authentication and recovery.
type Auth struct {
	authapi.UnimplementedAuthServer
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

// Signup registers a new account and returns an access token.
func (h *Auth) Signup(ctx context.Context, req *authapi.SignupRequest) (*authapi.AuthResponse, error) {
	h.logger.Debug("Auth handler: processing signup request", "email", req.Email)

	result, err := h.credentialService.Signup(ctx, model.SignupParams{
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
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: signup completed", "user_id", result.User.ID)

	return toAuthResponse(result), nil
}

// Login verifies credentials and returns an access token.
func (h *Auth) Login(ctx context.Context, req *authapi.LoginRequest) (*authapi.AuthResponse, error) {
	h.logger.Debug("Auth handler: processing login request", "email", req.Email)

	result, err := h.credentialService.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"email", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: login completed", "user_id", result.User.ID)

	return toAuthResponse(result), nil
}

// RequestRecovery asks for a recovery code to be sent.
func (h *Auth) RequestRecovery(ctx context.Context, req *authapi.RequestRecoveryRequest) (*authapi.AckResponse, error) {
	h.logger.Debug("Auth handler: processing recovery request", "email", req.Email)

	ack, err := h.recoveryService.RequestRecovery(ctx, req.Email, req.BirthDate)
	if err != nil {
		h.logger.Error("Auth handler: recovery request failed",
			"email", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	return toAckResponse(ack), nil
}

// ResetPassword redeems a recovery code.
func (h *Auth) ResetPassword(ctx context.Context, req *authapi.ResetPasswordRequest) (*authapi.AckResponse, error) {
	h.logger.Debug("Auth handler: processing password reset", "email", req.Email)

	ack, err := h.recoveryService.ResetPassword(ctx, req.Email, req.Code, req.NewPassword)
	if err != nil {
		h.logger.Error("Auth handler: password reset failed",
			"email", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: password reset completed", "email", req.Email)

	return toAckResponse(ack), nil
}

func toAuthResponse(result model.AuthResult) *authapi.AuthResponse {
	return &authapi.AuthResponse{
		User:        toUser(result.User),
		AccessToken: result.AccessToken.Token,
		ExpiresAt:   result.AccessToken.ExpiresAt,
	}
}

func toAckResponse(ack model.Ack) *authapi.AckResponse {
	return &authapi.AckResponse{Success: ack.Success, Message: ack.Message}
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
