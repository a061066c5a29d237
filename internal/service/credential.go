package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dtroode/expense-auth/internal/apperr"
	"github.com/dtroode/expense-auth/internal/birthdate"
	"github.com/dtroode/expense-auth/internal/logger"
	"github.com/dtroode/expense-auth/internal/model"
)

// dummyPasswordHash is verified against when the email is unknown so that
// login takes as long as it does for a wrong password.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=3,p=2$ZXhwZW5zZS1kdW1teS1zbA$AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8"

// Credential creates accounts and authenticates users.
type Credential struct {
	users    model.UserStore
	hasher   model.PasswordHasher
	tokens   *TokenService
	clock    model.Clock
	validate *validator.Validate
	logger   *logger.Logger
}

func NewCredential(
	users model.UserStore,
	hasher model.PasswordHasher,
	tokens *TokenService,
	clock model.Clock,
	logger *logger.Logger,
) *Credential {
	if clock == nil {
		clock = model.SystemClock
	}
	return &Credential{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		clock:    clock,
		validate: newValidator(),
		logger:   logger,
	}
}

func (c *Credential) Signup(ctx context.Context, params model.SignupParams) (model.AuthResult, error) {
	params.Email = normalizeEmail(params.Email)
	params.FirstName = strings.TrimSpace(params.FirstName)
	params.LastName = strings.TrimSpace(params.LastName)

	c.logger.Debug("Credential service: starting signup", "email", params.Email)

	if err := c.validate.StructCtx(ctx, params); err != nil {
		return model.AuthResult{}, validationError(err)
	}
	if params.Password != params.ConfirmPassword {
		return model.AuthResult{}, apperr.Validation("passwords do not match")
	}
	if err := checkPasswordPolicy(params.Password); err != nil {
		return model.AuthResult{}, err
	}

	birth, err := birthdate.Parse(params.BirthDate)
	if err != nil {
		return model.AuthResult{}, apperr.Validation("birth date is invalid, use DD/MM/YYYY, DD-MM-YYYY or YYYY-MM-DD")
	}
	now := c.clock.Now()
	if birth.After(now) {
		return model.AuthResult{}, apperr.Validation("birth date cannot be in the future")
	}

	_, err = c.users.GetByEmail(ctx, params.Email)
	if err == nil {
		c.logger.Info("Credential service: email already registered", "email", params.Email)
		return model.AuthResult{}, apperr.Conflict("an account with this email already exists")
	}
	if !errors.Is(err, model.ErrNotFound) {
		c.logger.Error("Credential service: failed to get user by email",
			"email", params.Email,
			"error", err.Error())
		return model.AuthResult{}, apperr.Internal(err)
	}

	passwordHash, err := c.hasher.Hash(ctx, params.Password)
	if err != nil {
		c.logger.Error("Credential service: failed to hash password",
			"email", params.Email,
			"error", err.Error())
		return model.AuthResult{}, apperr.Internal(err)
	}

	user, err := c.users.Create(ctx, model.User{
		Email:        params.Email,
		PasswordHash: passwordHash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		BirthDate:    birth.Time(),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, model.ErrAlreadyExists) {
		c.logger.Info("Credential service: concurrent signup lost uniqueness race", "email", params.Email)
		return model.AuthResult{}, apperr.Conflict("an account with this email already exists")
	}
	if err != nil {
		c.logger.Error("Credential service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.AuthResult{}, apperr.Internal(err)
	}
	user.PasswordHash = ""

	access, err := c.tokens.Issue(ctx, user)
	if err != nil {
		return model.AuthResult{}, apperr.Internal(err)
	}

	c.logger.Info("Credential service: user signed up",
		"email", user.Email,
		"user_id", user.ID)

	return model.AuthResult{User: user, AccessToken: access}, nil
}

func (c *Credential) Login(ctx context.Context, email, password string) (model.AuthResult, error) {
	email = normalizeEmail(email)

	user, err := c.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		c.hasher.Verify(ctx, dummyPasswordHash, password)
		c.logger.Info("Credential service: login failed", "email", email, "reason", "unknown email")
		return model.AuthResult{}, apperr.Authentication()
	}
	if err != nil {
		c.logger.Error("Credential service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.AuthResult{}, apperr.Internal(err)
	}

	if !c.hasher.Verify(ctx, user.PasswordHash, password) {
		c.logger.Info("Credential service: login failed", "email", email, "reason", "password mismatch")
		return model.AuthResult{}, apperr.Authentication()
	}
	user.PasswordHash = ""

	access, err := c.tokens.Issue(ctx, user)
	if err != nil {
		return model.AuthResult{}, apperr.Internal(err)
	}

	c.logger.Info("Credential service: user logged in", "user_id", user.ID)

	return model.AuthResult{User: user, AccessToken: access}, nil
}

func (c *Credential) Profile(ctx context.Context, userID int64) (model.User, error) {
	user, err := c.users.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apperr.NotFound("user not found")
	}
	if err != nil {
		c.logger.Error("Credential service: failed to get user by id",
			"user_id", userID,
			"error", err.Error())
		return model.User{}, apperr.Internal(err)
	}
	user.PasswordHash = ""

	return user, nil
}
