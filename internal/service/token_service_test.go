package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/expense-auth/internal/mocks"
	"github.com/dtroode/expense-auth/internal/model"
	"github.com/dtroode/expense-auth/internal/testutil"
	"github.com/dtroode/expense-auth/internal/token"
)

func TestTokenService_Issue(t *testing.T) {
	ctx := context.Background()
	manager := mocks.NewTokenManager(t)
	want := model.AccessToken{Token: "access", ExpiresAt: time.Unix(1000, 0)}

	manager.On("Issue", model.TokenClaims{UserID: 7, Email: "ann@example.com"}, time.Hour).Return(want, nil).Once()

	svc := NewTokenService(manager, time.Hour, testutil.MakeNoopLogger())

	got, err := svc.Issue(ctx, model.User{ID: 7, Email: "ann@example.com", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTokenService_Issue_DefaultTTL(t *testing.T) {
	manager := mocks.NewTokenManager(t)
	manager.On("Issue", model.TokenClaims{UserID: 1}, token.DefaultTTL).Return(model.AccessToken{Token: "t"}, nil).Once()

	svc := NewTokenService(manager, 0, testutil.MakeNoopLogger())

	_, err := svc.Issue(context.Background(), model.User{ID: 1})
	require.NoError(t, err)
}

func TestTokenService_Issue_ManagerError(t *testing.T) {
	manager := mocks.NewTokenManager(t)
	manager.On("Issue", model.TokenClaims{UserID: 1}, time.Hour).Return(model.AccessToken{}, assert.AnError).Once()

	svc := NewTokenService(manager, time.Hour, testutil.MakeNoopLogger())

	_, err := svc.Issue(context.Background(), model.User{ID: 1})
	require.ErrorIs(t, err, assert.AnError)
}

func TestTokenService_GetUserID(t *testing.T) {
	tests := []struct {
		name    string
		claims  model.TokenClaims
		err     error
		wantID  int64
		wantErr error
	}{
		{name: "valid", claims: model.TokenClaims{UserID: 42, Email: "a@b.c"}, wantID: 42},
		{name: "expired", err: token.ErrExpired, wantErr: token.ErrExpired},
		{name: "bad signature", err: token.ErrInvalidSignature, wantErr: token.ErrInvalidSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := mocks.NewTokenManager(t)
			manager.On("Verify", "tok").Return(tt.claims, tt.err).Once()

			svc := NewTokenService(manager, time.Hour, testutil.MakeNoopLogger())
			id, err := svc.GetUserID(context.Background(), "tok")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
