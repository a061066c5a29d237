package handler

import (
	"context"
	"testing"

	"github.com/dtroode/expense-auth/internal/api/grpc/authapi"
	"github.com/dtroode/expense-auth/internal/apperr"
	"github.com/dtroode/expense-auth/internal/mocks"
	"github.com/dtroode/expense-auth/internal/model"
	"github.com/dtroode/expense-auth/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestAccount_Profile(t *testing.T) {
	t.Parallel()

	ctxMgr := mocks.NewContextManager(t)
	ctxMgr.On("GetUserIDFromContext", mock.Anything).Return(int64(7), true)
	creds := mocks.NewCredentialService(t)
	creds.On("Profile", mock.Anything, int64(7)).Return(testUser, nil)

	h := NewAccount(creds, ctxMgr, testutil.MakeNoopLogger())
	out, err := h.Profile(context.Background(), &authapi.ProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.ID)
	assert.Equal(t, "1990-05-15", out.BirthDate)
}

func TestAccount_Profile_NoUserInContext(t *testing.T) {
	t.Parallel()

	ctxMgr := mocks.NewContextManager(t)
	ctxMgr.On("GetUserIDFromContext", mock.Anything).Return(int64(0), false)

	h := NewAccount(mocks.NewCredentialService(t), ctxMgr, testutil.MakeNoopLogger())
	_, err := h.Profile(context.Background(), &authapi.ProfileRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestAccount_Profile_UserGone(t *testing.T) {
	t.Parallel()

	ctxMgr := mocks.NewContextManager(t)
	ctxMgr.On("GetUserIDFromContext", mock.Anything).Return(int64(7), true)
	creds := mocks.NewCredentialService(t)
	creds.On("Profile", mock.Anything, int64(7)).Return(model.User{}, apperr.NotFound("user not found"))

	h := NewAccount(creds, ctxMgr, testutil.MakeNoopLogger())
	_, err := h.Profile(context.Background(), &authapi.ProfileRequest{})
	st, _ := status.FromError(err)
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Equal(t, "user not found", st.Message())
}
