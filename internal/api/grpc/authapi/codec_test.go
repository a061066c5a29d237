package authapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())
}

func TestCodec_UsesSnakeCaseFields(t *testing.T) {
	b, err := codec{}.Marshal(&ResetPasswordRequest{Email: "a@b.c", Code: "x", NewPassword: "Abc12345"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@b.c","code":"x","new_password":"Abc12345"}`, string(b))

	var req ResetPasswordRequest
	require.NoError(t, codec{}.Unmarshal(b, &req))
	assert.Equal(t, "Abc12345", req.NewPassword)
}

func TestCodec_EmptyPayload(t *testing.T) {
	var req ProfileRequest
	assert.NoError(t, codec{}.Unmarshal(nil, &req))
}

func TestCodec_InvalidPayload(t *testing.T) {
	var req LoginRequest
	assert.Error(t, codec{}.Unmarshal([]byte("{"), &req))
}
