package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/expense-auth/internal/model"
	"github.com/dtroode/expense-auth/internal/testutil"
)

func TestLog_SendRecoveryCode(t *testing.T) {
	tests := []struct {
		name        string
		revealCodes bool
		wantCode    bool
	}{
		{name: "codes hidden by default", revealCodes: false, wantCode: false},
		{name: "codes revealed for development", revealCodes: true, wantCode: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := testutil.MakeBufferLogger()
			n := NewLog(l, tt.revealCodes)

			err := n.SendRecoveryCode(context.Background(), model.RecoveryMessage{
				Email:     "ann@example.com",
				Code:      "deadbeefdeadbeefdeadbeefdeadbeef",
				ExpiresAt: time.Now().Add(time.Minute),
			})
			require.NoError(t, err)

			assert.Contains(t, buf.String(), "ann@example.com")
			if tt.wantCode {
				assert.Contains(t, buf.String(), "deadbeefdeadbeefdeadbeefdeadbeef")
			} else {
				assert.NotContains(t, buf.String(), "deadbeef")
			}
		})
	}
}
