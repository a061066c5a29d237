package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/dtroode/expense-auth/internal/model"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

var fixedNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func fixedClock() model.Clock {
	return model.ClockFunc(func() time.Time { return fixedNow })
}

func TestSMTP_SendRecoveryCode(t *testing.T) {
	sender := &fakeSender{}
	n := NewSMTP(sender, "no-reply@example.com", Branding{AppName: "Expense Tracker"}, fixedClock())

	err := n.SendRecoveryCode(context.Background(), model.RecoveryMessage{
		Email:     "ann@example.com",
		FirstName: "Ann",
		Code:      "0123456789abcdef0123456789abcdef",
		ExpiresAt: fixedNow.Add(15 * time.Minute),
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	m := sender.sent[0]
	assert.Equal(t, []string{"no-reply@example.com"}, m.GetHeader("From"))
	assert.Equal(t, []string{"ann@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Expense Tracker: password reset"}, m.GetHeader("Subject"))
}

func TestSMTP_SendError(t *testing.T) {
	sender := &fakeSender{err: errors.New("connection refused")}
	n := NewSMTP(sender, "from@example.com", Branding{AppName: "App"}, fixedClock())

	err := n.SendRecoveryCode(context.Background(), model.RecoveryMessage{Email: "ann@example.com", ExpiresAt: fixedNow.Add(time.Minute)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSMTP_CanceledContext(t *testing.T) {
	sender := &fakeSender{}
	n := NewSMTP(sender, "from@example.com", Branding{}, fixedClock())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.SendRecoveryCode(ctx, model.RecoveryMessage{Email: "a@b.c", ExpiresAt: fixedNow.Add(time.Minute)})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sender.sent)
}

func TestRender_Recovery(t *testing.T) {
	tests := []struct {
		name     string
		branding Branding
		wantYear string
	}{
		{name: "configured year", branding: Branding{AppName: "Budget", Year: 2030}, wantYear: "2030"},
		{name: "current year", branding: Branding{AppName: "Budget"}, wantYear: "2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := render(recoveryTmpl, recoveryView{
				AppName:   tt.branding.AppName,
				Year:      tt.branding.year(fixedNow),
				FirstName: "Ann",
				Code:      "c0ffee",
				Minutes:   15,
			})
			require.NoError(t, err)
			assert.Contains(t, body, "Hello Ann,")
			assert.Contains(t, body, "<strong>c0ffee</strong>")
			assert.Contains(t, body, "valid for 15 minutes")
			assert.Contains(t, body, "&copy; "+tt.wantYear+" Budget")
		})
	}
}

func TestRender_EscapesNames(t *testing.T) {
	body, err := render(recoveryTmpl, recoveryView{AppName: "App", Year: 2026, FirstName: "<script>x</script>", Code: "c"})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}
