package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dtroode/expense-auth/internal/hasher"
	"github.com/dtroode/expense-auth/internal/model"
	"github.com/dtroode/expense-auth/internal/repository/memory"
	"github.com/dtroode/expense-auth/internal/testutil"
	"github.com/dtroode/expense-auth/internal/token"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type captureNotifier struct {
	mu   sync.Mutex
	msgs []model.RecoveryMessage
	err  error
}

func (n *captureNotifier) SendRecoveryCode(_ context.Context, msg model.RecoveryMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
	return n.err
}

func (n *captureNotifier) codes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.msgs))
	for _, m := range n.msgs {
		out = append(out, m.Code)
	}
	return out
}

func (n *captureNotifier) lastCode(t *testing.T) string {
	t.Helper()
	codes := n.codes()
	require.NotEmpty(t, codes, "no recovery code was sent")
	return codes[len(codes)-1]
}

// fakeTx runs the unit of work directly on the given stores.
type fakeTx struct {
	stores model.Stores
}

func (f fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context, stores model.Stores) error) error {
	return fn(ctx, f.stores)
}

type testEnv struct {
	store    *memory.Store
	clock    *testClock
	notifier *captureNotifier
	jwt      *token.JWT
	cred     *Credential
	rec      *Recovery
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	clock := newTestClock()
	store := memory.NewStore(memory.WithClock(clock))
	h := hasher.New(hasher.Params{Time: 1, MemoryKiB: 64, Threads: 1, MaxConcurrent: 8})
	jwt := token.NewJWT("test-secret", token.WithClock(clock))
	log := testutil.MakeNoopLogger()
	notifier := &captureNotifier{}
	tokens := NewTokenService(jwt, time.Hour, log)

	return &testEnv{
		store:    store,
		clock:    clock,
		notifier: notifier,
		jwt:      jwt,
		cred:     NewCredential(store.Stores().Users, h, tokens, clock, log),
		rec:      NewRecovery(store.Stores(), store, h, notifier, clock, model.RecoveryCodeTTL, log),
	}
}

func (e *testEnv) signup(t *testing.T, email, password, birthDate string) model.AuthResult {
	t.Helper()
	res, err := e.cred.Signup(context.Background(), model.SignupParams{
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
		FirstName:       "Ann",
		LastName:        "Lee",
		BirthDate:       birthDate,
	})
	require.NoError(t, err)
	return res
}
