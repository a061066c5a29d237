// Package memory is an in-process credential store for local runs and tests.
package memory

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/expense-auth/internal/model"
)

var (
	_ model.Transactor        = (*Store)(nil)
	_ model.UserStore         = (*userStore)(nil)
	_ model.RecoveryCodeStore = (*codeStore)(nil)
)

// Store keeps users and recovery codes in maps guarded by one mutex.
// A unit of work passed to WithinTx runs with the lock held.
type Store struct {
	mu     sync.Mutex
	clock  model.Clock
	nextID int64
	users  map[int64]model.User
	codes  map[uuid.UUID]model.RecoveryCode
}

// Option configures Store.
type Option func(*Store)

// WithClock sets the clock used for updated_at stamps.
func WithClock(clock model.Clock) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		clock: model.SystemClock,
		users: make(map[int64]model.User),
		codes: make(map[uuid.UUID]model.RecoveryCode),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithinTx runs fn atomically. On error every change fn made is discarded.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, stores model.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	stores := model.Stores{Users: &userStore{s: s}, Codes: &codeStore{s: s}}

	committed := false
	defer func() {
		if !committed {
			s.restore(snap)
		}
	}()

	if err := fn(ctx, stores); err != nil {
		return err
	}
	committed = true
	return nil
}

// Stores returns stores where every call is its own unit of work.
func (s *Store) Stores() model.Stores {
	return model.Stores{
		Users: &userStore{s: s, autoLock: true},
		Codes: &codeStore{s: s, autoLock: true},
	}
}

type snapshot struct {
	nextID int64
	users  map[int64]model.User
	codes  map[uuid.UUID]model.RecoveryCode
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		nextID: s.nextID,
		users:  make(map[int64]model.User, len(s.users)),
		codes:  make(map[uuid.UUID]model.RecoveryCode, len(s.codes)),
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	for k, v := range s.codes {
		snap.codes[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.nextID = snap.nextID
	s.users = snap.users
	s.codes = snap.codes
}

type userStore struct {
	s        *Store
	autoLock bool
}

func (u *userStore) lock() func() {
	if !u.autoLock {
		return func() {}
	}
	u.s.mu.Lock()
	return u.s.mu.Unlock
}

func (u *userStore) findByEmail(email string) (model.User, bool) {
	for _, user := range u.s.users {
		if strings.EqualFold(user.Email, email) {
			return user, true
		}
	}
	return model.User{}, false
}

func (u *userStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	defer u.lock()()

	user, ok := u.findByEmail(email)
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

func (u *userStore) GetIdentityByEmail(ctx context.Context, email string) (model.User, error) {
	user, err := u.GetByEmail(ctx, email)
	if err != nil {
		return model.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (u *userStore) GetByID(_ context.Context, id int64) (model.User, error) {
	defer u.lock()()

	user, ok := u.s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	user.PasswordHash = ""
	return user, nil
}

func (u *userStore) Create(_ context.Context, user model.User) (model.User, error) {
	defer u.lock()()

	if _, ok := u.findByEmail(user.Email); ok {
		return model.User{}, model.ErrAlreadyExists
	}
	u.s.nextID++
	user.ID = u.s.nextID
	u.s.users[user.ID] = user
	return user, nil
}

func (u *userStore) UpdatePasswordHash(_ context.Context, userID int64, passwordHash string) error {
	defer u.lock()()

	user, ok := u.s.users[userID]
	if !ok {
		return model.ErrNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = u.s.clock.Now()
	u.s.users[userID] = user
	return nil
}

type codeStore struct {
	s        *Store
	autoLock bool
}

func (c *codeStore) lock() func() {
	if !c.autoLock {
		return func() {}
	}
	c.s.mu.Lock()
	return c.s.mu.Unlock
}

func (c *codeStore) Create(_ context.Context, code model.RecoveryCode) error {
	defer c.lock()()

	if _, ok := c.s.users[code.UserID]; !ok {
		return model.ErrNotFound
	}
	for _, existing := range c.s.codes {
		if existing.ID == code.ID || bytes.Equal(existing.CodeHash, code.CodeHash) {
			return model.ErrAlreadyExists
		}
		if existing.UserID == code.UserID && !existing.Used {
			return model.ErrAlreadyExists
		}
	}
	code.CodeHash = bytes.Clone(code.CodeHash)
	c.s.codes[code.ID] = code
	return nil
}

func (c *codeStore) GetByHash(_ context.Context, codeHash []byte) (model.RecoveryCode, error) {
	defer c.lock()()

	for _, code := range c.s.codes {
		if bytes.Equal(code.CodeHash, codeHash) {
			return code, nil
		}
	}
	return model.RecoveryCode{}, model.ErrNotFound
}

func (c *codeStore) DeleteUnusedByUser(_ context.Context, userID int64) (int64, error) {
	defer c.lock()()

	var n int64
	for id, code := range c.s.codes {
		if code.UserID == userID && !code.Used {
			delete(c.s.codes, id)
			n++
		}
	}
	return n, nil
}

func (c *codeStore) MarkUsed(_ context.Context, id uuid.UUID, now time.Time) error {
	defer c.lock()()

	code, ok := c.s.codes[id]
	if !ok || !code.Usable(now) {
		return model.ErrCodeUnavailable
	}
	code.Used = true
	c.s.codes[id] = code
	return nil
}

func (c *codeStore) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	defer c.lock()()

	var n int64
	for id, code := range c.s.codes {
		if !code.ExpiresAt.After(before) {
			delete(c.s.codes, id)
			n++
		}
	}
	return n, nil
}
