package hasher

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"

	"github.com/dtroode/expense-auth/internal/model"
)

var _ model.PasswordHasher = (*Argon2id)(nil)

var errMalformedHash = errors.New("malformed argon2id hash")

// Stored hashes asking for more than costFactor times the known cost never match.
const (
	costFactor   = 4
	maxKeyLength = 128
)

// Params contains Argon2id cost parameters.
type Params struct {
	Time          uint32
	MemoryKiB     uint32
	Threads       uint8
	SaltLength    uint32
	KeyLength     uint32
	MaxConcurrent int64
}

// DefaultParams returns the parameters used when none are configured.
func DefaultParams() Params {
	return Params{
		Time:          3,
		MemoryKiB:     64 * 1024,
		Threads:       2,
		SaltLength:    16,
		KeyLength:     32,
		MaxConcurrent: 4,
	}
}

// Argon2id hashes secrets into PHC strings:
// $argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
type Argon2id struct {
	params Params
	slots  *semaphore.Weighted
}

// New creates an Argon2id hasher. Zero fields fall back to DefaultParams.
func New(params Params) *Argon2id {
	def := DefaultParams()
	if params.Time == 0 {
		params.Time = def.Time
	}
	if params.MemoryKiB == 0 {
		params.MemoryKiB = def.MemoryKiB
	}
	if params.Threads == 0 {
		params.Threads = def.Threads
	}
	if params.SaltLength == 0 {
		params.SaltLength = def.SaltLength
	}
	if params.KeyLength == 0 {
		params.KeyLength = def.KeyLength
	}
	if params.MaxConcurrent <= 0 {
		params.MaxConcurrent = def.MaxConcurrent
	}

	return &Argon2id{
		params: params,
		slots:  semaphore.NewWeighted(params.MaxConcurrent),
	}
}

// Hash derives a salted key from plain.
func (h *Argon2id) Hash(ctx context.Context, plain string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	if err := h.slots.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("failed to acquire hashing slot: %w", err)
	}
	key := argon2.IDKey([]byte(plain), salt, h.params.Time, h.params.MemoryKiB, h.params.Threads, h.params.KeyLength)
	h.slots.Release(1)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.params.MemoryKiB, h.params.Time, h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether plain matches encoded. Malformed hashes never match.
func (h *Argon2id) Verify(ctx context.Context, encoded, plain string) bool {
	p, salt, key, err := decode(encoded)
	if err != nil {
		return false
	}
	if !h.affordable(p, len(key)) {
		return false
	}

	if err := h.slots.Acquire(ctx, 1); err != nil {
		return false
	}
	candidate := argon2.IDKey([]byte(plain), salt, p.Time, p.MemoryKiB, p.Threads, uint32(len(key)))
	h.slots.Release(1)

	return subtle.ConstantTimeCompare(key, candidate) == 1
}

// affordable reports whether p stays within costFactor of the configured
// parameters, or of DefaultParams when those are larger.
func (h *Argon2id) affordable(p Params, keyLen int) bool {
	def := DefaultParams()
	return uint64(p.MemoryKiB) <= costFactor*uint64(max(h.params.MemoryKiB, def.MemoryKiB)) &&
		uint64(p.Time) <= costFactor*uint64(max(h.params.Time, def.Time)) &&
		uint64(p.Threads) <= costFactor*uint64(max(h.params.Threads, def.Threads)) &&
		keyLen <= maxKeyLength
}

func decode(encoded string) (Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Params{}, nil, nil, errMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Params{}, nil, nil, errMalformedHash
	}

	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.MemoryKiB, &p.Time, &p.Threads); err != nil {
		return Params{}, nil, nil, errMalformedHash
	}
	if p.MemoryKiB == 0 || p.Time == 0 || p.Threads == 0 {
		return Params{}, nil, nil, errMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return Params{}, nil, nil, errMalformedHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return Params{}, nil, nil, errMalformedHash
	}

	return p, salt, key, nil
}
