// Package sharing implements the doctor-access gate: patients issue short
// codes and doctors redeem them for a time-limited view of the summary.
package sharing

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidCode is the only error a redeemer sees for a bad code.
var ErrInvalidCode = errors.New("invalid or expired access code")

const (
	codePrefix = "VH-"
	codeLength = 8
	// no 0/O or 1/I, 32 symbols so a byte maps without bias
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	demoGrantID  = "demo"
)

// Grant is what a code unlocks.
type Grant struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patientId"`
	IssuedAt  time.Time `json:"issuedAt"`
	// ExpiresAt is zero for the demo grant.
	ExpiresAt time.Time `json:"expiresAt"`
	SingleUse bool      `json:"singleUse"`
	Demo      bool      `json:"demo"`
}

// IssuedCode is handed to the patient.
type IssuedCode struct {
	Code      string     `json:"code"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	SingleUse bool       `json:"singleUse"`
	Demo      bool       `json:"demo"`
}

// Store keeps grants keyed by the digest of their normalized code.
type Store interface {
	Put(ctx context.Context, key string, grant Grant, ttl time.Duration) error
	// Take returns nil when no live grant exists. With consume set the grant
	// is removed atomically.
	Take(ctx context.Context, key string, consume bool) (*Grant, error)
}

// Options configure a Gate.
type Options struct {
	CodeTTL       time.Duration
	SingleUse     bool
	DemoCode      string
	DemoPatientID string
}

// Gate issues and redeems access codes.
type Gate struct {
	store Store
	opts  Options
	now   func() time.Time
	rand  io.Reader
}

// NewGate creates a Gate backed by store.
func NewGate(store Store, opts Options) *Gate {
	return &Gate{store: store, opts: opts, now: time.Now, rand: rand.Reader}
}

// Normalize canonicalizes user input: trimmed, upper-cased, without dashes
// or spaces.
func Normalize(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	return strings.NewReplacer("-", "", " ", "").Replace(code)
}

func grantKey(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// DemoEnabled reports whether a fixed demo code is configured.
func (g *Gate) DemoEnabled() bool {
	return g.opts.DemoCode != ""
}

// Issue creates a code for patientID. The demo patient always gets the
// fixed demo code.
func (g *Gate) Issue(ctx context.Context, patientID string) (*IssuedCode, error) {
	if g.DemoEnabled() && patientID == g.opts.DemoPatientID {
		return &IssuedCode{Code: g.opts.DemoCode, Demo: true}, nil
	}

	code, err := g.generate()
	if err != nil {
		return nil, err
	}
	now := g.now()
	grant := Grant{
		ID:        uuid.New().String(),
		PatientID: patientID,
		IssuedAt:  now,
		ExpiresAt: now.Add(g.opts.CodeTTL),
		SingleUse: g.opts.SingleUse,
	}
	if err := g.store.Put(ctx, grantKey(Normalize(code)), grant, g.opts.CodeTTL); err != nil {
		return nil, fmt.Errorf("store grant: %w", err)
	}
	expires := grant.ExpiresAt
	return &IssuedCode{Code: code, ExpiresAt: &expires, SingleUse: grant.SingleUse}, nil
}

// Redeem checks input and returns the grant it unlocks. The demo code can
// be redeemed any number of times.
func (g *Gate) Redeem(ctx context.Context, input string) (*Grant, error) {
	code := Normalize(input)
	if code == "" {
		return nil, ErrInvalidCode
	}
	if g.DemoEnabled() {
		demo := Normalize(g.opts.DemoCode)
		if subtle.ConstantTimeCompare([]byte(code), []byte(demo)) == 1 {
			return &Grant{ID: demoGrantID, PatientID: g.opts.DemoPatientID, IssuedAt: g.now(), Demo: true}, nil
		}
	}

	grant, err := g.store.Take(ctx, grantKey(code), g.opts.SingleUse)
	if err != nil {
		return nil, fmt.Errorf("load grant: %w", err)
	}
	if grant == nil || (!grant.ExpiresAt.IsZero() && !g.now().Before(grant.ExpiresAt)) {
		return nil, ErrInvalidCode
	}
	return grant, nil
}

func (g *Gate) generate() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := io.ReadFull(g.rand, buf); err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return codePrefix + string(buf), nil
}
