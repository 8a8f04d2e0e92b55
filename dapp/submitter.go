package dapp

import (
	"context"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// ValueSetter signs and broadcasts a setValue call
type ValueSetter interface {
	SetValue(ctx context.Context, value *big.Int) (common.Hash, error)
}

// PendingInput is the text typed by the user. It is validated only on submit.
type PendingInput struct {
	Text string
}

// Parse converts the text into the uint256 argument of setValue
func (p PendingInput) Parse() (*big.Int, error) {
	s := strings.TrimSpace(p.Text)
	if s == "" {
		return nil, &ValidationError{Input: p.Text, Reason: "empty"}
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil, &ValidationError{Input: p.Text, Reason: "not a non-negative integer"}
		}
	}

	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, &ValidationError{Input: p.Text, Reason: "not a non-negative integer"}
	}
	if _, overflow := uint256.FromBig(v); overflow {
		return nil, &ValidationError{Input: p.Text, Reason: "exceeds uint256"}
	}
	return v, nil
}

// Outcome is the tagged result of one submission
type Outcome struct {
	ID     uint64
	TxHash common.Hash
	Err    error
}

// PendingHandle is an accepted submission waiting to be sent or declined.
// Whichever of Send and Decline runs first decides the outcome.
type PendingHandle struct {
	ID    uint64
	Value *big.Int

	setter  ValueSetter
	once    sync.Once
	outcome Outcome
}

// Send issues the write call. Only the first call reaches the client.
func (h *PendingHandle) Send(ctx context.Context) Outcome {
	h.once.Do(func() {
		hash, err := h.setter.SetValue(ctx, new(big.Int).Set(h.Value))
		h.outcome = Outcome{ID: h.ID, TxHash: hash, Err: err}
	})
	return h.outcome
}

// Decline resolves the handle as rejected by the user without a remote call
func (h *PendingHandle) Decline() Outcome {
	h.once.Do(func() {
		h.outcome = Outcome{ID: h.ID, Err: ErrUserRejected}
	})
	return h.outcome
}

// Submitter validates candidate input and starts write calls
type Submitter struct {
	guard   Guard
	setter  ValueSetter
	tracker *Tracker
}

// NewSubmitter creates a submitter feeding tracker. setter may be nil until a
// wallet connects.
func NewSubmitter(guard Guard, setter ValueSetter, tracker *Tracker) *Submitter {
	return &Submitter{guard: guard, setter: setter, tracker: tracker}
}

// SetSetter swaps the contract client, e.g. after a reconnect
func (s *Submitter) SetSetter(setter ValueSetter) {
	s.setter = setter
}

// CanSubmit reports whether the submit action should be enabled
func (s *Submitter) CanSubmit(conn Connection) bool {
	return s.check(conn) == nil
}

// Submit validates text and, when accepted, moves the tracker to Pending and
// returns the handle that performs the write. Rejections leave the
// transaction slot untouched and make no remote call.
func (s *Submitter) Submit(conn Connection, in PendingInput) (*PendingHandle, error) {
	if err := s.check(conn); err != nil {
		return nil, err
	}

	value, err := in.Parse()
	if err != nil {
		return nil, err
	}

	id := s.tracker.begin(value)
	return &PendingHandle{ID: id, Value: value, setter: s.setter}, nil
}

func (s *Submitter) check(conn Connection) error {
	switch {
	case !conn.Connected || s.setter == nil:
		return ErrNotConnected
	case !s.guard.IsAuthorized(conn.ChainID):
		return ErrNetworkMismatch
	case conn.Account == nil:
		return ErrNoAccount
	case s.tracker.Status() == StatusPending:
		return ErrTransactionPending
	}
	return nil
}
