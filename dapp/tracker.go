package dapp

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Status is the lifecycle state of the transaction slot
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Transaction is the single tracked submission. No history is kept.
type Transaction struct {
	ID             uint64
	Status         Status
	Kind           ErrorKind
	RequestedValue *big.Int
	TxHash         common.Hash
	Err            error
}

// Effects are the side effects the caller must apply after a transition
type Effects struct {
	ClearInput bool
	Refresh    bool
	Notice     Notification
}

// Tracker drives the Idle -> Pending -> Success|Error state machine
type Tracker struct {
	tx         Transaction
	classifier *Classifier
	next       uint64
}

// NewTracker creates a tracker in Idle. A nil classifier uses the defaults.
func NewTracker(classifier *Classifier) *Tracker {
	if classifier == nil {
		classifier = NewClassifier()
	}
	return &Tracker{classifier: classifier}
}

// Transaction returns a copy of the slot
func (t *Tracker) Transaction() Transaction {
	return t.tx
}

// Status returns the slot status
func (t *Tracker) Status() Status {
	return t.tx.Status
}

// begin overwrites the slot with a new Pending submission
func (t *Tracker) begin(value *big.Int) uint64 {
	t.next++
	t.tx = Transaction{
		ID:             t.next,
		Status:         StatusPending,
		RequestedValue: new(big.Int).Set(value),
	}
	return t.next
}

// Resolve applies the outcome of the pending submission. It returns false
// when the outcome does not belong to the pending transaction.
func (t *Tracker) Resolve(o Outcome) (Effects, bool) {
	if t.tx.Status != StatusPending || o.ID != t.tx.ID {
		return Effects{}, false
	}

	t.tx.TxHash = o.TxHash
	if o.Err == nil {
		t.tx.Status = StatusSuccess
		return Effects{ClearInput: true, Refresh: true, Notice: Success(MsgSent)}, true
	}

	t.tx.Status = StatusError
	t.tx.Err = o.Err
	t.tx.Kind = t.classifier.Classify(o.Err.Error())
	return Effects{Notice: Failure(t.tx.Kind.Message())}, true
}
