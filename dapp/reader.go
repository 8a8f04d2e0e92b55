package dapp

import (
	"context"
	"math/big"
)

// ValueCaller performs the getValue read call
type ValueCaller interface {
	GetValue(ctx context.Context) (*big.Int, error)
}

// RemoteValue is the cached contract value. Raw keeps the last good value
// while a refresh is loading or after a failed read.
type RemoteValue struct {
	Raw       *big.Int
	FetchedAt uint64 // sequence number of the read that produced Raw
	Loading   bool
	Err       error
}

// Available reports whether a value has ever been fetched
func (v RemoteValue) Available() bool { return v.Raw != nil }

// ReadResult is the tagged result of one read call
type ReadResult struct {
	Seq   uint64
	Value *big.Int
	Err   error
}

// ReadFunc runs a read off the update loop. It does not touch reader state.
type ReadFunc func(ctx context.Context) ReadResult

// Reader is a refreshable cached read of the stored value
type Reader struct {
	guard   Guard
	caller  ValueCaller
	value   RemoteValue
	issued  uint64
	enabled bool
}

// NewReader creates a reader. caller may be nil until a wallet connects.
func NewReader(guard Guard, caller ValueCaller) *Reader {
	return &Reader{guard: guard, caller: caller}
}

// SetCaller swaps the contract client, e.g. after a reconnect
func (r *Reader) SetCaller(caller ValueCaller) {
	r.caller = caller
}

// Value returns the current cached value
func (r *Reader) Value() RemoteValue {
	return r.value
}

// Sync returns a read only when the connection has just become usable.
// Calling it on every connection change gives the auto-read behaviour.
// While the connection is not usable the cache is empty: a value read on
// another session or network is never shown, and reads still in flight are
// dropped when they complete.
func (r *Reader) Sync(conn Connection) (ReadFunc, bool) {
	ready := r.usable(conn)
	rising := ready && !r.enabled
	r.enabled = ready
	if !ready {
		r.value = RemoteValue{}
		r.issued++
	}
	if !rising {
		return nil, false
	}
	return r.Refresh(conn)
}

// Refresh returns a read of the current value, or false when reads are disabled
func (r *Reader) Refresh(conn Connection) (ReadFunc, bool) {
	if !r.usable(conn) {
		return nil, false
	}

	r.issued++
	seq := r.issued
	caller := r.caller
	r.value.Loading = true

	return func(ctx context.Context) ReadResult {
		v, err := caller.GetValue(ctx)
		return ReadResult{Seq: seq, Value: v, Err: err}
	}, true
}

// Complete folds a read result into the cache. Results of superseded reads
// are dropped.
func (r *Reader) Complete(res ReadResult) RemoteValue {
	if res.Seq != r.issued {
		return r.value
	}

	r.value.Loading = false
	if res.Err != nil {
		r.value.Err = &RemoteReadError{Err: res.Err}
		return r.value
	}
	if res.Value == nil {
		r.value.Err = &RemoteReadError{Err: errEmptyResult}
		return r.value
	}

	r.value.Raw = new(big.Int).Set(res.Value)
	r.value.FetchedAt = res.Seq
	r.value.Err = nil
	return r.value
}

func (r *Reader) usable(conn Connection) bool {
	return r.caller != nil && conn.Ready(r.guard)
}
