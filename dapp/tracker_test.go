package dapp

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_SuccessEffects(t *testing.T) {
	c := &fakeContract{value: big.NewInt(0)}
	s, tr := newTestSubmitter(c)
	assert.Equal(t, StatusIdle, tr.Status())

	h, err := s.Submit(fujiConn(), PendingInput{Text: "42"})
	require.NoError(t, err)

	fx, ok := tr.Resolve(h.Send(context.Background()))
	require.True(t, ok)
	assert.Equal(t, StatusSuccess, tr.Status())
	assert.True(t, fx.ClearInput)
	assert.True(t, fx.Refresh)
	assert.Equal(t, Success(MsgSent), fx.Notice)
	assert.Equal(t, KindNone, tr.Transaction().Kind)
	assert.Equal(t, "42", tr.Transaction().RequestedValue.String())
}

func TestTracker_ErrorClassification(t *testing.T) {
	cases := []struct {
		err  error
		kind ErrorKind
		msg  string
	}{
		{errors.New("User rejected the request."), KindUserRejected, MsgRejected},
		{errors.New("MetaMask Tx Signature: User denied transaction signature."), KindUserRejected, MsgRejected},
		{ErrUserRejected, KindUserRejected, MsgRejected},
		{errors.New("estimate gas: execution reverted"), KindReverted, MsgReverted},
		{errors.New("insufficient funds for gas * price + value"), KindUnknown, MsgFailed},
	}

	for _, tc := range cases {
		c := &fakeContract{value: big.NewInt(0), writeErr: tc.err}
		s, tr := newTestSubmitter(c)

		h, err := s.Submit(fujiConn(), PendingInput{Text: "7"})
		require.NoError(t, err)

		fx, ok := tr.Resolve(h.Send(context.Background()))
		require.True(t, ok)
		assert.Equal(t, StatusError, tr.Status())
		assert.Equal(t, tc.kind, tr.Transaction().Kind, tc.err.Error())
		assert.Equal(t, Failure(tc.msg), fx.Notice)
		assert.False(t, fx.ClearInput)
		assert.False(t, fx.Refresh)
	}
}

func TestTracker_ResolvesExactlyOnce(t *testing.T) {
	c := &fakeContract{value: big.NewInt(0)}
	s, tr := newTestSubmitter(c)

	h, err := s.Submit(fujiConn(), PendingInput{Text: "1"})
	require.NoError(t, err)
	o := h.Send(context.Background())

	_, ok := tr.Resolve(o)
	require.True(t, ok)
	_, ok = tr.Resolve(Outcome{ID: o.ID, Err: errors.New("late failure")})
	assert.False(t, ok)
	assert.Equal(t, StatusSuccess, tr.Status())
}

func TestTracker_NewSubmissionOverwritesTerminalState(t *testing.T) {
	c := &fakeContract{value: big.NewInt(0), writeErr: errors.New("execution reverted")}
	s, tr := newTestSubmitter(c)

	h1, err := s.Submit(fujiConn(), PendingInput{Text: "1"})
	require.NoError(t, err)
	tr.Resolve(h1.Send(context.Background()))
	require.Equal(t, StatusError, tr.Status())

	c.writeErr = nil
	h2, err := s.Submit(fujiConn(), PendingInput{Text: "2"})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, tr.Status())
	assert.Equal(t, KindNone, tr.Transaction().Kind)

	_, ok := tr.Resolve(Outcome{ID: h1.ID})
	assert.False(t, ok, "stale outcome of the previous submission")

	tr.Resolve(h2.Send(context.Background()))
	assert.Equal(t, StatusSuccess, tr.Status())
	assert.NotEqual(t, StatusIdle, tr.Status())
}
