package main

import (
	"context"
	"errors"
	"math/big"
	"path/filepath"
	"testing"

	"simple-storage-tui/config"
	"simple-storage-tui/dapp"
	"simple-storage-tui/wallet"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testContract = common.HexToAddress("0xd9145CCE52D386f254917e481eB44e9943F39138")
	testAccount  = common.HexToAddress("0x5B38Da6a701c568545dCfcB03FcB875f56beddC4")
)

type fakeContract struct {
	value    *big.Int
	readErr  error
	writeErr error
	reads    int
	writes   []*big.Int
}

func (f *fakeContract) GetValue(ctx context.Context) (*big.Int, error) {
	f.reads++
	if f.readErr != nil {
		return nil, f.readErr
	}
	return new(big.Int).Set(f.value), nil
}

func (f *fakeContract) Address() common.Address { return testContract }

func (f *fakeContract) SetValue(ctx context.Context, v *big.Int) (common.Hash, error) {
	f.writes = append(f.writes, new(big.Int).Set(v))
	if f.writeErr != nil {
		return common.Hash{}, f.writeErr
	}
	f.value = new(big.Int).Set(v)
	return common.BigToHash(v), nil
}

func testModel(t *testing.T) *model {
	t.Helper()
	settings := config.Settings{ContractAddress: testContract}
	m := newModel(settings, filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(m.cancel)
	m.cfg.SkipSigningPrompt = true
	m.w, m.h = 120, 40
	return &m
}

func session(chainID int64, c *fakeContract) *wallet.Session {
	acc := testAccount
	return &wallet.Session{
		Connection: dapp.Connection{Account: &acc, ChainID: chainID, Connected: true},
		Contract:   c,
		URL:        "fake",
	}
}

// run executes cmd and feeds the resulting messages back into the model
func run(t *testing.T, m *model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0; i++ {
		require.Less(t, i, 20, "command chain did not settle")
		cmd, queue = queue[0], queue[1:]
		if cmd == nil {
			continue
		}
		switch msg := cmd().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func connect(t *testing.T, m *model, chainID int64, c *fakeContract) {
	t.Helper()
	_, cmd := m.Update(walletConnectedMsg{seq: m.connectSeq, session: session(chainID, c)})
	run(t, m, cmd)
}

func TestConnectReadsValue(t *testing.T) {
	m := testModel(t)
	c := &fakeContract{value: big.NewInt(5)}

	connect(t, m, dapp.FujiChainID, c)

	assert.Equal(t, 1, c.reads)
	v := m.reader.Value()
	require.True(t, v.Available())
	assert.Equal(t, int64(5), v.Raw.Int64())
	assert.False(t, v.Loading)
	assert.Contains(t, m.View(), "Avalanche Fuji")
}

func TestSetValueHappyPath(t *testing.T) {
	m := testModel(t)
	c := &fakeContract{value: big.NewInt(5)}
	connect(t, m, dapp.FujiChainID, c)

	m.input.SetValue("42")
	cmd := m.submitInput()
	require.NotNil(t, cmd)
	assert.Equal(t, dapp.StatusPending, m.tracker.Status())
	assert.Equal(t, dapp.MsgSubmitted, m.notice.Message)

	run(t, m, cmd)

	tx := m.tracker.Transaction()
	assert.Equal(t, dapp.StatusSuccess, tx.Status)
	assert.Equal(t, "", m.input.Value())
	assert.Equal(t, dapp.NoticeSuccess, m.notice.Kind)
	assert.Equal(t, dapp.MsgSent, m.notice.Message)
	require.Len(t, c.writes, 1)
	assert.Equal(t, int64(42), c.writes[0].Int64())

	// post-success refresh
	assert.Equal(t, 2, c.reads)
	assert.Equal(t, int64(42), m.reader.Value().Raw.Int64())
}

func TestSetValueFromKeys(t *testing.T) {
	m := testModel(t)
	c := &fakeContract{value: big.NewInt(0)}
	connect(t, m, dapp.FujiChainID, c)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.True(t, m.inputFocused)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("42")})
	assert.Equal(t, "42", m.input.Value())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, m, cmd)

	require.Len(t, c.writes, 1)
	assert.Equal(t, int64(42), c.writes[0].Int64())
	assert.Equal(t, dapp.StatusSuccess, m.tracker.Status())
}

func TestWrongNetwork(t *testing.T) {
	m := testModel(t)
	c := &fakeContract{value: big.NewInt(5)}
	connect(t, m, 1, c)

	assert.Equal(t, 0, c.reads)
	assert.Equal(t, dapp.MsgWrongNetwork, m.notice.Message)
	assert.Contains(t, m.View(), "Wrong Network")

	m.input.SetValue("5")
	assert.Nil(t, m.submitInput())
	assert.Empty(t, c.writes)
	assert.Equal(t, dapp.StatusIdle, m.tracker.Status())

	assert.Nil(t, m.refresh())
	assert.Equal(t, 0, c.reads)
}

func TestUserRejection(t *testing.T) {
	m := testModel(t)
	c := &fakeContract{value: big.NewInt(5), writeErr: errors.New("MetaMask Tx Signature: User rejected the request.")}
	connect(t, m, dapp.FujiChainID, c)

	m.input.SetValue("7")
	run(t, m, m.submitInput())

	tx := m.tracker.Transaction()
	assert.Equal(t, dapp.StatusError, tx.Status)
	assert.Equal(t, dapp.KindUserRejected, tx.Kind)
	assert.Equal(t, "7", m.input.Value())
	assert.Equal(t, dapp.MsgRejected, m.notice.Message)
	assert.Equal(t, 1, c.reads)
}

func TestInvalidInput(t *testing.T) {
	for _, in := range []string{"", "abc", "-1", "1.5"} {
		t.Run(in, func(t *testing.T) {
			m := testModel(t)
			c := &fakeContract{value: big.NewInt(5)}
			connect(t, m, dapp.FujiChainID, c)

			m.input.SetValue(in)
			assert.Nil(t, m.submitInput())
			assert.Equal(t, dapp.StatusIdle, m.tracker.Status())
			assert.Equal(t, dapp.MsgInvalidInput, m.notice.Message)
			assert.Empty(t, c.writes)
		})
	}
}

func TestSigningPromptDeclined(t *testing.T) {
	m := testModel(t)
	m.cfg.SkipSigningPrompt = false
	c := &fakeContract{value: big.NewInt(5)}
	connect(t, m, dapp.FujiChainID, c)

	m.input.SetValue("9")
	assert.Nil(t, m.submitInput())
	require.NotNil(t, m.signForm)
	require.NotNil(t, m.pending)
	assert.Equal(t, dapp.StatusPending, m.tracker.Status())
	assert.Contains(t, m.View(), "Wallet Signature Request")

	run(t, m, m.finishSigning(false))

	assert.Nil(t, m.signForm)
	assert.Empty(t, c.writes)
	assert.Equal(t, dapp.KindUserRejected, m.tracker.Transaction().Kind)
	assert.Equal(t, "9", m.input.Value())
}

func TestSigningPromptApproved(t *testing.T) {
	m := testModel(t)
	m.cfg.SkipSigningPrompt = false
	c := &fakeContract{value: big.NewInt(5)}
	connect(t, m, dapp.FujiChainID, c)

	m.input.SetValue("9")
	m.submitInput()
	run(t, m, m.finishSigning(true))

	require.Len(t, c.writes, 1)
	assert.Equal(t, dapp.StatusSuccess, m.tracker.Status())
}

func TestLateOutcomeAfterDisconnect(t *testing.T) {
	m := testModel(t)
	c := &fakeContract{value: big.NewInt(5)}
	connect(t, m, dapp.FujiChainID, c)

	m.input.SetValue("11")
	cmd := m.submitInput()
	require.NotNil(t, cmd)

	m.disconnect()
	run(t, m, cmd)

	assert.Equal(t, dapp.StatusSuccess, m.tracker.Status())
	assert.Equal(t, dapp.MsgSubmitted, m.notice.Message)
	assert.Equal(t, "11", m.input.Value())
	assert.Equal(t, 1, c.reads)
	assert.NotContains(t, m.View(), "Transaction sent")
}

func TestNotConnected(t *testing.T) {
	m := testModel(t)

	m.input.SetValue("3")
	assert.Nil(t, m.submitInput())
	assert.Nil(t, m.refresh())
	assert.Equal(t, dapp.StatusIdle, m.tracker.Status())
	assert.Contains(t, m.View(), "Connect Wallet")
}

func TestReadFailureKeepsLastValue(t *testing.T) {
	m := testModel(t)
	c := &fakeContract{value: big.NewInt(5)}
	connect(t, m, dapp.FujiChainID, c)

	c.readErr = errors.New("execution reverted")
	run(t, m, m.refresh())

	v := m.reader.Value()
	require.Error(t, v.Err)
	assert.Equal(t, int64(5), v.Raw.Int64())
}

func TestSettingsToggles(t *testing.T) {
	m := testModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	require.Equal(t, config.PageSettings, m.activePage)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})

	saved := config.Load(m.configPath)
	assert.False(t, saved.SkipSigningPrompt)
	assert.True(t, saved.WaitReceipt)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, config.PageStorage, m.activePage)
}

func TestAutoConnectShowsIndicator(t *testing.T) {
	m := testModel(t)
	require.NotEmpty(t, m.cfg.ActiveRPC(""))

	_, cmd := m.Update(autoConnectMsg{})
	require.NotNil(t, cmd)
	assert.True(t, m.connecting)
	assert.Contains(t, m.View(), "Connecting...")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	assert.Nil(t, cmd, "no second dial while connecting")
	assert.Equal(t, uint64(1), m.connectSeq)

	c := &fakeContract{value: big.NewInt(3)}
	connect(t, m, dapp.FujiChainID, c)
	assert.False(t, m.connecting)
	assert.Equal(t, int64(3), m.reader.Value().Raw.Int64())
}

func TestSupersededConnectIgnored(t *testing.T) {
	m := testModel(t)
	m.Update(autoConnectMsg{})
	m.disconnect()

	c := &fakeContract{value: big.NewInt(3)}
	_, cmd := m.Update(walletConnectedMsg{seq: 1, session: session(dapp.FujiChainID, c)})
	assert.Nil(t, cmd)
	assert.False(t, m.conn.Connected)
	assert.Equal(t, 0, c.reads)
}

func TestReconnectOnWrongNetworkHidesOldValue(t *testing.T) {
	m := testModel(t)
	fuji := &fakeContract{value: big.NewInt(5)}
	connect(t, m, dapp.FujiChainID, fuji)
	require.Equal(t, int64(5), m.reader.Value().Raw.Int64())

	m.disconnect()
	other := &fakeContract{value: big.NewInt(99)}
	connect(t, m, 1, other)

	assert.False(t, m.reader.Value().Available())
	assert.Equal(t, 0, other.reads)
	view := m.View()
	assert.Contains(t, view, "Wrong Network")
	assert.NotContains(t, view, "read #1")
}

func TestCtrlCDuringSigningPrompt(t *testing.T) {
	m := testModel(t)
	m.cfg.SkipSigningPrompt = false
	c := &fakeContract{value: big.NewInt(5)}
	connect(t, m, dapp.FujiChainID, c)

	m.input.SetValue("8")
	m.submitInput()
	require.NotNil(t, m.signForm)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Nil(t, m.signForm)
	assert.Nil(t, m.pending)
	assert.Equal(t, dapp.KindUserRejected, m.tracker.Transaction().Kind)
	assert.Empty(t, c.writes)
}

func TestDisconnectKeepsSessionForInflightWrite(t *testing.T) {
	m := testModel(t)
	c := &fakeContract{value: big.NewInt(5)}
	connect(t, m, dapp.FujiChainID, c)

	m.input.SetValue("12")
	cmd := m.submitInput()
	require.NotNil(t, cmd)

	m.disconnect()
	require.Len(t, m.retired, 1)

	run(t, m, cmd)
	assert.Equal(t, dapp.StatusSuccess, m.tracker.Status())
	assert.Empty(t, m.retired)

	// nothing in flight: closed right away
	connect(t, m, dapp.FujiChainID, c)
	m.disconnect()
	assert.Empty(t, m.retired)
}

func TestSessionContractAddress(t *testing.T) {
	m := testModel(t)
	m.settings.ContractAddress = common.Address{}
	connect(t, m, dapp.FujiChainID, &fakeContract{value: big.NewInt(1)})

	assert.Equal(t, testContract, m.contractAddress())
	m.input.SetValue("4")
	assert.Contains(t, m.qrURI(), testContract.Hex())
}
