package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"simple-storage-tui/config"
	"simple-storage-tui/dapp"
	"simple-storage-tui/helpers"
	"simple-storage-tui/wallet"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/ethereum/go-ethereum/common"
)

const (
	// readTimeout bounds a single getValue call
	readTimeout = 12 * time.Second
	// writeTimeout bounds a setValue call, receipt wait included
	writeTimeout = 2 * time.Minute
)

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations

// connectWallet loads the key and dials the node
func connectWallet(seq uint64, opts wallet.Options) tea.Cmd {
	return func() tea.Msg {
		s, err := wallet.Connect(opts)
		return walletConnectedMsg{seq: seq, session: s, err: err}
	}
}

// readValue runs a prepared getValue read off the update loop
func readValue(ctx context.Context, read dapp.ReadFunc) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, readTimeout)
		defer cancel()
		return valueLoadedMsg{res: read(ctx)}
	}
}

// sendTransaction sends an accepted setValue submission
func sendTransaction(ctx context.Context, h *dapp.PendingHandle) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, writeTimeout)
		defer cancel()
		return txOutcomeMsg{outcome: h.Send(ctx)}
	}
}

// declineTransaction resolves a submission refused at the signing prompt
func declineTransaction(h *dapp.PendingHandle) tea.Cmd {
	return func() tea.Msg {
		return txOutcomeMsg{outcome: h.Decline()}
	}
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(text)
		if err == nil {
			return clipboardCopiedMsg{}
		}
		return nil
	}
}

// initLogViewport initializes the log viewport
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}

// -------------------- MODEL HELPER METHODS --------------------
// These methods drive the dapp core from the update loop

// addLog adds a log entry with timestamp and type
func (m *model) addLog(logType, message string) {
	if !m.logEnabled || !m.logReady || m.logger == nil {
		return
	}

	switch logType {
	case "info":
		m.logger.Info(message)
	case "success":
		m.logger.Info("✓", "msg", message)
	case "error":
		m.logger.Error(message)
	case "warning":
		m.logger.Warn(message)
	case "debug":
		m.logger.Debug(message)
	default:
		m.logger.Print(message)
	}

	m.updateLogViewport()
}

// updateLogViewport refreshes the viewport content with log output
func (m *model) updateLogViewport() {
	if !m.logReady || m.logBuffer == nil {
		return
	}
	m.logViewport.SetContent(m.logBuffer.String())
	m.logViewport.GotoBottom()
}

// textInputActive returns true if keystrokes belong to an input or form
func (m model) textInputActive() bool {
	if m.inputFocused || m.signForm != nil {
		return true
	}
	if m.settingsMode == "add" && m.form != nil {
		return true
	}
	return false
}

// notify replaces the current notification
func (m *model) notify(n dapp.Notification) {
	if n.IsZero() {
		return
	}
	m.notice = n
	m.noticeTime = time.Now()
}

// connect starts a wallet connection against the active endpoint
func (m *model) connect() tea.Cmd {
	if m.connecting || m.conn.Connected {
		return nil
	}
	url := m.cfg.ActiveRPC(m.settings.RPCURL)
	if url == "" {
		m.notify(dapp.Failure(wallet.ErrNoRPC.Error()))
		return nil
	}
	m.connecting = true
	m.connectSeq++
	m.addLog("info", fmt.Sprintf("Connecting to `%s`", m.rpcName(url)))
	return connectWallet(m.connectSeq, m.walletOptions(url))
}

// closeSession releases s, or parks it until the in-flight write resolves
func (m *model) closeSession(s *wallet.Session) {
	if s == nil {
		return
	}
	if m.tracker.Status() == dapp.StatusPending {
		m.retired = append(m.retired, s)
		return
	}
	s.Close()
}

// releaseRetired closes parked sessions once no write is in flight
func (m *model) releaseRetired() {
	if m.tracker.Status() == dapp.StatusPending {
		return
	}
	for _, s := range m.retired {
		s.Close()
	}
	m.retired = nil
}

// contractAddress is the contract bound to the session, or the configured one
func (m model) contractAddress() common.Address {
	if m.session != nil && m.session.Contract != nil {
		return m.session.Contract.Address()
	}
	return m.settings.ContractAddress
}

// applySession installs a fresh wallet session and triggers the automatic read
func (m *model) applySession(s *wallet.Session) tea.Cmd {
	if m.session != nil && m.session != s {
		m.closeSession(m.session)
	}
	m.session = s
	m.conn = s.Connection
	m.reader.SetCaller(s.Contract)
	m.submitter.SetSetter(s.Contract)

	m.addLog("success", fmt.Sprintf("Connected to `%s` (chain %d)", m.rpcName(s.URL), m.conn.ChainID))
	if m.conn.Account == nil {
		m.addLog("info", "No signing key loaded, session is read-only")
	}
	if !m.guard.IsAuthorized(m.conn.ChainID) {
		m.addLog("info", fmt.Sprintf("Wallet is on chain %d, expected %d", m.conn.ChainID, m.guard.Expected))
		m.notify(dapp.Failure(dapp.MsgWrongNetwork))
	}
	return m.syncReader()
}

// disconnect drops the session. In-flight writes keep running; their outcome
// still lands in the tracker but is no longer shown.
func (m *model) disconnect() {
	if m.session != nil {
		m.closeSession(m.session)
		m.addLog("info", "Wallet disconnected")
	}
	if m.connecting {
		// drop the result of the attempt in flight
		m.connectSeq++
	}
	m.session = nil
	m.conn = dapp.Connection{}
	m.connecting = false
	m.reader.Sync(m.conn)
	m.reader.SetCaller(nil)
	m.submitter.SetSetter(nil)
	m.inputFocused = false
	m.input.Blur()
	m.showQR = false
}

// syncReader issues the automatic read when the connection became ready
func (m *model) syncReader() tea.Cmd {
	if read, ok := m.reader.Sync(m.conn); ok {
		return readValue(m.ctx, read)
	}
	return nil
}

// refresh re-reads the value on demand
func (m *model) refresh() tea.Cmd {
	read, ok := m.reader.Refresh(m.conn)
	if !ok {
		if m.conn.Connected && !m.guard.IsAuthorized(m.conn.ChainID) {
			m.notify(dapp.Failure(dapp.MsgWrongNetwork))
		}
		return nil
	}
	return readValue(m.ctx, read)
}

// submitInput hands the input text to the submitter
func (m *model) submitInput() tea.Cmd {
	h, err := m.submitter.Submit(m.conn, dapp.PendingInput{Text: m.input.Value()})
	if err != nil {
		switch {
		case errors.Is(err, dapp.ErrInvalidInput):
			m.notify(dapp.Failure(dapp.MsgInvalidInput))
		case errors.Is(err, dapp.ErrNetworkMismatch):
			m.notify(dapp.Failure(dapp.MsgWrongNetwork))
		case errors.Is(err, dapp.ErrNotConnected):
			m.notify(dapp.Failure("Connect a wallet first"))
		case errors.Is(err, dapp.ErrNoAccount):
			m.notify(dapp.Failure("No signing key (set " + config.EnvPrivateKey + ")"))
		}
		return nil
	}

	m.notify(dapp.Info(dapp.MsgSubmitted))
	m.addLog("info", fmt.Sprintf("Submitting setValue(%s)", h.Value))

	if m.cfg.SkipSigningPrompt {
		return sendTransaction(m.ctx, h)
	}
	m.pending = h
	m.inputFocused = false
	m.input.Blur()
	m.createSignForm(h)
	return nil
}

// finishSigning sends or declines the submission behind the signing prompt
func (m *model) finishSigning(approved bool) tea.Cmd {
	h := m.pending
	m.pending = nil
	m.signForm = nil
	if h == nil {
		return nil
	}
	if approved {
		return sendTransaction(m.ctx, h)
	}
	return declineTransaction(h)
}

// applyOutcome folds a submission outcome into the tracker and the screen
func (m *model) applyOutcome(o dapp.Outcome) tea.Cmd {
	fx, ok := m.tracker.Resolve(o)
	m.releaseRetired()
	if !ok {
		return nil
	}

	tx := m.tracker.Transaction()
	if tx.Status == dapp.StatusError {
		m.addLog("error", fmt.Sprintf("setValue(%s) failed: %s", tx.RequestedValue, tx.Kind))
	} else {
		m.addLog("success", fmt.Sprintf("setValue(%s) sent: `%s`", tx.RequestedValue, tx.TxHash.Hex()))
	}

	// session gone: keep the slot, render nothing
	if !m.conn.Connected {
		return nil
	}

	if fx.ClearInput {
		m.input.SetValue("")
	}
	m.notify(fx.Notice)
	if fx.Refresh {
		if read, ok := m.reader.Refresh(m.conn); ok {
			return readValue(m.ctx, read)
		}
	}
	return nil
}

// qrURI builds the EIP-681 link for the current input, or "" when invalid
func (m model) qrURI() string {
	v, err := dapp.PendingInput{Text: m.input.Value()}.Parse()
	if err != nil {
		return ""
	}
	return helpers.SetValueURI(m.contractAddress(), dapp.FujiChainID, v)
}

// saveConfig persists the UI preferences
func (m *model) saveConfig() {
	if err := config.Save(m.configPath, m.cfg); err != nil {
		m.addLog("error", fmt.Sprintf("Saving config failed: `%s`", err.Error()))
	}
}

// -------------------- FORMS --------------------

// huh writes results through pointers, which must outlive model copies
var (
	tempSignApproved bool
	tempRPCFormName  string
	tempRPCFormURL   string
)

// createSignForm builds the wallet signing prompt for h
func (m *model) createSignForm(h *dapp.PendingHandle) {
	tempSignApproved = true

	from := "—"
	if m.conn.Account != nil {
		from = helpers.ShortenAddr(m.conn.Account.Hex())
	}

	m.signForm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Sign transaction?").
				Description(fmt.Sprintf("setValue(%s)\ncontract %s\nfrom %s on chain %d",
					helpers.FormatValue(h.Value),
					helpers.ShortenAddr(m.contractAddress().Hex()),
					from,
					m.conn.ChainID)).
				Affirmative("Sign").
				Negative("Reject").
				Value(&tempSignApproved),
		),
	).WithTheme(huh.ThemeCatppuccin())

	m.signForm.Init()
}

// createAddRPCForm builds the form for a new RPC endpoint
func (m *model) createAddRPCForm() {
	tempRPCFormName = ""
	tempRPCFormURL = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("RPC Name").
				Description("A friendly name for this RPC endpoint").
				Value(&tempRPCFormName).
				Placeholder("Fuji Public"),

			huh.NewInput().
				Title("RPC URL").
				Description("The complete RPC URL (https://...)").
				Value(&tempRPCFormURL).
				Placeholder("https://api.avax-test.network/ext/bc/C/rpc"),
		),
	).WithTheme(huh.ThemeCatppuccin())

	m.form.Init()
}
