package main

import (
	"fmt"
	"strings"

	"simple-storage-tui/config"
	"simple-storage-tui/dapp"
	"simple-storage-tui/helpers"
	logview "simple-storage-tui/views/log"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// -------------------- UPDATE --------------------

// Update implements tea.Model interface and handles all state changes
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Signing prompt sees every message while open and takes every key
	if m.signForm != nil {
		keyMsg, isKey := msg.(tea.KeyMsg)
		switch {
		case isKey && keyMsg.String() == "esc":
			return m, m.finishSigning(false)
		case isKey && keyMsg.String() == "ctrl+c":
			if m.pending != nil {
				m.tracker.Resolve(m.pending.Decline())
			}
			m.pending = nil
			m.signForm = nil
			return m, tea.Quit
		}
		form, formCmd := m.signForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.signForm = f
			switch m.signForm.State {
			case huh.StateCompleted:
				return m, m.finishSigning(tempSignApproved)
			case huh.StateAborted:
				return m, m.finishSigning(false)
			}
		}
		if isKey {
			return m, formCmd
		}
		_, cmd := m.update(msg)
		return m, tea.Batch(formCmd, cmd)
	}
	return m.update(msg)
}

func (m *model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle huh form updates for the settings page
	if m.activePage == config.PageSettings && m.settingsMode == "add" && m.form != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
			m.settingsMode = "list"
			m.form = nil
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f

			if m.form.State == huh.StateCompleted {
				name := strings.TrimSpace(tempRPCFormName)
				url := strings.TrimSpace(tempRPCFormURL)
				if name != "" && url != "" {
					m.cfg.RPCURLs = append(m.cfg.RPCURLs, config.RPCUrl{Name: name, URL: url, Active: len(m.cfg.RPCURLs) == 0})
					m.saveConfig()
					m.addLog("success", fmt.Sprintf("Added RPC endpoint: `%s` (%s)", name, url))
				}
				m.settingsMode = "list"
				m.form = nil
				return m, nil
			}

			if m.form.State == huh.StateAborted {
				m.settingsMode = "list"
				m.form = nil
				return m, nil
			}
		}
		return m, cmd
	}

	switch msg := msg.(type) {

	case logInitMsg:
		if !m.logEnabled {
			return m, nil
		}
		m.logger = log.NewWithOptions(m.logBuffer, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
		})
		m.logger.SetLevel(log.DebugLevel)
		m.logger.SetStyles(&log.Styles{
			Timestamp: lipgloss.NewStyle().Foreground(cMuted),
			Caller:    lipgloss.NewStyle().Faint(true),
			Prefix:    lipgloss.NewStyle().Bold(true).Foreground(cAccent2),
			Message:   lipgloss.NewStyle().Foreground(cText),
			Key:       lipgloss.NewStyle().Foreground(cAccent),
			Value:     lipgloss.NewStyle().Foreground(cText),
			Separator: lipgloss.NewStyle().Faint(true),
			Levels: map[log.Level]lipgloss.Style{
				log.DebugLevel: lipgloss.NewStyle().Foreground(cMuted).SetString("DEBUG"),
				log.InfoLevel:  lipgloss.NewStyle().Foreground(cAccent2).SetString("INFO"),
				log.WarnLevel:  lipgloss.NewStyle().Foreground(cWarn).SetString("WARN"),
				log.ErrorLevel: lipgloss.NewStyle().Foreground(cDanger).SetString("ERROR"),
			},
		})
		m.logReady = true
		m.addLog("info", "Logger enabled")
		for _, r := range m.badRules {
			m.addLog("warning", fmt.Sprintf("Ignoring error rule %q: unknown kind %q", r.Pattern, r.Kind))
		}
		return m, nil

	case autoConnectMsg:
		return m, m.connect()

	case walletConnectedMsg:
		if msg.seq != m.connectSeq {
			// superseded attempt
			if msg.session != nil {
				msg.session.Close()
			}
			return m, nil
		}
		m.connecting = false
		if msg.err != nil {
			m.addLog("error", fmt.Sprintf("Wallet connection failed: `%s`", msg.err.Error()))
			m.notify(dapp.Failure("Wallet connection failed"))
			return m, nil
		}
		return m, m.applySession(msg.session)

	case valueLoadedMsg:
		v := m.reader.Complete(msg.res)
		if v.Loading {
			// superseded by a newer read
			return m, nil
		}
		if v.Err != nil {
			m.addLog("warning", fmt.Sprintf("getValue failed: `%s`", v.Err.Error()))
		} else if msg.res.Err == nil {
			m.addLog("info", fmt.Sprintf("getValue = %s", helpers.FormatValue(v.Raw)))
		}
		return m, nil

	case txOutcomeMsg:
		return m, m.applyOutcome(msg.outcome)

	case clipboardCopiedMsg:
		m.notify(dapp.Info(dapp.MsgCopied))
		return m, nil

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		m.logViewport.Width = helpers.Max(0, m.w-6)
		m.logViewport.Height = logview.Height(m.h)
		m.updateLogViewport()
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		if m.logEnabled && !m.logReady {
			m.logSpinner, cmd = m.logSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Forward remaining messages (cursor blink) to the focused input
	if m.inputFocused {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey dispatches key presses
func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// QR overlay
	if m.showQR {
		switch msg.String() {
		case "esc", "x", "enter", "q":
			m.showQR = false
		}
		return m, nil
	}

	// Value input
	if m.inputFocused {
		switch msg.String() {
		case "enter":
			return m, m.submitInput()
		case "esc":
			m.inputFocused = false
			m.input.Blur()
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+v":
			if m.tracker.Status() == dapp.StatusPending {
				return m, nil
			}
			if text, err := clipboard.ReadAll(); err == nil {
				m.input.SetValue(strings.TrimSpace(text))
				m.input.CursorEnd()
			}
			return m, nil
		}
		// input is read-only while a transaction is pending
		if m.tracker.Status() == dapp.StatusPending {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	// Global keys
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "l":
		m.logEnabled = !m.logEnabled
		m.cfg.Logger = m.logEnabled
		m.saveConfig()
		if m.logEnabled && !m.logReady {
			return m, tea.Batch(initLogViewport(), m.logSpinner.Tick)
		}
		return m, nil
	case "pgup":
		if m.logEnabled {
			m.logViewport.HalfPageUp()
		}
		return m, nil
	case "pgdown":
		if m.logEnabled {
			m.logViewport.HalfPageDown()
		}
		return m, nil
	}

	switch m.activePage {
	case config.PageSettings:
		return m.handleSettingsKey(msg)
	default:
		return m.handleStorageKey(msg)
	}
}

// handleStorageKey handles keys on the contract page
func (m *model) handleStorageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c":
		return m, m.connect()

	case "d":
		if m.conn.Connected {
			m.disconnect()
		}
		return m, nil

	case "r":
		return m, m.refresh()

	case "y":
		if m.conn.Account != nil {
			return m, copyToClipboard(m.conn.Account.Hex())
		}
		return m, nil

	case "x":
		if !m.conn.Connected {
			return m, nil
		}
		if m.qrURI() == "" {
			m.notify(dapp.Failure(dapp.MsgInvalidInput))
			return m, nil
		}
		m.showQR = true
		return m, nil

	case "tab", "i", "enter":
		if !m.conn.Connected {
			return m, nil
		}
		m.inputFocused = true
		return m, m.input.Focus()

	case "s":
		m.activePage = config.PageSettings
		m.settingsMode = "list"
		return m, nil
	}
	return m, nil
}

// handleSettingsKey handles keys on the settings page
func (m *model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "s":
		m.activePage = config.PageStorage
		return m, nil

	case "up", "k":
		if m.selectedRPCIdx > 0 {
			m.selectedRPCIdx--
		}
		return m, nil

	case "down", "j":
		if m.selectedRPCIdx < len(m.cfg.RPCURLs)-1 {
			m.selectedRPCIdx++
		}
		return m, nil

	case "enter":
		if m.selectedRPCIdx >= len(m.cfg.RPCURLs) {
			return m, nil
		}
		for i := range m.cfg.RPCURLs {
			m.cfg.RPCURLs[i].Active = i == m.selectedRPCIdx
		}
		m.saveConfig()
		m.addLog("info", fmt.Sprintf("Active RPC set to `%s`", m.cfg.RPCURLs[m.selectedRPCIdx].Name))
		// reconnect against the new endpoint
		m.disconnect()
		return m, m.connect()

	case "a":
		m.settingsMode = "add"
		m.createAddRPCForm()
		return m, nil

	case "d", "delete", "backspace":
		if m.selectedRPCIdx >= len(m.cfg.RPCURLs) {
			return m, nil
		}
		removed := m.cfg.RPCURLs[m.selectedRPCIdx]
		m.cfg.RPCURLs = append(m.cfg.RPCURLs[:m.selectedRPCIdx], m.cfg.RPCURLs[m.selectedRPCIdx+1:]...)
		if removed.Active && len(m.cfg.RPCURLs) > 0 {
			m.cfg.RPCURLs[0].Active = true
		}
		if m.selectedRPCIdx >= len(m.cfg.RPCURLs) {
			m.selectedRPCIdx = helpers.Max(0, len(m.cfg.RPCURLs)-1)
		}
		m.saveConfig()
		m.addLog("info", fmt.Sprintf("Removed RPC endpoint: `%s`", removed.Name))
		return m, nil

	case "p":
		m.cfg.SkipSigningPrompt = !m.cfg.SkipSigningPrompt
		m.saveConfig()
		return m, nil

	case "w":
		// applies from the next connection
		m.cfg.WaitReceipt = !m.cfg.WaitReceipt
		m.saveConfig()
		return m, nil
	}
	return m, nil
}
