package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"simple-storage-tui/config"
	"simple-storage-tui/dapp"
	"simple-storage-tui/styles"
	"simple-storage-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// -------------------- MODEL --------------------

// model represents the application state following The Elm Architecture
type model struct {
	w, h int

	activePage config.Page

	settings   config.Settings
	cfg        config.Config
	configPath string
	badRules   []config.ErrorRule

	// contract interaction core
	guard     dapp.Guard
	reader    *dapp.Reader
	tracker   *dapp.Tracker
	submitter *dapp.Submitter

	// wallet state
	session    *wallet.Session
	conn       dapp.Connection
	connecting bool
	connectSeq uint64
	// sessions dropped while a write was in flight, closed once it resolves
	retired    []*wallet.Session

	// base context for remote calls, cancelled on exit
	ctx    context.Context
	cancel context.CancelFunc

	// value input (PendingInput text)
	input        textinput.Model
	inputFocused bool

	// signing prompt for an accepted submission
	pending  *dapp.PendingHandle
	signForm *huh.Form

	// notification toast
	notice     dapp.Notification
	noticeTime time.Time

	// EIP-681 QR panel
	showQR bool

	spin spinner.Model

	// settings state
	settingsMode   string // "list", "add"
	selectedRPCIdx int
	form           *huh.Form

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuffer   *strings.Builder
	logViewport viewport.Model
	logReady    bool
	logSpinner  spinner.Model
}

// noticeTTL is how long a notification stays on screen
const noticeTTL = 4 * time.Second

// -------------------- INIT --------------------

// newModel creates and initializes a new model with configuration from disk
func newModel(settings config.Settings, configPath string) model {
	// load config
	cfg := config.LoadOrCreate(configPath)

	// If no RPC in config but ENV is set, use ENV
	if len(cfg.RPCURLs) == 0 && settings.RPCURL != "" {
		cfg.RPCURLs = []config.RPCUrl{{Name: "Default", URL: settings.RPCURL, Active: true}}
	}

	rules, badRules := cfg.Rules()
	guard := dapp.NewGuard(dapp.FujiChainID)
	tracker := dapp.NewTracker(dapp.NewClassifier(rules...))

	// input for the new value
	in := textinput.New()
	in.Placeholder = "New value"
	in.Prompt = "Value: "
	in.PromptStyle = lipgloss.NewStyle().Foreground(styles.CAccent)
	in.TextStyle = lipgloss.NewStyle().Foreground(styles.CText)
	in.Cursor.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)
	in.CharLimit = 78 // digits of 2^256-1
	in.Width = 40

	// spinner
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	// Initialize log viewport
	vp := viewport.New(0, 20) // Will be resized in Update on first WindowSizeMsg
	vp.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)

	// Initialize log spinner
	logSpin := spinner.New()
	logSpin.Spinner = spinner.Dot
	logSpin.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	ctx, cancel := context.WithCancel(context.Background())

	return model{
		activePage:   config.PageStorage,
		settings:     settings,
		cfg:          cfg,
		configPath:   configPath,
		badRules:     badRules,
		guard:        guard,
		reader:       dapp.NewReader(guard, nil),
		tracker:      tracker,
		submitter:    dapp.NewSubmitter(guard, nil, tracker),
		ctx:          ctx,
		cancel:       cancel,
		input:        in,
		spin:         sp,
		settingsMode: "list",
		logEnabled:   cfg.Logger,
		logViewport:  vp,
		logBuffer:    &strings.Builder{},
		logSpinner:   logSpin,
	}
}

// Init implements tea.Model interface and returns initial commands
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.logEnabled {
		cmds = append(cmds, initLogViewport(), m.logSpinner.Tick)
	}
	// connect if an endpoint is configured
	if m.cfg.ActiveRPC(m.settings.RPCURL) != "" {
		cmds = append(cmds, func() tea.Msg { return autoConnectMsg{} })
	}
	return tea.Batch(cmds...)
}

// walletOptions builds the connection options for url
func (m model) walletOptions(url string) wallet.Options {
	return wallet.Options{
		RPCURL:      url,
		Contract:    m.settings.ContractAddress,
		PrivateKey:  m.settings.PrivateKey,
		WaitReceipt: m.cfg.WaitReceipt,
	}
}

// rpcName returns the configured name of url
func (m model) rpcName(url string) string {
	for _, r := range m.cfg.RPCURLs {
		if r.URL == url && r.Name != "" {
			return r.Name
		}
	}
	return url
}

// noticeVisible reports whether the current notification should be drawn
func (m model) noticeVisible() bool {
	return !m.notice.IsZero() && time.Since(m.noticeTime) < noticeTTL
}

func (m model) String() string {
	return fmt.Sprintf("model{page=%d tx=%s chain=%d}", m.activePage, m.tracker.Status(), m.conn.ChainID)
}
