package main

import (
	"strings"

	"simple-storage-tui/config"
	"simple-storage-tui/dapp"
	"simple-storage-tui/helpers"
	"simple-storage-tui/styles"
	logview "simple-storage-tui/views/log"
	"simple-storage-tui/views/network"
	"simple-storage-tui/views/settings"
	"simple-storage-tui/views/storage"
	walletview "simple-storage-tui/views/wallet"

	"github.com/charmbracelet/lipgloss"
)

// -------------------- VIEW --------------------

func (m *model) globalHeader() string {
	availableWidth := helpers.Max(0, m.w-8) // Account for panel padding

	// Contract on the left
	contract := lipgloss.NewStyle().
		Foreground(cMuted).
		Render("Contract: ") +
		helpers.FadeString(helpers.ShortenAddr(m.contractAddress().Hex()), "#F25D94", "#EDFF82")

	// Network badge on the right
	badge := network.Badge(m.conn, m.guard)
	if m.connecting {
		badge = lipgloss.NewStyle().Foreground(cWarn).Render("○ Connecting...")
	}

	// Center title
	titleText := lipgloss.NewStyle().
		Bold(true).
		Render(helpers.FadeString("simple storage", "#7EE787", "#82CFFD"))

	contractWidth := lipgloss.Width(contract)
	badgeWidth := lipgloss.Width(badge)
	titleWidth := lipgloss.Width(titleText)
	totalOtherWidth := contractWidth + badgeWidth + titleWidth

	var headerLine string
	if totalOtherWidth+4 > availableWidth {
		// Not enough space, stack vertically
		headerLine = contract + "\n" + titleText + "\n" + badge
	} else {
		remainingSpace := availableWidth - totalOtherWidth
		leftPadding := remainingSpace / 2
		rightPadding := remainingSpace - leftPadding

		headerLine = contract +
			strings.Repeat(" ", helpers.Max(1, leftPadding)) +
			titleText +
			strings.Repeat(" ", helpers.Max(1, rightPadding)) +
			badge
	}

	subtitle := styles.MutedStyle.Render("Interact with smart contract on " + network.Label)

	separator := lipgloss.NewStyle().
		Foreground(cBorder).
		Render(strings.Repeat("─", availableWidth))

	return headerLine + "\n" + subtitle + "\n" + separator
}

// renderNotice renders the current notification toast, if still visible
func (m *model) renderNotice() string {
	if !m.noticeVisible() {
		return ""
	}
	color := cAccent2
	icon := "ℹ"
	switch m.notice.Kind {
	case dapp.NoticeSuccess:
		color, icon = cAccent, "✓"
	case dapp.NoticeError:
		color, icon = cDanger, "✗"
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Foreground(color).
		Padding(0, 1).
		Render(icon + " " + m.notice.Message)
}

// renderStoragePage renders the wallet panel next to the contract panel
func (m *model) renderStoragePage() string {
	fullWidth := helpers.Max(0, m.w-2)

	if m.signForm != nil {
		content := styles.TitleStyle.Render("Wallet Signature Request") + "\n\n" + m.signForm.View()
		return panelStyle.Width(fullWidth).BorderForeground(cAccent2).Render(content)
	}

	if m.showQR {
		return panelStyle.Width(fullWidth).Render(storage.RenderQR(m.qrURI()))
	}

	url := ""
	if m.session != nil {
		url = m.rpcName(m.session.URL)
	}
	walletContent := walletview.Render(m.conn, m.connecting, url, m.spin.View())

	ready := m.conn.Ready(m.guard)
	pending := m.tracker.Status() == dapp.StatusPending

	contractLines := []string{
		storage.RenderValue(m.reader.Value(), ready, m.spin.View()),
	}
	if m.conn.Connected {
		if status := storage.RenderStatus(m.tracker.Transaction()); status != "" {
			contractLines = append(contractLines, "", status)
		}
		inputView := m.input.View()
		if pending {
			inputView = styles.MutedStyle.Render(m.input.Prompt + m.input.Value())
		}
		contractLines = append(contractLines, "", storage.RenderForm(inputView, m.submitter.CanSubmit(m.conn) && !pending, pending))
	}
	contractContent := strings.Join(contractLines, "\n")

	// Split view when there's room for both panels
	if m.w >= 90 {
		leftWidth := helpers.Max(0, (m.w-4)*2/5)
		rightWidth := helpers.Max(0, m.w-4-leftWidth)
		left := panelStyle.Width(leftWidth).Render(walletContent)
		right := panelStyle.Width(rightWidth).Render(contractContent)
		return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Width(fullWidth).Render(walletContent),
		panelStyle.Width(fullWidth).Render(contractContent),
	)
}

func (m *model) View() string {
	headerPanel := panelStyle.Width(helpers.Max(0, m.w-2)).Render(m.globalHeader())

	var pageContent string
	var nav string

	switch m.activePage {
	case config.PageSettings:
		content := settings.Render(m.cfg, m.selectedRPCIdx)
		if m.settingsMode == "add" && m.form != nil {
			content = styles.TitleStyle.Render("Add RPC Endpoint") + "\n\n" + m.form.View()
		}
		pageContent = panelStyle.Width(helpers.Max(0, m.w-2)).Render(content)
		nav = settings.Nav(m.w, m.settingsMode)

	default:
		pageContent = m.renderStoragePage()
		nav = storage.Nav(m.w, m.inputFocused, m.conn.Connected)
	}

	sections := []string{headerPanel, pageContent}
	if notice := m.renderNotice(); notice != "" {
		sections = append(sections, notice)
	}
	sections = append(sections, nav)

	if m.logEnabled {
		sections = append(sections, logview.Render(m.w, m.h, m.logReady, m.logSpinner.View(), m.logViewport))
	}

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
