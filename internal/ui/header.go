package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/five82/glyphart/internal/state"
)

const logoText = "glyphart"

// healthLabel maps the poller snapshot to a badge key.
func healthLabel(snap state.Snapshot) string {
	switch {
	case snap.IsOffline():
		return "offline"
	case snap.HasHealth && snap.ConsecutiveFailures == 0:
		return "online"
	default:
		return "checking"
	}
}

// renderHeader renders the logo, service health and endpoint on one line.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	health := healthLabel(m.snapshot)
	parts := []string{
		bg.Render(logoText, styles.Logo),
		styles.StatusStyle(health).Render(health),
	}

	if m.snapshot.HasHealth && health == "online" && m.snapshot.Health.Status != "" {
		parts = append(parts, bg.Render(m.snapshot.Health.Status, styles.MutedText))
	}
	if m.snapshot.LastError != nil && health != "online" {
		parts = append(parts, bg.Render(truncate(m.snapshot.LastError.Error(), 48), styles.DangerText))
	}
	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, bg.Render("checked "+humanize.Time(m.snapshot.LastUpdated), styles.FaintText))
	}
	if m.width >= LayoutEndpointWidth && m.endpoint != "" {
		parts = append(parts, bg.Render(truncateMiddle(m.endpoint, 40), styles.AccentText))
	}

	line := bg.Space() + bg.Join(parts, "  ")
	return bg.FillLine(line, m.width)
}

// renderCommandBar renders the short key help for the current view.
func (m Model) renderCommandBar() string {
	bar := m.help.ShortHelpView(m.keys.ShortHelp())
	switch m.currentView {
	case ViewPicker:
		bar = m.help.ShortHelpView(pickerHelp())
	case ViewLogs:
		bar = m.help.ShortHelpView(logsHelp(m.keys))
	}
	return lipgloss.NewStyle().Width(m.width).MaxHeight(1).PaddingLeft(1).Render(bar)
}

// renderStatusLine renders the transient status message or the phase.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	text := strings.TrimSpace(m.statusLine)
	style := styles.MutedText
	if text == "" && m.controller != nil {
		st := m.controller.State()
		switch {
		case m.inFlight():
			text = "Uploading " + inputName(st.Input) + "..."
		case st.HasResult():
			text = "Converted " + inputName(st.Input)
			style = styles.SuccessText
		case st.Input != nil:
			text = "Ready to convert " + inputName(st.Input)
		}
	}
	return bg.FillLine(bg.Space()+bg.Render(truncate(text, max(1, m.width-2)), style), m.width)
}
