package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/glyphart/internal/logtail"
)

type logLinesMsg struct {
	lines []string
	err   error
}

// refreshLogs reads the tail of the log file off the UI goroutine.
func (m Model) refreshLogs() tea.Cmd {
	path := m.config.LogFile
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogTailLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	m.logErr = msg.err
	if msg.err != nil {
		return
	}
	follow := m.logViewport.AtBottom() || len(m.logEntries) == 0
	m.logEntries = logtail.ParseLines(msg.lines)
	m.logViewport.SetContent(m.formatLogEntries())
	if follow {
		m.logViewport.GotoBottom()
	}
}

func (m *Model) resizeLogViewport() {
	m.logViewport.Width = m.width
	m.logViewport.Height = max(0, m.bodyHeight()-1)
	if len(m.logEntries) > 0 {
		m.logViewport.SetContent(m.formatLogEntries())
	}
}

// handleLogsKey processes keyboard input for the log view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Logs):
		m.currentView = ViewMain
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m Model) formatLogEntries() string {
	styles := m.theme.Styles()
	lines := make([]string, 0, len(m.logEntries))
	for _, e := range m.logEntries {
		if e.Level == "" {
			lines = append(lines, styles.MutedText.Render(e.Raw))
			continue
		}
		var b strings.Builder
		b.WriteString(styles.FaintText.Render(e.Time.Local().Format("15:04:05")))
		b.WriteString(" ")
		b.WriteString(m.levelStyle(e.Level).Render(e.Level))
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(e.Message))
		if e.Fields != "" {
			b.WriteString(" ")
			b.WriteString(styles.InfoText.Render(e.Fields))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func (m Model) levelStyle(level string) lipgloss.Style {
	styles := m.theme.Styles()
	switch level {
	case "ERR", "FTL", "PNC":
		return styles.DangerText
	case "WRN":
		return styles.WarningText.Bold(true)
	case "INF":
		return styles.SuccessText
	default:
		return styles.MutedText
	}
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles()

	var title strings.Builder
	title.WriteString(styles.AccentText.Bold(true).Render("Logs"))
	title.WriteString(" ")
	title.WriteString(styles.FaintText.Render(truncateMiddle(m.config.LogFile, max(10, m.width-8))))

	var body string
	switch {
	case m.logErr != nil:
		body = styles.DangerText.Render(m.logErr.Error())
	case len(m.logEntries) == 0:
		body = styles.MutedText.Render("No log output yet.")
	default:
		body = m.logViewport.View()
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.bodyHeight()).
		MaxHeight(m.bodyHeight()).
		Render(title.String() + "\n" + body)
}

func logsHelp(k keyMap) []key.Binding {
	return []key.Binding{k.Up, k.Top, k.PageUp, k.Escape, k.Quit}
}
