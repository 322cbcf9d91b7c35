package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/glyphart/internal/upload"
)

// imageExtensions limits what the picker offers. Anything else is shown
// disabled; the controller itself does not validate the type.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp"}

const (
	// pickerMarginBottom matches the filepicker's own AutoHeight margin.
	pickerMarginBottom = 5
	// pickerChrome is the title and directory line drawn above the list.
	pickerChrome = 2
)

func newPicker(startDir string) filepicker.Model {
	fp := filepicker.New()
	fp.AllowedTypes = imageExtensions
	fp.ShowPermissions = false
	fp.ShowSize = true
	fp.CurrentDirectory = pickerStartDir(startDir)
	return fp
}

func pickerStartDir(dir string) string {
	if dir = strings.TrimSpace(dir); dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

func stylePicker(fp *filepicker.Model, theme Theme) {
	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Info))
	fp.Styles.File = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Text))
	fp.Styles.DisabledFile = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Faint))
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Warning)).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Muted)).Width(7).Align(lipgloss.Right)
	fp.Styles.EmptyDirectory = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Muted)).PaddingLeft(2).SetString("No files found.")
}

// handlePickerKey routes keys to the file picker. The pick key closes it.
func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "o" {
		m.currentView = ViewMain
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.currentView = ViewMain
		return m, tea.Batch(cmd, loadInputCmd(path))
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.statusLine = truncateMiddle(path, max(20, m.width-30)) + " is not a supported image"
	}
	return m, cmd
}

func (m Model) renderPicker() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Pick an image"))
	b.WriteString(styles.FaintText.Render("  enter select · esc up · o close"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(truncateMiddle(m.picker.CurrentDirectory, max(10, m.width-2))))
	b.WriteString("\n")
	b.WriteString(m.picker.View())

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.bodyHeight()).
		MaxHeight(m.bodyHeight()).
		Render(b.String())
}

func pickerHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "up")),
		key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "close")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func inputName(in *upload.Input) string {
	if in == nil {
		return ""
	}
	return in.Name
}
