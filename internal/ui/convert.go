package ui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/five82/glyphart/internal/preview"
	"github.com/five82/glyphart/internal/upload"
)

const (
	buttonIdle       = "Upload & Convert"
	buttonProcessing = "Processing..."
)

// Rows of text above the preview inside each panel.
const (
	inputPanelReserved  = 6
	resultPanelReserved = 3
)

// decodePreview decodes image bytes for display. The note explains why no
// preview is shown.
func decodePreview(data []byte, mimeType string) (image.Image, string) {
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, "No preview for " + mimeType
	}
	img, _, err := preview.Decode(data)
	if err != nil {
		return nil, "Preview unavailable"
	}
	return img, ""
}

// panelBoxes returns outer width and height of the input and result panels.
// Wide terminals place them side by side; narrow ones stack them.
func (m Model) panelBoxes() (w, h int, split bool) {
	body := m.bodyHeight()
	if m.width >= LayoutSplitWidth {
		return m.width / 2, body, true
	}
	return m.width, body / 2, false
}

// previewCells converts a panel box into the cell area left for a preview.
func previewCells(panelW, panelH, reserved int) (int, int) {
	// Border plus horizontal padding, border plus reserved rows.
	return max(0, panelW-4), max(0, panelH-2-reserved)
}

// renderPreviews re-renders cached previews after size, theme or image changes.
func (m *Model) renderPreviews() {
	if !m.ready {
		return
	}
	w, h, _ := m.panelBoxes()
	bg := m.theme.BackgroundColor()

	m.inputPreview = ""
	if m.inputImage != nil {
		cols, rows := previewCells(w, h, inputPanelReserved)
		m.inputPreview = preview.Render(m.inputImage, cols, rows, bg)
	}

	m.resultPreview = ""
	if m.resultImage != nil {
		cols, rows := previewCells(w, h, resultPanelReserved)
		m.resultPreview = preview.Render(m.resultImage, cols, rows, bg)
	}
}

func (m Model) renderConvert() string {
	w, h, split := m.panelBoxes()
	st := upload.State{}
	if m.controller != nil {
		st = m.controller.State()
	}

	input := m.renderInputPanel(st, w, h)
	result := m.renderResultPanel(st, w, h)
	if split {
		return lipgloss.JoinHorizontal(lipgloss.Top, input, result)
	}
	return lipgloss.JoinVertical(lipgloss.Left, input, result)
}

func (m Model) renderInputPanel(st upload.State, w, h int) string {
	styles := m.theme.Styles()
	innerW := max(1, w-4)

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Input"))
	b.WriteString("\n")

	if st.Input == nil {
		b.WriteString(styles.MutedText.Render("No file selected. Press o to pick an image."))
		b.WriteString("\n\n")
	} else {
		b.WriteString(styles.Text.Render(truncateMiddle(st.Input.Name, innerW)))
		b.WriteString("\n")
		meta := fmt.Sprintf("%s · %s", st.Input.MIMEType, humanize.IBytes(uint64(st.Input.Size())))
		b.WriteString(styles.MutedText.Render(truncate(meta, innerW)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderButton(st))
	b.WriteString("\n\n")

	switch {
	case m.inputPreview != "":
		b.WriteString(m.inputPreview)
	case m.inputNote != "":
		b.WriteString(styles.FaintText.Render(m.inputNote))
	}

	return m.panel(b.String(), w, h, m.currentView == ViewMain && !st.HasResult())
}

// renderButton draws the submit action. It reads "Processing..." while a
// request is in flight and is dimmed whenever submitting would be a no-op.
func (m Model) renderButton(st upload.State) string {
	styles := m.theme.Styles()
	if m.inFlight() {
		return styles.ButtonDisabled.Render(m.spinner.View() + " " + buttonProcessing)
	}
	if st.CanSubmit() {
		return styles.Button.Render(buttonIdle)
	}
	return styles.ButtonDisabled.Render(buttonIdle)
}

func (m Model) renderResultPanel(st upload.State, w, h int) string {
	styles := m.theme.Styles()
	innerW := max(1, w-4)

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Result"))
	b.WriteString(" ")
	b.WriteString(styles.StatusStyle(st.Phase.String()).Render(st.Phase.String()))
	b.WriteString("\n")

	switch {
	case st.Artifact != nil:
		name := st.Artifact.SourceName
		if name == "" && st.Input != nil {
			name = st.Input.Name
		}
		b.WriteString(styles.Text.Render(truncateMiddle(name, innerW)))
		b.WriteString(" ")
		b.WriteString(styles.FaintText.Render(truncateMiddle("s saves to "+m.config.DownloadPath(), max(10, innerW-len([]rune(name))-1))))
		b.WriteString("\n\n")
		if m.resultPreview != "" {
			b.WriteString(m.resultPreview)
		} else if m.resultNote != "" {
			b.WriteString(styles.FaintText.Render(m.resultNote))
		}
	case st.Phase == upload.PhaseFailed:
		b.WriteString(styles.DangerText.Render(truncate(st.Message, innerW)))
		b.WriteString("\n")
	case m.inFlight():
		b.WriteString(styles.MutedText.Render("Waiting for the service..."))
		b.WriteString("\n")
	default:
		b.WriteString(styles.FaintText.Render("Nothing converted yet."))
		b.WriteString("\n")
	}

	return m.panel(b.String(), w, h, st.HasResult())
}

func (m Model) panel(content string, w, h int, focused bool) string {
	styles := m.theme.Styles()
	style := styles.Panel
	if focused {
		style = styles.PanelFocus
	}
	// Width and Height exclude the border in lipgloss.
	return style.
		Width(max(0, w-2)).
		Height(max(0, h-2)).
		MaxHeight(max(0, h)).
		Render(content)
}
