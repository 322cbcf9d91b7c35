package ui

import (
	"context"
	"errors"
	"image"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/five82/glyphart/internal/config"
	"github.com/five82/glyphart/internal/logtail"
	"github.com/five82/glyphart/internal/prefs"
	"github.com/five82/glyphart/internal/state"
	"github.com/five82/glyphart/internal/upload"
)

// View represents the current active view.
type View int

const (
	ViewMain View = iota
	ViewPicker
	ViewLogs
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *upload.Controller
	Notices    <-chan string
	Store      *state.Store
	Config     *config.Config
	Endpoint   string
	PollTick   time.Duration
	ThemeName  string
	StartDir   string
	PrefsPath  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	controller *upload.Controller
	notices    <-chan string
	store      *state.Store
	config     *config.Config
	endpoint   string
	prefsPath  string
	pollTick   time.Duration
	keys       keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	help        help.Model
	spinner     spinner.Model
	submitting  bool
	statusLine  string

	// Service health
	snapshot    state.Snapshot
	lastUpdated time.Time

	// File picker
	picker  filepicker.Model
	lastDir string

	// Previews
	inputImage    image.Image
	resultImage   image.Image
	inputPreview  string
	resultPreview string
	inputNote     string
	resultNote    string

	// Log view
	logViewport viewport.Model
	logEntries  []logtail.Entry
	logErr      error

	// Alerts
	modal          Modal
	pendingNotices []string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	cfg := opts.Config
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}

	m := Model{
		ctx:         ctx,
		controller:  opts.Controller,
		notices:     opts.Notices,
		store:       opts.Store,
		config:      cfg,
		endpoint:    opts.Endpoint,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		currentView: ViewMain,
		help:        help.New(),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		picker:      newPicker(opts.StartDir),
		lastDir:     opts.StartDir,
		logViewport: viewport.New(0, 0),
	}
	m.applyTheme()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.pollTick),
		m.picker.Init(),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.notices != nil {
		cmds = append(cmds, waitForNotice(m.notices))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.resizeLogViewport()
		m.renderPreviews()
		// The picker sizes itself from this message; give it the body height.
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(tea.WindowSizeMsg{
			Width:  msg.Width,
			Height: m.bodyHeight() - pickerChrome + pickerMarginBottom,
		})
		return m, cmd

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		return m, nil

	case spinner.TickMsg:
		if !m.inFlight() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case noticeMsg:
		m.pushNotice(string(msg))
		return m, waitForNotice(m.notices)

	case inputLoadedMsg:
		return m.handleInputLoaded(msg)

	case submitDoneMsg:
		return m.handleSubmitDone(msg)

	case savedMsg:
		return m.handleSaved(msg)

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil
	}

	// Directory reads and other picker-internal messages.
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Alerts are synchronous: nothing else reacts until dismissed.
	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
			m.popNotice()
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.currentView {
	case ViewPicker:
		return m.handlePickerKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		m.renderPreviews()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Pick):
		m.currentView = ViewPicker
		m.statusLine = ""
		return m, nil

	case key.Matches(msg, m.keys.Upload):
		return m.submit()

	case key.Matches(msg, m.keys.Save):
		if m.controller == nil {
			return m, nil
		}
		return m, saveCmd(m.controller, m.config.DownloadDir)

	case key.Matches(msg, m.keys.Logs):
		m.currentView = ViewLogs
		return m, m.refreshLogs()
	}

	return m, nil
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}

	if m.currentView == ViewLogs {
		cmds = append(cmds, m.refreshLogs())
	}

	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// submit starts an upload when the controller allows it. Pressing the key
// again while a request is in flight does nothing.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.controller == nil || m.submitting || !m.controller.CanSubmit() {
		return m, nil
	}
	m.submitting = true
	m.statusLine = ""
	m.resultImage = nil
	m.resultPreview = ""
	m.resultNote = ""
	return m, tea.Batch(submitCmd(m.ctx, m.controller), m.spinner.Tick)
}

func (m Model) handleInputLoaded(msg inputLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Warn().Err(msg.err).Str("path", msg.path).Msg("could not load input")
		m.pushNotice("Could not open " + filepath.Base(msg.path) + ": " + errorText(msg.err))
		return m, nil
	}

	if m.controller != nil {
		m.controller.Select(msg.input)
	}
	m.inputImage = msg.image
	m.inputNote = msg.note
	m.resultImage = nil
	m.resultNote = ""
	m.statusLine = ""
	m.lastDir = filepath.Dir(msg.input.Path)
	m.savePrefs()
	m.renderPreviews()
	return m, nil
}

func (m Model) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	if !msg.accepted {
		// The gate was closed; the running request owns the result panel.
		m.statusLine = "Already processing"
		return m, nil
	}
	if m.controller != nil && m.controller.State().HasResult() {
		m.resultImage = msg.image
		m.resultNote = msg.note
	} else {
		m.resultImage = nil
		m.resultNote = ""
	}
	m.renderPreviews()
	return m, nil
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.err != nil:
		log.Error().Err(msg.err).Msg("save failed")
		m.pushNotice("Could not save image: " + errorText(msg.err))
	case msg.path == "":
		m.statusLine = "Nothing to save yet"
	default:
		m.statusLine = "Saved to " + msg.path
	}
	return m, nil
}

// inFlight reports whether an upload is running from the UI's point of view.
func (m Model) inFlight() bool {
	if m.submitting {
		return true
	}
	return m.controller != nil && m.controller.State().InFlight()
}

func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	m.spinner.Style = styles.AccentText
	m.help.Styles.ShortKey = styles.WarningText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.help.Styles.FullKey = styles.WarningText
	m.help.Styles.FullDesc = styles.Text
	m.help.Styles.FullSeparator = styles.FaintText
	stylePicker(&m.picker, m.theme)
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, LastDir: m.lastDir}); err != nil {
		log.Warn().Err(err).Msg("save prefs")
	}
}

func (m *Model) pushNotice(text string) {
	if m.modal == nil {
		m.modal = newAlert(text)
		return
	}
	m.pendingNotices = append(m.pendingNotices, text)
}

func (m *Model) popNotice() {
	if len(m.pendingNotices) == 0 {
		return
	}
	m.modal = newAlert(m.pendingNotices[0])
	m.pendingNotices = m.pendingNotices[1:]
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())
	b.WriteString("\n")

	b.WriteString(m.renderStatusLine())
	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewPicker:
		return m.renderPicker()
	case ViewLogs:
		return m.renderLogs()
	default:
		return m.renderConvert()
	}
}

// bodyHeight is the space left under the header and command bar and above
// the status line.
func (m Model) bodyHeight() int {
	return max(0, m.height-3)
}

// errorText drops the path from file errors; the caller already names the file.
func errorText(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type noticeMsg string

type inputLoadedMsg struct {
	path  string
	input upload.Input
	image image.Image
	note  string
	err   error
}

type submitDoneMsg struct {
	accepted bool
	image    image.Image
	note     string
}

type savedMsg struct {
	path string
	err  error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// waitForNotice blocks on the controller's notifier channel. It is re-armed
// after every notice.
func waitForNotice(notices <-chan string) tea.Cmd {
	return func() tea.Msg {
		text, ok := <-notices
		if !ok {
			return nil
		}
		return noticeMsg(text)
	}
}

func loadInputCmd(path string) tea.Cmd {
	return func() tea.Msg {
		input, err := upload.LoadInput(path)
		if err != nil {
			return inputLoadedMsg{path: path, err: err}
		}
		img, note := decodePreview(input.Data, input.MIMEType)
		return inputLoadedMsg{path: path, input: input, image: img, note: note}
	}
}

func submitCmd(ctx context.Context, c *upload.Controller) tea.Cmd {
	return func() tea.Msg {
		msg := submitDoneMsg{accepted: c.Submit(ctx)}
		if st := c.State(); st.Artifact != nil {
			data, err := st.Artifact.Bytes()
			if err != nil {
				msg.note = "Preview unavailable"
				return msg
			}
			msg.image, msg.note = decodePreview(data, "image/png")
		}
		return msg
	}
}

func saveCmd(c *upload.Controller, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := c.Download(dir)
		return savedMsg{path: path, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
