// Package tui provides a Bubble Tea terminal user interface for prompt-album-builder.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/prompt-album-builder/internal/config"
	"github.com/handiism/prompt-album-builder/internal/logger"
	"github.com/handiism/prompt-album-builder/internal/organize"
	"github.com/handiism/prompt-album-builder/internal/report"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	albumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

const maxLogLines = 10

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateAnalyzing
	StateOrganizing
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   organize.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	log       *logger.Logger
	logs      []LogEntry
	albums    []string
	stats     report.RunStats
	err       error

	ctx    context.Context
	cancel context.CancelFunc

	manager *organize.Manager
	events  chan organize.ProgressEvent

	// run identifies the current run; results of older runs are dropped.
	run int

	placed int32
	total  int32

	// Options
	dryRun  bool
	backup  bool
	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model. A nil log discards output.
func NewModel(settings *config.Settings, log *logger.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = "Create albums for NCC events, college fests in March 2024"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	if log == nil {
		log = logger.Nop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		log:       log,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		backup:    settings.BackupMode,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one pipeline progress event.
	ProgressMsg struct {
		Event organize.ProgressEvent
	}

	// AnalyzeDoneMsg is sent when parsing, scanning and matching complete.
	AnalyzeDoneMsg struct {
		Run     int
		Albums  []string
		Manager *organize.Manager
		Err     error

		events chan organize.ProgressEvent
	}

	// OrganizeDoneMsg is sent when albums and reports are written.
	OrganizeDoneMsg struct {
		Run   int
		Stats report.RunStats
		Err   error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateOrganizing || m.state == StateAnalyzing {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				m.state = StateAnalyzing
				m.run++
				m.events = make(chan organize.ProgressEvent, 64)
				return m, tea.Batch(m.analyze(m.textInput.Value()), m.listen(), m.spinner.Tick)
			}

		// Option toggles are not forwarded to the text input.
		case "ctrl+d":
			if m.state == StateInput {
				m.dryRun = !m.dryRun
				return m, nil
			}

		case "ctrl+b":
			if m.state == StateInput {
				m.backup = !m.backup
				return m, nil
			}

		case "ctrl+g":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m.reset()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, m.listen())
		if msg.Event.Level == organize.LevelVerbose && !m.verbose {
			break
		}
		m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
		if len(m.logs) > maxLogLines {
			m.logs = m.logs[len(m.logs)-maxLogLines:]
		}

	case AnalyzeDoneMsg:
		if msg.Run != m.run || m.state != StateAnalyzing {
			// Cancelled or superseded; the manager never reaches Materialize.
			if msg.Err == nil && msg.events != nil {
				close(msg.events)
			}
			break
		}
		switch {
		case errors.Is(msg.Err, organize.ErrNoPhotos):
			m.state = StateComplete
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.albums = msg.Albums
			m.manager = msg.Manager
			m.state = StateOrganizing
			cmds = append(cmds, m.organize(), m.tickProgress())
		}

	case OrganizeDoneMsg:
		if msg.Run != m.run {
			break
		}
		m.stats = msg.Stats
		if m.manager != nil {
			m.placed, m.total = m.manager.GetProgress()
		}
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateOrganizing {
			m.placed, m.total = m.manager.GetProgress()
			cmds = append(cmds, m.progress.SetPercent(m.percent()), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) reset() {
	m.state = StateInput
	m.run++
	m.logs = nil
	m.albums = nil
	m.stats = report.RunStats{}
	m.err = nil
	m.placed = 0
	m.total = 0
	m.manager = nil
	m.events = nil
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.textInput.SetValue("")
	m.textInput.Focus()
}

func (m Model) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.placed) / float64(m.total)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// listen waits for the next progress event.
func (m Model) listen() tea.Cmd {
	events := m.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("📷 Prompt Album Builder"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Organize photos into albums from a prompt"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateAnalyzing:
		b.WriteString(m.viewAnalyzing())
	case StateOrganizing:
		b.WriteString(m.viewOrganizing())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[×]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Describe your albums:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Dry run (ctrl+d)\n", checkbox(m.dryRun)))
	b.WriteString(fmt.Sprintf("  %s Backup mode, copy instead of move (ctrl+b)\n", checkbox(m.backup)))
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+g)\n", checkbox(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Source: %s", m.settings.SourceFolder)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Albums: %s", m.settings.TargetAlbumsFolder)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewAnalyzing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Scanning and matching photos..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewOrganizing() string {
	var b strings.Builder

	if len(m.albums) > 0 {
		b.WriteString(successStyle.Render(fmt.Sprintf("%d album(s):", len(m.albums))))
		b.WriteString("\n")
		for _, album := range m.albums {
			b.WriteString(albumStyle.Render("  ▸ " + album))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.progress.ViewAs(m.percent()))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Photos: %d/%d", m.placed, m.total)))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	title := "✨ Albums created!"
	if m.dryRun {
		title = "✨ Dry run complete, nothing was changed"
	}
	if m.stats.Scanned == 0 {
		title = "No photos found in source folder"
	}

	body := strings.TrimSpace(report.RenderRunSummary(m.stats))
	return boxStyle.Render(title+"\n\n"+body) + "\n\n" + m.renderLogs()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, entry := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch entry.Level {
		case organize.LevelError:
			style = errorStyle
			prefix = "✗"
		case organize.LevelWarning:
			style = warningStyle
			prefix = "!"
		case organize.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case organize.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + entry.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) helpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • ctrl+d: dry run • ctrl+b: backup • ctrl+g: verbose • esc: quit"
	case StateAnalyzing, StateOrganizing:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new prompt • q: quit"
	}
	return ""
}

// analyze parses the prompt, scans the source folder and matches photos.
func (m Model) analyze(promptText string) tea.Cmd {
	ctx := m.ctx
	run := m.run
	events := m.events
	settings := m.settings
	log := m.log
	opts := organize.Options{DryRun: m.dryRun, Backup: m.backup}

	return func() tea.Msg {
		manager := organize.NewManager(settings, opts, log, func(event organize.ProgressEvent) {
			select {
			case events <- event:
			default:
				// UI is behind; the event is still in the run log.
			}
		})

		if err := manager.Initialize(promptText); err != nil {
			close(events)
			return AnalyzeDoneMsg{Run: run, Err: err}
		}
		if err := manager.Scan(ctx); err != nil {
			close(events)
			return AnalyzeDoneMsg{Run: run, Err: err}
		}

		result := manager.Match()
		stats := result.Stats()

		var albums []string
		for _, spec := range manager.Specs() {
			albums = append(albums, fmt.Sprintf("%s (%d photos)", spec.Name, stats[spec.Name]))
		}

		return AnalyzeDoneMsg{Run: run, Albums: albums, Manager: manager, events: events}
	}
}

// organize materializes albums and writes reports in the background.
func (m Model) organize() tea.Cmd {
	ctx := m.ctx
	run := m.run
	manager := m.manager
	events := m.events

	return func() tea.Msg {
		if events != nil {
			defer close(events)
		}

		if manager == nil {
			return OrganizeDoneMsg{Run: run, Err: fmt.Errorf("no manager")}
		}

		if err := manager.Materialize(ctx); err != nil {
			return OrganizeDoneMsg{Run: run, Err: err}
		}

		stats, err := manager.WriteReports(ctx)
		return OrganizeDoneMsg{Run: run, Stats: stats, Err: err}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings, log *logger.Logger) error {
	p := tea.NewProgram(NewModel(settings, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
