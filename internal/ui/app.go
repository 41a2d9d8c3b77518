package ui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shelf/internal/config"
	"github.com/five82/shelf/internal/library"
	"github.com/five82/shelf/internal/prefs"
	"github.com/five82/shelf/internal/presenter"
)

// focusArea is the pane that receives keys.
type focusArea int

const (
	focusSidebar focusArea = iota
	focusContent
)

// Options configures the UI.
type Options struct {
	Context        context.Context
	Store          library.Store
	Config         *config.Config
	RequestTimeout time.Duration
	ThemeName      string
	PrefsPath      string
	Logger         *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     library.Store
	config    *config.Config
	logger    *slog.Logger
	timeout   time.Duration
	prefsPath string
	keys      keyMap
	now       func() time.Time

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
	focus    focusArea
	screen   Screen

	// Request tracking. seq tags collection loads, visit tags actions
	// started on the current screen entry.
	seq     uint64
	visit   uint64
	loading bool
	loadErr error

	// Per-screen state, rebuilt on every entry
	dashboard *presenter.Dashboard
	stats     *presenter.Statistics
	manage    manageState
	add       addState

	viewport viewport.Model
}

// New creates a new Bubble Tea model showing the dashboard.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		config:    opts.Config,
		logger:    logger,
		timeout:   timeout,
		prefsPath: prefsPath,
		keys:      DefaultKeyMap(),
		now:       time.Now,
		theme:     GetTheme(opts.ThemeName),
		viewport:  viewport.New(0, 0),
	}
	m.screen = ScreenDashboard
	m.manage = newManageState(m.theme)
	m.add = newAddState(m.theme)
	m.visit = 1
	m.seq = 1
	m.loading = true
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.loadCmd(m.screen, m.seq)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncViewport()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		return m, nil

	case dashboardMsg:
		if !m.current(msg.seq) {
			return m, nil
		}
		m.loading = false
		m.loadErr = msg.err
		if msg.err == nil {
			d := msg.dashboard
			m.dashboard = &d
		}
		return m, nil

	case statisticsMsg:
		if !m.current(msg.seq) {
			return m, nil
		}
		m.loading = false
		m.loadErr = msg.err
		if msg.err == nil {
			s := msg.stats
			m.stats = &s
		}
		return m, nil

	case booksMsg:
		if !m.current(msg.seq) || m.screen != ScreenManage {
			return m, nil
		}
		m.loading = false
		m.loadErr = msg.err
		if msg.err == nil {
			m.manage.view.SetBooks(msg.books)
			m.manage.clampCursor()
		}
		return m, nil

	case bookCreatedMsg:
		if msg.visit != m.visit || m.screen != ScreenAdd {
			return m, nil
		}
		m.add.submitting = false
		m.add.notice = msg.notice
		return m, nil

	case bookEditedMsg:
		if msg.visit != m.visit || m.screen != ScreenManage {
			return m, nil
		}
		m.manage.saving = false
		m.manage.view.ApplyEdit(msg.result)
		if !msg.result.OK {
			return m, nil
		}
		if m.manage.editID == msg.result.ID {
			m.manage.stopEditing()
		}
		return m, m.reload()

	case bookDeletedMsg:
		if msg.visit != m.visit || m.screen != ScreenManage {
			return m, nil
		}
		delete(m.manage.deleting, msg.result.ID)
		m.manage.view.ApplyDelete(msg.result)
		if !msg.result.OK {
			return m, nil
		}
		if m.manage.editID == msg.result.ID {
			m.manage.stopEditing()
		}
		return m, m.reload()
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// current reports whether a load response still belongs to the screen.
func (m Model) current(seq uint64) bool {
	return seq == m.seq
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// Text entry owns the keyboard while it is focused.
	if m.inputActive() {
		switch m.screen {
		case ScreenAdd:
			return m.handleAddKey(msg)
		case ScreenManage:
			return m.handleManageInputKey(msg)
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()
	case key.Matches(msg, m.keys.Dashboard):
		return m, m.enterScreen(ScreenDashboard)
	case key.Matches(msg, m.keys.AddBook):
		return m, m.enterScreen(ScreenAdd)
	case key.Matches(msg, m.keys.Manage):
		return m, m.enterScreen(ScreenManage)
	case key.Matches(msg, m.keys.Statistics):
		return m, m.enterScreen(ScreenStatistics)
	case key.Matches(msg, m.keys.NextScreen):
		return m, m.enterScreen(m.screen.Next())
	case key.Matches(msg, m.keys.PrevScreen):
		return m, m.enterScreen(m.screen.Prev())
	}

	if m.focus == focusSidebar {
		return m.handleSidebarKey(msg)
	}

	if key.Matches(msg, m.keys.Escape) {
		m.focus = focusSidebar
		return m, nil
	}

	switch m.screen {
	case ScreenManage:
		return m.handleManageKey(msg)
	default:
		m.scroll(msg)
		return m, nil
	}
}

// handleSidebarKey moves the screen selection. Moving the selection
// switches screens immediately.
func (m Model) handleSidebarKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		return m, m.enterScreen(m.screen.Prev())
	case key.Matches(msg, m.keys.Down):
		return m, m.enterScreen(m.screen.Next())
	case key.Matches(msg, m.keys.Focus):
		m.focus = focusContent
		if m.screen == ScreenAdd {
			m.add.focusField(m.add.field)
		}
		return m, nil
	}
	return m, nil
}

// inputActive reports whether a text input currently has focus.
func (m Model) inputActive() bool {
	if m.focus != focusContent {
		return false
	}
	switch m.screen {
	case ScreenAdd:
		return true
	case ScreenManage:
		return m.manage.searching || m.manage.editID != ""
	}
	return false
}

// enterScreen switches to s and starts its load. Screens keep nothing
// from earlier visits.
func (m *Model) enterScreen(s Screen) tea.Cmd {
	m.screen = s
	m.visit++
	m.loadErr = nil
	m.loading = false
	m.dashboard = nil
	m.stats = nil
	m.manage = newManageState(m.theme)
	m.add = newAddState(m.theme)
	if s == ScreenAdd && m.focus == focusContent {
		m.add.focusField(0)
	}
	m.viewport.GotoTop()
	m.logger.Debug("screen entered", "screen", s.Title())
	return m.reload()
}

// reload refetches the collection for the current screen. Responses to
// earlier reloads are dropped when they arrive.
func (m *Model) reload() tea.Cmd {
	if m.screen == ScreenAdd {
		return nil
	}
	m.seq++
	m.loading = true
	return m.loadCmd(m.screen, m.seq)
}

// cycleTheme switches to the next theme and persists the choice.
func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.add.applyTheme(m.theme)
	m.manage.applyTheme(m.theme)
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
		m.logger.Warn("save prefs failed", "error", err)
	}
}

// scroll handles viewport keys for read-only screens.
func (m *Model) scroll(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.PageDown()
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
	}
}

// resize fits the content viewport to the window.
func (m *Model) resize() {
	m.viewport.Width = m.contentWidth()
	m.viewport.Height = m.contentHeight()
}

func (m Model) contentWidth() int {
	return max(m.width-SidebarWidth, 1)
}

func (m Model) contentHeight() int {
	return max(m.height-chromeHeight, 1)
}

// syncViewport re-renders the active screen into the viewport and keeps
// the focused line visible.
func (m *Model) syncViewport() {
	if !m.ready {
		return
	}
	content, focusLine := m.renderScreen(m.contentWidth())
	m.viewport.SetContent(content)
	if focusLine < 0 {
		return
	}
	switch {
	case focusLine < m.viewport.YOffset:
		m.viewport.SetYOffset(focusLine)
	case focusLine >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(focusLine - m.viewport.Height + 1)
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
