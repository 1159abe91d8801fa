package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-pathfinder/internal/config"
	"github.com/vovakirdan/tui-pathfinder/internal/core"
	"github.com/vovakirdan/tui-pathfinder/internal/maze"
	"github.com/vovakirdan/tui-pathfinder/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.pathfinder/host_key.
	HostKeyPath string

	// DBPath is the path to the run history database. Empty disables history.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Mazes are offered in every session's picker.
	Mazes []maze.Maze

	// Search and Playback are the starting settings of each visualizer.
	Search   config.SearchConfig
	Playback config.PlaybackConfig

	// Logger receives server and session events. Nil creates one on stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	cfg := config.Default()
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      cfg.Storage.DBPath,
		IdleTimeout: 30 * time.Minute,
		Mazes:       maze.Builtins(),
		Search:      cfg.Search,
		Playback:    cfg.Playback,
	}
}

// SSHServer wraps a Wish SSH server for the pathfinder.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "pathfinder-ssh",
		})
	}
	if len(cfg.Mazes) == 0 {
		cfg.Mazes = maze.Builtins()
	}

	// Open storage
	var store *storage.Store
	if cfg.DBPath != "" {
		var err error
		store, err = storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open run history database", "error", err)
			// Continue without storage
			store = nil
		}
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			srv.closeStore()
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".pathfinder", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// runStore returns the shared store as a RunStore, nil when history is off.
func (s *SSHServer) runStore() RunStore {
	if s.store == nil {
		return nil
	}
	return s.store
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:      pty.Window.Width,
		ScreenH:      pty.Window.Height,
		StepInterval: s.config.Playback.Interval(),
		Session:      sshSession.User(),
	}

	base := Settings{
		Search:   s.config.Search,
		Playback: s.config.Playback,
		Runtime:  cfg,
		Store:    s.runStore(),
		Logger:   s.logger.With("user", sshSession.User()),
	}

	model := NewSessionModel(s.config.Mazes, base)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "mazes", len(s.config.Mazes))

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("could not close run history database", "error", err)
	}
	s.store = nil
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionView is the screen a session is showing.
type sessionView int

const (
	viewPicker sessionView = iota
	viewVisualizer
	viewHistory
)

// SessionModel manages the full session flow: picker -> visualizer -> picker.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	mazes      []maze.Maze
	base       Settings
	view       sessionView
	picker     PickerModel
	visualizer Model
	history    HistoryModel
	quitting   bool
}

// NewSessionModel creates a new session model. base carries everything a
// visualizer needs except the maze.
func NewSessionModel(mazes []maze.Maze, base Settings) SessionModel {
	return SessionModel{
		mazes:  mazes,
		base:   base,
		picker: NewPickerModel(mazes, base.Runtime),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.base.Runtime.ScreenW = wsm.Width
		m.base.Runtime.ScreenH = wsm.Height
	}

	switch m.view {
	case viewVisualizer:
		return m.updateVisualizer(msg)
	case viewHistory:
		return m.updateHistory(msg)
	default:
		return m.updatePicker(msg)
	}
}

// updatePicker handles updates when the picker is shown.
// Child models quit their own program when they finish; the session drops
// those commands and switches views instead.
func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.picker.Update(msg)
	if picker, ok := next.(PickerModel); ok {
		m.picker = picker
	}

	switch {
	case m.picker.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.picker.WantsHistory():
		m.history = NewHistoryModel(m.base.Store, m.mazes, allMazes, m.base.Runtime.ScreenW, m.base.Runtime.ScreenH)
		m.view = viewHistory
		return m, m.history.Init()

	case m.picker.Selected() != nil:
		settings := m.base
		settings.Maze = *m.picker.Selected()
		settings.Search = SearchFor(m.base.Search, settings.Maze)
		m.visualizer = NewModel(settings)
		m.view = viewVisualizer
		return m, m.visualizer.Init()
	}

	return m, cmd
}

// updateVisualizer handles updates when a maze is open.
func (m SessionModel) updateVisualizer(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.visualizer.Update(msg)
	if visualizer, ok := next.(Model); ok {
		m.visualizer = visualizer
	}

	if m.visualizer.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.visualizer.BackToMenu() {
		m.backToPicker()
		return m, m.picker.Init()
	}

	return m, cmd
}

// updateHistory handles updates when the run history is shown.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.history.Update(msg)
	if history, ok := next.(HistoryModel); ok {
		m.history = history
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.history.IsGoingBack() {
		m.backToPicker()
		return m, m.picker.Init()
	}

	return m, cmd
}

func (m *SessionModel) backToPicker() {
	m.view = viewPicker
	m.picker = NewPickerModel(m.mazes, m.base.Runtime)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewVisualizer:
		return m.visualizer.View()
	case viewHistory:
		return m.history.View()
	default:
		return m.picker.View()
	}
}
