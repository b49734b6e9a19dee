// Package dashboard is the interactive terminal UI for fieldscope: login and
// registration, field management with polygon point entry, image upload, and
// crop-stress statistics. All remote calls run as tea commands; the update
// loop itself never blocks.
package dashboard

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"fieldscope/internal/api"
	"fieldscope/internal/logging"
)

// New creates the dashboard model. Whether the auth screen or the main view
// shows first depends on the stored session: a persisted token means we go
// straight in and validate it with a profile fetch.
func New(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cfg.Styles.Spinner

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		// Help falls back to raw markdown.
		renderer = nil
	}

	statsDays := cfg.StatsDays
	if statsDays <= 0 {
		statsDays = 30
	}

	m := Model{
		cfg:        cfg,
		styles:     cfg.Styles,
		spinner:    sp,
		help:       renderer,
		auth:       newAuthForm(),
		field:      newFieldForm(),
		upload:     newUploadForm(),
		statsDays:  statsDays,
		fieldStats: make(map[int]api.FieldStats),
	}

	if sess, err := cfg.Store.Load(); err == nil && sess.Active() {
		m.authed = true
		logging.Dashboard("resuming stored session for %s", sess.Email)
	}

	return m
}

// Init kicks off the spinner and, for a resumed session, the initial data
// loads.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.authed {
		cmds = append(cmds, m.loadProfileCmd(), m.loadOverviewCmd(), m.loadFieldsCmd())
	}
	return tea.Batch(cmds...)
}
