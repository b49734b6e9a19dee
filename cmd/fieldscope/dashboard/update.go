package dashboard

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"fieldscope/internal/api"
	"fieldscope/internal/logging"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case loginDoneMsg:
		m.auth.busy = false
		if msg.err != nil {
			m.auth.err = msg.err
			return m, nil
		}
		m.auth.err = nil
		m.auth.notice = ""
		m.authed = true
		m.auth.password.SetValue("")
		return m, tea.Batch(
			m.saveSessionCmd(msg.token.AccessToken, msg.email),
			m.loadProfileCmd(),
			m.loadOverviewCmd(),
			m.loadFieldsCmd(),
		)

	case registerDoneMsg:
		m.auth.busy = false
		if msg.err != nil {
			m.auth.err = msg.err
			return m, nil
		}
		// Registration does not log in; switch to the login screen with the
		// email carried over.
		m.auth.screen = screenLogin
		m.auth.err = nil
		m.auth.notice = fmt.Sprintf("Account created for %s — log in to continue", msg.user.Email)
		m.auth.password.SetValue("")
		m.auth.focus = 0
		m.auth.cycleFocus(0)
		return m, nil

	case profileLoadedMsg:
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				// The stored token was rejected; drop back to login.
				logging.Session("stored token rejected, clearing session: %v", msg.err)
				m.authed = false
				m.user = nil
				m.auth.err = msg.err
				return m, m.logoutCmd()
			}
			// Transient failure: the credential may still be good, so keep
			// the session and let each tab surface its own load error.
			logging.DashboardError("profile fetch failed: %v", msg.err)
			return m, nil
		}
		m.user = &msg.user
		return m, nil

	case fieldsLoadedMsg:
		m.fieldsBusy = false
		if msg.err != nil {
			m.fieldsErr = msg.err
			return m, nil
		}
		m.fieldsErr = nil
		m.fields = msg.fields
		if m.selected >= len(m.fields) {
			m.selected = 0
		}
		return m, nil

	case fieldCreatedMsg:
		m.field.busy = false
		if msg.err != nil {
			m.field.err = msg.err
			return m, nil
		}
		created := msg.field
		m.field.created = &created
		m.field.reset()
		return m, m.loadFieldsCmd()

	case uploadDoneMsg:
		m.upload.busy = false
		if msg.err != nil {
			m.upload.err = msg.err
			return m, nil
		}
		result := msg.result
		m.upload.err = nil
		m.upload.result = &result
		return m, nil

	case overviewLoadedMsg:
		// Last response to arrive wins; overlapping refreshes are allowed.
		m.overallBusy = false
		if msg.err != nil {
			m.overallErr = msg.err
			return m, nil
		}
		m.overallErr = nil
		stats := msg.stats
		m.overall = &stats
		return m, nil

	case fieldStatsLoadedMsg:
		if msg.err == nil {
			m.fieldStats[msg.stats.FieldID] = msg.stats
			m.fieldStatsID = msg.stats.FieldID
		}
		return m, nil

	case sessionClearedMsg:
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if msg.String() == "alt+h" {
		m.showHelp = true
		return m, nil
	}

	if !m.authed {
		return m.handleAuthKey(msg)
	}

	switch msg.String() {
	case "alt+right":
		m.tab = (m.tab + 1) % Tab(len(tabNames))
		return m, nil
	case "alt+left":
		m.tab = (m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))
		return m, nil
	case "alt+1", "alt+2", "alt+3", "alt+4":
		n, _ := strconv.Atoi(msg.String()[4:])
		m.tab = Tab(n - 1)
		return m, nil
	case "ctrl+l":
		m.authed = false
		m.user = nil
		m.auth = newAuthForm()
		return m, m.logoutCmd()
	}

	switch m.tab {
	case TabOverview:
		return m.handleOverviewKey(msg)
	case TabFields:
		return m.handleFieldsKey(msg)
	case TabAddField:
		return m.handleAddFieldKey(msg)
	case TabUpload:
		return m.handleUploadKey(msg)
	}
	return m, nil
}

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.auth.cycleFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.auth.cycleFocus(-1)
		return m, nil
	case "ctrl+r":
		m.auth.toggleScreen()
		return m, nil
	case "enter":
		if err := m.auth.validate(); err != nil {
			m.auth.err = err
			return m, nil
		}
		m.auth.err = nil
		m.auth.notice = ""
		m.auth.busy = true
		if m.auth.screen == screenRegister {
			return m, tea.Batch(m.spinner.Tick,
				m.registerCmd(m.auth.name.Value(), m.auth.email.Value(), m.auth.password.Value()))
		}
		return m, tea.Batch(m.spinner.Tick,
			m.loginCmd(m.auth.email.Value(), m.auth.password.Value()))
	}

	ins := m.auth.inputs()
	var cmd tea.Cmd
	*ins[m.auth.focus], cmd = ins[m.auth.focus].Update(msg)
	return m, cmd
}

func (m Model) handleOverviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		m.overallBusy = true
		return m, tea.Batch(m.spinner.Tick, m.loadOverviewCmd())
	}
	return m, nil
}

func (m Model) handleFieldsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		m.fieldsBusy = true
		return m, tea.Batch(m.spinner.Tick, m.loadFieldsCmd())
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < len(m.fields)-1 {
			m.selected++
		}
		return m, nil
	case "enter":
		if m.selected < len(m.fields) {
			return m, m.loadFieldStatsCmd(m.fields[m.selected].ID)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleAddFieldKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	const pointInput = 2

	switch msg.String() {
	case "tab":
		m.field.cycleFocus(1)
		return m, nil
	case "shift+tab":
		m.field.cycleFocus(-1)
		return m, nil
	case "ctrl+u":
		m.field.builder.Undo()
		return m, nil
	case "ctrl+x":
		m.field.builder.Clear()
		return m, nil
	case "enter":
		if m.field.focus != pointInput {
			m.field.cycleFocus(1)
			return m, nil
		}
		p, err := parsePoint(m.field.point.Value())
		if err != nil {
			m.field.err = err
			return m, nil
		}
		m.field.err = nil
		m.field.created = nil
		m.field.builder.AddPoint(p)
		m.field.point.SetValue("")
		return m, nil
	case "ctrl+s":
		return m.submitField()
	}

	ins := m.field.inputs()
	var cmd tea.Cmd
	*ins[m.field.focus], cmd = ins[m.field.focus].Update(msg)
	return m, cmd
}

// submitField validates locally and serializes the polygon before anything
// goes on the wire: too few points never leave the client.
func (m Model) submitField() (tea.Model, tea.Cmd) {
	if m.field.name.Value() == "" {
		m.field.err = fmt.Errorf("field name is required")
		return m, nil
	}

	polygon, err := m.field.builder.Serialize()
	if err != nil {
		m.field.err = err
		return m, nil
	}

	m.field.err = nil
	m.field.created = nil
	m.field.busy = true
	return m, tea.Batch(m.spinner.Tick,
		m.createFieldCmd(m.field.name.Value(), m.field.crop.Value(), polygon))
}

func (m Model) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "enter":
		m.upload.cycleFocus(1)
		return m, nil
	case "shift+tab":
		m.upload.cycleFocus(-1)
		return m, nil
	case "ctrl+s":
		return m.submitUpload()
	}

	ins := m.upload.inputs()
	var cmd tea.Cmd
	*ins[m.upload.focus], cmd = ins[m.upload.focus].Update(msg)
	return m, cmd
}

func (m Model) submitUpload() (tea.Model, tea.Cmd) {
	if m.upload.path.Value() == "" {
		m.upload.err = fmt.Errorf("image path is required")
		return m, nil
	}
	fieldID, ok := parseFieldID(m.upload.fieldID.Value())
	if !ok {
		m.upload.err = fmt.Errorf("field ID must be a positive number")
		return m, nil
	}
	lat, lon := 0.0, 0.0
	if m.upload.lat.Value() != "" || m.upload.lon.Value() != "" {
		p, err := parsePoint(m.upload.lat.Value() + "," + m.upload.lon.Value())
		if err != nil {
			m.upload.err = err
			return m, nil
		}
		lat, lon = p.Lat, p.Lon
	}

	m.upload.err = nil
	m.upload.result = nil
	m.upload.busy = true
	return m, tea.Batch(m.spinner.Tick,
		m.uploadCmd(m.upload.path.Value(), fieldID, lat, lon))
}
