package dashboard

import (
	"context"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"fieldscope/internal/api"
	"fieldscope/internal/logging"
	"fieldscope/internal/session"
)

// Remote calls run as tea commands. None of them carry a deadline: a hung
// network call leaves its form in the loading state until the user quits,
// and a failed one surfaces inline for explicit resubmission.

func (m Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		tok, err := m.cfg.Client.Login(context.Background(), api.LoginRequest{
			Email:    email,
			Password: password,
		})
		return loginDoneMsg{token: tok, email: email, err: err}
	}
}

func (m Model) registerCmd(name, email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := m.cfg.Client.Register(context.Background(), api.RegisterRequest{
			Name:     name,
			Email:    email,
			Password: password,
		})
		return registerDoneMsg{user: user, err: err}
	}
}

// saveSessionCmd persists the freshly issued token through the injected
// store; the client's token source reads it back on the next request.
func (m Model) saveSessionCmd(token, email string) tea.Cmd {
	return func() tea.Msg {
		err := m.cfg.Store.Save(session.Session{
			AccessToken: token,
			Email:       email,
			SavedAt:     time.Now(),
		})
		if err != nil {
			logging.Session("failed to persist session: %v", err)
		}
		return sessionClearedMsg{err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return sessionClearedMsg{err: m.cfg.Store.Clear()}
	}
}

func (m Model) loadProfileCmd() tea.Cmd {
	return func() tea.Msg {
		user, err := m.cfg.Client.Profile(context.Background())
		return profileLoadedMsg{user: user, err: err}
	}
}

func (m Model) loadFieldsCmd() tea.Cmd {
	return func() tea.Msg {
		fields, err := m.cfg.Client.ListFields(context.Background())
		return fieldsLoadedMsg{fields: fields, err: err}
	}
}

func (m Model) createFieldCmd(name, crop, polygon string) tea.Cmd {
	return func() tea.Msg {
		field, err := m.cfg.Client.CreateField(context.Background(), api.CreateFieldRequest{
			Name:            strings.TrimSpace(name),
			CropType:        strings.TrimSpace(crop),
			PolygonGeometry: polygon,
		})
		return fieldCreatedMsg{field: field, err: err}
	}
}

func (m Model) uploadCmd(path string, fieldID int, lat, lon float64) tea.Cmd {
	return func() tea.Msg {
		result, err := m.cfg.Client.UploadFile(context.Background(), path, fieldID, lat, lon)
		return uploadDoneMsg{result: result, err: err}
	}
}

func (m Model) loadOverviewCmd() tea.Cmd {
	days := m.statsDays
	return func() tea.Msg {
		stats, err := m.cfg.Client.OverallStats(context.Background(), days)
		if err != nil {
			// Unhandled data-load failures get diagnostic output only.
			logging.DashboardError("overview refresh failed: %v", err)
		}
		return overviewLoadedMsg{stats: stats, err: err}
	}
}

func (m Model) loadFieldStatsCmd(fieldID int) tea.Cmd {
	days := m.statsDays
	return func() tea.Msg {
		stats, err := m.cfg.Client.FieldStats(context.Background(), fieldID, days)
		if err != nil {
			logging.DashboardError("field %d stats failed: %v", fieldID, err)
		}
		return fieldStatsLoadedMsg{stats: stats, err: err}
	}
}

// parseFieldID converts the upload form's field selector.
func parseFieldID(s string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
