package dashboard

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fieldscope/cmd/fieldscope/ui"
	"fieldscope/internal/geometry"
)

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if !m.authed {
		return m.renderAuthScreen()
	}

	header := m.renderHeader()
	tabs := m.renderTabBar()

	var content string
	switch m.tab {
	case TabOverview:
		content = m.renderOverview()
	case TabFields:
		content = m.renderFields()
	case TabAddField:
		content = m.renderAddField()
	case TabUpload:
		content = m.renderUpload()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		tabs,
		m.styles.Content.Render(content),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render(" fieldscope ")

	who := ""
	if m.user != nil {
		who = m.styles.Muted.Render(" " + m.user.Email)
	}

	status := m.styles.Success.Render("Ready")
	if m.anyBusy() {
		status = lipgloss.JoinHorizontal(lipgloss.Center, m.spinner.View(), " ", m.styles.Badge.Render("Loading..."))
	}

	line := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", status, who)
	return lipgloss.JoinVertical(lipgloss.Left, line, m.styles.RenderDivider(m.width))
}

func (m Model) anyBusy() bool {
	return m.overallBusy || m.fieldsBusy || m.field.busy || m.upload.busy || m.auth.busy
}

func (m Model) renderTabBar() string {
	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.tab {
			parts = append(parts, m.styles.TabActive.Render(label))
		} else {
			parts = append(parts, m.styles.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m Model) renderFooter() string {
	hotkeys := "Alt+←/→: tab | Alt+1-4: jump | Alt+H: help | Ctrl+L: logout | Ctrl+C: quit"
	switch m.tab {
	case TabOverview:
		hotkeys = "r: refresh | " + hotkeys
	case TabFields:
		hotkeys = "↑/↓: select | Enter: field stats | r: refresh | " + hotkeys
	case TabAddField:
		hotkeys = "Enter: add point | Ctrl+U: undo | Ctrl+X: clear | Ctrl+S: submit | " + hotkeys
	case TabUpload:
		hotkeys = "Ctrl+S: upload | " + hotkeys
	}
	return m.styles.Footer.Render(hotkeys)
}

func (m Model) renderAuthScreen() string {
	title := "Log in"
	hint := "Ctrl+R: switch to registration"
	if m.auth.screen == screenRegister {
		title = "Create account"
		hint = "Ctrl+R: switch to login"
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(title) + "\n")

	if m.auth.screen == screenRegister {
		sb.WriteString(m.styles.Label.Render("Name") + "\n")
		sb.WriteString(m.styles.InputFrame.Render(m.auth.name.View()) + "\n")
	}
	sb.WriteString(m.styles.Label.Render("Email") + "\n")
	sb.WriteString(m.styles.InputFrame.Render(m.auth.email.View()) + "\n")
	sb.WriteString(m.styles.Label.Render("Password") + "\n")
	sb.WriteString(m.styles.InputFrame.Render(m.auth.password.View()) + "\n")

	if m.auth.busy {
		sb.WriteString("\n" + m.spinner.View() + m.styles.Muted.Render(" contacting service..."))
	}
	if m.auth.err != nil {
		sb.WriteString("\n" + m.styles.Error.Render(m.auth.err.Error()))
	}
	if m.auth.notice != "" {
		sb.WriteString("\n" + m.styles.Success.Render(m.auth.notice))
	}

	sb.WriteString("\n\n" + m.styles.Muted.Render("Enter: submit | Tab: next field | "+hint))

	card := m.styles.Card.Width(min(m.width-4, 64)).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}

func (m Model) renderOverview() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(fmt.Sprintf("Overview — last %d days", m.statsDays)) + "\n")

	if m.overallErr != nil {
		sb.WriteString(m.styles.Error.Render("Could not load statistics: "+m.overallErr.Error()) + "\n")
		sb.WriteString(m.styles.Muted.Render("Press r to retry") + "\n")
		return sb.String()
	}
	if m.overall == nil {
		sb.WriteString(m.styles.Muted.Render("Loading statistics..."))
		return sb.String()
	}

	badges := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.Badge.Render(fmt.Sprintf("%d fields", m.overall.TotalFields)),
		"  ",
		m.styles.Badge.Render(fmt.Sprintf("%d images", m.overall.TotalImages)),
	)
	sb.WriteString(badges + "\n\n")

	sb.WriteString(m.styles.Bold.Render("Stress distribution") + "\n")
	sb.WriteString(ui.StressBars(m.styles, m.overall.StressDistribution, 32) + "\n")
	return sb.String()
}

func (m Model) renderFields() string {
	var sb strings.Builder

	if m.fieldsErr != nil {
		sb.WriteString(m.styles.Error.Render("Could not load fields: "+m.fieldsErr.Error()) + "\n")
		sb.WriteString(m.styles.Muted.Render("Press r to retry") + "\n")
		return sb.String()
	}
	if len(m.fields) == 0 {
		sb.WriteString(m.styles.Title.Render("Fields") + "\n")
		sb.WriteString(m.styles.Muted.Render("No fields registered yet — add one on the Add Field tab."))
		return sb.String()
	}

	tbl := ui.NewTable("Fields", "", "ID", "Name", "Crop", "Points")
	for i, f := range m.fields {
		marker := " "
		if i == m.selected {
			marker = ">"
		}
		tbl.AddRow(marker, strconv.Itoa(f.ID), f.Name, f.CropType, strconv.Itoa(polygonPointCount(f.PolygonGeometry)))
	}
	sb.WriteString(tbl.View(m.styles))

	if stats, ok := m.fieldStats[m.fieldStatsID]; ok && m.selectedFieldID() == m.fieldStatsID {
		detail := fmt.Sprintf("Field %d — %d images over %d days\n%s",
			stats.FieldID, stats.TotalImages, stats.Days,
			ui.StressBars(m.styles, stats.StressDistribution, 24))
		sb.WriteString("\n" + m.styles.Card.Render(detail))
	}

	return sb.String()
}

func (m Model) selectedFieldID() int {
	if m.selected < len(m.fields) {
		return m.fields[m.selected].ID
	}
	return 0
}

// polygonPointCount decodes a stored geometry string just far enough to show
// how many vertices the field has. Undecodable geometry counts as zero.
func polygonPointCount(serialized string) int {
	var poly geometry.Polygon
	if err := json.Unmarshal([]byte(serialized), &poly); err != nil {
		return 0
	}
	return len(poly.Ring())
}

func (m Model) renderAddField() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Register a field") + "\n")

	sb.WriteString(m.styles.Label.Render("Name") + "\n")
	sb.WriteString(m.styles.InputFrame.Render(m.field.name.View()) + "\n")
	sb.WriteString(m.styles.Label.Render("Crop type") + "\n")
	sb.WriteString(m.styles.InputFrame.Render(m.field.crop.View()) + "\n")
	sb.WriteString(m.styles.Label.Render("Boundary point") + "\n")
	sb.WriteString(m.styles.InputFrame.Render(m.field.point.View()) + "\n\n")

	count := m.field.builder.Count()
	state := m.field.builder.State()
	badge := m.styles.Muted.Render(fmt.Sprintf("%d points — need at least %d", count, geometry.MinPolygonPoints))
	if state == geometry.StateSubmittable {
		badge = m.styles.Success.Render(fmt.Sprintf("%d points — ready to submit", count))
	}
	sb.WriteString(badge + "\n")

	for i, p := range m.field.builder.Points() {
		sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %2d. %s", i+1, p)) + "\n")
	}

	if m.field.busy {
		sb.WriteString("\n" + m.spinner.View() + m.styles.Muted.Render(" submitting field..."))
	}
	if m.field.err != nil {
		sb.WriteString("\n" + m.styles.Error.Render(m.field.err.Error()))
	}
	if m.field.created != nil {
		sb.WriteString("\n" + m.styles.Success.Render(
			fmt.Sprintf("Field %q registered with ID %d", m.field.created.Name, m.field.created.ID)))
	}

	return sb.String()
}

func (m Model) renderUpload() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Upload image for analysis") + "\n")

	labels := []string{"Image path", "Field ID", "Latitude", "Longitude"}
	inputs := []string{m.upload.path.View(), m.upload.fieldID.View(), m.upload.lat.View(), m.upload.lon.View()}
	for i, label := range labels {
		sb.WriteString(m.styles.Label.Render(label) + "\n")
		sb.WriteString(m.styles.InputFrame.Render(inputs[i]) + "\n")
	}

	if m.upload.busy {
		sb.WriteString("\n" + m.spinner.View() + m.styles.Muted.Render(" uploading..."))
	}
	if m.upload.err != nil {
		sb.WriteString("\n" + m.styles.Error.Render(m.upload.err.Error()))
	}
	if m.upload.result != nil {
		r := m.upload.result
		level := lipgloss.NewStyle().Foreground(m.styles.StressColor(r.StressLevel)).Bold(true).Render(r.StressLevel)
		detail := fmt.Sprintf("Analysis #%d — stress: %s", r.ID, level)
		if r.Confidence > 0 {
			detail += m.styles.Muted.Render(fmt.Sprintf(" (%.0f%% confidence)", r.Confidence*100))
		}
		sb.WriteString("\n" + m.styles.Card.Render(detail))
	}

	return sb.String()
}
