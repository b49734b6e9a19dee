package dashboard

import (
	"fieldscope/cmd/fieldscope/ui"
	"fieldscope/internal/api"
	"fieldscope/internal/geometry"
	"fieldscope/internal/session"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/glamour"
)

// Config wires the dashboard to its collaborators. The session store is
// injected so login and logout mutate the same durable credential the API
// client reads on every request.
type Config struct {
	Client    *api.Client
	Store     session.Store
	Styles    ui.Styles
	StatsDays int
}

// Tab is one of the dashboard's top-level views.
type Tab int

const (
	TabOverview Tab = iota
	TabFields
	TabAddField
	TabUpload
)

var tabNames = []string{"Overview", "Fields", "Add Field", "Upload"}

func (t Tab) String() string {
	if int(t) < len(tabNames) {
		return tabNames[t]
	}
	return "Unknown"
}

// authScreen distinguishes the two pre-login forms.
type authScreen int

const (
	screenLogin authScreen = iota
	screenRegister
)

// authForm holds the login/register inputs. Name is only shown when
// registering.
type authForm struct {
	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	focus    int
	screen   authScreen
	err      error
	notice   string
	busy     bool
}

// fieldForm is the Add Field tab: name, crop type, and the point entry line
// feeding the geometry builder.
type fieldForm struct {
	name    textinput.Model
	crop    textinput.Model
	point   textinput.Model
	focus   int
	builder *geometry.Builder
	err     error
	busy    bool

	// created holds the service's response after a successful submission,
	// displayed until the form is touched again.
	created *api.Field
}

// uploadForm is the Upload tab: image path, target field, capture position.
type uploadForm struct {
	path    textinput.Model
	fieldID textinput.Model
	lat     textinput.Model
	lon     textinput.Model
	focus   int
	err     error
	busy    bool
	result  *api.AnalysisResult
}

// Model is the bubbletea model for the whole dashboard.
type Model struct {
	cfg     Config
	styles  ui.Styles
	spinner spinner.Model
	help    *glamour.TermRenderer

	width  int
	height int
	ready  bool

	// Authentication state. Until authed is true only the auth screen
	// renders.
	authed bool
	user   *api.User
	auth   authForm

	tab      Tab
	showHelp bool

	// Overview tab
	overall      *api.OverallStats
	overallErr   error
	overallBusy  bool
	statsDays    int
	fieldStats   map[int]api.FieldStats
	fieldStatsID int // field currently selected for per-field stats

	// Fields tab
	fields     []api.Field
	fieldsErr  error
	fieldsBusy bool
	selected   int

	field  fieldForm
	upload uploadForm
}

// Messages for tea updates. Responses carry their error inline; whichever
// response arrives last wins the displayed state — overlapping requests are
// not deduplicated.
type (
	loginDoneMsg struct {
		token api.TokenResponse
		email string
		err   error
	}
	registerDoneMsg struct {
		user api.User
		err  error
	}
	profileLoadedMsg struct {
		user api.User
		err  error
	}
	fieldsLoadedMsg struct {
		fields []api.Field
		err    error
	}
	fieldCreatedMsg struct {
		field api.Field
		err   error
	}
	uploadDoneMsg struct {
		result api.AnalysisResult
		err    error
	}
	overviewLoadedMsg struct {
		stats api.OverallStats
		err   error
	}
	fieldStatsLoadedMsg struct {
		stats api.FieldStats
		err   error
	}
	sessionClearedMsg struct{ err error }
)
