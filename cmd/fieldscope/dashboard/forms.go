package dashboard

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"fieldscope/internal/geometry"
)

func newAuthForm() authForm {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = 120

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128

	return authForm{name: name, email: email, password: password}
}

// inputs returns the visible inputs for the current screen, in focus order.
func (f *authForm) inputs() []*textinput.Model {
	if f.screen == screenRegister {
		return []*textinput.Model{&f.name, &f.email, &f.password}
	}
	return []*textinput.Model{&f.email, &f.password}
}

func (f *authForm) cycleFocus(delta int) {
	ins := f.inputs()
	f.focus = (f.focus + delta + len(ins)) % len(ins)
	for i, in := range ins {
		if i == f.focus {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// toggleScreen flips between login and register, clearing transient state.
func (f *authForm) toggleScreen() {
	if f.screen == screenLogin {
		f.screen = screenRegister
	} else {
		f.screen = screenLogin
	}
	f.focus = 0
	f.err = nil
	f.cycleFocus(0)
}

func (f *authForm) validate() error {
	if f.screen == screenRegister && strings.TrimSpace(f.name.Value()) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(f.email.Value()) == "" {
		return fmt.Errorf("email is required")
	}
	if f.password.Value() == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

func newFieldForm() fieldForm {
	name := textinput.New()
	name.Placeholder = "Field name"
	name.CharLimit = 120
	name.Focus()

	crop := textinput.New()
	crop.Placeholder = "Crop type (e.g. wheat)"
	crop.CharLimit = 80

	point := textinput.New()
	point.Placeholder = "lat, lon  (Enter to add)"
	point.CharLimit = 64

	return fieldForm{
		name:    name,
		crop:    crop,
		point:   point,
		builder: geometry.NewBuilder(),
	}
}

func (f *fieldForm) inputs() []*textinput.Model {
	return []*textinput.Model{&f.name, &f.crop, &f.point}
}

func (f *fieldForm) cycleFocus(delta int) {
	ins := f.inputs()
	f.focus = (f.focus + delta + len(ins)) % len(ins)
	for i, in := range ins {
		if i == f.focus {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// reset clears the form after a successful submission.
func (f *fieldForm) reset() {
	f.name.SetValue("")
	f.crop.SetValue("")
	f.point.SetValue("")
	f.builder.Clear()
	f.err = nil
	f.focus = 0
	f.cycleFocus(0)
}

func newUploadForm() uploadForm {
	path := textinput.New()
	path.Placeholder = "Path to image file"
	path.CharLimit = 512
	path.Focus()

	fieldID := textinput.New()
	fieldID.Placeholder = "Field ID"
	fieldID.CharLimit = 12

	lat := textinput.New()
	lat.Placeholder = "Latitude"
	lat.CharLimit = 32

	lon := textinput.New()
	lon.Placeholder = "Longitude"
	lon.CharLimit = 32

	return uploadForm{path: path, fieldID: fieldID, lat: lat, lon: lon}
}

func (f *uploadForm) inputs() []*textinput.Model {
	return []*textinput.Model{&f.path, &f.fieldID, &f.lat, &f.lon}
}

func (f *uploadForm) cycleFocus(delta int) {
	ins := f.inputs()
	f.focus = (f.focus + delta + len(ins)) % len(ins)
	for i, in := range ins {
		if i == f.focus {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// parsePoint parses a "lat, lon" line into a geometry point. Both numbers
// must be finite; range is not checked — the map source owns that.
func parsePoint(input string) (geometry.Point, error) {
	parts := strings.Split(input, ",")
	if len(parts) != 2 {
		return geometry.Point{}, fmt.Errorf("expected \"lat, lon\"")
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("bad latitude %q", strings.TrimSpace(parts[0]))
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("bad longitude %q", strings.TrimSpace(parts[1]))
	}
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return geometry.Point{}, fmt.Errorf("coordinates must be finite")
	}

	return geometry.Point{Lat: lat, Lon: lon}, nil
}
