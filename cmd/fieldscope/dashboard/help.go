package dashboard

const helpText = `# fieldscope

Terminal dashboard for the crop-monitoring service.

## Tabs

| Key | Tab |
|-----|-----|
| Alt+1 | Overview — aggregate statistics across all your fields |
| Alt+2 | Fields — registered fields and per-field statistics |
| Alt+3 | Add Field — register a new field with a polygon boundary |
| Alt+4 | Upload — submit a crop image for stress analysis |

Alt+← / Alt+→ cycle through the tabs.

## Add Field

Type boundary points as ` + "`lat, lon`" + ` and press Enter to add each one.
A field needs at least 3 points before it can be submitted.

- **Ctrl+U** — undo the last point
- **Ctrl+X** — clear all points
- **Ctrl+S** — submit the field

## Everywhere

- **r** — refresh the current tab
- **Ctrl+L** — log out
- **Alt+H** — toggle this help
- **Ctrl+C** — quit

Press any key to close this help.
`

func (m Model) renderHelp() string {
	if m.help == nil {
		return helpText
	}
	out, err := m.help.Render(helpText)
	if err != nil {
		return helpText
	}
	return out
}
