package app

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// Control is one row of the control panel.
type Control int

const (
	ControlShader Control = iota
	ControlShape
	ControlTessellation
	ControlSunIntensity
	ControlDiffuse
	ControlSpecular
	ControlFog
	ControlLoadScene
	numControls
)

var controlLabels = [numControls]string{
	ControlShader:       "Shader",
	ControlShape:        "Shape",
	ControlTessellation: "Tessellation",
	ControlSunIntensity: "Sun intensity",
	ControlDiffuse:      "Diffuse",
	ControlSpecular:     "Specular",
	ControlFog:          "Fog",
	ControlLoadScene:    "Load Scene",
}

func (c Control) String() string {
	if c < 0 || c >= numControls {
		return fmt.Sprintf("Control(%d)", int(c))
	}
	return controlLabels[c]
}

// SunIntensityStep is the sun intensity change per Adjust step.
const SunIntensityStep = 5.0

// Palette is the set of colors the color controls cycle through.
var Palette = []Color{
	RGB(255, 0, 0),
	RGB(255, 255, 0),
	RGB(255, 140, 0),
	RGB(0, 200, 80),
	RGB(0, 160, 255),
	RGB(55, 85, 135),
	RGB(160, 80, 220),
	RGB(255, 255, 255),
	RGB(20, 20, 30),
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5f5f87")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd75f"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a8a8a8")).Width(15)
	focusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#5f5faf")).Width(15)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#eeeeee"))
	buttonStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#87d7ff"))
	statStyle   = lipgloss.NewStyle().Faint(true)
)

// Panel is the on-screen control surface. Every change goes through the
// App's handlers; Load Scene is queued as a command.
type Panel struct {
	app     *App
	focus   Control
	Visible bool
}

// NewPanel creates a visible panel controlling a.
func NewPanel(a *App) *Panel {
	return &Panel{app: a, Visible: true}
}

// Focus returns the focused control.
func (p *Panel) Focus() Control { return p.focus }

// Toggle shows or hides the panel.
func (p *Panel) Toggle() { p.Visible = !p.Visible }

// Next moves focus down, wrapping to the top.
func (p *Panel) Next() {
	p.focus = (p.focus + 1) % numControls
}

// Prev moves focus up, wrapping to the bottom.
func (p *Panel) Prev() {
	p.focus = (p.focus + numControls - 1) % numControls
}

// Adjust changes the focused control by step (usually +1 or -1).
func (p *Panel) Adjust(step int) {
	a := p.app
	params := a.Params()
	switch p.focus {
	case ControlShader:
		a.SetShader(ShaderKind(wrap(int(params.Shader)+step, int(numShaderKinds))))
	case ControlShape:
		a.SetShape(ShapeKind(wrap(int(params.Shape)+step, int(numShapeKinds))))
	case ControlTessellation:
		a.SetTessellation(params.Tessellation + step)
	case ControlSunIntensity:
		a.SetSunIntensity(params.SunIntensity + float64(step)*SunIntensityStep)
	case ControlDiffuse:
		a.SetDiffuse(cycleColor(params.Diffuse, step))
	case ControlSpecular:
		a.SetSpecular(cycleColor(params.Specular, step))
	case ControlFog:
		a.SetFog(cycleColor(params.Fog, step))
	case ControlLoadScene:
		if step != 0 {
			p.Activate()
		}
	}
}

// Activate presses the Load Scene button.
func (p *Panel) Activate() {
	p.app.Dispatch(LoadScene())
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// cycleColor steps through Palette starting from c. Colors not in the
// palette start from its first entry.
func cycleColor(c Color, step int) Color {
	for i, pc := range Palette {
		if pc == c {
			return Palette[wrap(i+step, len(Palette))]
		}
	}
	return Palette[0]
}

func (p *Panel) value(c Control) string {
	params := p.app.Params()
	switch c {
	case ControlShader:
		return valueStyle.Render(params.Shader.String())
	case ControlShape:
		return valueStyle.Render(params.Shape.String())
	case ControlTessellation:
		return valueStyle.Render(fmt.Sprintf("%d", params.Tessellation))
	case ControlSunIntensity:
		return valueStyle.Render(fmt.Sprintf("%.0f", params.SunIntensity))
	case ControlDiffuse:
		return swatch(params.Diffuse)
	case ControlSpecular:
		return swatch(params.Specular)
	case ControlFog:
		return swatch(params.Fog)
	case ControlLoadScene:
		return buttonStyle.Render("[enter]")
	}
	return ""
}

func swatch(c Color) string {
	block := lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("  ")
	return block + " " + valueStyle.Render(c.Hex())
}

// View renders the panel and the last frame's statistics. It returns an
// empty string when the panel is hidden.
func (p *Panel) View(fps float64) string {
	if !p.Visible {
		return ""
	}
	rows := make([]string, 0, numControls+3)
	rows = append(rows, titleStyle.Render("facet"))
	for c := range numControls {
		label := labelStyle.Render(c.String())
		if c == p.focus {
			label = focusStyle.Render(c.String())
		}
		rows = append(rows, label+" "+p.value(c))
	}

	s := p.app.Stats()
	stats := []string{
		fmt.Sprintf("%.0f fps", fps),
		fmt.Sprintf("%d tris", s.Device.Rasterized),
		fmt.Sprintf("%d frags", s.Device.Fragments),
	}
	if s.Culling.MeshesCulled > 0 {
		stats = append(stats, "culled")
	}
	if p.app.ShowBounds() {
		stats = append(stats, "bounds")
	}
	rows = append(rows, "", statStyle.Render(strings.Join(stats, "  ")))
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
