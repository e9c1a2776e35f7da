package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/motionrender/internal/config"
	"github.com/san-kum/motionrender/internal/render"
	"github.com/san-kum/motionrender/internal/stats"
)

const (
	canvasWidth  = 80
	canvasHeight = 24
	trailSpan    = 150
	chartWindow  = 60
	gifPath      = "playback.gif"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	recordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model plays a capture back on a braille canvas with an orbiting
// camera, frame scrubbing and GIF recording.
type Model struct {
	r          *render.Renderer
	title      string
	canvas     *Canvas
	fps        int
	speed      float64
	frame      int
	playing    bool
	showBox    bool
	showHelp   bool
	trailJoint int // -1 when off
	motion     []float64
	recording  bool
	gifFrames  []*image.Paletted
	note       string
}

// NewModel initializes playback state for a prepared renderer.
func NewModel(r *render.Renderer, cfg *config.Config, title string) Model {
	fps := cfg.Render.FPS
	if fps < 1 {
		fps = 1
	}
	return Model{
		r:          r,
		title:      title,
		canvas:     NewCanvas(canvasWidth, canvasHeight),
		fps:        fps,
		speed:      1,
		playing:    true,
		showBox:    cfg.Render.ShowBox,
		trailJoint: -1,
		motion:     stats.MotionTrace(r.Series()),
	}
}

// Run starts the interactive playback program.
func Run(r *render.Renderer, cfg *config.Config, title string) error {
	p := tea.NewProgram(NewModel(r, cfg, title))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	interval := time.Duration(float64(time.Second) / (float64(m.fps) * m.speed))
	return tea.Tick(interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input and advances playback.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.stopRecording()
			}
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
		case "r":
			m.frame = 0
			m.playing = true
		case "[":
			m.playing = false
			if m.frame > 0 {
				m.frame--
			}
		case "]":
			m.playing = false
			if m.frame < m.r.Len()-1 {
				m.frame++
			}
		case "left":
			m.r.Camera().Orbit(-15, 0)
		case "right":
			m.r.Camera().Orbit(15, 0)
		case "up":
			m.r.Camera().Orbit(0, 15)
		case "down":
			m.r.Camera().Orbit(0, -15)
		case "+", "=":
			m.r.Camera().ZoomIn()
		case "-", "_":
			m.r.Camera().ZoomOut()
		case ",":
			if m.speed > 0.25 {
				m.speed /= 2
			}
		case ".":
			if m.speed < 4 {
				m.speed *= 2
			}
		case "b":
			m.showBox = !m.showBox
		case "t":
			m.trailJoint++
			if m.trailJoint >= m.r.Series().JointCount() {
				m.trailJoint = -1
			}
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.recording = true
				m.gifFrames = make([]*image.Paletted, 0)
				m.note = ""
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.playing {
			m.frame = (m.frame + 1) % m.r.Len()
		}
		if m.recording {
			m.draw()
			m.captureFrame()
		}
		return m, m.tick()
	}
	return m, nil
}

// draw renders the current frame onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	cw, ch := m.canvas.Width*2, m.canvas.Height*4

	if m.showBox {
		for _, e := range m.r.ProjectBox(cw, ch) {
			m.canvas.DrawLine(int(e[0].X), int(e[0].Y), int(e[1].X), int(e[1].Y))
		}
	}

	if m.trailJoint >= 0 {
		lo := m.frame - trailSpan
		if lo < 0 {
			lo = 0
		}
		for k := lo; k <= m.frame; k++ {
			pts, err := m.r.ProjectFrame(k, cw, ch)
			if err == nil && pts[m.trailJoint].OK {
				m.canvas.Set(int(pts[m.trailJoint].X), int(pts[m.trailJoint].Y))
			}
		}
	}

	joints, err := m.r.ProjectFrame(m.frame, cw, ch)
	if err != nil {
		return
	}
	for _, e := range m.r.Graph().Edges {
		a, b := joints[e[0]], joints[e[1]]
		if a.OK && b.OK {
			m.canvas.DrawLine(int(a.X), int(a.Y), int(b.X), int(b.Y))
		}
	}
	for _, p := range joints {
		if p.OK {
			m.canvas.Dot(int(p.X), int(p.Y))
		}
	}
}

// View renders the playback interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	series := m.r.Series()
	cam := m.r.Camera()

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	status := "PAUSED"
	if m.playing {
		status = "PLAYING"
	}
	if m.recording {
		status += "  " + recordStyle.Render("REC")
	}
	s.WriteString(status + "\n\n")

	lo := m.frame - chartWindow + 1
	if lo < 0 {
		lo = 0
	}
	if window := m.motion[lo : m.frame+1]; len(window) > 1 {
		chart := asciigraph.Plot(window, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("motion"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d / %d", m.frame+1, series.Len())) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1f", series.Times[m.frame])) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%gx", m.speed)) + "\n")
	s.WriteString(labelStyle.Render("Camera") + valueStyle.Render(fmt.Sprintf("el %.0f  az %.0f  zoom %.2f", cam.Elevation, cam.Azimuth, cam.Zoom)) + "\n")
	trail := "off"
	if m.trailJoint >= 0 {
		trail = series.Joints[m.trailJoint]
	}
	s.WriteString(labelStyle.Render("Trail") + valueStyle.Render(trail) + "\n")
	if m.note != "" {
		s.WriteString("\n" + valueStyle.Render(m.note) + "\n")
	}
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Restart Q:Quit\n[ ]:Step  ←→↑↓:Orbit +/-:Zoom\n,.:Speed T:Trail G:Record ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume playback    ║
║  R        - Restart from frame 0     ║
║  Q        - Quit                     ║
║  [ / ]    - Step one frame           ║
║  Arrows   - Orbit the camera         ║
║  + / -    - Zoom in/out              ║
║  , / .    - Slower / faster          ║
║  B        - Toggle bounds box        ║
║  T        - Cycle trail joint        ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// captureFrame rasterizes the canvas into a paletted image, one 8x16
// pixel block per character cell.
func (m *Model) captureFrame() {
	charW, charH := 8, 16
	imgW, imgH := m.canvas.Width*charW, m.canvas.Height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})

	dotW, dotH := charW/2, charH/4
	for row := 0; row < m.canvas.Height; row++ {
		for col := 0; col < m.canvas.Width; col++ {
			r := m.canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, 1)
						}
					}
				}
			}
		}
	}
	m.gifFrames = append(m.gifFrames, img)
}

// stopRecording writes the recorded frames into the working directory
// and reports the result in the status panel.
func (m *Model) stopRecording() {
	m.recording = false
	frames := m.gifFrames
	m.gifFrames = nil
	if len(frames) == 0 {
		m.note = "nothing recorded"
		return
	}

	delay := int(100 / (float64(m.fps) * m.speed))
	if delay < 2 {
		delay = 2
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}

	f, err := os.Create(gifPath)
	if err != nil {
		m.note = fmt.Sprintf("gif: %v", err)
		return
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		m.note = fmt.Sprintf("gif: %v", err)
		return
	}
	m.note = fmt.Sprintf("saved %s (%d frames)", gifPath, len(frames))
}
