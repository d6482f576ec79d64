package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"scrollgrip/internal/config"
	"scrollgrip/internal/eventbus"
	"scrollgrip/internal/geometry"
	"scrollgrip/internal/host"
	"scrollgrip/internal/nativebar"
	"scrollgrip/internal/pointer"
	"scrollgrip/internal/scrollbar"
	"scrollgrip/internal/ui/views"
	"scrollgrip/internal/viewport"
)

const (
	wheelLines   = 3
	wheelColumns = 3
	keyColumns   = 4
)

// gutter is the measured bar thickness, shared by every model of the process
var gutter nativebar.Cache

// Model represents the UI state
type Model struct {
	cfg    config.Config
	bus    eventbus.EventBus
	logger *log.Logger
	doc    *Document

	sched    *teaScheduler
	surface  *Surface
	sb       *scrollbar.Scrollbar
	renderer *views.Renderer
	help     *HelpRenderer

	width  int
	height int

	status    string
	statusErr bool

	// pointer state of the last mouse event
	inside     bool
	hoverAxis  host.Axis
	hoverTrack bool

	inbox  []eventbus.DomainEvent
	unsubs []func()

	search Search
	prompt searchPrompt

	inPagerMode bool
	pager       *PagerOps
}

// NewModel creates a new UI model showing doc. A control that failed to
// attach is reported by Err; callers fall back to the plain pager.
func NewModel(doc *Document, cfg config.Config, bus eventbus.EventBus, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.Default()
	}
	m := &Model{
		cfg:    cfg,
		bus:    bus,
		logger: logger,
		doc:    doc,
		sched:  newTeaScheduler(),
		help:   NewHelpRenderer(),
		prompt: newSearchPrompt(),
	}

	styles := views.NewStyles(views.Palette{
		Thumb:      cfg.UISettings.ThumbColor,
		ThumbHover: cfg.UISettings.ThumbHoverColor,
		Track:      cfg.UISettings.TrackColor,
	})
	m.renderer = views.NewRenderer(styles, views.DetectStrategy(lipgloss.ColorProfile()))

	thickness := gutter.Get(views.Gauge{Bars: m.renderer.Bars(), Outer: host.Size{Width: 80, Height: 24}})
	orientation, err := viewport.ParseOrientation(cfg.Orientation)
	if err != nil {
		orientation = viewport.OrientationAuto
	}
	convention, err := geometry.ParsePolicy(cfg.RTLConvention)
	if err != nil {
		convention = geometry.Normal
	}
	dir, err := host.ParseDirection(cfg.Direction)
	if err != nil {
		dir = host.LTR
	}
	statusRows := 0
	if cfg.UISettings.ShowStatus {
		statusRows = 1
	}

	m.surface = NewSurface(doc, m.sched, SurfaceOptions{
		Compact:       cfg.Appearance == "compact",
		InvertX:       cfg.Position == "invertX" || cfg.Position == "invertAll",
		InvertY:       cfg.Position == "invertY" || cfg.Position == "invertAll",
		Gutter:        thickness,
		StatusRows:    statusRows,
		AllowX:        orientation.Allows(host.X),
		AllowY:        orientation.Allows(host.Y),
		AlwaysReserve: cfg.Visibility == string(viewport.VisibilityAlways),
		Convention:    convention,
		Direction:     dir,
	})
	m.surface.markStyle = styles.Marked

	for _, t := range []eventbus.EventType{
		eventbus.EventScrollbarInitialized,
		eventbus.EventDragStarted,
		eventbus.EventDragEnded,
		eventbus.EventTrackStepped,
		eventbus.EventDirectionChanged,
		eventbus.EventError,
	} {
		m.unsubs = append(m.unsubs, bus.Subscribe(t, func(e eventbus.DomainEvent) {
			m.inbox = append(m.inbox, e)
		}))
	}

	m.sb = scrollbar.New(m.surface, cfg, scrollbar.WithBus(bus), scrollbar.WithLogger(logger))
	return m
}

// Err reports why the scrollbar control could not attach
func (m *Model) Err() error {
	return m.sb.Err()
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.pager = NewPagerOps(p)
}

// Close detaches the control and every subscription
func (m *Model) Close() {
	m.sb.Close()
	for _, unsub := range m.unsubs {
		unsub()
	}
	m.unsubs = nil
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.sched.Cmd()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.surface.Resize(msg.Width, msg.Height)

	case frameMsg, timerMsg:
		m.sched.Handle(msg)

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case EventMsg:
		cmd = m.handleEvent(msg.Event)

	case clearStatusMsg:
		m.status = ""
		m.statusErr = false

	case pagerDoneMsg:
		m.inPagerMode = false
		if msg.err != nil {
			cmd = m.setStatus(fmt.Sprintf("pager: %v", msg.err), true)
		}

	default:
		// cursor blinks of the search prompt
		if m.prompt.active {
			m.prompt.input, cmd = m.prompt.input.Update(msg)
		}
	}
	return m, tea.Batch(cmd, m.sched.Cmd(), m.drainEvents())
}

// drainEvents turns the events published during this update into messages,
// preserving their order
func (m *Model) drainEvents() tea.Cmd {
	if len(m.inbox) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(m.inbox))
	for i, e := range m.inbox {
		cmds[i] = func() tea.Msg { return EventMsg{Event: e} }
	}
	m.inbox = nil
	return tea.Sequence(cmds...)
}

func (m *Model) handleEvent(e eventbus.DomainEvent) tea.Cmd {
	switch e := e.(type) {
	case eventbus.ErrorEvent:
		return m.setStatus(e.Message, true)
	case eventbus.DirectionChangedEvent:
		return m.setStatus(fmt.Sprintf("direction: %s", e.Direction), false)
	case eventbus.DragStartedEvent:
		m.logger.Debug("drag started", "axis", e.Axis)
	case eventbus.DragEndedEvent:
		m.logger.Debug("drag ended", "axis", e.Axis)
	case eventbus.TrackSteppedEvent:
		m.logger.Debug("track stepped", "axis", e.Axis, "forward", e.Forward, "target", e.Target)
	case eventbus.AfterInitEvent:
		m.logger.Debug("ready", "document", m.doc.Name, "lines", len(m.doc.Lines))
	}
	return nil
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.status = text
	m.statusErr = isErr
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.prompt.active {
		if msg.String() == "ctrl+c" {
			m.Close()
			return tea.Quit
		}
		query, submitted, cmd := m.prompt.handleKey(msg)
		if submitted {
			return m.startSearch(query)
		}
		return cmd
	}

	y := m.sb.State(host.Y)
	page := m.surface.ViewportRect().Height
	smooth := m.cfg.ScrollDuration()

	switch msg.String() {
	case "q", "ctrl+c":
		m.Close()
		return tea.Quit
	case "j", "down":
		m.sb.InstantScrollTo(host.Y, y.ScrollOffset+1)
	case "k", "up":
		m.sb.InstantScrollTo(host.Y, y.ScrollOffset-1)
	case "l", "right":
		m.scrollColumns(keyColumns)
	case "h", "left":
		m.scrollColumns(-keyColumns)
	case "pgdown", " ", "f":
		top := geometry.Clamp(y.ScrollOffset+page, 0, y.ScrollMax)
		m.sb.ScrollTo(scrollbar.ScrollToOptions{Top: &top, Duration: smooth})
	case "pgup", "b":
		top := geometry.Clamp(y.ScrollOffset-page, 0, y.ScrollMax)
		m.sb.ScrollTo(scrollbar.ScrollToOptions{Top: &top, Duration: smooth})
	case "g", "home":
		m.sb.ScrollTo(scrollbar.ScrollToOptions{Top: scrollbar.Float(0), Duration: smooth})
	case "G", "end":
		m.sb.ScrollTo(scrollbar.ScrollToOptions{Bottom: scrollbar.Float(0), Duration: smooth})
	case "0":
		m.sb.ScrollTo(scrollbar.ScrollToOptions{Start: scrollbar.Float(0), Duration: smooth})
	case "$":
		m.sb.ScrollTo(scrollbar.ScrollToOptions{End: scrollbar.Float(0), Duration: smooth})
	case "/":
		return m.prompt.open()
	case "esc":
		m.search.Clear()
	case "n":
		if line, ok := m.search.Next(); ok {
			m.scrollToMatch(line)
			return nil
		}
		if h, ok := m.doc.HeadingAfter(m.surface.TopLine()); ok {
			return m.scrollToHeading(h)
		}
		return m.setStatus("no next heading", false)
	case "N":
		if line, ok := m.search.Previous(); ok {
			m.scrollToMatch(line)
			return nil
		}
		if h, ok := m.doc.HeadingBefore(m.surface.TopLine()); ok {
			return m.scrollToHeading(h)
		}
		return m.setStatus("no previous heading", false)
	case "r":
		if m.surface.TextDirection() == host.RTL {
			m.surface.SetDirection(host.LTR)
		} else {
			m.surface.SetDirection(host.RTL)
		}
	case "?":
		return m.showHelp()
	}
	return nil
}

func (m *Model) scrollToHeading(h Heading) tea.Cmd {
	_, err := m.sb.ScrollToElement("#"+h.Slug, scrollbar.ScrollToElementOptions{Duration: m.cfg.ScrollDuration()})
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	return nil
}

func (m *Model) startSearch(query string) tea.Cmd {
	if query == "" {
		m.search.Clear()
		return nil
	}
	line, ok := m.search.Start(m.doc, query, m.surface.TopLine())
	if !ok {
		return m.setStatus(fmt.Sprintf("pattern not found: %s", query), true)
	}
	m.scrollToMatch(line)
	return nil
}

// scrollToMatch smooth scrolls the matched line to the top of the viewport
func (m *Model) scrollToMatch(line int) {
	top := geometry.Clamp(float64(line), 0, m.sb.State(host.Y).ScrollMax)
	m.sb.ScrollTo(scrollbar.ScrollToOptions{Top: &top, Duration: m.cfg.ScrollDuration()})
}

// scrollColumns moves the visible window by delta columns to the right
func (m *Model) scrollColumns(delta int) {
	left := float64(m.surface.VisualX() + delta)
	m.sb.ScrollTo(scrollbar.ScrollToOptions{Left: &left})
}

func (m *Model) showHelp() tea.Cmd {
	if m.pager == nil {
		return m.setStatus("help unavailable", true)
	}
	m.inPagerMode = true
	content := m.help.renderHelpContent()
	return func() tea.Msg {
		return pagerDoneMsg{err: m.pager.Show(content)}
	}
}

// area is the part of the screen the control covers: viewport and gutters
func (m *Model) area() host.Rect {
	h := m.height
	if m.cfg.UISettings.ShowStatus {
		h--
	}
	return host.Rect{Width: float64(m.width), Height: float64(max(h, 0))}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	p := host.Point{X: float64(msg.X), Y: float64(msg.Y)}
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		delta := float64(wheelLines)
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -delta
		}
		if msg.Shift {
			m.scrollColumns(int(delta))
			return
		}
		m.sb.InstantScrollTo(host.Y, m.sb.State(host.Y).ScrollOffset+delta)
		return
	case tea.MouseButtonWheelLeft:
		m.scrollColumns(-wheelColumns)
		return
	case tea.MouseButtonWheelRight:
		m.scrollColumns(wheelColumns)
		return
	}

	var kind pointer.Kind
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		kind = pointer.Down
	case tea.MouseActionMotion:
		kind = pointer.Move
	case tea.MouseActionRelease:
		kind = pointer.Up
	default:
		return
	}

	inside := m.area().Contains(p)
	m.sb.SetHostHovered(inside)
	if m.sb.PointerMode() == pointer.ModeScrollbar {
		m.routeScrollbar(kind, p)
	} else {
		m.routeViewport(kind, p, inside)
	}
	if kind == pointer.Down {
		m.markAt(p)
	}
	m.inside = inside
}

// routeViewport sources every event from the control area and falls back to
// global moves and releases once the pointer has left it
func (m *Model) routeViewport(kind pointer.Kind, p host.Point, inside bool) {
	if inside {
		m.sb.HandleViewportPointer(pointer.Event{Kind: kind, Point: p})
		return
	}
	if m.inside {
		m.sb.HandleViewportPointer(pointer.Event{Kind: pointer.Out, Point: p})
	}
	if kind == pointer.Move || kind == pointer.Up {
		m.sb.HandleGlobalPointer(pointer.Event{Kind: kind, Point: p})
	}
}

// routeScrollbar sources presses and hover from the bars themselves
func (m *Model) routeScrollbar(kind pointer.Kind, p host.Point) {
	axis, over := m.trackAt(p)
	if m.hoverTrack && (!over || axis != m.hoverAxis) {
		m.sb.HandleElementPointer(m.hoverAxis, pointer.Event{Kind: pointer.Out, Point: p})
		m.hoverTrack = false
	}
	if over && !m.hoverTrack {
		m.sb.HandleElementPointer(axis, pointer.Event{Kind: pointer.Over, Point: p})
		m.hoverAxis, m.hoverTrack = axis, true
	}

	switch kind {
	case pointer.Down:
		if !over {
			return
		}
		target := pointer.TargetTrack
		if m.sb.ThumbRect(axis).Contains(p) {
			target = pointer.TargetThumb
		}
		m.sb.HandleElementPointer(axis, pointer.Event{Kind: pointer.Down, Point: p, Target: target})
	case pointer.Move, pointer.Up:
		m.sb.HandleGlobalPointer(pointer.Event{Kind: kind, Point: p})
	}
}

// trackAt returns the visible track under p
func (m *Model) trackAt(p host.Point) (host.Axis, bool) {
	for _, axis := range []host.Axis{host.Y, host.X} {
		if m.sb.State(axis).Used && m.surface.Track(axis).Rect().Contains(p) {
			return axis, true
		}
	}
	return host.Y, false
}

// markAt toggles the mark of the content line under p
func (m *Model) markAt(p host.Point) {
	if _, onTrack := m.trackAt(p); onTrack {
		return
	}
	line, ok := m.surface.LineAt(p)
	if !ok {
		return
	}
	m.surface.ToggleMark(line)
}

// View renders the screen
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	var bars []views.Bar
	for _, axis := range []host.Axis{host.Y, host.X} {
		st := m.sb.State(axis)
		if !st.Used {
			continue
		}
		bars = append(bars, views.Bar{Track: m.surface.Track(axis).Rect(), State: st})
	}
	return m.renderer.Render(views.Frame{
		Width:       m.width,
		Height:      m.height,
		Content:     m.surface.View(),
		ContentRect: m.surface.ViewportRect(),
		Bars:        bars,
		Status:      m.statusLine(),
		StatusError: m.statusErr,
		ShowStatus:  m.cfg.UISettings.ShowStatus,
	})
}

func (m *Model) statusLine() string {
	if m.prompt.active {
		return m.prompt.View()
	}
	if m.status != "" {
		return m.status
	}
	text := fmt.Sprintf("%s  line %d/%d  col %d  %s",
		m.doc.Name, m.surface.TopLine()+1, len(m.doc.Lines), m.surface.VisualX(), m.surface.TextDirection())
	if cur, n := m.search.Position(); n > 0 {
		text += fmt.Sprintf("  /%s %d/%d", m.search.Query(), cur, n)
	}
	if axis, ok := m.sb.Dragging(); ok {
		text += fmt.Sprintf("  dragging %s", axis)
	}
	return text
}
