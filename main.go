// FILE: main.go
package main

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/luis-herasme/pathfinding/config"
	"github.com/luis-herasme/pathfinding/core"
	"github.com/luis-herasme/pathfinding/navigation"
	"github.com/luis-herasme/pathfinding/parameter"
	"github.com/luis-herasme/pathfinding/scenario"
	"github.com/luis-herasme/pathfinding/status"
)

const (
	lostToneHz  = 440
	lostToneMs  = 120
	frameMs     = 33
	statusLines = 1
)

var (
	styleFree     = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleOccupied = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCorridor = tcell.StyleDefault.Background(tcell.ColorNavy)
	stylePortal   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleRaw      = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleRoute    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleEndpoint = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleCursor   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	styleError    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed)
)

// Sandbox is an interactive viewer for leaves, portals and routes
type Sandbox struct {
	screen        tcell.Screen
	width, height int

	scene     *scenario.Scenario
	depth     int
	heuristic navigation.HeuristicKind
	registry  *status.Registry
	rng       *rand.Rand

	start, end       core.Point
	cursorX, cursorY int
	showPortals      bool

	result  *navigation.Result
	err     error
	hadPath bool

	audioInit bool
}

func NewSandbox(env *config.Config) (*Sandbox, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	crashScreen = screen

	sb := &Sandbox{
		screen:    screen,
		depth:     env.MaxDepth,
		heuristic: env.HeuristicKind(),
		registry:  status.NewRegistry(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	sb.width, sb.height = screen.Size()
	sb.cursorX, sb.cursorY = sb.width/2, sb.viewRows()/2

	if env.Scenario != "" {
		sb.scene, err = scenario.Load(env.Scenario)
		if err != nil {
			screen.Fini()
			return nil, err
		}
	} else {
		sb.scene = sb.mazeScene(env)
	}
	sb.start, sb.end = sb.scene.Endpoints()

	if err := sb.initAudio(); err != nil {
		// Non-fatal, sandbox runs silent
		log.Printf("Audio initialization failed: %v", err)
	}

	sb.query()
	return sb, nil
}

// mazeScene fills the terminal with a generated maze, two world units per row keep cells square
func (sb *Sandbox) mazeScene(env *config.Config) *scenario.Scenario {
	seed := env.Seed
	if seed == 0 {
		seed = sb.rng.Int63()
	}
	return &scenario.Scenario{
		Name:      "sandbox",
		MaxDepth:  env.MaxDepth,
		Heuristic: env.Heuristic,
		Bounds:    scenario.RectSpec{MaxX: float64(sb.width), MaxY: float64(2 * sb.viewRows())},
		Maze:      &scenario.MazeSpec{Cols: env.MazeSize, Rows: env.MazeSize, Braiding: env.Braiding, Seed: seed},
	}
}

func (sb *Sandbox) initAudio() error {
	sampleRate := beep.SampleRate(44100)
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		sb.audioInit = true
	}
	return err
}

// playLostTone signals a route that existed before the last change and no longer does
func (sb *Sandbox) playLostTone() {
	if !sb.audioInit {
		return
	}
	sampleRate := beep.SampleRate(44100)
	sine, err := generators.SineTone(sampleRate, lostToneHz)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(lostToneMs*time.Millisecond), sine))
}

// --- Query ---

func (sb *Sandbox) query() {
	cfg, err := sb.scene.Config()
	if err != nil {
		sb.result, sb.err = nil, err
		return
	}
	cfg.MaxDepth = sb.depth
	cfg.Heuristic = sb.heuristic

	pf, err := navigation.NewPathfinder(cfg, sb.scene.Obstacles(), navigation.WithRegistry(sb.registry))
	if err != nil {
		sb.result, sb.err = nil, err
		return
	}

	sb.result, sb.err = pf.FindPath(sb.start, sb.end)
	if sb.err != nil {
		log.Printf("sandbox: %v", sb.err)
		if sb.hadPath {
			sb.playLostTone()
		}
	}
	sb.hadPath = sb.err == nil
}

// --- View transform ---

func (sb *Sandbox) viewRows() int {
	return max(sb.height-statusLines, 1)
}

func (sb *Sandbox) bounds() core.Rect {
	return sb.scene.Bounds.Rect()
}

func (sb *Sandbox) toScreen(p core.Point) (int, int) {
	b := sb.bounds()
	col := int((p.X - b.MinX()) / b.Width() * float64(sb.width))
	row := sb.viewRows() - 1 - int((p.Y-b.MinY())/b.Height()*float64(sb.viewRows()))
	return min(max(col, 0), sb.width-1), min(max(row, 0), sb.viewRows()-1)
}

func (sb *Sandbox) toWorld(col, row int) core.Point {
	b := sb.bounds()
	x := b.MinX() + (float64(col)+0.5)/float64(sb.width)*b.Width()
	y := b.MinY() + (float64(sb.viewRows()-1-row)+0.5)/float64(sb.viewRows())*b.Height()
	return core.Pt(x, y)
}

func (sb *Sandbox) fillRect(r core.Rect, ch rune, style tcell.Style) {
	c0, r1 := sb.toScreen(core.Pt(r.MinX(), r.MinY()))
	c1, r0 := sb.toScreen(core.Pt(r.MaxX(), r.MaxY()))
	for y := r0; y <= r1; y++ {
		for x := c0; x <= c1; x++ {
			if r.ContainsPoint(sb.toWorld(x, y)) {
				sb.screen.SetContent(x, y, ch, nil, style)
			}
		}
	}
}

func (sb *Sandbox) drawSegment(a, b core.Point, ch rune, style tcell.Style) {
	ax, ay := sb.toScreen(a)
	bx, by := sb.toScreen(b)
	n := max(abs(bx-ax), abs(by-ay), 1)
	for i := 0; i <= n; i++ {
		x := ax + (bx-ax)*i/n
		y := ay + (by-ay)*i/n
		sb.screen.SetContent(x, y, ch, nil, style)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// --- Drawing ---

func (sb *Sandbox) draw() {
	sb.screen.Clear()

	if res := sb.result; res != nil {
		for _, leaf := range res.Leaves {
			if leaf.Occupied {
				sb.fillRect(leaf.Rect, '█', styleOccupied)
			} else {
				sb.fillRect(leaf.Rect, '·', styleFree)
			}
		}
		for _, c := range res.PathCells {
			sb.fillRect(c.Rect, ' ', styleCorridor)
		}
		if sb.showPortals {
			for _, p := range res.Portals {
				sb.drawSegment(p.Left, p.Right, '|', stylePortal)
			}
		}
		for _, p := range res.Path {
			x, y := sb.toScreen(p)
			sb.screen.SetContent(x, y, 'o', nil, styleRaw)
		}
		for i := 1; i < len(res.Smoothed); i++ {
			sb.drawSegment(res.Smoothed[i-1], res.Smoothed[i], '*', styleRoute)
		}
	}

	sx, sy := sb.toScreen(sb.start)
	sb.screen.SetContent(sx, sy, 'S', nil, styleEndpoint)
	ex, ey := sb.toScreen(sb.end)
	sb.screen.SetContent(ex, ey, 'E', nil, styleEndpoint)

	mainc, _, _, _ := sb.screen.GetContent(sb.cursorX, sb.cursorY)
	sb.screen.SetContent(sb.cursorX, sb.cursorY, mainc, nil, styleCursor)

	sb.drawStatus()
	sb.screen.Show()
}

func (sb *Sandbox) drawStatus() {
	style := styleStatus
	var line string
	if sb.err != nil {
		style = styleError
		line = fmt.Sprintf(" depth %d | %v | %v", sb.depth, sb.heuristic, sb.err)
	} else if res := sb.result; res != nil {
		line = fmt.Sprintf(" depth %d | %v | leaves %d | cells %d | cost %.1f | %.2fms",
			sb.depth, sb.heuristic, len(res.Leaves), len(res.PathCells), res.Cost,
			sb.registry.Floats.Get("nav.query_ms").Get())
	}
	line += "   [arrows] move [s/e] endpoints [+/-] depth [h] heuristic [p] portals [m] maze [esc] quit"

	row := sb.height - 1
	for x := 0; x < sb.width; x++ {
		ch := ' '
		if x < len(line) {
			ch = rune(line[x])
		}
		sb.screen.SetContent(x, row, ch, nil, style)
	}
}

// --- Input ---

func (sb *Sandbox) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			sb.cursorX = max(sb.cursorX-1, 0)
		case tcell.KeyRight:
			sb.cursorX = min(sb.cursorX+1, sb.width-1)
		case tcell.KeyUp:
			sb.cursorY = max(sb.cursorY-1, 0)
		case tcell.KeyDown:
			sb.cursorY = min(sb.cursorY+1, sb.viewRows()-1)
		case tcell.KeyRune:
			sb.handleRune(ev.Rune())
		}

	case *tcell.EventResize:
		sb.width, sb.height = sb.screen.Size()
		sb.cursorX = min(sb.cursorX, sb.width-1)
		sb.cursorY = min(sb.cursorY, sb.viewRows()-1)
		sb.screen.Sync()
	}
	return true
}

func (sb *Sandbox) handleRune(r rune) {
	switch r {
	case 's':
		sb.start = sb.toWorld(sb.cursorX, sb.cursorY)
	case 'e':
		sb.end = sb.toWorld(sb.cursorX, sb.cursorY)
	case '+', '=':
		sb.depth = min(sb.depth+1, parameter.NavMaxAllowedDepth)
	case '-':
		sb.depth = max(sb.depth-1, 1)
	case 'h':
		if sb.heuristic == navigation.HeuristicEuclidean {
			sb.heuristic = navigation.HeuristicSquared
		} else {
			sb.heuristic = navigation.HeuristicEuclidean
		}
	case 'p':
		sb.showPortals = !sb.showPortals
		return
	case 'm':
		sb.scene.Regenerate(sb.rng.Int63())
		sb.start, sb.end = sb.scene.Endpoints()
		sb.hadPath = false
	default:
		return
	}
	sb.query()
}

func (sb *Sandbox) run() {
	ticker := time.NewTicker(frameMs * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	goSafe(func() {
		for {
			eventChan <- sb.screen.PollEvent()
		}
	})

	for {
		select {
		case ev := <-eventChan:
			if !sb.handleInput(ev) {
				return
			}
		case <-ticker.C:
			sb.draw()
		}
	}
}

func (sb *Sandbox) cleanup() {
	if sb.audioInit {
		speaker.Close()
	}
	sb.screen.Fini()
}

func openDebugLog(dir string) *os.File {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "sandbox.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil
	}
	return f
}

func main() {
	env, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
		os.Exit(1)
	}
	// The screen owns stdout, debug logs go to a file
	log.SetOutput(io.Discard)
	if env.Debug {
		if f := openDebugLog(env.LogDir); f != nil {
			defer f.Close()
			log.SetOutput(f)
		}
	}

	sb, err := NewSandbox(env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer sb.cleanup()
	defer func() {
		handleCrash(recover())
	}()

	sb.run()
}
