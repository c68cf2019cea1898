package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"coinlens/api"
	"coinlens/bubbles"
	"coinlens/console/client"
	"coinlens/thumbcache"
)

// Virtual canvas the layout runs on; rendering scales it down to the
// terminal grid.
const (
	canvasW = 1200
	canvasH = 800

	frameInterval = 100 * time.Millisecond
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

	cardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#3C3C5C"))

	selectedCardStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4"))

	gridStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2A2A2A"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 1)

	gainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	lossStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
)

// Messages for the tea program
type cardsLoadedMsg struct {
	date  string
	cards []bubbles.Card
	err   error
}

type frameMsg struct {
	frame bubbles.Frame
}

// Model represents the viewer state
type model struct {
	apiURL string
	scene  *bubbles.Scene
	cancel context.CancelFunc
	frames chan bubbles.Frame

	date    string
	items   []bubbles.Item
	frame   bubbles.Frame
	loading bool
	err     error

	// Simulator panel
	simOpen   bool
	simInput  string
	simResult *bubbles.SimulationResult

	width  int
	height int
}

func initialModel(apiURL, date string) model {
	return model{
		apiURL:  apiURL,
		scene:   bubbles.NewScene(canvasW, canvasH),
		date:    date,
		loading: true,
	}
}

func (m model) Init() tea.Cmd {
	return fetchCards(m.apiURL, m.date)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case cardsLoadedMsg:
		// Responses are applied in arrival order: when date changes race,
		// the last resolved fetch wins even if it is not the latest date.
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.items = make([]bubbles.Item, 0, len(msg.cards))
		for _, c := range msg.cards {
			m.items = append(m.items, c.Item)
		}
		return m.restartScene()

	case frameMsg:
		m.frame = msg.frame
		return m, waitForFrame(m.frames)
	}
	return m, nil
}

// restartScene feeds the fetched items into the scene and restarts the
// frame loop.
func (m model) restartScene() (tea.Model, tea.Cmd) {
	m.scene.Stop()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.frames != nil {
		close(m.frames)
		m.frames = nil
	}
	m.scene.SetItems(m.items)
	m.frame = m.scene.FrameAt(0)
	if len(m.items) == 0 {
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	// The scene loop pushes frames into the program as messages.
	m.frames = make(chan bubbles.Frame, 1)
	ch := m.frames
	m.scene.Start(ctx, frameInterval, func(f bubbles.Frame) {
		select {
		case ch <- f:
		default:
		}
	})
	return m, waitForFrame(ch)
}

func waitForFrame(ch chan bubbles.Frame) tea.Cmd {
	return func() tea.Msg {
		if ch == nil {
			return nil
		}
		f, ok := <-ch
		if !ok {
			return nil
		}
		return frameMsg{frame: f}
	}
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.simOpen {
		return m.handleSimKey(msg)
	}
	switch msg.String() {
	case "ctrl+c", "q":
		m.scene.Stop()
		return m, tea.Quit
	case "left", "h":
		return m.moveSelection(-1)
	case "right", "l", "tab":
		return m.moveSelection(1)
	case "esc":
		m.scene.Select("")
		m.frame = m.scene.FrameAt(m.frame.Elapsed)
		m.simResult = nil
	case "[":
		return m.shiftDate(-1)
	case "]":
		return m.shiftDate(1)
	case "i", "enter":
		if m.scene.Selected() != nil {
			m.simOpen = true
			m.simInput = ""
			m.simResult = nil
		}
	case "R":
		m.loading = true
		return m, fetchCards(m.apiURL, m.date)
	}
	return m, nil
}

// moveSelection walks the selection through the items in layout order.
func (m model) moveSelection(delta int) (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	idx := -1
	if sel := m.scene.Selected(); sel != nil {
		for i, it := range m.items {
			if it.ID == sel.Item.ID {
				idx = i
				break
			}
		}
	}
	if idx == -1 {
		if delta > 0 {
			idx = 0
		} else {
			idx = len(m.items) - 1
		}
	} else {
		idx = (idx + delta + len(m.items)) % len(m.items)
	}
	m.scene.Select(m.items[idx].ID)
	m.frame = m.scene.FrameAt(m.frame.Elapsed)
	m.simResult = nil
	return m, nil
}

// shiftDate moves the viewed day and refetches.
func (m model) shiftDate(days int) (tea.Model, tea.Cmd) {
	day, err := time.Parse("2006-01-02", m.date)
	if err != nil {
		return m, nil
	}
	m.date = day.AddDate(0, 0, days).Format("2006-01-02")
	m.loading = true
	return m, fetchCards(m.apiURL, m.date)
}

func (m model) handleSimKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.simOpen = false
		m.simInput = ""
	case tea.KeyEnter:
		amount, err := strconv.ParseFloat(m.simInput, 64)
		if err != nil {
			m.simInput = ""
			return m, nil
		}
		if sel := m.scene.Selected(); sel != nil {
			r := bubbles.Simulate(sel.Item, amount)
			m.simResult = &r
		}
		m.simOpen = false
		m.simInput = ""
	case tea.KeyBackspace:
		if m.simInput != "" {
			m.simInput = m.simInput[:len(m.simInput)-1]
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if (r >= '0' && r <= '9') || r == '.' {
				m.simInput += string(r)
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🫧 CoinLens Bubbles · " + m.date))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("⚠ %v", m.err)))
		b.WriteString("\n")
		b.WriteString(infoStyle.Render("Press 'R' to retry"))
		b.WriteString("\n")
		return b.String()
	}
	if m.loading {
		b.WriteString(infoStyle.Render("Loading releases..."))
		b.WriteString("\n")
		return b.String()
	}
	if len(m.items) == 0 {
		b.WriteString(infoStyle.Render("No releases on this day. Use '[' and ']' to change the date."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.renderCanvas())
	b.WriteString("\n")

	if sel := m.scene.Selected(); sel != nil {
		b.WriteString(panelStyle.Render(m.renderPanel(sel)))
		b.WriteString("\n")
	}

	if m.simOpen {
		b.WriteString("Invest amount: $" + m.simInput + "▌")
		b.WriteString("\n")
	}
	b.WriteString(infoStyle.Render("←/→: select | enter: simulate | [/]: date | esc: clear | q: quit"))
	return b.String()
}

// renderCanvas scales the virtual canvas onto the terminal grid and paints
// the frame's draw list in order, so the selected card lands on top.
func (m model) renderCanvas() string {
	cols := m.width
	if cols <= 0 {
		cols = 100
	}
	rows := m.height - 10
	if rows < 8 {
		rows = 8
	}

	type cell struct {
		r     rune
		style *lipgloss.Style
	}
	gridStep := m.frame.GridStep / 8
	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, cols)
		for x := range grid[y] {
			if gridStep > 0 && x%gridStep == 0 && y%gridStep == 0 {
				grid[y][x] = cell{r: '·', style: &gridStyle}
			} else {
				grid[y][x] = cell{r: ' '}
			}
		}
	}

	sx := float64(cols) / canvasW
	sy := float64(rows) / canvasH

	for _, dc := range m.frame.Cards {
		minX, minY, maxX, maxY := dc.Card.Bounds()
		// Pulse grows the painted footprint around the card center.
		cxp, cyp := dc.Card.X, dc.Card.Y
		halfW := (maxX - minX) / 2 * dc.Scale
		halfH := (maxY - minY) / 2 * dc.Scale

		x0 := int((cxp - halfW) * sx)
		x1 := int((cxp + halfW) * sx)
		y0 := int((cyp - halfH) * sy)
		y1 := int((cyp + halfH) * sy)

		style := &cardStyle
		if dc.Selected {
			style = &selectedCardStyle
		}
		for y := y0; y <= y1; y++ {
			if y < 0 || y >= rows {
				continue
			}
			for x := x0; x <= x1; x++ {
				if x < 0 || x >= cols {
					continue
				}
				grid[y][x] = cell{r: ' ', style: style}
			}
		}

		// Center label: coin symbol, else platform glyph plus channel.
		label := dc.Card.Item.CoinSymbol
		if label == "" {
			glyph, _ := thumbcache.PlatformGlyph(dc.Card.Item.Platform)
			label = glyph + " " + dc.Card.Item.Channel
		}
		runes := []rune(label)
		ly := (y0 + y1) / 2
		lx := (x0+x1)/2 - len(runes)/2
		for i, r := range runes {
			x := lx + i
			if ly >= 0 && ly < rows && x > x0 && x < x1 && x >= 0 && x < cols {
				grid[ly][x] = cell{r: r, style: style}
			}
		}
	}

	var b strings.Builder
	for _, row := range grid {
		for _, c := range row {
			if c.style != nil {
				b.WriteString(c.style.Render(string(c.r)))
			} else {
				b.WriteRune(c.r)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderPanel shows the selected release plus any simulation result.
func (m model) renderPanel(sel *bubbles.Card) string {
	it := sel.Item
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s · %s (%s)\n", it.Title, it.Channel, it.Platform))
	b.WriteString(fmt.Sprintf("%d views", it.Views))
	if it.CoinSymbol != "" {
		b.WriteString(fmt.Sprintf(" · %s $%.4f → $%.4f", it.CoinSymbol, it.PriceAtPost, it.PriceNow))
	}
	if m.simResult != nil {
		b.WriteString("\n")
		r := m.simResult
		if !r.Valid {
			b.WriteString(errorStyle.Render("simulation unavailable: missing price data"))
		} else {
			line := fmt.Sprintf("$%.2f at post → $%.2f now (%+.1f%%)", r.Invested, r.ValueNow, r.ReturnPct)
			if r.ValueNow >= r.Invested {
				b.WriteString(gainStyle.Render(line))
			} else {
				b.WriteString(lossStyle.Render(line))
			}
		}
	}
	return b.String()
}

// Tea commands

// fetchCards loads the laid-out day view from the API. Only the card items
// are kept; the local scene re-runs the layout for the virtual canvas.
func fetchCards(apiURL, date string) tea.Cmd {
	return func() tea.Msg {
		q := url.Values{}
		q.Set("date", date)
		q.Set("width", strconv.Itoa(canvasW))
		q.Set("height", strconv.Itoa(canvasH))

		resp, err := http.Get(apiURL + "/api/bubbles?" + q.Encode())
		if err != nil {
			return cardsLoadedMsg{date: date, err: err}
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return cardsLoadedMsg{date: date, err: fmt.Errorf("bubbles endpoint returned %d", resp.StatusCode)}
		}

		var body api.BubblesResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return cardsLoadedMsg{date: date, err: fmt.Errorf("decode bubbles response: %w", err)}
		}
		return cardsLoadedMsg{date: date, cards: body.Cards}
	}
}

func main() {
	// Load environment
	_ = godotenv.Load()

	// Parse command-line flags
	apiURL := flag.String("url", client.GetEnvOrDefault("COINLENS_API_URL", "http://localhost:8080"), "CoinLens API URL")
	date := flag.String("date", time.Now().Format("2006-01-02"), "Day to display (YYYY-MM-DD)")
	flag.Parse()

	m := initialModel(*apiURL, *date)
	program := tea.NewProgram(m, tea.WithAltScreen())

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
