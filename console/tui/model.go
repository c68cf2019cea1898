package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"coinlens/api"
	"coinlens/console/client"
	"coinlens/store"
	"coinlens/types"
)

// Screen represents which view is on display
type Screen string

const (
	ScreenQueue  Screen = "queue"
	ScreenDetail Screen = "detail"
)

// Mode represents the input mode within a screen
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeSearch Mode = "search"
	ModeSubmit Mode = "submit"
	ModeEdit   Mode = "edit"
)

// statusCycle is the order the 'f' key walks through queue status filters.
var statusCycle = []string{"all", "pending", "processing", "published"}

// Model represents the review console state (thin client over the API)
type Model struct {
	Client *client.Client

	Screen Screen
	Mode   Mode

	// Queue screen
	Items        []*types.ContentItem
	Search       string
	StatusFilter string
	Cursor       int
	Loading      bool

	// Detail screen
	Detail         *api.ContentResponse
	DetailNotFound bool
	DetailID       string
	MentionCursor  int
	Draft          *Draft

	// Submit mode
	SubmitInput string
	SubmitNote  string

	// Transient status line and last error
	Notice string
	Err    error

	Width  int
	Height int
}

// NewModel creates a new console model
func NewModel(c *client.Client) Model {
	return Model{
		Client:       c,
		Screen:       ScreenQueue,
		Mode:         ModeNormal,
		StatusFilter: "all",
		Loading:      true,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fetchQueue(m.Client),
		tickCmd(),
	)
}

// Visible returns the queue items passing the current search and status
// filter, applied client-side so every keystroke narrows instantly.
func (m Model) Visible() []*types.ContentItem {
	f := store.QueueFilter{Search: m.Search, Status: m.StatusFilter}
	out := make([]*types.ContentItem, 0, len(m.Items))
	for _, item := range m.Items {
		if f.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}

// clampCursor keeps the queue cursor inside the visible slice after a
// filter change or refresh shrinks it.
func (m Model) clampCursor() Model {
	n := len(m.Visible())
	if n == 0 {
		m.Cursor = 0
	} else if m.Cursor >= n {
		m.Cursor = n - 1
	}
	return m
}

// clampMentionCursor does the same for the detail screen mention list.
func (m Model) clampMentionCursor() Model {
	if m.Detail == nil || m.Detail.Item == nil {
		m.MentionCursor = 0
		return m
	}
	n := len(m.Detail.Item.Mentions)
	if n == 0 {
		m.MentionCursor = 0
	} else if m.MentionCursor >= n {
		m.MentionCursor = n - 1
	}
	return m
}

// selectedMention returns the mention under the detail cursor, nil when the
// list is empty.
func (m Model) selectedMention() *types.MentionCandidate {
	if m.Detail == nil || m.Detail.Item == nil {
		return nil
	}
	ms := m.Detail.Item.Mentions
	if m.MentionCursor < 0 || m.MentionCursor >= len(ms) {
		return nil
	}
	return &ms[m.MentionCursor]
}

// canPublish reports whether the publish action is available for the item
// on the detail screen.
func (m Model) canPublish() bool {
	if m.Detail == nil || m.Detail.Item == nil {
		return false
	}
	return m.Detail.Item.Publishable()
}

// nextStatusFilter advances the queue status filter cycle.
func nextStatusFilter(current string) string {
	for i, s := range statusCycle {
		if s == current {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return statusCycle[0]
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max <= 1 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max-1])) + "…"
}
