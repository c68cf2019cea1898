package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case QueueLoadedMsg:
		return m.handleQueueLoaded(msg)
	case ContentLoadedMsg:
		return m.handleContentLoaded(msg)
	case MentionSavedMsg:
		return m.handleMentionSaved(msg)
	case PublishedMsg:
		return m.handlePublished(msg)
	case SubmittedMsg:
		return m.handleSubmitted(msg)
	case TickMsg:
		return m.handleTick(msg)
	}
	return m, nil
}

// handleKeyPress dispatches by input mode first, then screen.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.Mode {
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeSubmit:
		return m.handleSubmitKey(msg)
	case ModeEdit:
		return m.handleEditKey(msg)
	}
	if m.Screen == ScreenDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleQueueKey(msg)
}

// handleQueueKey processes keys on the queue screen in normal mode.
func (m Model) handleQueueKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Visible())-1 {
			m.Cursor++
		}
	case "enter":
		visible := m.Visible()
		if m.Cursor < len(visible) {
			m.Screen = ScreenDetail
			m.DetailID = visible[m.Cursor].ID
			m.Detail = nil
			m.DetailNotFound = false
			m.MentionCursor = 0
			m.Err = nil
			return m, fetchContent(m.Client, m.DetailID)
		}
	case "/":
		m.Mode = ModeSearch
		m.Notice = ""
	case "f":
		m.StatusFilter = nextStatusFilter(m.StatusFilter)
		m = m.clampCursor()
	case "n":
		m.Mode = ModeSubmit
		m.SubmitInput = ""
		m.SubmitNote = ""
	case "R":
		m.Loading = true
		m.Err = nil
		return m, tea.Batch(fetchQueue(m.Client), triggerRefresh(m.Client))
	}
	return m, nil
}

// handleDetailKey processes keys on the detail screen in normal mode.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.Screen = ScreenQueue
		m.Detail = nil
		m.DetailNotFound = false
		m.Err = nil
		return m, fetchQueue(m.Client)
	case "up", "k":
		if m.MentionCursor > 0 {
			m.MentionCursor--
		}
	case "down", "j":
		if m.Detail != nil && m.Detail.Item != nil && m.MentionCursor < len(m.Detail.Item.Mentions)-1 {
			m.MentionCursor++
		}
	case "a":
		if mc := m.selectedMention(); mc != nil {
			return m, saveMention(m.Client, m.DetailID, mc.ID, ApprovePatch())
		}
	case "x":
		if mc := m.selectedMention(); mc != nil {
			return m, saveMention(m.Client, m.DetailID, mc.ID, RejectPatch())
		}
	case "e":
		if mc := m.selectedMention(); mc != nil {
			m.Mode = ModeEdit
			m.Draft = NewDraft(*mc)
		}
	case "p":
		if m.canPublish() {
			return m, publishContent(m.Client, m.DetailID)
		}
		m.Notice = "publish unavailable: unresolved mentions or already published"
	case "R":
		if m.DetailID != "" {
			m.Err = nil
			return m, fetchContent(m.Client, m.DetailID)
		}
	}
	return m, nil
}

// handleSearchKey edits the queue search string; every keystroke filters.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.Mode = ModeNormal
		m.Search = ""
		return m.clampCursor(), nil
	case tea.KeyEnter:
		m.Mode = ModeNormal
		return m.clampCursor(), nil
	case tea.KeyBackspace:
		if m.Search != "" {
			r := []rune(m.Search)
			m.Search = string(r[:len(r)-1])
		}
		return m.clampCursor(), nil
	case tea.KeyRunes:
		m.Search += string(msg.Runes)
		return m.clampCursor(), nil
	case tea.KeySpace:
		m.Search += " "
		return m.clampCursor(), nil
	}
	return m, nil
}

// handleSubmitKey edits the video URL being submitted.
func (m Model) handleSubmitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.Mode = ModeNormal
		m.SubmitInput = ""
		m.SubmitNote = ""
	case tea.KeyEnter:
		if m.SubmitInput == "" {
			m.SubmitNote = "enter a video URL"
			return m, nil
		}
		m.Mode = ModeNormal
		url := m.SubmitInput
		m.SubmitInput = ""
		return m, submitVideo(m.Client, url)
	case tea.KeyBackspace:
		if m.SubmitInput != "" {
			r := []rune(m.SubmitInput)
			m.SubmitInput = string(r[:len(r)-1])
		}
	case tea.KeyRunes:
		m.SubmitInput += string(msg.Runes)
	}
	return m, nil
}

// handleEditKey drives the mention edit form.
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Draft == nil {
		m.Mode = ModeNormal
		return m, nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		m.Mode = ModeNormal
		m.Draft = nil
		return m, nil
	case tea.KeyEnter:
		patch := m.Draft.Patch()
		id := m.Draft.Original.ID
		m.Mode = ModeNormal
		m.Draft = nil
		return m, saveMention(m.Client, m.DetailID, id, patch)
	case tea.KeyTab, tea.KeyDown:
		m.Draft.NextField()
	case tea.KeyShiftTab, tea.KeyUp:
		m.Draft.PrevField()
	case tea.KeyLeft, tea.KeyRight:
		m.Draft.Cycle()
	case tea.KeyBackspace:
		m.Draft.Backspace()
	case tea.KeySpace:
		if m.Draft.textTarget() != nil {
			m.Draft.Insert(" ")
		} else {
			m.Draft.Cycle()
		}
	case tea.KeyRunes:
		m.Draft.Insert(string(msg.Runes))
	}
	return m, nil
}

// handleQueueLoaded merges a refreshed queue into the model.
func (m Model) handleQueueLoaded(msg QueueLoadedMsg) (tea.Model, tea.Cmd) {
	m.Loading = false
	if msg.Err != nil {
		m.Err = fmt.Errorf("load queue: %w", msg.Err)
		return m, nil
	}
	m.Err = nil
	m.Items = msg.Items
	return m.clampCursor(), nil
}

// handleContentLoaded fills the detail screen.
func (m Model) handleContentLoaded(msg ContentLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.NotFound {
		m.DetailNotFound = true
		m.Detail = nil
		return m, nil
	}
	if msg.Err != nil {
		m.Err = fmt.Errorf("load content: %w", msg.Err)
		return m, nil
	}
	m.Err = nil
	m.DetailNotFound = false
	m.Detail = msg.Resp
	return m.clampMentionCursor(), nil
}

// handleMentionSaved applies the server's post-write view of the item.
func (m Model) handleMentionSaved(msg MentionSavedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Err = fmt.Errorf("save mention: %w", msg.Err)
		return m, nil
	}
	m.Err = nil
	m.Notice = "mention saved"
	m.Detail = msg.Resp
	return m.clampMentionCursor(), nil
}

// handlePublished returns to the queue after a successful publish.
func (m Model) handlePublished(msg PublishedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Err = fmt.Errorf("publish: %w", msg.Err)
		return m, nil
	}
	m.Err = nil
	m.Notice = "published"
	m.Screen = ScreenQueue
	m.Detail = nil
	return m, fetchQueue(m.Client)
}

// handleSubmitted reports the outcome of a video submission.
func (m Model) handleSubmitted(msg SubmittedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.SubmitNote = msg.Err.Error()
		m.Mode = ModeSubmit
		return m, nil
	}
	m.Notice = fmt.Sprintf("submitted video %s for extraction", msg.VideoID)
	return m, fetchQueue(m.Client)
}

// handleTick refreshes the queue on the poll interval.
func (m Model) handleTick(TickMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd()}
	if m.Screen == ScreenQueue && m.Mode == ModeNormal {
		cmds = append(cmds, fetchQueue(m.Client))
	}
	return m, tea.Batch(cmds...)
}
