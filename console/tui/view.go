package tui

import (
	"fmt"
	"strings"

	"coinlens/types"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("🔍 CoinLens Review Console"))
	b.WriteString("\n")

	if m.Screen == ScreenDetail {
		m.renderDetail(&b)
	} else {
		m.renderQueue(&b)
	}

	if m.Err != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("⚠ %v", m.Err)))
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("Press 'R' to retry"))
		b.WriteString("\n")
	} else if m.Notice != "" {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(m.Notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(m.helpText()))
	return b.String()
}

// renderQueue writes the queue screen.
func (m Model) renderQueue(b *strings.Builder) {
	if m.Mode == ModeSearch {
		b.WriteString(SelectedStyle.Render("Search: " + m.Search + "▌"))
		b.WriteString("\n")
	} else if m.Search != "" {
		b.WriteString(InfoStyle.Render("Search: " + m.Search))
		b.WriteString("\n")
	}
	b.WriteString(InfoStyle.Render("Status filter: " + m.StatusFilter))
	b.WriteString("\n\n")

	if m.Mode == ModeSubmit {
		prompt := "Video URL: " + m.SubmitInput + "▌"
		b.WriteString(BoxStyle.Render(prompt))
		b.WriteString("\n")
		if m.SubmitNote != "" {
			b.WriteString(ErrorStyle.Render(m.SubmitNote))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	visible := m.Visible()
	if m.Loading && len(visible) == 0 {
		b.WriteString(InfoStyle.Render("Loading queue..."))
		b.WriteString("\n")
		return
	}
	if len(visible) == 0 {
		b.WriteString(InfoStyle.Render("No content matches the current filters."))
		b.WriteString("\n")
		return
	}

	for i, item := range visible {
		counts := types.CountMentions(item.Mentions)
		line := fmt.Sprintf("%-40s  %-16s  %-10s  %d/%d resolved",
			truncate(item.Title, 40),
			truncate(item.Influencer.Handle, 16),
			item.Status,
			counts.Resolved(),
			counts.Total,
		)
		if i == m.Cursor && m.Mode != ModeSubmit {
			b.WriteString(SelectedStyle.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("%d of %d items", len(visible), len(m.Items))))
	b.WriteString("\n")
}

// renderDetail writes the detail screen with its mention list.
func (m Model) renderDetail(b *strings.Builder) {
	if m.DetailNotFound {
		b.WriteString(ErrorStyle.Render("Content not found. It may have been removed."))
		b.WriteString("\n")
		return
	}
	if m.Detail == nil || m.Detail.Item == nil {
		b.WriteString(InfoStyle.Render("Loading content..."))
		b.WriteString("\n")
		return
	}

	item := m.Detail.Item
	header := fmt.Sprintf("%s\n%s (%s) · %s · %d views · %d likes · %d comments",
		item.Title,
		item.Influencer.Name, item.Influencer.Handle,
		item.Status,
		item.Views, item.Likes, item.Comments,
	)
	b.WriteString(BoxStyle.Render(header))
	b.WriteString("\n\n")

	counts := m.Detail.Counts
	b.WriteString(InfoStyle.Render(fmt.Sprintf(
		"Mentions: %d total · %d pending · %d approved · %d rejected · %d modified",
		counts.Total, counts.Pending, counts.Approved, counts.Rejected, counts.Modified,
	)))
	b.WriteString("\n\n")

	if len(item.Mentions) == 0 {
		b.WriteString(InfoStyle.Render("No mentions extracted yet."))
		b.WriteString("\n")
	}

	for i, mc := range item.Mentions {
		line := fmt.Sprintf("[%s] %s %s · %s/%s · %.0f%% · %s",
			statusStyleFor(mc.Status).Render(string(mc.Status)),
			mc.Instrument.Symbol,
			truncate(mc.Instrument.Name, 20),
			mc.Sentiment, mc.Recommendation,
			mc.Confidence*100,
			truncate(mc.Quote, 48),
		)
		if i == m.MentionCursor && m.Mode != ModeEdit {
			b.WriteString(SelectedStyle.Render("›"))
			b.WriteString(" " + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.Mode == ModeEdit && m.Draft != nil {
		b.WriteString("\n")
		b.WriteString(BoxStyle.Render(m.renderDraft()))
		b.WriteString("\n")
	}

	if m.canPublish() {
		b.WriteString("\n")
		b.WriteString(ApprovedStyle.Render("Ready to publish (press 'p')"))
		b.WriteString("\n")
	}
}

// renderDraft writes the edit form, highlighting the focused field.
func (m Model) renderDraft() string {
	d := m.Draft
	values := []string{
		d.Edited.Instrument.Symbol,
		d.Edited.Instrument.Name,
		d.Edited.Instrument.Category,
		d.Edited.Instrument.URL,
		string(d.Edited.Sentiment),
		string(d.Edited.Recommendation),
		d.Edited.Quote,
		d.Edited.Context,
	}

	var b strings.Builder
	b.WriteString(FieldStyle.Render("Edit mention (enter=save, esc=cancel)"))
	b.WriteString("\n\n")
	for f := EditField(0); f < fieldCount; f++ {
		label := fmt.Sprintf("%-15s", f.Label())
		value := truncate(values[f], 60)
		if f == d.Field {
			b.WriteString(ActiveFieldStyle.Render(label + value + "▌"))
		} else {
			b.WriteString(FieldStyle.Render(label + value))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// statusStyleFor maps a review status to its display style.
func statusStyleFor(s types.ReviewStatus) interface{ Render(...string) string } {
	switch s {
	case types.ReviewApproved:
		return ApprovedStyle
	case types.ReviewRejected:
		return RejectedStyle
	case types.ReviewModified:
		return ModifiedStyle
	default:
		return InfoStyle
	}
}

// helpText returns the keymap line for the current screen and mode.
func (m Model) helpText() string {
	switch m.Mode {
	case ModeSearch:
		return "type to filter | enter: keep | esc: clear"
	case ModeSubmit:
		return "enter: submit | esc: cancel"
	case ModeEdit:
		return "tab: next field | ←/→: cycle value | enter: save | esc: cancel"
	}
	if m.Screen == ScreenDetail {
		return "a: approve | x: reject | e: edit | p: publish | R: reload | esc: back | q: quit"
	}
	return "↑/↓: move | enter: open | /: search | f: status filter | n: submit video | R: refresh | q: quit"
}
