package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"coinlens/console/client"
	"coinlens/store"
)

// queuePollInterval is the fixed refresh timer of the queue view; it runs
// independently of user interaction.
const queuePollInterval = 5 * time.Second

// fetchQueue loads the full queue; filtering happens client-side on every
// keystroke, so the poll always asks for everything.
func fetchQueue(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		items, err := c.FetchQueue(context.Background(), "", "")
		return QueueLoadedMsg{Items: items, Err: err}
	}
}

// fetchContent loads one item for the detail screen.
func fetchContent(c *client.Client, id string) tea.Cmd {
	return func() tea.Msg {
		resp, err := c.FetchContent(context.Background(), id)
		if errors.Is(err, client.ErrNotFound) {
			return ContentLoadedMsg{NotFound: true}
		}
		return ContentLoadedMsg{Resp: resp, Err: err}
	}
}

// saveMention sends an approve/reject/edit patch and refetches the item.
func saveMention(c *client.Client, contentID, mentionID string, patch store.MentionPatch) tea.Cmd {
	return func() tea.Msg {
		resp, err := c.UpdateMention(context.Background(), contentID, mentionID, patch)
		return MentionSavedMsg{Resp: resp, Err: err}
	}
}

// publishContent fires the one-way publish transition.
func publishContent(c *client.Client, contentID string) tea.Cmd {
	return func() tea.Msg {
		resp, err := c.Publish(context.Background(), contentID)
		return PublishedMsg{Resp: resp, Err: err}
	}
}

// submitVideo hands a video URL to the ingestion webhook.
func submitVideo(c *client.Client, url string) tea.Cmd {
	return func() tea.Msg {
		videoID, err := c.SubmitVideo(context.Background(), url)
		return SubmittedMsg{VideoID: videoID, Err: err}
	}
}

// triggerRefresh asks the server to refresh engagement stats and export
// snapshots; the server answers before the work finishes, so the queue
// poll picks up the new numbers later.
func triggerRefresh(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		if err := c.TriggerRefresh(context.Background()); err != nil {
			return QueueLoadedMsg{Err: err}
		}
		return nil
	}
}

// tickCmd creates a command that ticks on the polling interval.
func tickCmd() tea.Cmd {
	return tea.Tick(queuePollInterval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
