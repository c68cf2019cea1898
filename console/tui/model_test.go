package tui

import (
	"testing"

	"coinlens/types"
)

func queueModel() Model {
	m := NewModel(nil)
	m.StatusFilter = "all"
	m.Items = []*types.ContentItem{
		{ID: "a", Title: "Top Altcoins", Status: types.ContentPending,
			Influencer: types.Influencer{Handle: "@cryptoking", Name: "Crypto King"}},
		{ID: "b", Title: "Moon Watch", Status: types.ContentPublished,
			Influencer: types.Influencer{Handle: "@moongirl", Name: "Moon Girl"}},
		{ID: "c", Title: "Daily Recap", Status: types.ContentProcessing,
			Influencer: types.Influencer{Handle: "@cryptoking", Name: "Crypto King"}},
	}
	return m
}

func TestVisibleFiltering(t *testing.T) {
	cases := []struct {
		name    string
		search  string
		status  string
		wantIDs []string
	}{
		{"no filter", "", "all", []string{"a", "b", "c"}},
		{"search title", "moon", "all", []string{"b"}},
		{"search handle", "cryptoking", "all", []string{"a", "c"}},
		{"status only", "", "published", []string{"b"}},
		{"search plus status", "crypto", "processing", []string{"c"}},
		{"no match", "dogecoin", "all", nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := queueModel()
			m.Search = c.search
			m.StatusFilter = c.status
			got := m.Visible()
			if len(got) != len(c.wantIDs) {
				t.Fatalf("Visible() returned %d items; want %d", len(got), len(c.wantIDs))
			}
			for i, item := range got {
				if item.ID != c.wantIDs[i] {
					t.Fatalf("item[%d] = %s; want %s", i, item.ID, c.wantIDs[i])
				}
			}
		})
	}
}

func TestClampCursorAfterFilterShrink(t *testing.T) {
	m := queueModel()
	m.Cursor = 2

	m.Search = "moon"
	m = m.clampCursor()
	if m.Cursor != 0 {
		t.Fatalf("cursor = %d; want 0 after shrink to one item", m.Cursor)
	}

	m.Search = "dogecoin"
	m = m.clampCursor()
	if m.Cursor != 0 {
		t.Fatalf("cursor = %d; want 0 on empty view", m.Cursor)
	}
}

func TestStatusFilterCycle(t *testing.T) {
	got := "all"
	want := []string{"pending", "processing", "published", "all"}
	for _, w := range want {
		got = nextStatusFilter(got)
		if got != w {
			t.Fatalf("nextStatusFilter = %q; want %q", got, w)
		}
	}
	if nextStatusFilter("bogus") != "all" {
		t.Fatalf("unknown filter should reset to all")
	}
}
