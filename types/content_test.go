package types

import "testing"

func TestCountMentionsAndPublishable(t *testing.T) {
	cases := []struct {
		name        string
		status      ContentStatus
		statuses    []ReviewStatus
		wantPending int
		publishable bool
	}{
		{"all pending", ContentProcessing, []ReviewStatus{ReviewPending, ReviewPending}, 2, false},
		{"mixed with pending", ContentPending, []ReviewStatus{ReviewApproved, ReviewPending, ReviewRejected}, 1, false},
		{"fully reviewed", ContentPending, []ReviewStatus{ReviewApproved, ReviewModified, ReviewRejected}, 0, true},
		{"no mentions", ContentPending, nil, 0, true},
		{"already published", ContentPublished, []ReviewStatus{ReviewApproved}, 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			item := &ContentItem{Status: c.status}
			for _, s := range c.statuses {
				item.Mentions = append(item.Mentions, MentionCandidate{Status: s})
			}
			counts := CountMentions(item.Mentions)
			if counts.Pending != c.wantPending {
				t.Fatalf("pending = %d; want %d", counts.Pending, c.wantPending)
			}
			if got := item.Publishable(); got != c.publishable {
				t.Fatalf("Publishable() = %v; want %v", got, c.publishable)
			}
		})
	}
}

func TestGenerateIDStable(t *testing.T) {
	a := GenerateID("https://www.youtube.com/watch?v=ABC123")
	b := GenerateID("https://www.youtube.com/watch?v=ABC123")
	if a != b {
		t.Fatalf("GenerateID not stable: %q vs %q", a, b)
	}
	if len(a) != 16 {
		t.Fatalf("GenerateID length = %d; want 16", len(a))
	}
	if a == GenerateID("https://youtu.be/XYZ789") {
		t.Fatalf("distinct URLs produced identical IDs")
	}
}
