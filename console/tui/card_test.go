package tui

import (
	"testing"

	"coinlens/types"
)

func sampleMention() types.MentionCandidate {
	return types.MentionCandidate{
		ID: "m1",
		Instrument: types.Instrument{
			Symbol: "SOL", Name: "Solana", Category: "layer-1",
		},
		Sentiment:      types.SentimentPositive,
		Recommendation: types.RecommendBuy,
		Quote:          "loading up on SOL",
		Context:        "altcoin discussion",
		Status:         types.ReviewPending,
	}
}

func TestDraftHoldsFullCopy(t *testing.T) {
	original := sampleMention()
	d := NewDraft(original)

	d.Field = FieldQuote
	d.Insert(" and more")
	d.Field = FieldSymbol
	d.Backspace()

	if d.Original != original {
		t.Fatalf("editing mutated the original copy: %+v", d.Original)
	}
	if d.Edited.Quote != "loading up on SOL and more" {
		t.Fatalf("quote edit lost: %q", d.Edited.Quote)
	}
	if d.Edited.Instrument.Symbol != "SO" {
		t.Fatalf("symbol backspace lost: %q", d.Edited.Instrument.Symbol)
	}
}

func TestPatchForcesModifiedAndCarriesAllFields(t *testing.T) {
	cases := []struct {
		name  string
		prior types.ReviewStatus
	}{
		{"from pending", types.ReviewPending},
		{"from approved", types.ReviewApproved},
		{"from rejected", types.ReviewRejected},
		{"from modified", types.ReviewModified},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := sampleMention()
			m.Status = c.prior
			d := NewDraft(m)
			d.Field = FieldQuote
			d.Insert("!")
			d.Field = FieldSentiment
			d.Cycle()

			patch := d.Patch()
			if patch.Status != types.ReviewModified {
				t.Fatalf("status = %q; want modified", patch.Status)
			}
			if patch.Quote == nil || *patch.Quote != "loading up on SOL!" {
				t.Fatalf("quote not carried: %v", patch.Quote)
			}
			if patch.Sentiment == nil || *patch.Sentiment != types.SentimentNeutral {
				t.Fatalf("sentiment not carried: %v", patch.Sentiment)
			}
			if patch.Instrument == nil || patch.Recommendation == nil || patch.Context == nil {
				t.Fatalf("patch missing fields: %+v", patch)
			}
		})
	}
}

func TestEnumCycles(t *testing.T) {
	d := NewDraft(sampleMention())
	d.Field = FieldRecommendation
	want := []types.Recommendation{
		types.RecommendHold, types.RecommendSell, types.RecommendAvoid, types.RecommendBuy,
	}
	for _, w := range want {
		d.Cycle()
		if d.Edited.Recommendation != w {
			t.Fatalf("recommendation = %q; want %q", d.Edited.Recommendation, w)
		}
	}

	// Typing into an enum field is ignored.
	d.Insert("x")
	if d.Edited.Recommendation != types.RecommendBuy {
		t.Fatalf("typing altered enum field")
	}

	// Cycling a text field is ignored.
	d.Field = FieldQuote
	before := d.Edited
	d.Cycle()
	if d.Edited != before {
		t.Fatalf("cycle altered a text field")
	}
}

func TestFieldNavigationWraps(t *testing.T) {
	d := NewDraft(sampleMention())
	for i := 0; i < int(fieldCount); i++ {
		d.NextField()
	}
	if d.Field != FieldSymbol {
		t.Fatalf("field after full forward cycle = %v", d.Field)
	}
	d.PrevField()
	if d.Field != FieldContext {
		t.Fatalf("field after wrap-back = %v", d.Field)
	}
}

func TestOneClickPatchesTouchOnlyStatus(t *testing.T) {
	a := ApprovePatch()
	if a.Status != types.ReviewApproved || a.Quote != nil || a.Instrument != nil || a.Sentiment != nil {
		t.Fatalf("approve patch carries content fields: %+v", a)
	}
	r := RejectPatch()
	if r.Status != types.ReviewRejected || r.Quote != nil || r.Instrument != nil {
		t.Fatalf("reject patch carries content fields: %+v", r)
	}
}
