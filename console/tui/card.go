package tui

import (
	"coinlens/store"
	"coinlens/types"
)

// EditField identifies which field of the draft currently receives input.
type EditField int

const (
	FieldSymbol EditField = iota
	FieldName
	FieldCategory
	FieldURL
	FieldSentiment
	FieldRecommendation
	FieldQuote
	FieldContext
	fieldCount
)

// Names shown next to each field in the editor.
func (f EditField) Label() string {
	switch f {
	case FieldSymbol:
		return "symbol"
	case FieldName:
		return "name"
	case FieldCategory:
		return "category"
	case FieldURL:
		return "url"
	case FieldSentiment:
		return "sentiment"
	case FieldRecommendation:
		return "recommendation"
	case FieldQuote:
		return "quote"
	case FieldContext:
		return "context"
	default:
		return ""
	}
}

// Draft is the editing state of one mention card. It holds a full copy of
// the mention, so partial edits never touch the canonical object until an
// explicit save.
type Draft struct {
	Original types.MentionCandidate
	Edited   types.MentionCandidate
	Field    EditField
}

// NewDraft begins editing with a full copy of the mention.
func NewDraft(m types.MentionCandidate) *Draft {
	return &Draft{Original: m, Edited: m}
}

// NextField moves input focus forward, wrapping around.
func (d *Draft) NextField() { d.Field = (d.Field + 1) % fieldCount }

// PrevField moves input focus backward, wrapping around.
func (d *Draft) PrevField() { d.Field = (d.Field + fieldCount - 1) % fieldCount }

// textTarget returns the string under edit for text fields, nil for the
// cycled enum fields.
func (d *Draft) textTarget() *string {
	switch d.Field {
	case FieldSymbol:
		return &d.Edited.Instrument.Symbol
	case FieldName:
		return &d.Edited.Instrument.Name
	case FieldCategory:
		return &d.Edited.Instrument.Category
	case FieldURL:
		return &d.Edited.Instrument.URL
	case FieldQuote:
		return &d.Edited.Quote
	case FieldContext:
		return &d.Edited.Context
	default:
		return nil
	}
}

// Insert appends typed text to the focused field; enum fields ignore typing.
func (d *Draft) Insert(s string) {
	if t := d.textTarget(); t != nil {
		*t += s
	}
}

// Backspace removes the last rune of the focused text field.
func (d *Draft) Backspace() {
	t := d.textTarget()
	if t == nil || *t == "" {
		return
	}
	runes := []rune(*t)
	*t = string(runes[:len(runes)-1])
}

var sentimentCycle = []types.Sentiment{
	types.SentimentPositive, types.SentimentNeutral, types.SentimentNegative,
}

var recommendationCycle = []types.Recommendation{
	types.RecommendBuy, types.RecommendHold, types.RecommendSell, types.RecommendAvoid,
}

// Cycle advances the focused enum field to its next value; text fields
// ignore it.
func (d *Draft) Cycle() {
	switch d.Field {
	case FieldSentiment:
		d.Edited.Sentiment = nextOf(sentimentCycle, d.Edited.Sentiment)
	case FieldRecommendation:
		d.Edited.Recommendation = nextOf(recommendationCycle, d.Edited.Recommendation)
	}
}

func nextOf[T comparable](cycle []T, current T) T {
	for i, v := range cycle {
		if v == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

// Patch commits the draft: every editable field is carried and the review
// status is forced to modified, regardless of the prior status.
func (d *Draft) Patch() store.MentionPatch {
	instrument := d.Edited.Instrument
	sentiment := d.Edited.Sentiment
	recommendation := d.Edited.Recommendation
	quote := d.Edited.Quote
	context := d.Edited.Context
	return store.MentionPatch{
		Status:         types.ReviewModified,
		Instrument:     &instrument,
		Sentiment:      &sentiment,
		Recommendation: &recommendation,
		Quote:          &quote,
		Context:        &context,
	}
}

// ApprovePatch is the one-click approve: status only, content untouched.
func ApprovePatch() store.MentionPatch {
	return store.MentionPatch{Status: types.ReviewApproved}
}

// RejectPatch is the one-click reject: status only, content untouched.
func RejectPatch() store.MentionPatch {
	return store.MentionPatch{Status: types.ReviewRejected}
}
