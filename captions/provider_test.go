package captions

import (
	"testing"

	"videoSlides/core"
)

type staticProvider struct {
	corpus core.CaptionCorpus
}

func (p staticProvider) Fetch() core.CaptionCorpus { return p.corpus }

func TestResolveNilSpeechToText(t *testing.T) {
	native := staticProvider{corpus: core.CaptionCorpus{
		Source:  core.SourceNative,
		Entries: entriesWithText(10, "a native caption line"),
	}}
	got := Resolve(native, nil, false, nil)
	if got.Source != core.SourceNative || len(got.Entries) != 10 {
		t.Errorf("Resolve with nil speech-to-text = %s/%d entries", got.Source, len(got.Entries))
	}
}

func TestResolveBothNil(t *testing.T) {
	if got := Resolve(nil, nil, false, nil); !got.Empty() {
		t.Errorf("Resolve(nil, nil) produced %d entries", len(got.Entries))
	}
}

func TestResolveForcePreferred(t *testing.T) {
	native := staticProvider{corpus: core.CaptionCorpus{
		Source:  core.SourceNative,
		Entries: entriesWithText(80, "a perfectly fine native caption"),
	}}
	stt := staticProvider{corpus: core.CaptionCorpus{
		Source:  core.SourceSpeechToText,
		Entries: entriesWithText(3, "ok"),
	}}
	var events []core.Event
	sink := func(ev core.Event) { events = append(events, ev) }

	if got := Resolve(native, stt, true, sink); got.Source != core.SourceSpeechToText {
		t.Errorf("Resolve forcePreferred = %s, want speech-to-text", got.Source)
	}
	if len(events) != 0 {
		t.Errorf("honored preference emitted %d events, want none", len(events))
	}
}

func TestResolveForcePreferredFallbackEvent(t *testing.T) {
	native := staticProvider{corpus: core.CaptionCorpus{
		Source:  core.SourceNative,
		Entries: entriesWithText(80, "a perfectly fine native caption"),
	}}
	empty := staticProvider{corpus: core.CaptionCorpus{Source: core.SourceSpeechToText}}

	var events []core.Event
	got := Resolve(native, empty, true, func(ev core.Event) { events = append(events, ev) })
	if got.Source != core.SourceNative {
		t.Errorf("fallback returned %s, want native", got.Source)
	}
	if len(events) != 1 || events[0].Type != core.EventCaptionFallback {
		t.Errorf("expected one caption_fallback event, got %+v", events)
	}
}
