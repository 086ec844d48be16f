package captions

import (
	"log"

	"videoSlides/core"
)

// Provider fetches one caption corpus for a video. Implementations degrade
// to an empty corpus instead of failing, so the caller can always feed the
// result straight into Select.
type Provider interface {
	Fetch() core.CaptionCorpus
}

// Resolve fetches both corpora and reconciles them into one. The
// speech-to-text provider may be nil, in which case only the native corpus
// is considered. When a forced speech-to-text preference cannot be honored
// because that corpus is empty, a captionFallback event reports the switch;
// a nil sink falls back to log output.
func Resolve(native, speechToText Provider, forcePreferred bool, events core.EventSink) core.CaptionCorpus {
	nativeCorpus := core.CaptionCorpus{Source: core.SourceNative}
	if native != nil {
		nativeCorpus = native.Fetch()
	}
	sttCorpus := core.CaptionCorpus{Source: core.SourceSpeechToText}
	if speechToText != nil {
		sttCorpus = speechToText.Fetch()
	}

	if forcePreferred && sttCorpus.Empty() && !nativeCorpus.Empty() {
		ev := core.Event{
			Type:   core.EventCaptionFallback,
			Detail: "speech-to-text captions unavailable, using native captions",
		}
		if events != nil {
			events(ev)
		} else {
			log.Printf("[captions] %s %s", ev.Type, ev.Detail)
		}
	}

	return Select(nativeCorpus, sttCorpus, forcePreferred)
}
