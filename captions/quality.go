package captions

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"videoSlides/core"
)

// Score rates a corpus on its own statistics: average entry length (10-100
// chars is ideal), average word length (very short words suggest garbled
// recognition) and entry coverage. An empty corpus always scores 0, so a
// non-empty corpus always beats an empty one.
func Score(corpus core.CaptionCorpus) float64 {
	n := len(corpus.Entries)
	if n == 0 {
		return 0.0
	}

	totalChars := 0
	totalWords := 0
	for _, e := range corpus.Entries {
		totalChars += utf8.RuneCountInString(e.Text)
		totalWords += len(strings.Fields(e.Text))
	}

	avgEntryLen := float64(totalChars) / float64(n)
	lengthPenalty := 1.0
	if avgEntryLen < 10 {
		lengthPenalty = avgEntryLen / 10
	} else if avgEntryLen > 100 {
		lengthPenalty = 100 / avgEntryLen
	}

	avgWordLen := 0.0
	if totalWords > 0 {
		avgWordLen = float64(totalChars) / float64(totalWords)
	}
	wordLenScore := avgWordLen / 3
	if wordLenScore > 1.0 {
		wordLenScore = 1.0
	}

	coverageScore := float64(n) / 100
	if coverageScore > 1.0 {
		coverageScore = 1.0
	}

	return 0.5*lengthPenalty + 0.3*wordLenScore + 0.2*coverageScore
}

// Select picks between the native corpus and the speech-to-text corpus.
// With forcePreferred the speech-to-text corpus wins whenever it is
// non-empty, silently falling back to the native one otherwise (Resolve
// reports the switch). Without it the strictly higher score wins and ties
// resolve to the native corpus.
func Select(native, speechToText core.CaptionCorpus, forcePreferred bool) core.CaptionCorpus {
	if forcePreferred {
		if !speechToText.Empty() {
			return speechToText
		}
		if !native.Empty() {
			return native
		}
		return core.CaptionCorpus{Source: core.SourceSpeechToText, Language: speechToText.Language}
	}

	nativeScore := Score(native)
	sttScore := Score(speechToText)
	fmt.Printf("Caption quality scores - native: %.2f, speech-to-text: %.2f\n", nativeScore, sttScore)

	if sttScore > nativeScore {
		return speechToText
	}
	return native
}
