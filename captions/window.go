// Package captions implements the caption side of slide extraction: corpus
// providers (native subtitles, Whisper speech-to-text), the timestamp window
// query, volume-based split-point detection and dual-source quality
// selection.
package captions

import (
	"sort"
	"strings"

	"videoSlides/core"
)

// Entries closer than this to the previous entry's end are merged into the
// same segment in compact mode.
const compactGapSeconds = 2.0

// Window renders the caption text relevant to one timestamp: every entry
// whose start lies within `window` seconds of `target`, in start order.
// Compact mode glues near-continuous entries together with spaces; otherwise
// each segment goes on its own line. Deterministic for any corpus entry
// order. Empty corpus or no matching entries yields "".
func Window(corpus core.CaptionCorpus, target, window float64, compact bool) string {
	matched := make([]core.CaptionEntry, 0)
	for _, e := range corpus.Entries {
		d := e.Start - target
		if d < 0 {
			d = -d
		}
		if d <= window {
			matched = append(matched, e)
		}
	}
	if len(matched) == 0 {
		return ""
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Start < matched[j].Start })

	segments := make([]string, 0, len(matched))
	lastEnd := 0.0
	for i, e := range matched {
		text := strings.TrimSpace(e.Text)
		if i > 0 && compact && e.Start-lastEnd < compactGapSeconds {
			segments[len(segments)-1] += " " + text
		} else {
			segments = append(segments, text)
		}
		lastEnd = e.Start + e.Duration
	}

	sep := "\n"
	if compact {
		sep = " "
	}
	return strings.Join(segments, sep)
}
