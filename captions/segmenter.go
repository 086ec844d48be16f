package captions

import (
	"sort"
	"unicode/utf8"

	"videoSlides/core"
)

// SplitPoints finds extra slide boundaries inside [start, end) when the
// caption text there runs long. Entries starting in the interval are scanned
// in start order; every time the accumulated character count reaches limit,
// the current entry's start is emitted and the accumulator resets. The
// result always begins with the literal start value, so it is non-empty for
// any input including an empty corpus.
func SplitPoints(corpus core.CaptionCorpus, start, end float64, limit int) []float64 {
	matched := make([]core.CaptionEntry, 0)
	for _, e := range corpus.Entries {
		if e.Start >= start && e.Start < end {
			matched = append(matched, e)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Start < matched[j].Start })

	points := []float64{start}
	acc := 0
	for _, e := range matched {
		acc += utf8.RuneCountInString(e.Text)
		if acc >= limit {
			points = append(points, e.Start)
			acc = 0
		}
	}
	return points
}
