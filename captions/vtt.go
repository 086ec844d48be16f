package captions

import (
	"regexp"
	"strconv"
	"strings"

	"videoSlides/core"
)

// timingRe matches VTT cue timings like "00:00:01.234 --> 00:00:03.456",
// with or without the hour field, ignoring trailing position metadata.
var timingRe = regexp.MustCompile(`^(\d{2}:)?(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(\d{2}:)?(\d{2}):(\d{2})\.(\d{3})`)

// htmlTagRe strips the <c>, <font>, <00:00:01.000> style tags yt-dlp leaves
// in auto-generated subtitles.
var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

var vttHeaderRe = regexp.MustCompile(`^WEBVTT\b`)
var metadataLineRe = regexp.MustCompile(`^(Kind|Language|NOTE|STYLE|REGION)\b`)

// ParseVTT converts raw WebVTT subtitle content into caption entries.
// Rolling auto-caption cues that repeat the previous cue's text verbatim are
// dropped.
func ParseVTT(raw string, lang string) core.CaptionCorpus {
	corpus := core.CaptionCorpus{Source: core.SourceNative, Language: lang}
	if raw == "" {
		return corpus
	}

	var (
		start, end float64
		inCue      bool
		textLines  []string
		prevText   string
	)

	flush := func() {
		if !inCue {
			return
		}
		text := strings.TrimSpace(strings.Join(textLines, " "))
		inCue = false
		textLines = nil
		if text == "" || text == prevText {
			return
		}
		corpus.Entries = append(corpus.Entries, core.CaptionEntry{
			Start:    start,
			Text:     text,
			Duration: end - start,
		})
		prevText = text
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")

		if vttHeaderRe.MatchString(line) || metadataLineRe.MatchString(line) {
			continue
		}
		if m := timingRe.FindStringSubmatch(line); m != nil {
			flush()
			start = cueSeconds(m[1], m[2], m[3], m[4])
			end = cueSeconds(m[5], m[6], m[7], m[8])
			inCue = true
			continue
		}
		if !inCue {
			// Cue identifiers and stray lines before the first timing.
			continue
		}
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		line = htmlTagRe.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line != "" {
			textLines = append(textLines, line)
		}
	}
	flush()
	return corpus
}

func cueSeconds(hh, mm, ss, ms string) float64 {
	hours := 0
	if hh != "" {
		hours, _ = strconv.Atoi(strings.TrimSuffix(hh, ":"))
	}
	minutes, _ := strconv.Atoi(mm)
	seconds, _ := strconv.Atoi(ss)
	millis, _ := strconv.Atoi(ms)
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000
}
