// Package slides turns a frame source plus a caption corpus into the final
// ordered slide sequence.
package slides

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"videoSlides/captions"
	"videoSlides/core"
	"videoSlides/frames"
)

// Options configures one extraction run. The single scheduler covers all
// extractor variants through independent capability knobs: ChangeThreshold 0
// disables change-triggered insertions (similarity is never negative) and a
// very large MaxCaptionLength disables volume splitting.
type Options struct {
	Interval         int     // sampling step in seconds, > 0
	ChangeThreshold  float64 // similarity below this inserts a slide, [0,1]
	MaxCaptionLength int     // character budget per slide before splitting, > 0
	CompactText      bool
	CaptionWindow    float64 // caption half-window in seconds, > 0
	ImageQuality     int     // JPEG quality 1-100
	FramesDir        string
	Events           core.EventSink
}

func (o Options) validate() error {
	if o.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %d", o.Interval)
	}
	if o.ChangeThreshold < 0 || o.ChangeThreshold > 1 {
		return fmt.Errorf("change threshold must be in [0,1], got %f", o.ChangeThreshold)
	}
	if o.MaxCaptionLength <= 0 {
		return fmt.Errorf("max caption length must be positive, got %d", o.MaxCaptionLength)
	}
	if o.CaptionWindow <= 0 {
		return fmt.Errorf("caption window must be positive, got %f", o.CaptionWindow)
	}
	return nil
}

// Extractor drives time-stepped sampling over a frame source, deduplicates
// by integer-second time key and yields the ordered record sequence. It
// exclusively owns the source handle and the dedup map for the run.
type Extractor struct {
	source  frames.Source
	corpus  core.CaptionCorpus
	opts    Options
	records map[int]core.FrameRecord
}

func NewExtractor(source frames.Source, corpus core.CaptionCorpus, opts Options) *Extractor {
	return &Extractor{
		source:  source,
		corpus:  corpus,
		opts:    opts,
		records: make(map[int]core.FrameRecord),
	}
}

// Run executes the sampling loop and returns the records sorted ascending by
// time key, strictly increasing, no duplicates. The source is released on
// every exit path. A run that ends with zero records returns ErrNoRecords.
func (x *Extractor) Run() ([]core.FrameRecord, error) {
	defer x.source.Close()

	if err := x.opts.validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(x.opts.FramesDir, 0755); err != nil {
		return nil, &core.IOError{Op: "create frames dir", Err: err}
	}

	duration := x.source.Duration()
	var previous image.Image

	for t := 0; float64(t) < duration; t += x.opts.Interval {
		frame, err := x.source.ReadFrameAt(float64(t))
		if err != nil {
			// Skip this sample point entirely, no state change.
			x.emit(core.Event{Type: core.EventFrameSkipped, Time: float64(t), Detail: err.Error()})
			continue
		}

		if _, taken := x.records[t]; !taken {
			// Similarity can never go below a zero threshold, so a zero
			// threshold disables change-triggered insertions outright.
			changed := false
			sim := 1.0
			if previous != nil {
				sim = frames.Similarity(previous, frame)
				changed = sim < x.opts.ChangeThreshold
			}
			// Change-triggered or periodic: exactly one record per
			// sampled t either way.
			if x.insert(t, frame, float64(t)) && changed {
				x.emit(core.Event{
					Type:   core.EventChangeInsertion,
					Time:   float64(t),
					Detail: fmt.Sprintf("similarity %.3f below threshold %.3f", sim, x.opts.ChangeThreshold),
				})
			}
		}

		if rec, ok := x.records[t]; ok && utf8.RuneCountInString(rec.Text) > x.opts.MaxCaptionLength {
			x.splitInterval(t)
		}

		// Previous frame is always the one read at t, never at a split
		// point.
		previous = frame
	}

	if len(x.records) == 0 {
		return nil, core.ErrNoRecords
	}

	keys := make([]int, 0, len(x.records))
	for k := range x.records {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]core.FrameRecord, 0, len(keys))
	for _, k := range keys {
		out = append(out, x.records[k])
	}
	return out, nil
}

// splitInterval subdivides [t, t+interval) when the caption text bound to t
// exceeds the character budget.
func (x *Extractor) splitInterval(t int) {
	points := captions.SplitPoints(x.corpus, float64(t), float64(t+x.opts.Interval), x.opts.MaxCaptionLength)
	for _, sp := range points {
		key := int(sp)
		if key == t {
			continue
		}
		if _, taken := x.records[key]; taken {
			continue
		}
		frame, err := x.source.ReadFrameAt(sp)
		if err != nil {
			x.emit(core.Event{Type: core.EventFrameSkipped, Time: sp, Detail: err.Error()})
			continue
		}
		if x.insert(key, frame, sp) {
			x.emit(core.Event{
				Type:   core.EventVolumeSplit,
				Time:   sp,
				Detail: fmt.Sprintf("caption text over %d chars in [%d,%d)", x.opts.MaxCaptionLength, t, t+x.opts.Interval),
			})
		}
	}
}

// insert persists the frame and binds a record at key. A record is never
// created for an image that failed to persist.
func (x *Extractor) insert(key int, frame image.Image, captionAt float64) bool {
	path := filepath.Join(x.opts.FramesDir, fmt.Sprintf("frame_%06d.jpg", key))
	if err := frames.SaveJPEG(frame, path, x.opts.ImageQuality); err != nil {
		x.emit(core.Event{Type: core.EventFrameSkipped, Time: float64(key), Detail: err.Error()})
		return false
	}
	x.records[key] = core.FrameRecord{
		TimeKey:   key,
		ImagePath: path,
		Text:      captions.Window(x.corpus, captionAt, x.opts.CaptionWindow, x.opts.CompactText),
	}
	return true
}

func (x *Extractor) emit(ev core.Event) {
	if x.opts.Events != nil {
		x.opts.Events(ev)
		return
	}
	log.Printf("[extract] %s t=%.1f %s", ev.Type, ev.Time, ev.Detail)
}
