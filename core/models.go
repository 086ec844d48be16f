package core

// CaptionSource identifies where a caption corpus came from.
type CaptionSource string

const (
	SourceNative       CaptionSource = "native"
	SourceSpeechToText CaptionSource = "speech-to-text"
)

// CaptionEntry is one timestamped text fragment. Start and Duration are in
// seconds; entries inside a corpus are not assumed sorted.
type CaptionEntry struct {
	Start    float64 `json:"start"`
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
}

// CaptionCorpus is the complete set of entries from one source. Immutable
// once fetched.
type CaptionCorpus struct {
	Source   CaptionSource  `json:"source"`
	Language string         `json:"language"`
	Entries  []CaptionEntry `json:"entries"`
}

func (c CaptionCorpus) Empty() bool { return len(c.Entries) == 0 }

// FrameRecord is one selected slide: the integer-second time key (dedup
// identity), the persisted image path and the caption text bound to it.
type FrameRecord struct {
	TimeKey   int    `json:"time_key"`
	ImagePath string `json:"image_path"`
	Text      string `json:"text"`
}

// SelectionResult is the final record sequence of one run, strictly
// increasing by TimeKey.
type SelectionResult struct {
	JobID    string        `json:"job_id"`
	VideoRef string        `json:"video_ref"`
	Records  []FrameRecord `json:"records"`
}

// Event types emitted by the extraction engine.
const (
	EventFrameSkipped    = "frame_skipped"
	EventChangeInsertion = "change_insertion"
	EventVolumeSplit     = "volume_split"
	EventCaptionFallback = "caption_fallback"
)

// Event is a structured diagnostic emitted at well-defined points so a host
// can redirect or suppress engine output.
type Event struct {
	Type   string  `json:"type"`
	Time   float64 `json:"time"`
	Detail string  `json:"detail,omitempty"`
}

// EventSink receives engine events. A nil sink falls back to log output.
type EventSink func(Event)
