package captions

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"videoSlides/config"
	"videoSlides/core"
	"videoSlides/media"
)

// WhisperProvider builds a caption corpus from the video's audio track via
// the Whisper transcription API. Audio over the upload limit is cut into
// 10-minute chunks submitted sequentially, each chunk's timestamps offset by
// the running total of preceding chunks.
type WhisperProvider struct {
	cli       *openai.Client
	model     string
	language  string
	audioPath string
}

// NewWhisperProvider prepares a provider for an already-extracted audio
// file. Returns nil when the API is not configured; Resolve treats a nil
// provider as an empty corpus.
func NewWhisperProvider(cfg *config.Config, audioPath string) *WhisperProvider {
	if cfg == nil || !cfg.HasValidAPI() {
		return nil
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &WhisperProvider{
		cli:       openai.NewClientWithConfig(clientCfg),
		model:     cfg.WhisperModel,
		language:  cfg.Language,
		audioPath: audioPath,
	}
}

func (p *WhisperProvider) Fetch() core.CaptionCorpus {
	corpus, err := p.Transcribe(p.audioPath)
	if err != nil {
		fmt.Printf("Warning: speech-to-text failed (%v), continuing without\n", err)
		return core.CaptionCorpus{Source: core.SourceSpeechToText, Language: p.language}
	}
	return corpus
}

// Transcribe runs the chunked transcription over one audio file.
func (p *WhisperProvider) Transcribe(audioPath string) (core.CaptionCorpus, error) {
	corpus := core.CaptionCorpus{Source: core.SourceSpeechToText, Language: p.language}

	split, err := media.NeedsSplit(audioPath)
	if err != nil {
		return corpus, &core.IOError{Op: "stat audio", Err: err}
	}

	segments := []string{audioPath}
	if split {
		tempDir, err := os.MkdirTemp("", "videoslides-audio-")
		if err != nil {
			return corpus, &core.IOError{Op: "create audio temp dir", Err: err}
		}
		defer os.RemoveAll(tempDir)
		segments, err = media.SplitAudio(audioPath, tempDir)
		if err != nil {
			return corpus, err
		}
	}

	offset := 0.0
	for i, segPath := range segments {
		entries, err := p.transcribeChunk(segPath, offset)
		if err != nil {
			fmt.Printf("Warning: transcription of chunk %d failed: %v\n", i, err)
		} else {
			corpus.Entries = append(corpus.Entries, entries...)
		}
		offset += media.SegmentSeconds
		if i < len(segments)-1 {
			time.Sleep(time.Second) // rate limiting
		}
	}
	return corpus, nil
}

func (p *WhisperProvider) transcribeChunk(audioPath string, offset float64) ([]core.CaptionEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	resp, err := p.cli.CreateTranscription(ctx, openai.AudioRequest{
		Model:    p.model,
		FilePath: audioPath,
		Language: p.language,
		Format:   openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []openai.TranscriptionTimestampGranularity{
			openai.TranscriptionTimestampGranularitySegment,
		},
	})
	if err != nil {
		return nil, err
	}

	entries := make([]core.CaptionEntry, 0, len(resp.Segments))
	for _, seg := range resp.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		entries = append(entries, core.CaptionEntry{
			Start:    offset + seg.Start,
			Text:     text,
			Duration: seg.End - seg.Start,
		})
	}
	return entries, nil
}
