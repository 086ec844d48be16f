package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Whisper's upload limit is 25 MB; stay under it with some margin.
const maxAudioMB = 24

// SegmentSeconds is the chunk length used when a large audio file must be
// split before transcription.
const SegmentSeconds = 600

// ExtractAudio pulls the audio track out of a video as mp3.
func ExtractAudio(videoPath, outputDir string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	audioPath := filepath.Join(outputDir, base+".mp3")
	args := []string{"-y", "-i", videoPath, "-q:a", "0", "-map", "a", "-vn", audioPath}
	if err := RunFFmpeg(args); err != nil {
		return "", err
	}
	return audioPath, nil
}

// NeedsSplit reports whether the audio file exceeds the transcription
// service's upload limit.
func NeedsSplit(audioPath string) (bool, error) {
	info, err := os.Stat(audioPath)
	if err != nil {
		return false, err
	}
	return info.Size() > maxAudioMB*1024*1024, nil
}

// SplitAudio cuts an audio file into SegmentSeconds-long mp3 chunks in
// outputDir and returns their paths in order.
func SplitAudio(audioPath, outputDir string) ([]string, error) {
	dur, err := ProbeDuration(audioPath)
	if err != nil {
		// Cannot size the file, submit it whole.
		return []string{audioPath}, nil
	}

	numSegments := int(dur/SegmentSeconds) + 1
	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))

	segments := make([]string, 0, numSegments)
	for i := 0; i < numSegments; i++ {
		start := i * SegmentSeconds
		segPath := filepath.Join(outputDir, fmt.Sprintf("%s_segment_%03d.mp3", base, i))
		args := []string{
			"-y", "-i", audioPath,
			"-ss", fmt.Sprintf("%d", start),
			"-t", fmt.Sprintf("%d", SegmentSeconds),
			"-c:a", "libmp3lame", "-q:a", "4",
			segPath,
		}
		if err := RunFFmpeg(args); err != nil {
			fmt.Printf("Warning: failed to cut audio segment %d: %v\n", i, err)
			continue
		}
		segments = append(segments, segPath)
	}
	if len(segments) == 0 {
		return []string{audioPath}, nil
	}
	return segments, nil
}
