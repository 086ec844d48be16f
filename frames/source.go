// Package frames reads raster frames out of a video and scores visual
// change between them.
package frames

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"os/exec"
	"path/filepath"

	"videoSlides/core"
	"videoSlides/media"
)

// Source is a seekable frame source. Seek/read is stateful per handle and
// must not be interleaved from multiple callers.
type Source interface {
	// Duration returns the total length in seconds.
	Duration() float64
	// ReadFrameAt decodes the frame nearest to t seconds. Errors on
	// out-of-range or decode failure.
	ReadFrameAt(t float64) (image.Image, error)
	Close() error
}

// FFmpegSource reads frames by seeking with ffmpeg. Each handle owns a
// scratch directory so concurrent runs never collide on temp files.
type FFmpegSource struct {
	videoPath string
	duration  float64
	workDir   string
	closed    bool
}

// Open probes the video and prepares a frame source. Failure to probe is
// fatal for the run.
func Open(videoPath string) (*FFmpegSource, error) {
	dur, err := media.ProbeDuration(videoPath)
	if err != nil {
		return nil, &core.IOError{Op: "probe video", Err: err}
	}
	workDir, err := os.MkdirTemp("", "videoslides-frames-")
	if err != nil {
		return nil, &core.IOError{Op: "create scratch dir", Err: err}
	}
	return &FFmpegSource{videoPath: videoPath, duration: dur, workDir: workDir}, nil
}

func (s *FFmpegSource) Duration() float64 { return s.duration }

func (s *FFmpegSource) ReadFrameAt(t float64) (image.Image, error) {
	if s.closed {
		return nil, fmt.Errorf("frame source closed")
	}
	if t < 0 || t >= s.duration {
		return nil, fmt.Errorf("timestamp %.2f out of range [0, %.2f)", t, s.duration)
	}
	framePath := filepath.Join(s.workDir, "probe.jpg")
	args := []string{
		"-y",
		"-ss", fmt.Sprintf("%.3f", t),
		"-i", s.videoPath,
		"-frames:v", "1",
		"-q:v", "2",
		framePath,
	}
	cmd := exec.Command("ffmpeg", args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("seek frame at %.2fs: %v", t, err)
	}
	f, err := os.Open(framePath)
	if err != nil {
		return nil, fmt.Errorf("read frame at %.2fs: %v", t, err)
	}
	defer f.Close()
	img, err := jpeg.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode frame at %.2fs: %v", t, err)
	}
	return img, nil
}

// Close releases the scratch directory. Safe to call more than once.
func (s *FFmpegSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return os.RemoveAll(s.workDir)
}

// SaveJPEG persists an image at the given quality (1-100).
func SaveJPEG(img image.Image, path string, quality int) error {
	if quality < 1 || quality > 100 {
		quality = 95
	}
	f, err := os.Create(path)
	if err != nil {
		return &core.PersistenceError{Path: path, Err: err}
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: quality}); err != nil {
		return &core.PersistenceError{Path: path, Err: err}
	}
	return nil
}
