package media

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"

	"videoSlides/core"
)

// Video quality presets mapped to yt-dlp format strings.
var videoFormats = map[string]string{
	"best":   "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]",
	"high":   "bestvideo[height<=1080][ext=mp4]+bestaudio[ext=m4a]/best[height<=1080][ext=mp4]",
	"medium": "bestvideo[height<=720][ext=mp4]+bestaudio[ext=m4a]/best[height<=720][ext=mp4]",
	"low":    "bestvideo[height<=480][ext=mp4]+bestaudio[ext=m4a]/best[height<=480][ext=mp4]",
}

// VideoFormat resolves a quality preset name to a yt-dlp format string.
// Unknown presets fall back to "high".
func VideoFormat(quality string) string {
	if f, ok := videoFormats[quality]; ok {
		return f
	}
	return videoFormats["high"]
}

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/watch\?v=)([\w-]{11})`),
	regexp.MustCompile(`youtu\.be/([\w-]{11})`),
	regexp.MustCompile(`/embed/([\w-]{11})`),
	regexp.MustCompile(`/shorts/([\w-]{11})`),
}

// ExtractVideoID pulls the 11-character video id out of a YouTube URL.
func ExtractVideoID(url string) (string, error) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1], nil
		}
	}
	return "", &core.InputError{Ref: url, Err: fmt.Errorf("no video id found")}
}

// DownloadVideo fetches the video with yt-dlp into destDir and returns the
// local file path.
func DownloadVideo(url, destDir, quality string) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}
	outTemplate := filepath.Join(destDir, "video.%(ext)s")
	cmd := exec.Command("yt-dlp",
		"-f", VideoFormat(quality),
		"--merge-output-format", "mp4",
		"-o", outTemplate,
		"--no-playlist",
		url)
	cmd.Stdout = nil
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", &core.IOError{Op: "download video", Err: err}
	}
	path := filepath.Join(destDir, "video.mp4")
	if _, err := os.Stat(path); err != nil {
		return "", &core.IOError{Op: "download video", Err: err}
	}
	return path, nil
}
