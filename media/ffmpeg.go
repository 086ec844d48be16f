// Package media wraps the external ffmpeg/ffprobe/yt-dlp tools used to
// acquire videos and pull raw material (frames, audio) out of them.
package media

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

func RunFFmpeg(args []string) error {
	cmd := exec.Command("ffmpeg", args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg %s: %v", strings.Join(args, " "), err)
	}
	return nil
}

// ProbeDuration returns the container duration in seconds via ffprobe.
func ProbeDuration(path string) (float64, error) {
	cmd := exec.Command("ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", path)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe %s: %v", path, err)
	}
	s := strings.TrimSpace(out.String())
	return strconv.ParseFloat(s, 64)
}
