package slides

import (
	"fmt"
	"os"
	"strings"

	"videoSlides/core"
)

// RenderMarkdown writes the slide document: one section per record with an
// mm:ss heading, the frame image and the caption text.
func RenderMarkdown(result core.SelectionResult, title, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	for _, rec := range result.Records {
		fmt.Fprintf(&b, "## %s\n\n", formatTime(rec.TimeKey))
		fmt.Fprintf(&b, "![frame at %s](%s)\n\n", formatTime(rec.TimeKey), rec.ImagePath)
		if rec.Text != "" {
			fmt.Fprintf(&b, "%s\n\n", rec.Text)
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return &core.PersistenceError{Path: path, Err: err}
	}
	return nil
}

func formatTime(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}
