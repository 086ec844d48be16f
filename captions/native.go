package captions

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"videoSlides/core"
)

// NativeProvider downloads the video's own subtitles with yt-dlp. Manual
// subtitles are preferred; auto-generated ones are accepted as fallback.
// Network failures, missing captions and exec errors all degrade to an
// empty corpus, never an error.
type NativeProvider struct {
	URL     string
	Lang    string
	WorkDir string
}

func (p *NativeProvider) Fetch() core.CaptionCorpus {
	empty := core.CaptionCorpus{Source: core.SourceNative, Language: p.Lang}

	if err := os.MkdirAll(p.WorkDir, 0755); err != nil {
		return empty
	}
	outTemplate := filepath.Join(p.WorkDir, "subs.%(ext)s")
	cmd := exec.Command("yt-dlp",
		"--skip-download",
		"--write-subs", "--write-auto-subs",
		"--sub-langs", p.Lang,
		"--sub-format", "vtt",
		"-o", outTemplate,
		"--no-playlist",
		p.URL)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Run(); err != nil {
		fmt.Printf("Warning: native caption download failed (%v), continuing without\n", err)
		return empty
	}

	// yt-dlp names the file subs.<lang>.vtt; take whichever vtt appeared.
	matches, err := filepath.Glob(filepath.Join(p.WorkDir, "subs*.vtt"))
	if err != nil || len(matches) == 0 {
		return empty
	}
	raw, err := os.ReadFile(matches[0])
	if err != nil {
		return empty
	}
	return ParseVTT(string(raw), p.Lang)
}
