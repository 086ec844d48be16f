package frames

import (
	"image"
	"image/color"
	"math"
)

// Comparison resolution. Downscaling bounds cost and damps pixel noise
// before the histograms are built.
const (
	compareWidth  = 64
	compareHeight = 36
	histogramBins = 256
)

// Similarity scores visual change between two frames: 1.0 means visually
// identical, 0.0 maximally different. Frames may have different dimensions.
// Any degenerate input is treated as "no change" and scores 1.0, so a
// transient decode failure never triggers a spurious slide insertion.
func Similarity(a, b image.Image) float64 {
	ha, okA := intensityHistogram(a)
	hb, okB := intensityHistogram(b)
	if !okA || !okB {
		return 1.0
	}
	corr, ok := correlation(ha, hb)
	if !ok {
		return 1.0
	}
	if corr < 0 {
		return 0.0
	}
	if corr > 1 {
		return 1.0
	}
	return corr
}

// intensityHistogram downscales the frame to compareWidth x compareHeight,
// converts to grayscale and returns a normalized 256-bin histogram.
func intensityHistogram(img image.Image) ([histogramBins]float64, bool) {
	var hist [histogramBins]float64
	if img == nil {
		return hist, false
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return hist, false
	}

	for y := 0; y < compareHeight; y++ {
		srcY := bounds.Min.Y + y*h/compareHeight
		for x := 0; x < compareWidth; x++ {
			srcX := bounds.Min.X + x*w/compareWidth
			g := color.GrayModel.Convert(img.At(srcX, srcY)).(color.Gray)
			hist[g.Y]++
		}
	}

	total := float64(compareWidth * compareHeight)
	for i := range hist {
		hist[i] /= total
	}
	return hist, true
}

// correlation computes the Pearson correlation between two histograms.
// Returns ok=false when either histogram has zero variance.
func correlation(a, b [histogramBins]float64) (float64, bool) {
	var meanA, meanB float64
	for i := 0; i < histogramBins; i++ {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= histogramBins
	meanB /= histogramBins

	var cov, varA, varB float64
	for i := 0; i < histogramBins; i++ {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	if varA == 0 || varB == 0 {
		return 0, false
	}
	return cov / math.Sqrt(varA*varB), true
}
