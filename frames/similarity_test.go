package frames

import (
	"image"
	"image/color"
	"testing"
)

func uniformImage(w, h int, v uint8) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func gradientImage(w, h int) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x * 255) / w)})
		}
	}
	return img
}

func TestSimilarityIdenticalFrames(t *testing.T) {
	cases := []struct {
		name string
		img  image.Image
	}{
		{"uniform black", uniformImage(320, 180, 0)},
		{"uniform white", uniformImage(320, 180, 255)},
		{"gradient", gradientImage(320, 180)},
	}
	for _, tc := range cases {
		if got := Similarity(tc.img, tc.img); got != 1.0 {
			t.Errorf("%s: Similarity(img, img) = %f, want 1.0", tc.name, got)
		}
	}
}

func TestSimilarityDifferentDimensions(t *testing.T) {
	a := uniformImage(320, 180, 128)
	b := uniformImage(1280, 720, 128)
	if got := Similarity(a, b); got != 1.0 {
		t.Errorf("Similarity of same content at different sizes = %f, want 1.0", got)
	}
}

func TestSimilarityDisjointHistograms(t *testing.T) {
	black := uniformImage(320, 180, 0)
	white := uniformImage(320, 180, 255)
	got := Similarity(black, white)
	if got >= 0.5 {
		t.Errorf("Similarity(black, white) = %f, want below any positive threshold", got)
	}
	if got < 0 || got > 1 {
		t.Errorf("Similarity out of range: %f", got)
	}
}

func TestSimilarityDegenerateInput(t *testing.T) {
	valid := uniformImage(320, 180, 0)
	if got := Similarity(nil, valid); got != 1.0 {
		t.Errorf("Similarity(nil, img) = %f, want 1.0", got)
	}
	if got := Similarity(valid, nil); got != 1.0 {
		t.Errorf("Similarity(img, nil) = %f, want 1.0", got)
	}

	empty := image.NewGray(image.Rect(0, 0, 0, 0))
	if got := Similarity(empty, valid); got != 1.0 {
		t.Errorf("Similarity(empty, img) = %f, want 1.0", got)
	}
}

func TestSimilarityClamped(t *testing.T) {
	imgs := []image.Image{
		uniformImage(64, 36, 0),
		uniformImage(64, 36, 255),
		uniformImage(64, 36, 128),
		gradientImage(64, 36),
	}
	for i, a := range imgs {
		for j, b := range imgs {
			got := Similarity(a, b)
			if got < 0 || got > 1 {
				t.Errorf("Similarity(imgs[%d], imgs[%d]) = %f, out of [0,1]", i, j, got)
			}
		}
	}
}
