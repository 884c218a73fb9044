package scene

import (
	"image"
	"image/color"
	"testing"

	"github.com/Supremolink81/gotracer/types"
)

func TestSolidTexture(t *testing.T) {
	tex := NewSolid(types.XYZ(0.1, 0.2, 0.3))
	if got := tex.Sample(0.7, 0.3, types.XYZ(5, 5, 5)); got != types.XYZ(0.1, 0.2, 0.3) {
		t.Fatalf("expected constant color; got %v", got)
	}
}

func TestCheckerTexture(t *testing.T) {
	odd := types.XYZ(0, 0, 0)
	even := types.XYZ(1, 1, 1)
	tex := NewChecker(odd, even)

	// At the origin all sines are zero, so the even color wins.
	if got := tex.Sample(0, 0, types.Vec3{}); got != even {
		t.Fatalf("expected even color at origin; got %v", got)
	}

	// Half a period along x flips the sign.
	p := types.XYZ(3.1415926/20.0, 3.1415926/20.0, 3.1415926/20.0)
	q := types.XYZ(-p[0], p[1], p[2])
	if tex.Sample(0, 0, p) == tex.Sample(0, 0, q) {
		t.Fatal("expected mirrored points to alternate colors")
	}
}

func TestImageTexture(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})                 // top left
	img.Set(1, 0, color.RGBA{G: 255, A: 255})                 // top right
	img.Set(0, 1, color.RGBA{B: 255, A: 255})                 // bottom left
	img.Set(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255}) // bottom right

	tex := NewImage(img)

	// v=1 maps to the top image row.
	cases := []struct {
		u, v float32
		want types.Vec3
	}{
		{0.25, 0.75, types.XYZ(1, 0, 0)},
		{0.75, 0.75, types.XYZ(0, 1, 0)},
		{0.25, 0.25, types.XYZ(0, 0, 1)},
		{0.75, 0.25, types.XYZ(1, 1, 1)},
	}
	for _, tc := range cases {
		got := tex.Sample(tc.u, tc.v, types.Vec3{})
		if got.Sub(tc.want).Len() > 1e-2 {
			t.Fatalf("sample(%f, %f): expected %v; got %v", tc.u, tc.v, tc.want, got)
		}
	}

	// Out-of-range coordinates clamp instead of wrapping or panicking.
	if got := tex.Sample(2, -1, types.Vec3{}); got.Sub(types.XYZ(1, 1, 1)).Len() > 1e-2 {
		t.Fatalf("expected clamped sample; got %v", got)
	}
}

func TestNoiseTexture(t *testing.T) {
	tex1 := NewNoise(4, 99)
	tex2 := NewNoise(4, 99)

	p := types.XYZ(1.3, 2.7, 0.4)
	if tex1.Sample(0, 0, p) != tex2.Sample(0, 0, p) {
		t.Fatal("expected identical seeds to produce identical noise")
	}

	// Marble output always stays inside [0, 1].
	for i := 0; i < 100; i++ {
		q := types.XYZ(float32(i)*0.37, float32(i)*0.11, float32(i)*0.23)
		c := tex1.Sample(0, 0, q)
		if c[0] < 0 || c[0] > 1 {
			t.Fatalf("expected noise in [0,1]; got %f at %v", c[0], q)
		}
	}
}
