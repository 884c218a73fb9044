package scene

import (
	"image"
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/Supremolink81/gotracer/types"
)

// The Texture interface is implemented by anything that can provide a color
// for a surface coordinate.
type Texture interface {
	// Sample the texture at surface coordinates (u, v) for the given hit point.
	Sample(u, v float32, p types.Vec3) types.Vec3
}

// A single-color texture.
type Solid struct {
	Color types.Vec3
}

// Create a solid color texture.
func NewSolid(color types.Vec3) *Solid {
	return &Solid{Color: color}
}

func (t *Solid) Sample(_, _ float32, _ types.Vec3) types.Vec3 {
	return t.Color
}

// A 3d checker pattern alternating between two colors.
type Checker struct {
	Odd  types.Vec3
	Even types.Vec3

	// Spatial frequency of the pattern.
	Scale float32
}

// Create a checker texture with the default frequency.
func NewChecker(odd, even types.Vec3) *Checker {
	return &Checker{Odd: odd, Even: even, Scale: 10}
}

func (t *Checker) Sample(_, _ float32, p types.Vec3) types.Vec3 {
	sines := math32.Sin(p[0]*t.Scale) * math32.Sin(p[1]*t.Scale) * math32.Sin(p[2]*t.Scale)
	if sines < 0 {
		return t.Odd
	}
	return t.Even
}

// An image-backed texture sampled with nearest-neighbor filtering.
type Image struct {
	width  int
	height int

	// Row-major pixel colors in [0,1].
	pixels []types.Vec3
}

// Create a texture from a decoded image. Decoding the file itself happens at
// the input boundary, outside the render core.
func NewImage(img image.Image) *Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	tex := &Image{
		width:  w,
		height: h,
		pixels: make([]types.Vec3, w*h),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			tex.pixels[y*w+x] = types.XYZ(
				float32(r)/65535.0,
				float32(g)/65535.0,
				float32(b)/65535.0,
			)
		}
	}
	return tex
}

func (t *Image) Sample(u, v float32, _ types.Vec3) types.Vec3 {
	if len(t.pixels) == 0 {
		// Missing texture data renders as magenta to make the problem visible.
		return types.XYZ(1, 0, 1)
	}

	u = clamp01(u)
	// Image rows grow downward while v grows upward.
	v = 1.0 - clamp01(v)

	x := int(u * float32(t.width))
	y := int(v * float32(t.height))
	if x >= t.width {
		x = t.width - 1
	}
	if y >= t.height {
		y = t.height - 1
	}
	return t.pixels[y*t.width+x]
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// A marble-like procedural texture driven by Perlin turbulence.
type Noise struct {
	perlin *perlin
	Scale  float32
}

// Create a noise texture. The seed fixes the gradient lattice so renders stay
// reproducible.
func NewNoise(scale float32, seed int64) *Noise {
	return &Noise{perlin: newPerlin(seed), Scale: scale}
}

func (t *Noise) Sample(_, _ float32, p types.Vec3) types.Vec3 {
	s := 0.5 * (1 + math32.Sin(t.Scale*p[2]+10*t.perlin.turbulence(p, 7)))
	return types.XYZ(s, s, s)
}

const perlinPoints = 256

// Gradient lattice noise after Ken Perlin: random unit gradients on integer
// lattice points, trilinearly interpolated with Hermite smoothing.
type perlin struct {
	gradients [perlinPoints]types.Vec3
	permX     [perlinPoints]int
	permY     [perlinPoints]int
	permZ     [perlinPoints]int
}

func newPerlin(seed int64) *perlin {
	rng := rand.New(rand.NewSource(seed))

	p := &perlin{}
	for i := range p.gradients {
		p.gradients[i] = types.XYZ(
			2*rng.Float32()-1,
			2*rng.Float32()-1,
			2*rng.Float32()-1,
		).Normalize()
	}
	perlinPermute(rng, &p.permX)
	perlinPermute(rng, &p.permY)
	perlinPermute(rng, &p.permZ)
	return p
}

func perlinPermute(rng *rand.Rand, arr *[perlinPoints]int) {
	for i := range arr {
		arr[i] = i
	}
	for i := perlinPoints - 1; i > 0; i-- {
		target := rng.Intn(i + 1)
		arr[i], arr[target] = arr[target], arr[i]
	}
}

func (p *perlin) noise(pt types.Vec3) float32 {
	u := pt[0] - math32.Floor(pt[0])
	v := pt[1] - math32.Floor(pt[1])
	w := pt[2] - math32.Floor(pt[2])

	i := int(math32.Floor(pt[0]))
	j := int(math32.Floor(pt[1]))
	k := int(math32.Floor(pt[2]))

	var c [2][2][2]types.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c[di][dj][dk] = p.gradients[p.permX[(i+di)&(perlinPoints-1)]^
					p.permY[(j+dj)&(perlinPoints-1)]^
					p.permZ[(k+dk)&(perlinPoints-1)]]
			}
		}
	}

	// Hermite cubic smoothing
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	var accum float32
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				fi, fj, fk := float32(di), float32(dj), float32(dk)
				weight := types.XYZ(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[di][dj][dk].Dot(weight)
			}
		}
	}
	return accum
}

func (p *perlin) turbulence(pt types.Vec3, depth int) float32 {
	var accum float32
	var weight float32 = 1.0
	for i := 0; i < depth; i++ {
		accum += weight * p.noise(pt)
		weight *= 0.5
		pt = pt.Mul(2)
	}
	return math32.Abs(accum)
}
