package renderer

type Options struct {
	// Frame dims.
	FrameW int
	FrameH int

	// Number of samples averaged per pixel.
	SamplesPerPixel int

	// Maximum number of path bounces.
	NumBounces int

	// Tile edge length in pixels.
	TileSize int

	// Worker pool size; <= 0 selects one worker per logical CPU.
	NumWorkers int

	// Seed for the deterministic per-pixel generators.
	Seed uint64

	// Linear scale applied before gamma correction.
	Exposure float32

	// Display gamma; the stored value is raised to 1/Gamma. Zero selects
	// the conventional 2.0 (square root).
	Gamma float32
}

// Fill in defaults for unset option fields.
func (o Options) withDefaults() Options {
	if o.SamplesPerPixel <= 0 {
		o.SamplesPerPixel = 16
	}
	if o.NumBounces <= 0 {
		o.NumBounces = 10
	}
	if o.TileSize <= 0 {
		o.TileSize = 32
	}
	if o.Exposure <= 0 {
		o.Exposure = 1.0
	}
	if o.Gamma <= 0 {
		o.Gamma = 2.0
	}
	return o
}
