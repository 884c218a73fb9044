package renderer

import "time"

type WorkerStat struct {
	// Worker slot in the pool.
	ID int

	// Number of tiles the worker claimed and the percentage of the frame
	// they represent.
	Tiles        int
	FramePercent float32
}

type FrameStats struct {
	// Individual worker stats.
	Workers []WorkerStat

	// Total tiles for the frame.
	Tiles int

	// Total render time for entire frame.
	RenderTime time.Duration
}
