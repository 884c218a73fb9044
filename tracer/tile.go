package tracer

// A unit of work claimed by a render worker: a contiguous rectangular pixel
// range [X0,X1) x [Y0,Y1). Tiles never overlap, so the framebuffer cells of a
// tile are exclusively owned by the worker rendering it.
type Tile struct {
	X0, Y0 int
	X1, Y1 int
}

// Width returns the tile width in pixels.
func (t Tile) Width() int {
	return t.X1 - t.X0
}

// Height returns the tile height in pixels.
func (t Tile) Height() int {
	return t.Y1 - t.Y0
}

// SplitFrame partitions a frame into square tiles of the given size. Edge
// tiles are clipped to the frame, so the tile set covers every pixel exactly
// once.
func SplitFrame(frameW, frameH, tileSize int) []Tile {
	if frameW <= 0 || frameH <= 0 {
		return nil
	}
	if tileSize <= 0 {
		tileSize = 32
	}

	tilesX := (frameW + tileSize - 1) / tileSize
	tilesY := (frameH + tileSize - 1) / tileSize

	tiles := make([]Tile, 0, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			tile := Tile{
				X0: tx * tileSize,
				Y0: ty * tileSize,
				X1: (tx + 1) * tileSize,
				Y1: (ty + 1) * tileSize,
			}
			if tile.X1 > frameW {
				tile.X1 = frameW
			}
			if tile.Y1 > frameH {
				tile.Y1 = frameH
			}
			tiles = append(tiles, tile)
		}
	}
	return tiles
}
