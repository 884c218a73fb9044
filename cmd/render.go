package cmd

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"runtime"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/urfave/cli"

	"github.com/Supremolink81/gotracer/renderer"
)

// Render a still frame and write it out as a PNG.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := renderer.Options{
		FrameW:          ctx.Int("width"),
		FrameH:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("spp"),
		NumBounces:      ctx.Int("num-bounces"),
		TileSize:        ctx.Int("tile-size"),
		NumWorkers:      ctx.Int("workers"),
		Seed:            ctx.Uint64("seed"),
		Exposure:        float32(ctx.Float64("exposure")),
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = detectWorkerCount()
	}

	sceneName := ctx.String("scene")
	aspect := float32(opts.FrameW) / float32(opts.FrameH)
	sc, err := buildScene(sceneName, aspect)
	if err != nil {
		return err
	}
	logger.Noticef("scene %q\n%s", sceneName, sc.Stats())

	r, err := renderer.New(sc, opts)
	if err != nil {
		return err
	}

	fb, err := r.Render()
	if err != nil {
		return err
	}
	displayFrameStats(r.Stats(), opts.NumWorkers)

	// Image encoding sits outside the render core; the framebuffer itself
	// never touches the filesystem.
	outFile := ctx.String("out")
	f, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("could not create output file: %s", err)
	}
	defer f.Close()

	start := time.Now()
	if err = png.Encode(f, fb.RGBA()); err != nil {
		return fmt.Errorf("could not encode png file: %s", err)
	}
	logger.Noticef("wrote frame to %s in %d ms", outFile, time.Since(start).Nanoseconds()/1e6)

	return nil
}

// List the built-in scene gallery.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)
	for _, name := range sceneNames() {
		fmt.Println(name)
	}
	return nil
}

// Pick the worker pool size from the host CPU topology, falling back to the
// runtime's view when the probe fails.
func detectWorkerCount() int {
	count, err := cpu.Counts(true)
	if err != nil || count < 1 {
		return runtime.NumCPU()
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		logger.Infof("host: %d logical cpus, %.1f GB memory available",
			count, float64(vm.Available)/1e9)
	}
	return count
}

func displayFrameStats(stats renderer.FrameStats, numWorkers int) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Tiles", "% of frame"})
	for _, stat := range stats.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", stat.ID),
			fmt.Sprintf("%d", stat.Tiles),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
		})
	}
	table.SetFooter([]string{fmt.Sprintf("%d workers", numWorkers), fmt.Sprintf("%d tiles", stats.Tiles), stats.RenderTime.String()})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
