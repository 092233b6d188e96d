package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/portfolio-backdrop/internal/frame"
	"github.com/iburimskiy/portfolio-backdrop/internal/particles"
	"github.com/iburimskiy/portfolio-backdrop/internal/render"
)

var (
	benchFrames   int
	benchRealtime bool
	benchResize   []int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the particle field headless and print frame statistics",
	Long: `Drives the particle field without a window for a number of frames and
reports how many discs and connecting lines were drawn. With --realtime the
frames are paced at ticker_fps; otherwise they run back to back.`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVarP(&benchFrames, "frames", "n", 600, "number of frames to run")
	benchCmd.Flags().BoolVar(&benchRealtime, "realtime", false, "pace frames at ticker_fps")
	benchCmd.Flags().IntSliceVar(&benchResize, "resize", nil, "resize to WIDTH,HEIGHT halfway through")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if benchFrames <= 0 {
		return fmt.Errorf("--frames must be positive")
	}
	if len(benchResize) != 0 && len(benchResize) != 2 {
		return fmt.Errorf("--resize takes WIDTH,HEIGHT")
	}
	logger := newLogger(cfg, "particles")

	seed := cfg.Particles.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	var surface *render.StatsSurface
	field := particles.Initialize(cfg.Window.Width, cfg.Window.Height, rand.New(rand.NewSource(seed)),
		func(w, h int) particles.Surface {
			surface = render.NewStatsSurface(w, h)
			return surface
		},
		particles.WithShrinkPolicy(cfg.Particles.ShrinkPolicy),
		particles.WithLogger(logger),
	)
	if field.Idle() {
		fmt.Printf("Viewport %dx%d is empty, the field is idle.\n", cfg.Window.Width, cfg.Window.Height)
		return nil
	}

	sched := frame.NewScheduler()
	field.Run(sched)
	if len(benchResize) == 2 {
		half := benchFrames / 2
		var requeue func()
		requeue = func() {
			if field.Ticks() >= uint64(half) {
				field.Resize(benchResize[0], benchResize[1])
				return
			}
			sched.RequestFrame(requeue)
		}
		sched.RequestFrame(requeue)
	}

	start := time.Now()
	if benchRealtime {
		interval := time.Second / time.Duration(cfg.TickerFPS)
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(benchFrames)*interval)
		defer cancel()
		if err := sched.Run(ctx, interval); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
	} else {
		for i := 0; i < benchFrames; i++ {
			sched.Pump()
		}
	}
	elapsed := time.Since(start)

	ticks := field.Ticks()
	w, h := field.Size()
	count := field.Count()
	// Stopping releases the surface, which closes the frame in progress.
	field.Stop()
	last := surface.Last()
	totals := surface.Totals()

	fmt.Printf("Particles:   %d on %dx%d\n", count, w, h)
	fmt.Printf("Frames:      %d in %s (%.0f/s)\n", ticks, elapsed.Round(time.Millisecond), float64(ticks)/elapsed.Seconds())
	fmt.Printf("Last frame:  %d discs, %d lines, mean line alpha %.3f\n", last.Discs, last.Lines, last.MeanAlpha)
	if ticks > 0 {
		fmt.Printf("Per frame:   %.1f lines on average\n", float64(totals.Lines)/float64(ticks))
	}
	return nil
}
