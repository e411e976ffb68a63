package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/michael-h-patrianna/plinko-sub001/internal/game"
)

// plinko-sim drops one ball per seed on a board and reports physical
// extremes and the landing distribution. Exit code is non-zero when any
// drop fails, so the sweep can gate CI.
func main() {
	seeds := flag.Int("seeds", 100, "number of seeds to sweep")
	width := flag.Float64("width", 375, "board width in px")
	height := flag.Float64("height", 500, "board height in px")
	rows := flag.Int("rows", 10, "peg rows")
	slots := flag.Int("slots", 6, "slot count")
	multiplier := flag.Int64("multiplier", 7919, "seed i maps to i*multiplier")
	target := flag.Int("target", -1, "winning slot to steer every drop to (-1 for natural drops)")
	flag.Parse()

	cfg := game.BoardConfig{
		Width:     *width,
		Height:    *height,
		PegRows:   *rows,
		SlotCount: *slots,
	}

	result, err := game.RunSweep(cfg, *seeds, *multiplier, *target)
	if err != nil {
		log.Fatalf("sweep failed: %v", err)
	}

	fmt.Printf("Board %gx%g, %d peg rows, %d slots\n", *width, *height, *rows, *slots)
	if *target >= 0 {
		fmt.Printf("Steered sweep: target slot %d\n", *target)
	} else {
		fmt.Println("Natural sweep: no target")
	}
	fmt.Printf("Seeds:            %d (multiplier %d)\n", result.Seeds, *multiplier)
	fmt.Printf("Failures:         %d\n", result.Failures)
	fmt.Printf("  stuck:          %d\n", result.StuckCount)
	fmt.Printf("  speed:          %d\n", result.SpeedCount)
	fmt.Printf("  distance:       %d\n", result.DistanceCount)
	fmt.Printf("  wrong slot:     %d\n", result.WrongSlotCount)
	fmt.Printf("Max speed:        %.2f px/s (limit %.0f)\n", result.MaxSpeed, game.MaxSpeed)
	fmt.Printf("Max frame dist:   %.2f px (limit %.2f)\n", result.MaxFrameDist, game.MaxFrameDistance)
	fmt.Printf("Max attempts:     %d\n", result.MaxAttempts)
	fmt.Printf("Avg frames/drop:  %.1f\n", result.AvgFrames)

	fmt.Println("Slot distribution:")
	for i, n := range result.SlotDistribution {
		fmt.Printf("  slot %d: %d\n", i, n)
	}

	if len(result.FailedSeeds) > 0 {
		fmt.Printf("Failed seeds: %v\n", result.FailedSeeds)
	}
	if result.Failures > 0 {
		os.Exit(1)
	}
}
