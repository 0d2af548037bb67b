package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sal "saliency/pkg/saliency"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("saliency", flag.ContinueOnError)
	loops := fs.Int("loops", 1, "DoG iteration cap per normalization")
	centers := fs.String("centers", "2,3,4", "comma-separated center pyramid levels")
	deltas := fs.String("deltas", "3,4", "comma-separated surround level offsets")
	verbose := fs.Bool("verbose", false, "print pipeline progress")
	overlayPath := fs.String("overlay", "", "write an annotated heatmap JPG to this path")
	savePath := fs.String("save-intermediate", "", "existing directory for intermediate map dumps")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: saliency [flags] <input-image>")
	}
	inputPath := fs.Arg(0)

	params := sal.NewParams()
	params.Loops = *loops
	params.SaveIntermediatePath = *savePath
	var err error
	if params.Centers, err = parseLevelSet(*centers); err != nil {
		return fmt.Errorf("parsing -centers: %w", err)
	}
	if params.Deltas, err = parseLevelSet(*deltas); err != nil {
		return fmt.Errorf("parsing -deltas: %w", err)
	}
	if *verbose {
		params.Trace = func(stage string) { fmt.Println("  " + stage) }
	}

	fmt.Printf("Loading: %s\n", inputPath)
	img, width, height, err := loadRGBImage(inputPath)
	if err != nil {
		return err
	}
	defer img.R.Close()
	defer img.G.Close()
	defer img.B.Close()

	startTime := time.Now()
	salMap, err := sal.Compute(context.Background(), img, params)
	if err != nil {
		return fmt.Errorf("computing saliency: %w", err)
	}
	defer salMap.Close()
	elapsed := time.Since(startTime)

	analysis := sal.AnalyzeZones(salMap)

	fmt.Println()
	fmt.Printf("=== Saliency Results (%.1fs) ===\n", elapsed.Seconds())
	fmt.Printf("  Image size:    %d x %d\n", width, height)
	fmt.Printf("  Map size:      %d x %d\n", salMap.Cols(), salMap.Rows())
	fmt.Printf("  Peak:          %.3f at (%d, %d)\n", analysis.PeakValue, analysis.PeakX, analysis.PeakY)
	fmt.Printf("  Mean saliency: %.4f\n", analysis.MeanSaliency)
	fmt.Println("==============================")

	fmt.Println()
	fmt.Println("=== Zone Analysis (3x3) ===")
	for i, pos := range sal.ZoneOrder {
		z := analysis.Zones[pos]
		fmt.Printf("  %-8s mean=%.4f  peak=%.3f\n", z.Label, z.MeanSaliency, z.PeakSaliency)
		if (i+1)%3 == 0 && i < 8 {
			fmt.Println("  ---")
		}
	}
	fmt.Printf("\n  Most salient zone: %s\n", analysis.MostSalient)
	fmt.Println("==============================")

	if *overlayPath != "" {
		if err := sal.RenderSaliencyOverlay(salMap, analysis, *overlayPath); err != nil {
			return fmt.Errorf("rendering overlay: %w", err)
		}
		fmt.Printf("\nOverlay written to %s\n", *overlayPath)
	}

	return nil
}

func parseLevelSet(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	levels := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		levels = append(levels, v)
	}
	return levels, nil
}
