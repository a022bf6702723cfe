package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/floorplan/pkg/export"
	"github.com/dshills/floorplan/pkg/intentcfg"
	"github.com/dshills/floorplan/pkg/solve"
)

const version = "1.0.0"

var (
	outputDir  = flag.String("output", ".", "Output directory for generated files")
	emitJSON   = flag.Bool("emit-json", true, "Write a JSON export of the solved plan")
	emitSVG    = flag.Bool("emit-svg", true, "Write an SVG visualization of the solved plan")
	pretty     = flag.Bool("pretty", true, "Indent the JSON export")
	inspect    = flag.Bool("inspect", false, "Include the placement/reachability trace in the solve")
	seedNote   = flag.String("seed-note", "", "Freeform note recorded in verbose output, not used by the solver")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
	versionF   = flag.Bool("version", false, "Print version and exit")
	help       = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("floorplan version %s\n", version)
		os.Exit(0)
	}
	if *help {
		printHelp()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) < 1 || args[0] != "compile" {
		fmt.Fprintln(os.Stderr, "Error: expected a subcommand: compile <file.yaml>")
		printUsage()
		os.Exit(1)
	}
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Error: compile requires a path to a YAML intent file")
		printUsage()
		os.Exit(1)
	}
	// Flags may also follow the file path: compile <file.yaml> [flags].
	if err := flag.CommandLine.Parse(args[2:]); err != nil {
		os.Exit(1)
	}

	if err := run(args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(intentPath string) error {
	ctx := context.Background()

	if *verbose {
		fmt.Printf("Loading intent from %s\n", intentPath)
		if *seedNote != "" {
			fmt.Printf("Note: %s\n", *seedNote)
		}
	}

	li, err := intentcfg.Load(intentPath)
	if err != nil {
		return fmt.Errorf("failed to load intent: %w", err)
	}
	reachable, err := intentcfg.AllRoomsReachable(intentPath)
	if err != nil {
		return fmt.Errorf("failed to load intent: %w", err)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	start := time.Now()
	if *verbose {
		fmt.Printf("Solving layout (%d rooms)...\n", len(li.Rooms))
	}

	result, err := solve.Solve(ctx, li, solve.Config{Inspect: *inspect, AllRoomsReachable: reachable})
	if err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}

	elapsed := time.Since(start)
	if *verbose {
		fmt.Printf("Solved in %v\n", elapsed)
		printStats(result)
	}

	baseName := baseNameFor(intentPath)

	if *emitJSON {
		if err := writeJSON(result, baseName); err != nil {
			return err
		}
	}
	if *emitSVG {
		if err := writeSVG(result, baseName); err != nil {
			return err
		}
	}

	fmt.Printf("Successfully compiled %s in %v (score=%.3f)\n", intentPath, elapsed, result.Score.Total)
	return nil
}

func baseNameFor(intentPath string) string {
	base := filepath.Base(intentPath)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}

func writeJSON(result *solve.Result, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".json")
	if *verbose {
		fmt.Printf("Exporting JSON to %s\n", filename)
	}

	var err error
	if *pretty {
		err = export.SaveJSONToFile(result, filename)
	} else {
		err = export.SaveJSONCompactToFile(result, filename)
	}
	if err != nil {
		return fmt.Errorf("failed to export JSON: %w", err)
	}
	return nil
}

func writeSVG(result *solve.Result, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".svg")
	if *verbose {
		fmt.Printf("Exporting SVG to %s\n", filename)
	}

	opts := export.DefaultSVGOptions()
	opts.Title = fmt.Sprintf("Floor Plan: %s", baseName)

	if err := export.SaveSVGToFile(result, filename, opts); err != nil {
		return fmt.Errorf("failed to export SVG: %w", err)
	}
	return nil
}

func printStats(result *solve.Result) {
	fmt.Println("\nPlan statistics:")
	fmt.Printf("  Rooms: %d\n", len(result.State.Placed))
	fmt.Printf("  Openings: %d\n", len(result.State.Openings))
	fmt.Printf("  Score: %.3f\n", result.Score.Total)
	for name, v := range result.Score.Components {
		fmt.Printf("    %s: %.3f\n", name, v)
	}
	if result.Trace != nil {
		fmt.Println("\nTrace:")
		fmt.Printf("  Placement order: %v\n", result.Trace.PlacementOrder)
		fmt.Printf("  Entry room: %s\n", result.Trace.EntryRoomID)
		fmt.Printf("  Reachable: %v\n", result.Trace.Reachable)
		if len(result.Trace.Unreachable) > 0 {
			fmt.Printf("  Unreachable: %v\n", result.Trace.Unreachable)
		}
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: floorplan compile <file.yaml> [flags]")
	fmt.Fprintln(os.Stderr, "Run 'floorplan -help' for flag descriptions.")
}

func printHelp() {
	fmt.Println("floorplan - compile a YAML layout intent into a solved floor plan")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
