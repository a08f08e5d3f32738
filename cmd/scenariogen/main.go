package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bartonsun/D2RSG/pkg/catalog"
	"github.com/bartonsun/D2RSG/pkg/export"
	"github.com/bartonsun/D2RSG/pkg/scenario"
	"github.com/bartonsun/D2RSG/pkg/template"
)

const version = "1.0.0"

var (
	templatePath = flag.String("template", "", "Path to YAML template file (required)")
	catalogPath  = flag.String("catalog", "", "Path to YAML catalog file (required)")
	outputDir    = flag.String("output", ".", "Output directory for generated files")
	format       = flag.String("format", "json", "Export format: json, tmj, svg, or all")
	seedFlag     = flag.Uint64("seed", 1, "Seed for deterministic generation")
	verbose      = flag.Bool("verbose", false, "Enable verbose output")
	versionF     = flag.Bool("version", false, "Print version and exit")
	help         = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("scenariogen version %s\n", version)
		os.Exit(0)
	}

	if *help {
		printHelp()
		os.Exit(0)
	}

	if *templatePath == "" || *catalogPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -template and -catalog flags are required")
		printUsage()
		os.Exit(1)
	}

	validFormats := map[string]bool{"json": true, "tmj": true, "svg": true, "all": true}
	if !validFormats[*format] {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q, must be one of: json, tmj, svg, all\n", *format)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	if *verbose {
		fmt.Printf("Loading template from %s\n", *templatePath)
	}
	tmpl, err := template.LoadTemplate(*templatePath)
	if err != nil {
		return fmt.Errorf("failed to load template: %w", err)
	}

	if *verbose {
		fmt.Printf("Loading catalog from %s\n", *catalogPath)
	}
	cat, err := catalog.LoadCatalog(*catalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	if *verbose {
		fmt.Printf("Using seed: %d\n", *seedFlag)
		fmt.Printf("Zone count: %d\n", len(tmpl.Content.Zones))
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	start := time.Now()
	if *verbose {
		fmt.Println("Generating scenario...")
	}

	s, err := scenario.Generate(ctx, tmpl, cat, *seedFlag)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	elapsed := time.Since(start)
	if *verbose {
		fmt.Printf("Generation completed in %v\n", elapsed)
		printStats(s)
	}

	baseName := fmt.Sprintf("scenario_%d", s.Seed)

	if *format == "json" || *format == "all" {
		if err := exportJSON(s, baseName); err != nil {
			return err
		}
	}
	if *format == "tmj" || *format == "all" {
		if err := exportTMJ(s, baseName); err != nil {
			return err
		}
	}
	if *format == "svg" || *format == "all" {
		if err := exportSVG(s, baseName); err != nil {
			return err
		}
	}

	fmt.Printf("Successfully generated scenario (seed=%d) in %v\n", s.Seed, elapsed)
	return nil
}

func exportJSON(s *scenario.Scenario, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".json")
	if *verbose {
		fmt.Printf("Exporting JSON to %s\n", filename)
	}
	if err := export.SaveJSONToFile(s, filename); err != nil {
		return fmt.Errorf("failed to export JSON: %w", err)
	}
	if *verbose {
		info, _ := os.Stat(filename)
		fmt.Printf("  Wrote %d bytes\n", info.Size())
	}
	return nil
}

func exportTMJ(s *scenario.Scenario, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".tmj")
	if *verbose {
		fmt.Printf("Exporting TMJ to %s\n", filename)
	}
	if err := export.SaveScenarioToTMJFile(s, filename, true); err != nil {
		return fmt.Errorf("failed to export TMJ: %w", err)
	}
	if *verbose {
		info, _ := os.Stat(filename)
		fmt.Printf("  Wrote %d bytes\n", info.Size())
	}
	return nil
}

func exportSVG(s *scenario.Scenario, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".svg")
	if *verbose {
		fmt.Printf("Exporting SVG to %s\n", filename)
	}
	opts := export.DefaultSVGOptions()
	opts.Title = fmt.Sprintf("Scenario (seed=%d)", s.Seed)
	if err := export.SaveSVGToFile(s, filename, opts); err != nil {
		return fmt.Errorf("failed to export SVG: %w", err)
	}
	if *verbose {
		info, _ := os.Stat(filename)
		fmt.Printf("  Wrote %d bytes\n", info.Size())
	}
	return nil
}

func printStats(s *scenario.Scenario) {
	fmt.Println("\nScenario Statistics:")
	fmt.Printf("  Size: %dx%d\n", s.Width, s.Height)
	fmt.Printf("  Zones: %d\n", len(s.Zones))
	fmt.Printf("  Objects: %d\n", len(s.Objects))
	fmt.Printf("  Road tiles: %d\n", len(s.Roads))

	if s.Report != nil {
		fmt.Printf("\nValidation: %s\n", validationStatus(s.Report.Passed))
		fmt.Printf("  Possible tiles remaining: %d\n", s.Report.Metrics.PossibleTiles)
		if len(s.Report.Errors) > 0 {
			fmt.Printf("  Errors: %d\n", len(s.Report.Errors))
		}
	}
}

func validationStatus(passed bool) string {
	if passed {
		return "PASSED"
	}
	return "FAILED"
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage: scenariogen -template <template.yaml> -catalog <catalog.yaml> [options]")
	fmt.Fprintln(os.Stderr, "\nRun 'scenariogen -help' for detailed help")
}

func printHelp() {
	fmt.Printf("scenariogen version %s\n\n", version)
	fmt.Println("A command-line tool for generating procedural fantasy strategy scenario maps.")
	fmt.Println("\nUsage:")
	fmt.Println("  scenariogen -template <template.yaml> -catalog <catalog.yaml> [options]")
	fmt.Println("\nRequired Flags:")
	fmt.Println("  -template string")
	fmt.Println("        Path to YAML template file (zone layout and composition rules)")
	fmt.Println("  -catalog string")
	fmt.Println("        Path to YAML catalog file (units, items, leaders, spells)")
	fmt.Println("\nOptional Flags:")
	fmt.Println("  -output string")
	fmt.Println("        Output directory for generated files (default: current directory)")
	fmt.Println("  -format string")
	fmt.Println("        Export format: json, tmj, svg, or all (default: json)")
	fmt.Println("  -seed uint")
	fmt.Println("        Seed for deterministic generation (default: 1)")
	fmt.Println("  -verbose")
	fmt.Println("        Enable verbose output")
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  # Generate a scenario with default JSON export")
	fmt.Println("  scenariogen -template template.yaml -catalog catalog.yaml")
	fmt.Println("\n  # Generate with a specific seed and all export formats")
	fmt.Println("  scenariogen -template template.yaml -catalog catalog.yaml -seed 12345 -format all -output ./out")
	fmt.Println("\n  # Generate an SVG visualization with verbose output")
	fmt.Println("  scenariogen -template template.yaml -catalog catalog.yaml -format svg -verbose")
}
