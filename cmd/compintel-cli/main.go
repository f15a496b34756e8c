package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"compintel/internal/adapters/ai"
	"compintel/internal/adapters/config"
	"compintel/internal/adapters/search"
	"compintel/internal/agents"
	"compintel/internal/report"
	"compintel/pkg/logger"
)

var (
	urlMode    bool
	outputPath string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "compintel-cli [input]",
	Short: "Multi-agent competitor analysis from the command line",
	Long: `Runs the full competitor intelligence pipeline against a business
description or a company URL and prints the results.

Examples:
  # Analyze by description
  compintel-cli "AI project management tool for remote teams"

  # Analyze by URL
  compintel-cli --url https://yourcompany.com

  # Save output to file
  compintel-cli "SaaS CRM platform" --output report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalysis,
}

func init() {
	rootCmd.Flags().BoolVar(&urlMode, "url", false, "Treat input as URL instead of description")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Save results to JSON file")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	input := args[0]

	mode := agents.ModeDescription
	if urlMode {
		mode = agents.ModeURL
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logLevel := cfg.App.LogLevel
	if quiet {
		logLevel = "error"
	}
	if err := logger.Init(logLevel, cfg.App.Env); err != nil {
		return err
	}
	defer logger.Sync()

	if !quiet {
		header := color.New(color.FgCyan, color.Bold)
		header.Println("Competitor Intelligence")
		fmt.Printf("%s %s\n", color.New(color.Bold).Sprint("Input:"), input)
		fmt.Printf("%s %s\n\n", color.New(color.Bold).Sprint("Mode:"), mode)
	}

	// Ctrl-C cancels the run; in-flight model calls abort via the context
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	completer, err := ai.New(ctx, cfg.AI, logger.Get())
	if err != nil {
		return err
	}
	searcher := search.NewTavilyClient(cfg.Search)
	pipeline := agents.NewPipeline(completer, searcher)

	st, err := pipeline.Run(ctx, input, mode)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			color.Yellow("\nAnalysis interrupted")
			os.Exit(1)
		}
		return err
	}

	report.NewRenderer(os.Stdout).Render(st)

	if outputPath != "" {
		if err := report.FromState(st).WriteFile(outputPath); err != nil {
			return err
		}
		fmt.Printf("\n%s Results saved to: %s\n", color.GreenString("✓"), outputPath)
	}

	return nil
}

func main() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
