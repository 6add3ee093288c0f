package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"universal-scraper/internal/api/validation"
	"universal-scraper/internal/config"
	"universal-scraper/internal/exporter"
	"universal-scraper/internal/llm"
	"universal-scraper/internal/logging"
	"universal-scraper/internal/pipeline"
	"universal-scraper/internal/scraper"
	"universal-scraper/pkg/models"
	"universal-scraper/pkg/utils"
)

// Flag variables.
var (
	flagFields       []string
	flagChunkSize    int
	flagChunkOverlap int
	flagModel        string
	flagEngine       string
	flagOutputDir    string
	flagConfig       string
	flagVerbose      bool
)

var runCmd = &cobra.Command{
	Use:   "run <url>",
	Short: "Scrape a URL and write scraped_data.{json,csv,xlsx}",
	Long: `Run fetches the page, extracts the requested fields chunk by chunk and
writes the three export files into the output directory.

Examples:
  scrape run https://example.com/shop --fields title,price
  scrape run https://example.com/shop --fields title --fields image_url --engine chromedp
  scrape run https://example.com/shop --fields title --chunk-size 10000 --output-dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringSliceVarP(&flagFields, "fields", "f", nil, "Fields to extract (comma separated or repeated, max 10)")
	runCmd.Flags().IntVar(&flagChunkSize, "chunk-size", 0, "Chunk size in characters, 5000-25000 (default from config)")
	runCmd.Flags().IntVar(&flagChunkOverlap, "chunk-overlap", 0, "Chunk overlap in characters, 100-2000 (default from config)")
	runCmd.Flags().StringVar(&flagModel, "model", "", "Model name (default from config)")
	runCmd.Flags().StringVar(&flagEngine, "engine", "", "Fetch engine: rod, chromedp or firecrawl (default from config)")
	runCmd.Flags().StringVarP(&flagOutputDir, "output-dir", "o", ".", "Directory for the export files")
	runCmd.Flags().StringVar(&flagConfig, "config", "configs/config.yaml", "Path to the YAML config file")
	runCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log at debug level")

	_ = runCmd.MarkFlagRequired("fields")
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// pretty terminal logs unless the config asks for specific adapters
	if len(cfg.Logging.Adapters) == 0 {
		cfg.Logging.Output = "console"
	}
	if flagVerbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.InitializeLogging(cfg); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer logging.CloseLogging()
	logger := logging.GetGlobalLogger()

	req := &models.ScrapeRequest{
		URL:          args[0],
		Fields:       models.ParseFieldList(flagFields...),
		ChunkSize:    flagChunkSize,
		ChunkOverlap: flagChunkOverlap,
		Model:        flagModel,
	}
	req.ApplyDefaults(cfg.Chunking.DefaultSize, cfg.Chunking.DefaultOverlap, cfg.LLM.Model)
	if err := validation.New().Struct(req); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	llmManager := llm.NewManager(cfg)
	if err := llmManager.Start(cmd.Context()); err != nil {
		return err
	}
	defer llmManager.Stop()
	if !llmManager.IsHealthy() {
		return fmt.Errorf("LLM provider %s is not configured: set LLM_API_KEY", llmManager.GetProviderName())
	}

	fetcher, err := scraper.NewFetcherFactory(cfg).CreateFetcher(flagEngine)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = " Scraping in progress..."
	s.Start()
	result, err := pipeline.New(fetcher, llmManager, logger).Run(ctx, req)
	s.Stop()
	if err != nil {
		return err
	}

	return report(cmd.OutOrStdout(), result, flagOutputDir)
}

// report prints the run summary and writes the exports, or the no-data notice
func report(out io.Writer, result *pipeline.Result, outputDir string) error {
	extraction := result.Extraction
	fmt.Fprintf(out, "Chunks: %d (skipped %d)  Images: %d  Time: %s\n",
		extraction.ChunkCount, extraction.SkippedChunks, extraction.ImageCount, utils.FormatDuration(result.ProcessingTime))

	if !extraction.HasData() {
		fmt.Fprintln(out, utils.NoDataNotice)
		return nil
	}

	paths, err := writeArtifacts(outputDir, extraction.Records)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Records: %d\n", len(extraction.Records))
	for _, path := range paths {
		fmt.Fprintf(out, "Wrote %s\n", path)
	}
	return nil
}

// writeArtifacts renders every export format into dir and returns the file paths
func writeArtifacts(dir string, records []models.Record) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	artifacts, err := exporter.ExportAll(records)
	if err != nil {
		return nil, fmt.Errorf("exporting results: %w", err)
	}

	paths := make([]string, 0, len(artifacts))
	for _, artifact := range artifacts {
		path := filepath.Join(dir, artifact.Filename)
		if err := os.WriteFile(path, artifact.Data, 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ExecuteContext runs the root command with ctx; used by tests
func ExecuteContext(ctx context.Context, args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
