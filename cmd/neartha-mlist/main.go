// Neartha mlist - malware hash database collector.
// Collects SHA-256 sample hashes from public threat-intelligence sources,
// merges them into a persisted JSON database, and reports statistics.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mostypc123/neartha-mlist/internal/api"
	"github.com/mostypc123/neartha-mlist/internal/core"
	"github.com/mostypc123/neartha-mlist/internal/intelligence"
	"github.com/mostypc123/neartha-mlist/internal/pipeline"
	"github.com/mostypc123/neartha-mlist/internal/reporting"
	"github.com/mostypc123/neartha-mlist/internal/sources"
	"github.com/mostypc123/neartha-mlist/internal/store"
)

var version = "1.0.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "neartha-mlist",
		Short:   "Neartha malware hash database collector",
		Long:    "Collects malware sample hashes from public threat-intelligence sources into a merged, persisted hash database.",
		Version: version,
	}

	rootCmd.AddCommand(collectCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(lookupCmd())
	rootCmd.AddCommand(sourcesCmd())
	rootCmd.AddCommand(serverCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	return logger.Sugar()
}

func collectCmd() *cobra.Command {
	var (
		outputDir  string
		configPath string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Run the full collection cycle and regenerate statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()

			fs, err := store.NewFileStore(outputDir)
			if err != nil {
				return err
			}
			for _, partition := range core.Partitions {
				if err := os.MkdirAll(filepath.Join(fs.Root(), partition), 0755); err != nil {
					return err
				}
			}

			registry, err := sources.LoadRegistry(configPath)
			if err != nil {
				return err
			}

			client := sources.NewClient(timeout)
			adapters := registry.Build(client, logger)
			collector := pipeline.NewCollector(adapters, fs, logger)

			report := collector.Run(cmd.Context())
			printRunReport(report)

			if _, err := writeStatistics(fs, logger); err != nil {
				return err
			}
			fmt.Printf("\nStatistics written to %s\n", filepath.Join(fs.Root(), "stats.json"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "hashes", "Output directory for the hash database")
	cmd.Flags().StringVar(&configPath, "config", "sources.yml", "Source registry file (built-in defaults when absent)")
	cmd.Flags().DurationVar(&timeout, "timeout", sources.DefaultTimeout, "Per-request HTTP timeout")

	return cmd
}

func statsCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Recompute statistics over the persisted database",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()

			fs, err := store.NewFileStore(outputDir)
			if err != nil {
				return err
			}
			snap, err := writeStatistics(fs, logger)
			if err != nil {
				return err
			}
			printSnapshot(snap)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "hashes", "Output directory for the hash database")
	return cmd
}

func lookupCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "lookup <sha256|file>",
		Short: "Look up a hash, or hash a local file and look it up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()

			hash := args[0]
			if !core.IsSHA256(hash) {
				computed, err := core.HashFile(hash)
				if err != nil {
					return fmt.Errorf("argument is neither a sha256 hash nor a readable file: %w", err)
				}
				fmt.Printf("SHA256(%s) = %s\n", hash, computed)
				hash = computed
			}

			fs, err := store.NewFileStore(outputDir)
			if err != nil {
				return err
			}

			index := intelligence.NewIndex()
			if err := index.Load(fs, logger); err != nil {
				return err
			}

			sightings := index.Lookup(hash)
			if len(sightings) == 0 {
				fmt.Println("Hash not found in the database.")
				return nil
			}
			fmt.Printf("Known hash, %d sighting(s):\n", len(sightings))
			for _, s := range sightings {
				fmt.Printf("  [%s/%s] %s (first seen %s)\n",
					s.Partition, s.File, s.Record.Classification, s.Record.FirstSeen)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "hashes", "Output directory for the hash database")
	return cmd
}

func sourcesCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Print the effective source registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()

			registry, err := sources.LoadRegistry(configPath)
			if err != nil {
				return err
			}

			adapters := registry.Build(sources.NewClient(0), logger)
			fmt.Printf("%d enabled source(s):\n", len(adapters))
			for _, a := range adapters {
				fmt.Printf("  %-16s partition=%s prefix=%q\n", a.Name(), a.Partition(), a.FilePrefix())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "sources.yml", "Source registry file (built-in defaults when absent)")
	return cmd
}

func serverCmd() *cobra.Command {
	var (
		port       int
		outputDir  string
		configPath string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the REST API over the hash database",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()

			fs, err := store.NewFileStore(outputDir)
			if err != nil {
				return err
			}

			registry, err := sources.LoadRegistry(configPath)
			if err != nil {
				return err
			}

			client := sources.NewClient(timeout)
			collector := pipeline.NewCollector(registry.Build(client, logger), fs, logger)

			fmt.Printf("Starting neartha-mlist API server on :%d...\n", port)
			return api.NewServer(fs, collector, logger).Start(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Server port")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "hashes", "Output directory for the hash database")
	cmd.Flags().StringVar(&configPath, "config", "sources.yml", "Source registry file (built-in defaults when absent)")
	cmd.Flags().DurationVar(&timeout, "timeout", sources.DefaultTimeout, "Per-request HTTP timeout")

	return cmd
}

// writeStatistics recomputes the snapshot and rewrites stats.json and
// SUMMARY.md at the output root. Both artifacts are derived state,
// overwritten in full.
func writeStatistics(fs *store.FileStore, logger *zap.SugaredLogger) (*reporting.Snapshot, error) {
	now := time.Now().UTC()

	snap, err := reporting.Aggregate(fs, logger, now)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(fs.Root(), "stats.json"), data, 0644); err != nil {
		return nil, fmt.Errorf("write stats.json: %w", err)
	}

	dailyCount := -1
	if daily, err := fs.Get(core.PartitionDaily, core.FileName("", now)); err == nil {
		dailyCount = len(daily.Signatures)
	}

	summary := reporting.RenderSummary(snap, dailyCount, now)
	if err := os.WriteFile(filepath.Join(fs.Root(), "SUMMARY.md"), []byte(summary), 0644); err != nil {
		return nil, fmt.Errorf("write SUMMARY.md: %w", err)
	}
	return snap, nil
}

func printRunReport(report *core.RunReport) {
	fmt.Printf("\nCollection run: %d source(s), %d hash(es), %d failure(s)\n",
		len(report.Outcomes), report.TotalHashes(), report.Failed())
	for _, o := range report.Outcomes {
		line := fmt.Sprintf("  [%-6s] %-16s %d hashes", o.Status, o.Source, o.Hashes)
		if o.Reason != "" {
			line += " (" + o.Reason + ")"
		}
		fmt.Println(line)
	}
}

func printSnapshot(snap *reporting.Snapshot) {
	fmt.Printf("\nTotal unique hashes: %d\n", snap.TotalUniqueHashes)

	partitions := make([]string, 0, len(snap.Sources))
	for name := range snap.Sources {
		partitions = append(partitions, name)
	}
	sort.Strings(partitions)
	for _, name := range partitions {
		stats := snap.Sources[name]
		fmt.Printf("  %-16s %d file(s), %d hash(es)\n", name, stats.Files, stats.Hashes)
	}
}
