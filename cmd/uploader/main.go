// Package main implements the uploader CLI, which sends local files through
// the broker in one batch.
package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"uploadbroker/internal/config"
	"uploadbroker/internal/logging"
	"uploadbroker/internal/report"
	"uploadbroker/internal/uploader"
)

var (
	// brokerURL is the base URL of the broker
	brokerURL string
	// version information
	version = "dev"

	concurrency int
	token       string
	reportPath  string
	verbose     bool
)

var errUploadsFailed = errors.New("one or more uploads failed")

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "uploader",
	Short: "Upload files through the upload broker",
	Long: `uploader asks the broker for a short-lived authorization per file and then
sends each file straight to object storage.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&brokerURL, "broker", "http://localhost:8080", "broker base URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each request")

	uploadCmd.Flags().IntVarP(&concurrency, "concurrency", "c", uploader.DefaultConcurrency, "files uploaded at the same time")
	uploadCmd.Flags().StringVar(&token, "token", os.Getenv("UPLOADBROKER_TOKEN"), "bearer token for the broker")
	uploadCmd.Flags().StringVar(&reportPath, "report", "", "write outcomes to this .csv or .xlsx file")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(healthCmd)
}

// uploadCmd uploads one batch of local files
var uploadCmd = &cobra.Command{
	Use:   "upload [files...]",
	Short: "Upload files in one batch",
	Long: `Upload files in one batch. Every file gets its own outcome; one failure
does not stop the others. The exit status is 1 when any file failed.

Examples:
  # Upload two files
  uploader upload report.pdf notes.txt

  # Upload with a token and write a report
  uploader upload --token $TOKEN --report outcomes.xlsx *.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

// healthCmd checks broker health
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check broker readiness",
	RunE:  runHealth,
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	l, err := logging.New(config.LogConfig{Level: "debug", Format: "console"})
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func runUpload(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	files := make([]uploader.File, 0, len(args))
	var outcomes []uploader.Outcome
	for _, path := range args {
		f, err := uploader.LocalFile(path)
		if err != nil {
			// Unreadable paths still get an outcome of their own.
			outcomes = append(outcomes, uploader.Outcome{Filename: path, Error: err.Error()})
			continue
		}
		files = append(files, f)
	}

	client := uploader.New(brokerURL,
		uploader.WithConcurrency(concurrency),
		uploader.WithToken(token),
		uploader.WithLogger(logger),
	)
	outcomes = append(outcomes, client.UploadBatch(cmd.Context(), files)...)

	printOutcomes(out, outcomes)

	if reportPath != "" {
		if err := report.WriteFile(reportPath, outcomes); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintf(out, "report written to %s\n", reportPath)
	}

	if uploader.Summarize(outcomes).Failed > 0 {
		return errUploadsFailed
	}
	return nil
}

func printOutcomes(out io.Writer, outcomes []uploader.Outcome) {
	for _, o := range outcomes {
		if o.OK() {
			fmt.Fprintf(out, "ok    %s -> %s\n", o.Filename, o.Key)
		} else {
			fmt.Fprintf(out, "FAIL  %s: %s\n", o.Filename, o.Error)
		}
	}
	s := uploader.Summarize(outcomes)
	fmt.Fprintf(out, "%d attempted, %d succeeded, %d failed\n", s.Attempted, s.Succeeded, s.Failed)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	client := &http.Client{Timeout: 10 * time.Second}
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, strings.TrimRight(brokerURL, "/")+"/readyz", http.NoBody)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("broker unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", resp.StatusCode, strings.TrimSpace(string(body)))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("broker not ready (status %d)", resp.StatusCode)
	}
	return nil
}
