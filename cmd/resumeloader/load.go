package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	logpkg "github.com/talentgrid/resumatch/internal/logger"
	resumatch "github.com/talentgrid/resumatch/pkg/sdk"
)

var batchSize int

var loadCmd = &cobra.Command{
	Use:   "load <file.json>",
	Short: "Load a JSON array of resumes into the server in batches",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return load(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().IntVarP(&batchSize, "batch", "b", 100, "records per ingestion request")
}

func load(ctx context.Context, path string) error {
	logger, err := logpkg.NewLogger("local")
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var resumes []resumatch.Resume
	if err := json.Unmarshal(data, &resumes); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if len(resumes) == 0 {
		logger.Info("nothing to load", zap.String("file", path))
		return nil
	}

	logger.Info("loading resumes",
		zap.String("file", path),
		zap.Int("count", len(resumes)),
		zap.Int("batch_size", batchSize),
	)

	client := newClient()

	succeeded, failed := 0, 0
	for start := 0; start < len(resumes); start += batchSize {
		end := start + batchSize
		if end > len(resumes) {
			end = len(resumes)
		}

		report, err := client.Ingest(ctx, resumes[start:end])
		if err != nil {
			return fmt.Errorf("ingest batch %d-%d: %w", start, end, err)
		}

		succeeded += report.Succeeded
		failed += report.Failed
		for _, res := range report.Results {
			if res.Status != "ok" {
				logger.Warn("record failed",
					zap.String("id", res.ID),
					zap.String("error", res.Error),
				)
			}
		}

		logger.Info("batch done",
			zap.Int("from", start),
			zap.Int("to", end),
			zap.Int("succeeded", report.Succeeded),
			zap.Int("failed", report.Failed),
		)
	}

	logger.Info("load finished",
		zap.Int("succeeded", succeeded),
		zap.Int("failed", failed),
	)

	if failed > 0 {
		return fmt.Errorf("%d of %d records failed", failed, len(resumes))
	}
	return nil
}
