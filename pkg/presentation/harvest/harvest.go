// Copyright (c) 2021-2024, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package harvest runs the whole pipeline: locate bundles, aggregate their
// translations, write the records, archive them and upload the archive.
package harvest

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kishikawakatsumi/applelocalization-citools/internal"
	"github.com/kishikawakatsumi/applelocalization-citools/pkg/archive"
	"github.com/kishikawakatsumi/applelocalization-citools/pkg/core"
	"github.com/kishikawakatsumi/applelocalization-citools/pkg/locales"
	pjson "github.com/kishikawakatsumi/applelocalization-citools/pkg/persistence/json"
	"github.com/kishikawakatsumi/applelocalization-citools/pkg/persistence/sqlite"
	"github.com/kishikawakatsumi/applelocalization-citools/pkg/presentation/report"
	"github.com/kishikawakatsumi/applelocalization-citools/pkg/presentation/uploaders"
	"github.com/kishikawakatsumi/applelocalization-citools/pkg/usecases/bundles"
	"github.com/kishikawakatsumi/applelocalization-citools/pkg/usecases/localizations"
)

type Options struct {
	// SkipUpload leaves the archive in the staging directory only.
	SkipUpload bool
	// Uploaders replaces the destinations built from the configuration.
	Uploaders []uploaders.Uploader
}

// Run performs one harvest.  Failures to resolve a bundle or to write the
// records or the archive abort the run.  Upload failures are returned once
// everything else is done; the summary is valid in that case.
func Run(ctx context.Context, cfg *internal.Config, opts Options) (*report.Summary, error) {
	start := time.Now()
	metrics := internal.InitMetrics()

	runID := strconv.FormatInt(start.UnixMicro(), 10)
	log.Printf("Starting run %s.", runID)

	refs, err := locate(ctx, cfg.Harvest.Roots)
	if err != nil {
		return nil, err
	}

	// Nothing is written before every bundle has been resolved.
	outputDir := filepath.Join(cfg.Harvest.StagingDir, runID)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	log.Printf("Writing run %s to %q.", runID, outputDir)

	for _, ref := range refs {
		if ref.HasLoctable() {
			metrics.BundlesLocated.WithLabelValues("loctable").Inc()
		} else {
			metrics.BundlesLocated.WithLabelValues("strings").Inc()
		}
	}
	log.Printf("Located %d bundles.", len(refs))

	aggregator := localizations.NewAggregator(bundles.FSProbe{})
	records := aggregator.AggregateAll(refs)
	stats := aggregator.Stats
	metrics.TranslationEntries.WithLabelValues("loctable").Add(float64(stats.LoctableEntries))
	metrics.TranslationEntries.WithLabelValues("strings").Add(float64(stats.StringsEntries))
	metrics.FilesRead.Add(float64(stats.FilesRead))
	metrics.FilesSkipped.Add(float64(stats.FilesSkipped))

	written, err := pjson.WriteRecords(outputDir, records)
	if err != nil {
		return nil, err
	}
	metrics.RecordsEmitted.Add(float64(len(written)))

	if cfg.Harvest.IndexDB {
		if err := writeIndex(outputDir, written); err != nil {
			return nil, err
		}
	}

	archivePath := filepath.Join(cfg.Harvest.StagingDir, archive.Filename(runID))
	if err := archive.WriteDir(outputDir, archivePath); err != nil {
		return nil, fmt.Errorf("archiving %q: %w", outputDir, err)
	}
	fi, err := os.Stat(archivePath)
	if err != nil {
		return nil, err
	}
	metrics.ArchiveBytes.Set(float64(fi.Size()))
	log.Printf("Archived %d records to %q.", len(written), archivePath)

	summary := &report.Summary{
		RunID:         runID,
		OutputDir:     outputDir,
		ArchivePath:   archivePath,
		ArchiveBytes:  fi.Size(),
		Records:       len(written),
		Stats:         stats,
		UploadSkipped: opts.SkipUpload,
	}

	var uploadErr error
	if !opts.SkipUpload {
		destinations := opts.Uploaders
		if destinations == nil {
			destinations = uploaders.New(&cfg.Uploaders)
		}
		summary.Uploads, uploadErr = uploaders.UploadAll(ctx, destinations, archivePath)
		for _, result := range summary.Uploads {
			outcome := "success"
			if result.Err != nil {
				outcome = "failure"
			}
			metrics.Uploads.WithLabelValues(result.Destination, outcome).Inc()
		}
	}

	summary.Duration = time.Since(start)
	metrics.RunDuration.Set(summary.Duration.Seconds())
	if uploadErr == nil {
		metrics.LastSuccess.SetToCurrentTime()
	}
	publish(cfg, metrics, summary)

	return summary, uploadErr
}

// locate collects the bundles of all roots with a single locator, so a
// bundle reached from two roots is reported once.
func locate(ctx context.Context, roots []string) ([]*core.BundleRef, error) {
	locator := bundles.NewLocator(bundles.FSProbe{})
	var refs []*core.BundleRef
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found, err := locator.Locate(root)
		if err != nil {
			return nil, err
		}
		refs = append(refs, found...)
	}
	return refs, nil
}

func writeIndex(outputDir string, written []pjson.Written) (err error) {
	index, err := sqlite.Open(outputDir)
	if err != nil {
		return fmt.Errorf("opening index: %w", err)
	}
	defer func() {
		if closeErr := index.Close(); err == nil {
			err = closeErr
		}
	}()

	for _, w := range written {
		if err := index.Add(w.Record, w.Filename); err != nil {
			return fmt.Errorf("indexing %s: %w", w.Filename, err)
		}
	}
	return nil
}

// publish logs the run summary and hands it to the configured report
// channels.  Failures are only logged.
func publish(cfg *internal.Config, metrics *internal.Metrics, summary *report.Summary) {
	if cfg.Report.MetricsPushgateway != "" {
		if err := metrics.Push(cfg.Report.MetricsPushgateway); err != nil {
			log.Printf("Failed to push metrics: %v", err)
		}
	}

	bundle, err := locales.NewBundle()
	if err != nil {
		log.Printf("Failed to load locales: %v", err)
		return
	}
	text := report.Render(bundle, cfg.Report.Language, summary)
	for _, line := range strings.Split(text, "\n") {
		log.Println(line)
	}

	if !cfg.Report.Telegram.Enabled() {
		return
	}
	notifier, err := report.NewTelegramNotifier(&cfg.Report.Telegram)
	if err != nil {
		log.Printf("Failed to create the telegram notifier: %v", err)
		return
	}
	if err := notifier.Notify(text); err != nil {
		log.Printf("Failed to send the report to telegram: %v", err)
	}
}
