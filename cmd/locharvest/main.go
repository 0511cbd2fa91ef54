// Copyright (c) 2021-2024, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kishikawakatsumi/applelocalization-citools/internal"
	"github.com/kishikawakatsumi/applelocalization-citools/pkg/presentation/harvest"
)

func main() {
	var lang string
	var skipUpload bool
	flag.StringVar(&lang, "lang", "", "Language of the run report, overrides the configuration.")
	flag.BoolVar(&skipUpload, "skip-upload", false, "Only write the records and the archive.")
	cfg, close, err := internal.ParseFlags()
	if err != nil {
		log.Fatal(err)
	}

	if lang != "" {
		cfg.Report.Language = lang
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, cfg, harvest.Options{SkipUpload: skipUpload}, close)
	stop()
	os.Exit(code)
}

// run performs the harvest and returns the exit code.  The log is closed
// on every path, after the last message has been written.
func run(ctx context.Context, cfg *internal.Config, opts harvest.Options, closeLog func() error) int {
	defer closeLog()

	log.Printf("Harvesting %d roots.", len(cfg.Harvest.Roots))
	summary, err := harvest.Run(ctx, cfg, opts)
	if err != nil {
		if summary != nil {
			log.Printf("Run %s finished with upload errors: %v", summary.RunID, err)
		} else {
			log.Printf("Run failed: %v", err)
		}
		return 1
	}
	return 0
}
