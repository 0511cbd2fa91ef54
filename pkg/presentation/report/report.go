// Copyright (c) 2024, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report turns the outcome of a harvest run into a short, localized
// summary.
package report

import (
	"strings"
	"time"

	"github.com/kishikawakatsumi/applelocalization-citools/pkg/locales"
	"github.com/kishikawakatsumi/applelocalization-citools/pkg/presentation/uploaders"
	"github.com/kishikawakatsumi/applelocalization-citools/pkg/usecases/localizations"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

// Summary is what a run produced.
type Summary struct {
	RunID        string
	OutputDir    string
	ArchivePath  string
	ArchiveBytes int64
	Records      int
	Stats        localizations.Stats
	Duration     time.Duration
	// UploadSkipped is set when uploads were turned off for the run.
	UploadSkipped bool
	Uploads       []uploaders.Result
}

// Render writes the summary in the given language, one line per fact.
func Render(bundle *i18n.Bundle, lang string, s *Summary) string {
	localizer := locales.NewLocalizer(bundle, lang)
	var lines []string

	msg, _ := localizer.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID:    "RunSummary",
			Other: "Run {{.RunID}}: {{.Records}} records with {{.Entries}} translations from {{.Bundles}} bundles ({{.FilesRead}} files read, {{.FilesSkipped}} skipped), archived to {{.Archive}} ({{.Bytes}} bytes) in {{.Duration}}.",
		},
		TemplateData: map[string]interface{}{
			"RunID":        s.RunID,
			"Records":      s.Records,
			"Entries":      s.Stats.Entries,
			"Bundles":      s.Stats.Bundles,
			"FilesRead":    s.Stats.FilesRead,
			"FilesSkipped": s.Stats.FilesSkipped,
			"Archive":      s.ArchivePath,
			"Bytes":        s.ArchiveBytes,
			"Duration":     s.Duration.Round(time.Millisecond).String(),
		},
	})
	lines = append(lines, msg)

	switch {
	case s.UploadSkipped:
		msg, _ = localizer.Localize(&i18n.LocalizeConfig{
			DefaultMessage: &i18n.Message{
				ID:    "UploadSkipped",
				Other: "Upload skipped.",
			},
		})
		lines = append(lines, msg)
	case len(s.Uploads) == 0:
		msg, _ = localizer.Localize(&i18n.LocalizeConfig{
			DefaultMessage: &i18n.Message{
				ID:    "NoUploaders",
				Other: "No upload destination configured.",
			},
		})
		lines = append(lines, msg)
	}

	for _, result := range s.Uploads {
		if result.Err != nil {
			msg, _ = localizer.Localize(&i18n.LocalizeConfig{
				DefaultMessage: &i18n.Message{
					ID:    "UploadFailed",
					Other: "Upload to {{.Destination}} failed: {{.Error}}",
				},
				TemplateData: map[string]string{
					"Destination": result.Destination,
					"Error":       result.Err.Error(),
				},
			})
		} else {
			msg, _ = localizer.Localize(&i18n.LocalizeConfig{
				DefaultMessage: &i18n.Message{
					ID:    "UploadSucceeded",
					Other: "Uploaded to {{.Destination}}: {{.Location}}",
				},
				TemplateData: map[string]string{
					"Destination": result.Destination,
					"Location":    result.Location,
				},
			})
		}
		lines = append(lines, msg)
	}

	return strings.Join(lines, "\n")
}
