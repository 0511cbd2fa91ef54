// Copyright (c) 2023, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package locales

import (
	"embed"
	"encoding/json"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

const (
	DefaultLanguage = "en"
)

//go:embed *.json
var localeFS embed.FS

func NewBundle() (*i18n.Bundle, error) {
	files, err := localeFS.ReadDir(".")
	if err != nil {
		return nil, err
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(localeFS, file.Name()); err != nil {
			return nil, err
		}
	}
	return bundle, nil
}

// NewLocalizer returns a localizer for lang, falling back to the default
// language.  Tags the bundle has no messages for are matched to the closest
// supported language, e.g. "ja-JP" to "ja".
func NewLocalizer(bundle *i18n.Bundle, lang string) *i18n.Localizer {
	tag, err := language.Parse(lang)
	if err != nil {
		return i18n.NewLocalizer(bundle, DefaultLanguage)
	}
	matcher := language.NewMatcher(bundle.LanguageTags())
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return i18n.NewLocalizer(bundle, DefaultLanguage)
	}
	return i18n.NewLocalizer(bundle, bundle.LanguageTags()[index].String(), DefaultLanguage)
}
