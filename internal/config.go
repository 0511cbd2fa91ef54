// Copyright (c) 2021-2024, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package internal

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Config represents our central configuration file.
type Config struct {
	Harvest      HarvestConfig `json:"harvest"`
	Uploaders    Uploaders     `json:"uploaders"`
	Report       ReportConfig  `json:"report"`
	isIntialized bool
}

type HarvestConfig struct {
	// Roots are the directories walked for resource bundles.
	Roots []string `json:"roots"`
	// StagingDir receives the output directory and the archive of every
	// run.
	StagingDir string `json:"staging_dir"`
	// IndexDB adds an SQLite index of all translations to the output.
	IndexDB bool `json:"index_db"`
}

type Uploaders struct {
	Dropbox     Dropbox             `json:"dropbox"`
	S3Uploaders []S3Uploader        `json:"s3"`
	GoogleDrive GoogleDriveUploader `json:"gdrive"`
	Github      Github              `json:"github"`
	Gitlab      Gitlab              `json:"gitlab"`
}

type Dropbox struct {
	AccessToken string `json:"access_token"`
	// EndpointUrl replaces https://content.dropboxapi.com, e.g. for a proxy.
	EndpointUrl string `json:"endpoint_url"`
	Folder      string `json:"folder"`
}

type S3Uploader struct {
	AccessKey      string `json:"access_key"`
	AccessSecret   string `json:"access_secret"`
	SigningMethod  string `json:"signing_method"`
	EndpointUrl    string `json:"endpoint_url"`
	EndpointRegion string `json:"endpoint_region"`
	Name           string `json:"name"`
	Bucket         string `json:"bucket"`
	Prefix         string `json:"prefix"`
}

type GoogleDriveUploader struct {
	AppCredentialPath  string `json:"app_credential_path"`
	UserCredentialPath string `json:"user_credential_path"`
	ParentFolderID     string `json:"parent_folder_id"`
}

type Github struct {
	AuthToken string `json:"auth_token"`
	Owner     string `json:"owner"`
	Repo      string `json:"repo"`
}

type Gitlab struct {
	AuthToken string `json:"auth_token"`
	BaseUrl   string `json:"base_url"`
	Project   string `json:"project"`
	Branch    string `json:"branch"`
}

type ReportConfig struct {
	Language           string   `json:"language"`
	MetricsPushgateway string   `json:"metrics_pushgateway"`
	Telegram           Telegram `json:"telegram"`
}

type Telegram struct {
	Token  string `json:"token"`
	ChatID int64  `json:"chat_id"`
	ApiURL string `json:"api_url"`
}

// DefaultConfig returns the configuration used when no file overrides it:
// the system and developer resource trees, staged in ~/Documents.
func DefaultConfig() Config {
	stagingDir := "."
	if home, err := os.UserHomeDir(); err == nil {
		stagingDir = filepath.Join(home, "Documents")
	}
	return Config{
		Harvest: HarvestConfig{
			Roots:      []string{"/System/Library", "/Developer"},
			StagingDir: stagingDir,
		},
		Report: ReportConfig{
			Language: "en",
		},
	}
}

// LoadConfig loads the given JSON configuration file on top of the default
// configuration and returns the resulting Config configuration object.
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()
	err := config.Set(filename)
	return &config, err
}

// Set loads the given JSON configuration file rewritting the existing config
func (config *Config) Set(filename string) error {
	log.Printf("Attempting to load configuration file at %s.", filename)

	content, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	if err = json.Unmarshal(content, config); err != nil {
		return err
	}

	config.isIntialized = true
	return nil
}

func (config *Config) String() string {
	return ""
}

// IsInitialized returns true if at least one configuration file was loaded.
func (config *Config) IsInitialized() bool {
	return config.isIntialized
}

// Enabled returns true if the uploader has credentials.
func (d Dropbox) Enabled() bool {
	return strings.TrimSpace(d.AccessToken) != ""
}

func (g GoogleDriveUploader) Enabled() bool {
	return g.AppCredentialPath != "" && g.UserCredentialPath != ""
}

func (g Github) Enabled() bool {
	return g.AuthToken != "" && g.Owner != "" && g.Repo != ""
}

func (g Gitlab) Enabled() bool {
	return g.AuthToken != "" && g.Project != ""
}

func (t Telegram) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}
