package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/inovacc/bookstore/internal/application"
	"github.com/inovacc/bookstore/internal/model"
	"github.com/inovacc/bookstore/internal/store"
	"gopkg.in/ini.v1"
)

// FileName is the name of the configuration file inside the application directory
const FileName = "config.ini"

// Section names of the configuration file
const (
	SectionRemote = "remote"
	SectionUI     = "ui"
	SectionServer = "server"
)

// URLSource indicates where the collection URL was found
type URLSource string

const (
	URLSourceFlag    URLSource = "flag"
	URLSourceEnv     URLSource = application.EnvURL
	URLSourceConfig  URLSource = "config"
	URLSourceDefault URLSource = "default"
)

// Path returns the path of the configuration file.
func Path() (string, error) {
	dir, err := application.GetApplicationDirectory()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, FileName), nil
}

// Load reads the configuration file at path on top of the defaults.
// A missing file is not an error.
func Load(path string) (model.Config, error) {
	cfg := model.DefaultConfig()

	f, err := ini.LoadSources(ini.LoadOptions{Loose: true}, path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	for _, name := range []string{SectionRemote, SectionUI, SectionServer} {
		if err := f.Section(name).MapTo(&cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse [%s] in %s: %w", name, path, err)
		}
	}

	if !cfg.SortKey.Valid() {
		cfg.SortKey = model.FieldTitle
	}

	cfg.Direction = model.ParseDirection(string(cfg.Direction))

	return cfg, nil
}

// LoadDefault loads the configuration file from the application directory.
func LoadDefault() (model.Config, error) {
	path, err := Path()
	if err != nil {
		return model.DefaultConfig(), err
	}

	return Load(path)
}

// Save writes cfg to path, creating the parent directory if needed.
func Save(path string, cfg model.Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f := ini.Empty()

	f.Section(SectionRemote).Key("url").SetValue(cfg.URL)

	ui := f.Section(SectionUI)
	ui.Key("sort").SetValue(string(cfg.SortKey))
	ui.Key("direction").SetValue(string(cfg.Direction))

	srv := f.Section(SectionServer)
	srv.Key("addr").SetValue(cfg.ServerAddr)
	srv.Key("backend").SetValue(cfg.Backend)
	srv.Key("db").SetValue(cfg.DBPath)

	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}

// ResolveURL picks the collection URL.
// Priority order:
//  1. flagURL (explicit --url flag)
//  2. BOOKSTORE_URL environment variable
//  3. [remote] url in the config file
//  4. the development store default
func ResolveURL(flagURL string, cfg model.Config) (string, URLSource) {
	if flagURL != "" {
		return flagURL, URLSourceFlag
	}

	if env := os.Getenv(application.EnvURL); env != "" {
		return env, URLSourceEnv
	}

	if cfg.URL != "" && cfg.URL != model.DefaultURL {
		return cfg.URL, URLSourceConfig
	}

	return model.DefaultURL, URLSourceDefault
}

// Entry is one key of the configuration file with its current value.
type Entry struct {
	Key   string
	Value string
}

// Entries lists every settable key in file order.
func Entries(cfg model.Config) []Entry {
	return []Entry{
		{Key: "remote.url", Value: cfg.URL},
		{Key: "ui.sort", Value: string(cfg.SortKey)},
		{Key: "ui.direction", Value: string(cfg.Direction)},
		{Key: "server.addr", Value: cfg.ServerAddr},
		{Key: "server.backend", Value: cfg.Backend},
		{Key: "server.db", Value: cfg.DBPath},
	}
}

// Set validates value and stores it under key, given as section.name.
func Set(cfg *model.Config, key, value string) error {
	value = strings.TrimSpace(value)

	switch strings.ToLower(key) {
	case "remote.url", "url":
		if err := validateURL(value); err != nil {
			return err
		}

		cfg.URL = value
	case "ui.sort", "sort":
		field, err := model.ParseField(value)
		if err != nil {
			return err
		}

		cfg.SortKey = field
	case "ui.direction", "direction":
		switch strings.ToLower(value) {
		case "asc", "ascending", "desc", "descending":
			cfg.Direction = model.ParseDirection(value)
		default:
			return fmt.Errorf("invalid direction %q (want asc or desc)", value)
		}
	case "server.addr", "addr":
		if value == "" {
			return fmt.Errorf("server address cannot be empty")
		}

		cfg.ServerAddr = value
	case "server.backend", "backend":
		switch value {
		case store.BackendBolt, store.BackendSQLite, store.BackendMemory:
			cfg.Backend = value
		default:
			return fmt.Errorf("invalid backend %q (want bolt, sqlite or memory)", value)
		}
	case "server.db", "db":
		cfg.DBPath = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	return nil
}

func validateURL(value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", value, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid url %q: scheme must be http or https", value)
	}

	if u.Host == "" {
		return fmt.Errorf("invalid url %q: missing host", value)
	}

	return nil
}
