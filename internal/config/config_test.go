package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/inovacc/bookstore/internal/application"
	"github.com/inovacc/bookstore/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestLoad_ReadsSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `[remote]
url = https://example.firebaseio.com/books

[ui]
sort = year
direction = desc

[server]
addr = 0.0.0.0:9100
backend = sqlite
db = /tmp/books.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.firebaseio.com/books", cfg.URL)
	assert.Equal(t, model.FieldYear, cfg.SortKey)
	assert.Equal(t, model.Descending, cfg.Direction)
	assert.Equal(t, "0.0.0.0:9100", cfg.ServerAddr)
	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, "/tmp/books.db", cfg.DBPath)
}

func TestLoad_InvalidUIValuesFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[ui]\nsort = id\ndirection = sideways\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, model.FieldTitle, cfg.SortKey)
	assert.Equal(t, model.Ascending, cfg.Direction)
}

func TestSaveLoadKeepsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := model.DefaultConfig()
	cfg.URL = "https://example.firebaseio.com/shelf"
	cfg.SortKey = model.FieldPrice
	cfg.Direction = model.Descending
	cfg.Backend = "memory"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestResolveURL(t *testing.T) {
	custom := model.DefaultConfig()
	custom.URL = "https://from-config.example.com/books"

	tests := []struct {
		name       string
		flag       string
		env        string
		cfg        model.Config
		wantURL    string
		wantSource URLSource
	}{
		{
			name:       "flag wins",
			flag:       "http://flag.example.com/books",
			env:        "http://env.example.com/books",
			cfg:        custom,
			wantURL:    "http://flag.example.com/books",
			wantSource: URLSourceFlag,
		},
		{
			name:       "env before config",
			env:        "http://env.example.com/books",
			cfg:        custom,
			wantURL:    "http://env.example.com/books",
			wantSource: URLSourceEnv,
		},
		{
			name:       "config file",
			cfg:        custom,
			wantURL:    "https://from-config.example.com/books",
			wantSource: URLSourceConfig,
		},
		{
			name:       "default",
			cfg:        model.DefaultConfig(),
			wantURL:    model.DefaultURL,
			wantSource: URLSourceDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(application.EnvURL, tt.env)

			gotURL, gotSource := ResolveURL(tt.flag, tt.cfg)
			assert.Equal(t, tt.wantURL, gotURL)
			assert.Equal(t, tt.wantSource, gotSource)
		})
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
		check   func(t *testing.T, cfg model.Config)
	}{
		{
			name:  "url",
			key:   "remote.url",
			value: "https://example.firebaseio.com/books",
			check: func(t *testing.T, cfg model.Config) {
				assert.Equal(t, "https://example.firebaseio.com/books", cfg.URL)
			},
		},
		{name: "url without scheme", key: "remote.url", value: "example.com/books", wantErr: true},
		{name: "url with ftp", key: "url", value: "ftp://example.com/books", wantErr: true},
		{
			name:  "sort is case insensitive",
			key:   "ui.sort",
			value: "ISBN",
			check: func(t *testing.T, cfg model.Config) {
				assert.Equal(t, model.FieldISBN, cfg.SortKey)
			},
		},
		{name: "unknown sort", key: "sort", value: "id", wantErr: true},
		{
			name:  "direction",
			key:   "ui.direction",
			value: "descending",
			check: func(t *testing.T, cfg model.Config) {
				assert.Equal(t, model.Descending, cfg.Direction)
			},
		},
		{name: "bad direction", key: "direction", value: "up", wantErr: true},
		{
			name:  "backend",
			key:   "server.backend",
			value: "sqlite",
			check: func(t *testing.T, cfg model.Config) {
				assert.Equal(t, "sqlite", cfg.Backend)
			},
		},
		{name: "bad backend", key: "backend", value: "postgres", wantErr: true},
		{name: "empty addr", key: "server.addr", value: " ", wantErr: true},
		{name: "unknown key", key: "ui.theme", value: "dark", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := model.DefaultConfig()

			err := Set(&cfg, tt.key, tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, model.DefaultConfig(), cfg)

				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestEntries(t *testing.T) {
	entries := Entries(model.DefaultConfig())
	require.Len(t, entries, 6)
	assert.Equal(t, Entry{Key: "remote.url", Value: model.DefaultURL}, entries[0])

	cfg := model.DefaultConfig()
	for _, e := range entries {
		assert.NoError(t, Set(&cfg, e.Key, e.Value), e.Key)
	}
}
