package model

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.URL != DefaultURL {
		t.Errorf("URL = %q, want %q", cfg.URL, DefaultURL)
	}

	if cfg.SortKey != FieldTitle {
		t.Errorf("SortKey = %q, want %q", cfg.SortKey, FieldTitle)
	}

	if cfg.Direction != Ascending {
		t.Errorf("Direction = %q, want %q", cfg.Direction, Ascending)
	}

	if cfg.Backend != "bolt" {
		t.Errorf("Backend = %q, want %q", cfg.Backend, "bolt")
	}

	if cfg.DBPath != "" {
		t.Errorf("DBPath = %q, want empty string", cfg.DBPath)
	}
}
