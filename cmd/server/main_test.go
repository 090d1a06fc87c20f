package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"

	"profanity/pkg/censor"
)

func TestMain(m *testing.M) {
	log.SetLevel(log.PanicLevel)
	os.Exit(m.Run())
}

func TestConfig(t *testing.T) {
	var cfg Config
	if _, err := toml.DecodeFile("config.toml", &cfg); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	c, err := newCensor(cfg)
	if err != nil {
		t.Fatalf("failed to create censor: %v", err)
	}
	if got := c.Options(); got != censor.DefaultOptions() {
		t.Errorf("want default options %+v, got %+v", censor.DefaultOptions(), got)
	}
}

func TestNewCensor(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"Built-in dictionary", Config{}, false},
		{"Dictionary file", Config{DictionaryPath: filepath.Join("..", "..", "pkg", "censor", "test_data", "words.json")}, false},
		{"Missing dictionary", Config{DictionaryPath: "missing.json"}, true},
		{"Bad threshold", Config{Censor: censor.Config{Threshold: "rude"}}, true},
		{"Custom replacement", Config{Censor: censor.Config{Replacement: "#"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newCensor(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("want error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
