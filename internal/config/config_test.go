package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/propscope/feasibility/internal/store"
	"github.com/propscope/feasibility/pkg/constants"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigurationDefaultsWhenMissing(t *testing.T) {
	conf, err := LoadConfiguration(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v, expected defaults for a missing file", err)
	}
	if conf.Storage.Backend != BackendFile {
		t.Errorf("Storage.Backend = %q, expected file", conf.Storage.Backend)
	}
	if conf.Storage.Path != constants.DefaultStoragePath {
		t.Errorf("Storage.Path = %q", conf.Storage.Path)
	}
	if conf.Server.Address != constants.DefaultServerAddress {
		t.Errorf("Server.Address = %q", conf.Server.Address)
	}
	if conf.Server.UploadSizeBytes() != constants.DefaultMaxUploadSizeBytes {
		t.Errorf("UploadSizeBytes() = %d", conf.Server.UploadSizeBytes())
	}
}

func TestLoadConfigurationFromFile(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: sqlite
  path: /var/lib/feasibility
server:
  address: ":9090"
  maxUploadSize: "1048576"
logging:
  level: debug
  format: console
`)

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if conf.Storage.Backend != BackendSQLite {
		t.Errorf("Storage.Backend = %q", conf.Storage.Backend)
	}
	if conf.Storage.Path != "/var/lib/feasibility" {
		t.Errorf("Storage.Path = %q", conf.Storage.Path)
	}
	if conf.Server.Address != ":9090" {
		t.Errorf("Server.Address = %q", conf.Server.Address)
	}
	if conf.Server.UploadSizeBytes() != 1048576 {
		t.Errorf("UploadSizeBytes() = %d", conf.Server.UploadSizeBytes())
	}
	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("Logging = %+v", conf.Logging)
	}
}

func TestLoadConfigurationRejectsBadValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{
			name: "Unknown storage backend",
			contents: `
storage:
  backend: carrier-pigeon
`,
		},
		{
			name: "Non-numeric upload size",
			contents: `
server:
  maxUploadSize: "lots"
`,
		},
		{
			name: "Negative upload size",
			contents: `
server:
  maxUploadSize: "-1"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.contents)
			if _, err := LoadConfiguration(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestOpenStoreBackends(t *testing.T) {
	conf := &Configuration{Storage: StorageConfig{Backend: BackendMemory}}
	s, err := OpenStore(conf, nil)
	if err != nil {
		t.Fatalf("OpenStore(memory) error = %v", err)
	}
	if _, ok := s.(*store.MemoryStore); !ok {
		t.Errorf("OpenStore(memory) = %T", s)
	}

	conf = &Configuration{Storage: StorageConfig{
		Backend: BackendFile,
		Path:    filepath.Join(t.TempDir(), "studies.json"),
	}}
	s, err = OpenStore(conf, nil)
	if err != nil {
		t.Fatalf("OpenStore(file) error = %v", err)
	}
	if _, ok := s.(*store.FileStore); !ok {
		t.Errorf("OpenStore(file) = %T", s)
	}
}
