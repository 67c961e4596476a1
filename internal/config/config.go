// Package config defines the data structures related to configuration and
// includes functions for loading and normalizing the config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/propscope/feasibility/internal/store"
	"github.com/propscope/feasibility/pkg/constants"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Storage backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Configuration holds all configuration for the feasibility application.
type Configuration struct {
	Storage StorageConfig `yaml:"storage,omitempty"`
	Server  ServerConfig  `yaml:"server,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// StorageConfig selects and parameterizes the persistence backend.
type StorageConfig struct {
	Backend string `yaml:"backend,omitempty"` // memory, file, sqlite
	Path    string `yaml:"path,omitempty"`    // file path, or data dir for sqlite
}

// ServerConfig defines runtime parameters for the HTTP server.
type ServerConfig struct {
	Address         string `yaml:"address,omitempty"`
	MaxUploadSize   string `yaml:"maxUploadSize,omitempty"`
	uploadSizeBytes int64
}

// LoggingConfig holds logging configuration options.
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. If the file does not exist, defaults are returned
// without error.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	var configuration Configuration
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	} else {
		if err := v.Unmarshal(&configuration); err != nil {
			return nil, fmt.Errorf("unable to decode into struct, %s", err)
		}
	}

	if err := configuration.normalize(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

func (conf *Configuration) normalize() error {
	if conf.Storage.Backend == "" {
		conf.Storage.Backend = BackendFile
	}
	switch conf.Storage.Backend {
	case BackendMemory, BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("invalid storage backend: %s", conf.Storage.Backend)
	}
	if conf.Storage.Path == "" {
		conf.Storage.Path = constants.DefaultStoragePath
	}

	if conf.Server.Address == "" {
		conf.Server.Address = constants.DefaultServerAddress
	}

	sizeStr := strings.TrimSpace(conf.Server.MaxUploadSize)
	if sizeStr == "" {
		conf.Server.uploadSizeBytes = constants.DefaultMaxUploadSizeBytes
		conf.Server.MaxUploadSize = fmt.Sprintf("%d", constants.DefaultMaxUploadSizeBytes)
		return nil
	}
	size, err := strconv.ParseInt(sizeStr, 10, 64)
	if err != nil || size <= 0 {
		return fmt.Errorf("invalid maxUploadSize: %s", conf.Server.MaxUploadSize)
	}
	conf.Server.uploadSizeBytes = size
	return nil
}

// UploadSizeBytes returns the configured upload size in bytes.
func (s *ServerConfig) UploadSizeBytes() int64 {
	if s.uploadSizeBytes <= 0 {
		return constants.DefaultMaxUploadSizeBytes
	}
	return s.uploadSizeBytes
}

// OpenStore constructs the persistence backend selected by the configuration.
func OpenStore(conf *Configuration, logger *zap.Logger) (store.Store, error) {
	switch conf.Storage.Backend {
	case BackendMemory:
		return store.NewMemoryStore(), nil
	case BackendFile:
		return store.NewFileStore(conf.Storage.Path, logger)
	case BackendSQLite:
		return store.NewSQLiteStore(conf.Storage.Path, logger)
	default:
		return nil, fmt.Errorf("invalid storage backend: %s", conf.Storage.Backend)
	}
}
