package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/propscope/feasibility/internal/config"
	"github.com/propscope/feasibility/internal/output"
	"github.com/propscope/feasibility/internal/server"
	"github.com/propscope/feasibility/internal/studies"
	"github.com/propscope/feasibility/pkg/constants"
	"github.com/propscope/feasibility/pkg/feasibility"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

// loadInput reads a YAML-formatted feasibility input file for one-shot runs.
func loadInput(path string) (feasibility.Input, error) {
	var in feasibility.Input
	data, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("failed to parse input file %s: %w", path, err)
	}
	return in, nil
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	inputLocation := flag.String("input", "", "path to a YAML input file for a one-shot computation")
	outputFormatFlag := flag.String("output-format", constants.OutputFormatPretty, "type of output: pretty, csv")
	save := flag.Bool("save", false, "persist the one-shot study to the configured store")
	serve := flag.Bool("serve", false, "run the HTTP API server")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *inputLocation == "" && !*serve {
		logger.Fatal("nothing to do: pass -input for a one-shot computation or -serve to run the API",
			zap.String("op", "main"),
		)
	}

	if *inputLocation != "" {
		err = output.ValidateFormat(*outputFormatFlag)
		if err != nil {
			logger.Fatal(err.Error(),
				zap.String("op", "main"),
			)
		}

		in, err := loadInput(*inputLocation)
		if err != nil {
			logger.Fatal("failed to load input",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}

		study := feasibility.NewStudy(in)
		if *save {
			st, err := config.OpenStore(conf, logger)
			if err != nil {
				logger.Fatal("failed to open store",
					zap.String("op", "main"),
					zap.Error(err),
				)
			}
			manager := studies.NewManager(st, logger)
			if err := manager.Save(study); err != nil {
				logger.Fatal("failed to save study",
					zap.String("op", "main"),
					zap.Error(err),
				)
			}
		}

		switch *outputFormatFlag {
		case constants.OutputFormatPretty:
			output.PrettyFormat(study)
		case constants.OutputFormatCSV:
			output.CsvFormat(study)
		}
		return
	}

	st, err := config.OpenStore(conf, logger)
	if err != nil {
		logger.Fatal("failed to open store",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	manager := studies.NewManager(st, logger)

	handler := server.NewHandler(logger, manager, conf.Server.UploadSizeBytes())
	logger.Info("starting HTTP server",
		zap.String("op", "main"),
		zap.String("address", conf.Server.Address),
	)
	if err := http.ListenAndServe(conf.Server.Address, handler); err != nil {
		logger.Fatal("server terminated",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
