package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/feasibility/internal/config"
	"github.com/iwvelando/feasibility/internal/feasibility"
	"github.com/iwvelando/feasibility/pkg/constants"
	"github.com/iwvelando/feasibility/pkg/export"
	"github.com/iwvelando/feasibility/pkg/logging"
	"github.com/iwvelando/feasibility/pkg/output"
	"github.com/iwvelando/feasibility/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, xlsx, pdf")
	outputPathFlag := flag.String("output", "", "destination file for xlsx and pdf output")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(logging.Config(conf.Logging), *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI overrides take precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	outputPath := conf.Output.Path
	if *outputPathFlag != "" {
		outputPath = *outputPathFlag
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}
	if validation.RequiresOutputPath(outputFormat) && outputPath == "" {
		logger.Fatal(fmt.Sprintf("output format %s requires an output path", outputFormat),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	snapshots, err := conf.ActiveSnapshots()
	if err != nil {
		logger.Fatal("failed to convert scenarios",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	results := feasibility.NewEngine(logging.Named(logger, "engine")).EvaluateAll(snapshots)

	if err := render(os.Stdout, outputFormat, outputPath, results); err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.String("format", outputFormat),
			zap.Error(err),
		)
	}

	if validation.RequiresOutputPath(outputFormat) {
		logger.Info(fmt.Sprintf("wrote %s report to %s", outputFormat, outputPath),
			zap.String("op", "main"),
			zap.Int("scenarios", len(results)),
		)
	}
}

// render writes text formats to stdout and binary formats to path.
func render(stdout io.Writer, format, path string, results []feasibility.Evaluation) error {
	switch format {
	case constants.OutputFormatPretty:
		output.WritePretty(stdout, results)
		return nil
	case constants.OutputFormatCSV:
		return output.WriteCsv(stdout, results)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	switch format {
	case constants.OutputFormatXLSX:
		err = export.WriteWorkbook(file, results)
	case constants.OutputFormatPDF:
		err = export.WritePDF(file, results, export.DefaultPDFOptions())
	default:
		err = fmt.Errorf("unsupported output format %s", format)
	}

	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close %s: %w", path, closeErr)
	}
	return err
}
