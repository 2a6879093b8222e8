// cmd/blocks/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	stlog "log" // Use standard log for FATAL errors before logger is ready
	"os"

	"github.com/bethropolis/blocks/internal/app"
	"github.com/bethropolis/blocks/internal/config"
	"github.com/bethropolis/blocks/internal/logger"
)

var version = "dev"

func main() {
	// --- Argument & Flag Parsing ---
	var flags config.Flags
	args, err := flags.ParseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		stlog.Fatalf("Failed to parse flags: %v", err)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return
	}
	filePath := ""
	if len(args) > 0 {
		filePath = args[0]
	}

	// --- Configuration ---
	cfg, unknown, err := config.LoadConfig(*flags.ConfigFilePath, &flags)
	if err != nil {
		stlog.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Logger Initialization ---
	logOutput, closeLog := openLog(cfg.Logger.LogFilePath)
	defer closeLog()
	logger.SetFilterDebug(*flags.DebugLog)
	logger.Init(cfg.Logger, logOutput)

	logger.Infof("Starting %s %s...", config.AppName, version)
	for _, key := range unknown {
		logger.Warnf("Unknown config key %q ignored", key)
	}
	if filePath != "" {
		logger.Debugf("File path specified: %s", filePath)
	} else {
		logger.Debugf("No file specified, starting empty.")
	}

	// --- Export mode ---
	if *flags.ExportPath != "" {
		if err := export(filePath, *flags.ExportPath); err != nil {
			logger.Errorf("Export failed: %v", err)
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	// --- Create and Run App ---
	editor, err := app.New(app.Options{Config: cfg, FilePath: filePath})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := editor.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}
	logger.Infof("%s finished.", config.AppName)
}

// openLog opens the log destination. "-" is stderr; an empty path falls
// back to the default log file so output never lands on the editor screen.
func openLog(path string) (io.Writer, func()) {
	if path == "-" {
		return os.Stderr, func() {}
	}
	if path == "" {
		path = config.DefaultLogFileName
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		stlog.Fatalf("Failed to open log file '%s': %v", path, err)
	}
	return logFile, func() { logFile.Close() }
}

// export converts the document at src to the format of dst.
func export(src, dst string) error {
	if src == "" {
		return fmt.Errorf("-export needs an input file")
	}
	s, err := app.LoadSnapshot(src)
	if err != nil {
		return err
	}
	if err := app.SaveSnapshot(dst, s); err != nil {
		return err
	}
	logger.Infof("Exported %s to %s", src, dst)
	return nil
}
