// Example program demonstrating schema definition, flag parsing,
// resolution, and documentation generation.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/optionsconfig/optionsconfig"
)

// appSchema is the single source of truth for this program's options.
var appSchema = optionsconfig.MustSchema(
	optionsconfig.Option{
		Name:    "EXPORT",
		Env:     "EXPORT",
		Flag:    "--export",
		Type:    optionsconfig.TypeBool,
		Default: false,
		Section: "Export",
		Help:    "Enable exporting of results",
	},
	optionsconfig.Option{
		Name:      "EXPORT_DIR",
		Env:       "EXPORT_DIR",
		Flag:      "--export-dir",
		Type:      optionsconfig.TypePath,
		Default:   "exports",
		Section:   "Export",
		Help:      "Directory results are exported into",
		DependsOn: []string{"EXPORT"},
	},
	optionsconfig.Option{
		Name:    "LOG_LEVEL",
		Env:     "LOG_LEVEL",
		Flag:    "--log-level",
		Type:    optionsconfig.TypeChoice,
		Default: "INFO",
		Choices: []string{"DEBUG", "INFO", "WARNING", "ERROR"},
		Section: "Logging",
		Help:    "Minimum level for log output",
	},
	optionsconfig.Option{
		Name:      "API_KEY",
		Env:       "API_KEY",
		Flag:      "--api-key",
		Type:      optionsconfig.TypeString,
		Default:   "local-dev-key",
		Section:   "Credentials",
		Help:      "API key used by the export backend",
		Sensitive: true,
		DependsOn: []string{"EXPORT"},
	},
)

type appConfig struct {
	Export    bool   `opt:"export"`
	ExportDir string `opt:"export_dir"`
	LogLevel  string `opt:"log_level"`
	APIKey    string `opt:"api_key"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	opts, err := optionsconfig.NewBuilder().
		WithSchema(appSchema).
		WithArgs(os.Args[1:]).
		WithLogger(logger).
		Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	var cfg appConfig
	if err := opts.Scan(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "scan error:", err)
		os.Exit(1)
	}

	fmt.Printf("export enabled: %t\n", cfg.Export)
	if cfg.Export {
		fmt.Printf("export directory: %s\n", cfg.ExportDir)
	}
	fmt.Printf("log level: %s\n", cfg.LogLevel)

	// Diagnostic rendering masks the API key.
	fmt.Println()
	fmt.Println(opts.Render())
}
