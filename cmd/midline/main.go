package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/philipparndt/midline/internal/config"
	"github.com/philipparndt/midline/internal/export"
	"github.com/philipparndt/midline/internal/logging"
	"github.com/philipparndt/midline/version"
)

var (
	configDir string
	logLevel  string

	cfg    *config.Config
	logger *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "midline",
	Short: "Dental midline deviation analysis",
	Long: `midline measures the deviation between the upper and lower dental midline.
Eight incisor landmarks are placed on a photograph; the angles of the upper and
lower central incisor lines are compared and a PDF report can be exported.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory containing midline.json and .env")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
}

func setup() error {
	if err := config.Load(configDir); err != nil {
		return err
	}
	loaded, err := config.Get()
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.LogLevel = logLevel
	}

	l, err := logging.New(logging.Options{
		Level:   loaded.LogLevel,
		LogsDir: loaded.LogsDir,
		ToFile:  loaded.LogToFile,
	})
	if err != nil {
		return err
	}

	cfg = loaded
	logger = l
	return nil
}

// newPipeline creates an export pipeline from the loaded configuration
func newPipeline(sink export.Sink) *export.Pipeline {
	return export.NewPipeline(sink,
		export.WithLogger(logger),
		export.WithScale(cfg.Export.Scale),
		export.WithSettleDelay(cfg.Export.SettleDelay),
		export.WithFileName(cfg.Export.FileName),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
