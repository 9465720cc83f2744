package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/philipparndt/robomap/internal/logging"
	"github.com/philipparndt/robomap/pkg/snap"
	"github.com/philipparndt/robomap/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	threshold  float64

	logger = logging.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "robomap",
	Short: "Snap-assisted annotation of robotics map meshes",
	Long: `robomap inspects 3D meshes of SLAM maps and helps place annotations on them.
It snaps clicked points to nearby corners, edges and obstacles, suggests labels
for them and keeps the annotations in a sidecar file next to the model.
Supported model formats are OBJ, STL (ASCII and binary) and OpenSCAD.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML configuration file with a [snap] section")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().Float64Var(&threshold, "threshold", 0, "Snap search radius, overrides the configuration")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	l, err := logging.New(cmd.ErrOrStderr(), level, logFormat)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// loadConfig returns the snap configuration after applying the config file
// and the --threshold flag
func loadConfig(cmd *cobra.Command) (snap.Config, error) {
	cfg := snap.DefaultConfig()
	if configPath != "" {
		loaded, err := snap.LoadConfig(configPath)
		if err != nil {
			return snap.Config{}, err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Threshold = threshold
	}
	return cfg, nil
}

func newEngine(cmd *cobra.Command) (*snap.Engine, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return snap.Initialize(cmd.Context(), cfg, snap.WithLogger(logger))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
