package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/campusbridge/campusbridge/pkg/app"
	"github.com/campusbridge/campusbridge/pkg/config"
	"github.com/campusbridge/campusbridge/pkg/observability/logger"
	"github.com/campusbridge/campusbridge/pkg/version"
)

const (
	serviceName = "campusbridge"
	envPrefix   = "CAMPUSBRIDGE"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   serviceName,
		Short: "Academia-industry collaboration platform API",
	}

	var cfgPath string
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config-file", "c", "", "config file path")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfigAndLogger(cfgPath, cmd.Flags())
			if err != nil {
				return err
			}
			defer func() {
				if zl, ok := log.(*logger.ZapLogger); ok {
					_ = zl.Sync()
				}
			}()
			return app.Run(cmd.Context(), cfg, log)
		},
	}
	rootCmd.AddCommand(serveCmd)
	rootCmd.RunE = serveCmd.RunE

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Current(serviceName)
			fmt.Printf("Service:    %s\n", info.Service)
			fmt.Printf("Version:    %s\n", info.Version)
			fmt.Printf("Commit:     %s\n", info.Commit)
			fmt.Printf("Build Time: %s\n", info.BuildTime)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "config-validate",
		Short: "Validate configuration and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.NewViperLoader(cfgPath, envPrefix).Load(); err != nil {
				return err
			}
			fmt.Println("configuration is valid")
			return nil
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfigAndLogger(cfgPath string, _ *pflag.FlagSet) (*config.Config, logger.Logger, error) {
	cfg, err := config.NewViperLoader(cfgPath, envPrefix).Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	level, err := logger.ParseLogLevel(cfg.Observability.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	format, err := logger.ParseLogFormat(cfg.Observability.LogFormat)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.NewZapLogger(logger.Config{Level: level, Format: format})
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, log.With("service", cfg.Service.Name), nil
}
