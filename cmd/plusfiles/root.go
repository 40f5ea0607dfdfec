package main

import (
	"fmt"
	"os"

	"github.com/3-lines-studio/plusfiles/internal/adapters/cli"
	"github.com/3-lines-studio/plusfiles/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "plusfiles",
	Short:         "Server-side rendering for pages made of plus files",
	Long:          `plusfiles serves pages assembled from +Page, +Head and +onRenderClient files, live in dev and from a build in prod.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var output = cli.NewOutput()

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		output.PrintError("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("dir", ".", "Project root")
	rootCmd.PersistentFlags().String("config", "", "Config file (default plusfiles.toml, plusfiles.yaml or plusfiles.yml in --dir)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	flags := cmd.Flags()
	dir, _ := flags.GetString("dir")
	path, _ := flags.GetString("config")

	var o config.Overrides
	if flags.Changed("debug") {
		v, _ := flags.GetBool("debug")
		o.Debug = &v
	}
	if flags.Changed("port") {
		v, _ := flags.GetInt("port")
		o.Port = &v
	}
	if flags.Changed("base") {
		v, _ := flags.GetString("base")
		o.Base = &v
	}
	if flags.Changed("prod") {
		v, _ := flags.GetBool("prod")
		o.Prod = &v
	}

	s, err := config.Load(dir, path, os.Getenv, o)
	if err != nil {
		return config.Settings{}, fmt.Errorf("load config: %w", err)
	}
	return s, nil
}
