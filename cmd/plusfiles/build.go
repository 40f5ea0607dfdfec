package main

import (
	"path/filepath"

	"github.com/3-lines-studio/plusfiles/internal/adapters/cli"
	"github.com/3-lines-studio/plusfiles/internal/adapters/fs"
	"github.com/3-lines-studio/plusfiles/internal/core"
	"github.com/3-lines-studio/plusfiles/internal/usecase"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Validate and copy plus files into dist/",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		clean, _ := cmd.Flags().GetBool("clean")

		output.PrintHeader("plusfiles build")
		fsys := fs.NewOSFileSystem(settings.Root)
		report := cli.NewBuildReport(output, filepath.Join(fsys.Root(), core.DistDir))

		service := usecase.NewBuildService(fsys, output)
		result, err := service.BuildProject(cmd.Context(), usecase.BuildInput{Clean: clean})

		report.SetPageCount(result.Pages)
		for _, artifact := range result.Artifacts {
			report.AddArtifact(artifact)
		}
		for _, pageErr := range result.Errors {
			report.AddError(string(pageErr.Page), pageErr.Err)
		}
		report.Render()

		return err
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().Bool("clean", true, "Remove dist/ before building")
}
