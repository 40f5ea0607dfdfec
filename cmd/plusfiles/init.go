package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/3-lines-studio/plusfiles/internal/adapters/fs"
	"github.com/3-lines-studio/plusfiles/internal/templates"
	"github.com/3-lines-studio/plusfiles/internal/usecase"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init <project-dir>",
	Short: "Scaffold a new project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		template, _ := cmd.Flags().GetString("template")

		projectDir, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolve project directory: %w", err)
		}

		output.PrintHeader("plusfiles init")

		service := usecase.NewInitService(fs.NewOSFileSystem(projectDir), output)
		if _, err := service.InitProject(usecase.InitInput{
			Template: template,
			Project:  templates.DeriveProjectName(projectDir),
		}); err != nil {
			return err
		}

		output.PrintDone(fmt.Sprintf("\nNext: cd %s && plusfiles serve", args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("template", templates.DefaultTemplate, "Template to use ("+strings.Join(templates.Names(), ", ")+")")
}
