package main

import (
	"fmt"

	"github.com/3-lines-studio/plusfiles/internal/adapters/fs"
	"github.com/3-lines-studio/plusfiles/internal/usecase"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check a project for missing or broken plus files",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		output.PrintHeader("plusfiles doctor")

		report := usecase.NewDoctorService(fs.NewOSFileSystem(settings.Root)).Check()
		for _, finding := range report.Findings {
			if finding.Severity == usecase.SeverityError {
				output.PrintError("%s", finding.Message)
			} else {
				output.PrintWarning("%s", finding.Message)
			}
		}

		if !report.Healthy() {
			return fmt.Errorf("project has problems")
		}
		output.PrintSuccess("Project looks good")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
