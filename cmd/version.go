package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindcheck/internal/model"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version and model",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("mindcheck", version)
		p, err := loadPredictor(cmd)
		if err != nil {
			return err
		}
		defer p.Close()
		fmt.Printf("model %s (reads artifact schema %s.x)\n", p.ModelVersion(), model.SupportedMajor)
		return nil
	},
}
