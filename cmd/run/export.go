package run

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/markusressel/pid2go/internal/export"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export <id> <path>",
	Short: "Write a stored run to a JSON or CSV file",
	Long: `Writes a stored run to the given path. The format is taken from the
--format flag, or from the file extension if the flag is not set.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, path := args[0], args[1]

		format, err := resolveFormat(exportFormat, path)
		if err != nil {
			return err
		}

		pers, err := openPersistence()
		if err != nil {
			return err
		}
		run, err := pers.LoadRun(id)
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no run with id found: %s", id)
		} else if err != nil {
			return err
		}

		switch format {
		case "json":
			err = export.WriteJSON(path, run)
		case "csv":
			err = export.WriteCSV(path, run.Trace)
		}
		if err != nil {
			return err
		}

		ui.Success("Exported run %s to %s", id, path)
		return nil
	},
}

// resolveFormat returns the explicit format, or the one matching the extension of path
func resolveFormat(format string, path string) (string, error) {
	format = strings.ToLower(format)
	if len(format) <= 0 {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	if format != "json" && format != "csv" {
		return "", fmt.Errorf("unsupported export format %q, use json or csv", format)
	}
	return format, nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Export format (json or csv)")
	Command.AddCommand(exportCmd)
}
