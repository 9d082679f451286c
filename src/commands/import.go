// src/commands/import.go
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/username/paybook/src/services"
)

func newImportCommand(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a PayPal transaction export into the books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := deps.Importer.ImportFile(args[0])
			return err
		},
	}
}

// ConsoleNotifier renders pipeline notifications on the terminal, standing
// in for the dialog boxes of a windowed UI.
type ConsoleNotifier struct{}

func (ConsoleNotifier) Summary(result *services.ImportResult) {
	fmt.Print(result.Summary())
}

func (ConsoleNotifier) Info(msg string) {
	fmt.Println(msg)
}

func (ConsoleNotifier) Error(msg string) {
	fmt.Fprintln(os.Stderr, "ERROR: "+msg)
}
