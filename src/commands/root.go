// src/commands/root.go
package commands

import (
	"github.com/spf13/cobra"
	"github.com/username/paybook/src/database"
	"github.com/username/paybook/src/services"
)

// Deps carries the wired-up application services into the commands, so the
// command layer never reaches for globals.
type Deps struct {
	Store    *database.Store
	Importer services.ImportService
}

// NewRootCommand builds the paybook command tree.
func NewRootCommand(deps *Deps) *cobra.Command {
	root := &cobra.Command{
		Use:   "paybook",
		Short: "Small-business bookkeeping with a PayPal import pipeline",
		Long: `paybook keeps customers, vendors, sales and purchases in a local
SQLite database and builds them up from PayPal transaction exports.`,
		SilenceUsage: true,
	}

	root.AddCommand(newImportCommand(deps))
	root.AddCommand(newRunsCommand(deps))

	return root
}
