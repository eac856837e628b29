package words

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tacenda/wordveil/internal/pkg/cmdutil"
	"github.com/tacenda/wordveil/internal/pkg/output"
	"github.com/tacenda/wordveil/internal/pkg/wordlist"
)

var listWordlistPath string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print a wordlist's entries as JSON",
	Long: `Print a wordlist's entries, enabled or not, with their metadata.

Examples:
  wordveil words list
  wordveil words list -w words.yaml`,
	Run: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listWordlistPath, "wordlist", "w", wordlist.DefaultPath(), "Wordlist file")
}

func runList(cmd *cobra.Command, args []string) {
	list, err := wordlist.Load(listWordlistPath)
	if err != nil {
		cmdutil.OutputError(err, cmdutil.ExitGeneralError)
		return
	}

	if err := output.PrintJSON(os.Stdout, list); err != nil {
		cmdutil.OutputError(err, cmdutil.ExitGeneralError)
	}
}
