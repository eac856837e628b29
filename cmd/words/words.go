// Package words implements wordlist management: validate files, print
// their entries, and add new words in place.
package words

import (
	"github.com/spf13/cobra"
)

// WordsCmd is the base command for wordlist management.
var WordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Manage wordlist files",
	Long: `Manage the wordlist files that scan, mask and stream read.

Subcommands:
  check  - Validate wordlist files and report bad entries
  list   - Print a wordlist's entries as JSON
  add    - Add words to a wordlist

Examples:
  wordveil words check words.yaml
  wordveil words list -w words.yaml
  wordveil words add -w words.yaml spam scam`,
	// No Run function - requires a subcommand
}

func init() {
	WordsCmd.AddCommand(checkCmd)
	WordsCmd.AddCommand(listCmd)
	WordsCmd.AddCommand(addCmd)
}
