package words

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tacenda/wordveil/internal/pkg/cmdutil"
	"github.com/tacenda/wordveil/internal/pkg/output"
	"github.com/tacenda/wordveil/internal/pkg/wordlist"
)

var (
	addWordlistPath string
	addCategory     string
	addDescription  string
)

// AddResult reports the outcome of an add.
type AddResult struct {
	Path     string   `json:"path"`
	Added    []string `json:"added"`
	Skipped  []string `json:"skipped,omitempty"`
	Total    int      `json:"total"`
	Revision string   `json:"revision,omitempty"`
}

var addCmd = &cobra.Command{
	Use:   "add <word>...",
	Short: "Add words to a wordlist",
	Long: `Add words to a wordlist file, creating the file if missing.

Words already present are skipped. The file is rewritten atomically and
stamped with a new revision, which --watch streams pick up.

Examples:
  wordveil words add spam scam
  wordveil words add -w words.yaml --category ads "limited offer"`,
	Args: cobra.MinimumNArgs(1),
	Run:  runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addWordlistPath, "wordlist", "w", wordlist.DefaultPath(), "Wordlist file")
	addCmd.Flags().StringVar(&addCategory, "category", "", "Category recorded on the new entries")
	addCmd.Flags().StringVar(&addDescription, "description", "", "Description recorded on the new entries")
}

func runAdd(cmd *cobra.Command, args []string) {
	list, err := wordlist.Load(addWordlistPath)
	if errors.Is(err, os.ErrNotExist) {
		list = &wordlist.List{Path: addWordlistPath}
	} else if err != nil {
		cmdutil.OutputError(err, cmdutil.ExitGeneralError)
		return
	}

	result := AddResult{
		Path:  addWordlistPath,
		Added: []string{},
	}
	for _, word := range args {
		entry := wordlist.Entry{
			Word:        word,
			Category:    addCategory,
			Description: addDescription,
			Enabled:     true,
		}
		if err := wordlist.Validate(&entry); err != nil {
			cmdutil.OutputError(fmt.Errorf("%q: %w", word, err), cmdutil.ExitValidationError)
			return
		}
		if list.Contains(word) {
			result.Skipped = append(result.Skipped, word)
			continue
		}
		list.Entries = append(list.Entries, entry)
		result.Added = append(result.Added, word)
	}

	if len(result.Added) > 0 {
		if err := wordlist.Write(addWordlistPath, list); err != nil {
			cmdutil.OutputError(err, cmdutil.ExitGeneralError)
			return
		}
		result.Revision = list.Revision
	}
	result.Total = len(list.Entries)

	if err := output.PrintJSON(os.Stdout, result); err != nil {
		cmdutil.OutputError(err, cmdutil.ExitGeneralError)
	}
}
