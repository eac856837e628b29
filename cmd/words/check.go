package words

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tacenda/wordveil/internal/pkg/cmdutil"
	"github.com/tacenda/wordveil/internal/pkg/output"
	"github.com/tacenda/wordveil/internal/pkg/wordlist"
)

// CheckResult reports validation of one wordlist file.
type CheckResult struct {
	Path    string   `json:"path"`
	Entries int      `json:"entries"`
	Enabled int      `json:"enabled"`
	Errors  []string `json:"errors,omitempty"`
}

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Validate wordlist files",
	Long: `Validate wordlist files and report entries the other commands would drop.

Output is one JSON result per file. Exits 0 when every entry is valid,
2 when any file holds bad entries. Checks the default wordlist when no
files are given.

Examples:
  wordveil words check words.yaml
  wordveil words check team.yaml personal.txt`,
	Run: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) {
	paths := args
	if len(paths) == 0 {
		paths = []string{wordlist.DefaultPath()}
	}

	results := make([]CheckResult, 0, len(paths))
	bad := 0
	for _, path := range paths {
		list, entryErrs, err := wordlist.LoadWithErrors(path)
		if err != nil {
			cmdutil.OutputError(err, cmdutil.ExitGeneralError)
			return
		}
		res := CheckResult{
			Path:    path,
			Entries: len(list.Entries),
			Enabled: len(list.Words()),
		}
		for _, e := range entryErrs {
			res.Errors = append(res.Errors, e.Error())
		}
		bad += len(entryErrs)
		results = append(results, res)
	}

	if err := output.PrintJSON(os.Stdout, results); err != nil {
		cmdutil.OutputError(err, cmdutil.ExitGeneralError)
		return
	}
	if bad > 0 {
		os.Exit(cmdutil.ExitValidationError)
	}
}
