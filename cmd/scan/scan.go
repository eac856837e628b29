// Package scan implements the scan command: report every sensitive-word
// occurrence in files or stdin.
package scan

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tacenda/wordveil/internal/pkg/ahocorasick"
	"github.com/tacenda/wordveil/internal/pkg/cmdutil"
	"github.com/tacenda/wordveil/internal/pkg/logger"
	"github.com/tacenda/wordveil/internal/pkg/output"
)

var ScanCmd = &cobra.Command{
	Use:   "scan [files...]",
	Short: "Scan files or stdin for sensitive words",
	Long: `Scan text for sensitive words and report every occurrence.

Each input produces one JSON report with the matched words and their
byte offsets. With no file arguments, stdin is scanned.

Matches are reported in the order they are discovered: earlier end
first, longer word first on equal end. Overlapping occurrences are all
reported.

Example:
  wordveil scan --wordlist words.yaml document.txt
  cat chat.log | wordveil scan -w words.yaml
  wordveil scan -w words.yaml --ignore-chars "-_*." chat.log
  wordveil scan -w words.yaml --fail-on-match release-notes.md
  wordveil scan -w words.yaml --highlight draft.md`,
	RunE: runScan,
}

var (
	wordlistPaths []string
	ignoreChars   string
	failOnMatch   bool
	highlightOut  bool
)

func init() {
	ScanCmd.Flags().StringSliceVarP(&wordlistPaths, "wordlist", "w", nil, "Wordlist files, YAML or plain text (repeatable)")
	ScanCmd.Flags().StringVar(&ignoreChars, "ignore-chars", "", "Characters the matcher skips over (catches f-o-o spellings)")
	ScanCmd.Flags().BoolVar(&failOnMatch, "fail-on-match", false, "Exit with code 3 when any input matches")
	ScanCmd.Flags().BoolVar(&highlightOut, "highlight", false, "Print the input with matches highlighted instead of JSON")

	// Bind to viper for config file support
	viper.BindPFlag("scan.wordlists", ScanCmd.Flags().Lookup("wordlist"))
	viper.BindPFlag("scan.ignore_chars", ScanCmd.Flags().Lookup("ignore-chars"))
	viper.BindPFlag("scan.fail_on_match", ScanCmd.Flags().Lookup("fail-on-match"))
}

func runScan(cmd *cobra.Command, args []string) error {
	paths := cmdutil.GetStringSliceConfig("scan.wordlists", wordlistPaths)
	if len(paths) == 0 {
		return fmt.Errorf("a wordlist is required (use --wordlist or set scan.wordlists in config)")
	}

	words, err := cmdutil.LoadWordlists(paths)
	if err != nil {
		return err
	}

	matcher, err := ahocorasick.Compile(words)
	if err != nil {
		return fmt.Errorf("failed to build matcher: %w", err)
	}
	logger.Debug("Matcher built",
		"word_count", matcher.PatternCount(),
		"node_count", matcher.NodeCount())

	skip := cmdutil.SkipPredicate(cmdutil.GetStringConfig("scan.ignore_chars", ignoreChars))

	inputs, err := cmdutil.ReadInputs(args)
	if err != nil {
		return err
	}

	total := 0
	for _, in := range inputs {
		text := string(in.Data)

		matches, err := matcher.FindAllSkip(text, skip)
		if err != nil {
			return fmt.Errorf("scan %s: %w", in.Name, err)
		}
		total += len(matches)

		if highlightOut {
			fmt.Fprint(os.Stdout, output.Highlight(text, matches))
			continue
		}
		if err := output.PrintJSON(os.Stdout, output.NewReport(in.Name, matches)); err != nil {
			return err
		}
	}

	if cmdutil.GetBoolConfig("scan.fail_on_match", failOnMatch) && total > 0 {
		os.Exit(cmdutil.ExitMatchFound)
	}
	return nil
}
