// Package mask implements the mask command: rewrite text with sensitive
// words replaced by a mask character.
package mask

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tacenda/wordveil/internal/pkg/ahocorasick"
	"github.com/tacenda/wordveil/internal/pkg/cmdutil"
)

var MaskCmd = &cobra.Command{
	Use:   "mask [files...]",
	Short: "Mask sensitive words in files or stdin",
	Long: `Rewrite text with every sensitive word masked out.

Each matched word is replaced by the mask character repeated once per
character, so the text keeps its length in characters. The rewritten
text goes to stdout. With no file arguments, stdin is masked.

When occurrences overlap, --policy picks the winners: "first" keeps
matches in discovery order, "longest" prefers the longest occurrence
at each position. Either way every reported occurrence loses at least
one character.

Example:
  wordveil mask --wordlist words.yaml post.txt
  cat comment.txt | wordveil mask -w words.yaml --mask-char '#'
  wordveil mask -w words.yaml --policy longest post.txt`,
	RunE: runMask,
}

var (
	wordlistPaths []string
	maskChar      string
	policy        string
)

func init() {
	MaskCmd.Flags().StringSliceVarP(&wordlistPaths, "wordlist", "w", nil, "Wordlist files, YAML or plain text (repeatable)")
	MaskCmd.Flags().StringVarP(&maskChar, "mask-char", "m", "*", "Mask character (exactly one)")
	MaskCmd.Flags().StringVar(&policy, "policy", "first", "Overlap policy: first or longest")

	// Bind to viper for config file support
	viper.BindPFlag("mask.wordlists", MaskCmd.Flags().Lookup("wordlist"))
	viper.BindPFlag("mask.char", MaskCmd.Flags().Lookup("mask-char"))
	viper.BindPFlag("mask.policy", MaskCmd.Flags().Lookup("policy"))
}

func runMask(cmd *cobra.Command, args []string) error {
	paths := cmdutil.GetStringSliceConfig("mask.wordlists", wordlistPaths)
	if len(paths) == 0 {
		return fmt.Errorf("a wordlist is required (use --wordlist or set mask.wordlists in config)")
	}

	mask, err := parseMaskChar(cmdutil.GetStringConfig("mask.char", maskChar))
	if err != nil {
		return err
	}

	pol, err := parsePolicy(cmdutil.GetStringConfig("mask.policy", policy))
	if err != nil {
		return err
	}

	words, err := cmdutil.LoadWordlists(paths)
	if err != nil {
		return err
	}

	matcher, err := ahocorasick.Compile(words)
	if err != nil {
		return fmt.Errorf("failed to build matcher: %w", err)
	}

	inputs, err := cmdutil.ReadInputs(args)
	if err != nil {
		return err
	}

	for _, in := range inputs {
		masked, err := matcher.ReplaceWithPolicy(string(in.Data), mask, pol)
		if err != nil {
			return fmt.Errorf("mask %s: %w", in.Name, err)
		}
		if _, err := os.Stdout.WriteString(masked); err != nil {
			return err
		}
	}
	return nil
}

func parseMaskChar(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("mask character must be exactly one character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return 0, fmt.Errorf("mask character must be valid UTF-8")
	}
	return r, nil
}

func parsePolicy(s string) (ahocorasick.ReplacePolicy, error) {
	switch s {
	case "first":
		return ahocorasick.ReplaceFirstWins, nil
	case "longest":
		return ahocorasick.ReplaceLongestWins, nil
	}
	return 0, fmt.Errorf("unknown overlap policy %q (use first or longest)", s)
}
