// Package stream implements the stream command: follow stdin and emit
// each match as a JSON line the moment its last character arrives.
package stream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tacenda/wordveil/internal/pkg/ahocorasick"
	"github.com/tacenda/wordveil/internal/pkg/cmdutil"
	"github.com/tacenda/wordveil/internal/pkg/logger"
	"github.com/tacenda/wordveil/internal/pkg/output"
	"github.com/tacenda/wordveil/internal/pkg/signals"
	"github.com/tacenda/wordveil/internal/pkg/wordlist"
)

var StreamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Follow stdin and emit matches as JSON lines",
	Long: `Follow stdin continuously and report sensitive words as they occur.

Each match is one compact JSON line with the word and its byte offsets
from the start of the stream. Words split across reads are still found,
and a match is emitted as soon as its last character arrives.

With --watch, the wordlist files are reloaded whenever they change on
disk and the matcher is rebuilt in the background; the stream keeps
flowing against the previous wordlist until the new one is ready.

Example:
  tail -f chat.log | wordveil stream -w words.yaml
  journalctl -f | wordveil stream -w words.yaml --watch`,
	Args: cobra.NoArgs,
	RunE: runStream,
}

var (
	wordlistPaths []string
	watchFiles    bool
	chunkSize     int
)

func init() {
	StreamCmd.Flags().StringSliceVarP(&wordlistPaths, "wordlist", "w", nil, "Wordlist files, YAML or plain text (repeatable)")
	StreamCmd.Flags().BoolVar(&watchFiles, "watch", false, "Reload wordlists when their files change")
	StreamCmd.Flags().IntVar(&chunkSize, "chunk-size", 4096, "Read size in bytes")

	// Bind to viper for config file support
	viper.BindPFlag("stream.wordlists", StreamCmd.Flags().Lookup("wordlist"))
	viper.BindPFlag("stream.watch", StreamCmd.Flags().Lookup("watch"))
	viper.BindPFlag("stream.chunk_size", StreamCmd.Flags().Lookup("chunk-size"))
}

func runStream(cmd *cobra.Command, args []string) error {
	paths := cmdutil.GetStringSliceConfig("stream.wordlists", wordlistPaths)
	if len(paths) == 0 {
		return fmt.Errorf("a wordlist is required (use --wordlist or set stream.wordlists in config)")
	}

	size := cmdutil.GetIntConfig("stream.chunk_size", chunkSize)
	if size <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", size)
	}

	words, err := cmdutil.LoadWordlists(paths)
	if err != nil {
		return err
	}

	live := ahocorasick.NewLiveMatcher()
	if err := live.UpdateSync(words); err != nil {
		return fmt.Errorf("failed to build matcher: %w", err)
	}

	// revision names the wordlist generation events are matched against;
	// empty until the first reload.
	var revision atomic.Value
	revision.Store("")

	if cmdutil.GetBoolConfig("stream.watch", watchFiles) {
		for _, path := range paths {
			w, err := wordlist.NewWatcher(path, func(l *wordlist.List) {
				// Any file changing re-merges all of them, so one stale
				// list can't shadow the update.
				merged, err := cmdutil.LoadWordlists(paths)
				if err != nil {
					logger.Warn("Keeping previous wordlist", "error", err)
					return
				}
				if err := live.UpdateSync(merged); err != nil {
					logger.Error("Failed to rebuild matcher, keeping previous", "error", err)
					return
				}
				revision.Store(l.Revision)
			})
			if err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
			defer w.Close()
		}
		logger.Info("Watching wordlists", "paths", paths)
	}

	logger.Info("Streaming from stdin",
		"word_count", live.WordCount(),
		"watch", cmdutil.GetBoolConfig("stream.watch", watchFiles))

	// Run the pump in the background so shutdown signals interrupt the
	// wait, not the read loop.
	errChan := make(chan error, 1)
	go func() {
		errChan <- follow(os.Stdin, os.Stdout, live, &revision, size)
	}()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	cleanup := signals.SetupHandler(ctx, cancel)
	defer cleanup()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errChan:
		return err
	}
}

// follow pumps chunks from r through a Scanner, swapping in a fresh
// scanner whenever the wordlist generation changes. Swaps happen between
// chunks; base keeps event offsets absolute across them.
func follow(r io.Reader, w io.Writer, live *ahocorasick.LiveMatcher, revision *atomic.Value, chunkSize int) error {
	lines := output.NewLineWriter(w)

	var base int    // bytes consumed by retired scanners
	var written int // bytes given to the current scanner
	var rev string
	var writeErr error

	emit := func(m ahocorasick.Match) bool {
		ev := output.StreamEvent{
			Pattern:  m.Pattern,
			Start:    base + m.Start,
			End:      base + m.End,
			Revision: rev,
		}
		if err := lines.Write(ev); err != nil {
			writeErr = err
			return false
		}
		return true
	}

	loadRev := func() {
		if v, ok := revision.Load().(string); ok {
			rev = v
		}
	}

	cur := live.Snapshot()
	scanner, err := ahocorasick.NewScanner(cur, emit)
	if err != nil {
		return fmt.Errorf("failed to start scanner: %w", err)
	}
	loadRev()

	reader := bufio.NewReader(r)
	buf := make([]byte, chunkSize)
	for {
		if snap := live.Snapshot(); snap != cur && snap != nil {
			// Drain the old scanner, then pick up where the stream
			// left off. A word straddling the swap is lost; matching
			// never mixes two generations.
			scanner.Flush()
			if scanner.Stopped() {
				return fmt.Errorf("failed to write match event: %w", writeErr)
			}
			base += written
			written = 0
			cur = snap
			scanner, err = ahocorasick.NewScanner(cur, emit)
			if err != nil {
				return fmt.Errorf("failed to swap scanner: %w", err)
			}
			loadRev()
			logger.Info("Scanner swapped",
				"word_count", cur.PatternCount(),
				"revision", rev,
				"offset", base)
		}

		n, err := reader.Read(buf)
		if n > 0 {
			if _, werr := scanner.Write(buf[:n]); werr != nil {
				return werr
			}
			written += n
			if scanner.Stopped() {
				return fmt.Errorf("failed to write match event: %w", writeErr)
			}
		}
		if err == io.EOF {
			scanner.Flush()
			if scanner.Stopped() {
				return fmt.Errorf("failed to write match event: %w", writeErr)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read stream: %w", err)
		}
	}
}
