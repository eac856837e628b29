package cmdutil

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Exit codes for CLI commands
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitValidationError = 2
	ExitMatchFound      = 3
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// OutputError writes an error response to stderr in JSON format and exits
func OutputError(err error, exitCode int) {
	resp := ErrorResponse{
		Error: err.Error(),
		Code:  mapExitCodeToString(exitCode),
	}

	data, _ := json.Marshal(resp)
	fmt.Fprintln(os.Stderr, string(data))
	os.Exit(exitCode)
}

func mapExitCodeToString(code int) string {
	switch code {
	case ExitSuccess:
		return "OK"
	case ExitValidationError:
		return "INVALID_ARGUMENT"
	case ExitMatchFound:
		return "MATCH_FOUND"
	default:
		return "UNKNOWN"
	}
}

// Input is one unit of text a command operates on: a file or stdin.
type Input struct {
	Name string
	Data []byte
}

// ReadInputs reads the given files whole, or stdin when no files are
// named. Commands that need full-text offsets and in-order reports load
// inputs up front; the stream command is the streaming path.
func ReadInputs(args []string) ([]Input, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []Input{{Name: "stdin", Data: data}}, nil
	}

	inputs := make([]Input, 0, len(args))
	for _, path := range args {
		// #nosec G304 -- Paths are the command's own arguments
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		inputs = append(inputs, Input{Name: path, Data: data})
	}
	return inputs, nil
}
