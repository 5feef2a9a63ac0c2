package wordmask

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNoInput = errors.New("no input: pass text as arguments or pipe it on stdin")

// readInput returns args joined by spaces, or all of stdin when no args are
// given. An interactive stdin without args is an error rather than a hang.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", errNoInput
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(b), "\n"), nil
}
