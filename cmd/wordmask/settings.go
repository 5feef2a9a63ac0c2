package wordmask

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/wordmask/wordmask/internal/config"
	"github.com/wordmask/wordmask/internal/dfa"
	"github.com/wordmask/wordmask/internal/dictionary"
	"github.com/wordmask/wordmask/internal/types"
	"golang.org/x/term"
)

const defaultMask = '*'

// settings is the resolved view of flags, local config and global config for
// one command invocation.
type settings struct {
	root       string
	local      config.FileConfig
	global     config.FileConfig
	dictionary string
	encoding   string
	policy     types.MatchPolicy
	mask       rune
	noColor    bool

	lazy *dfa.Lazy
	id   string
}

// resolveSettings loads configuration relative to root. Precedence is
// CLI > local > global.
func resolveSettings(cmd *cobra.Command, root string) (*settings, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	s := &settings{root: abs}
	if c, err := config.LoadGlobal(); err == nil {
		s.global = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		s.local = c
	}

	s.dictionary = dictionary.Path(pickString(flagDictionary, s.local.Dictionary, s.global.Dictionary))
	s.encoding = pickString(flagEncoding, s.local.Encoding, s.global.Encoding)

	policy := pickString(flagPolicy, s.local.Policy, s.global.Policy)
	if policy == "" {
		s.policy = types.ShortestMatch
	} else if s.policy, err = types.ParsePolicy(policy); err != nil {
		return nil, err
	}

	s.mask, err = pickMask(flagMask, s.local, s.global)
	if err != nil {
		return nil, err
	}

	s.noColor = pickBool(flagNoColor, s.local.NoColor, s.global.NoColor) || !isTerminal(cmd)

	path, enc := s.dictionary, s.encoding
	s.lazy = dfa.NewLazy(func() ([]string, error) {
		words, err := dictionary.Load(path, dictionary.Options{Encoding: enc})
		if err == nil {
			s.id = dictionary.Fingerprint(words)
		}
		return words, err
	})
	return s, nil
}

// filter compiles the dictionary on first use.
func (s *settings) filter() (*dfa.Filter, error) { return s.lazy.Get() }

func pickMask(cli string, local, global config.FileConfig) (rune, error) {
	if cli != "" {
		if utf8.RuneCountInString(cli) != 1 {
			return 0, fmt.Errorf("mask must be a single character, got %q", cli)
		}
		r, _ := utf8.DecodeRuneInString(cli)
		return r, nil
	}
	if r := local.MaskRune(); r != 0 {
		return r, nil
	}
	if r := global.MaskRune(); r != 0 {
		return r, nil
	}
	return defaultMask, nil
}

// isTerminal reports whether the command writes straight to a terminal.
func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt(cli int, local, global *int) int {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickInt64(cli int64, local, global *int64) int64 {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}
