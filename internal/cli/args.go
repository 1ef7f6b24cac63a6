// internal/cli/args.go
package cli

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"
)

// splitArgs separates flags (with their values) from positional inputs so
// FASTQ paths may appear before, after or between flags. "-" is stdin and
// everything after "--" is positional.
func splitArgs(fs *flag.FlagSet, argv []string) (flagArgs, posArgs []string) {
	isBool := func(name string) bool {
		f := fs.Lookup(name)
		if f == nil {
			return false
		}
		bf, ok := f.Value.(interface{ IsBoolFlag() bool })
		return ok && bf.IsBoolFlag()
	}
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--":
			return flagArgs, append(posArgs, argv[i+1:]...)
		case arg == "-" || !strings.HasPrefix(arg, "-"):
			posArgs = append(posArgs, arg)
		case strings.Contains(arg, "="):
			flagArgs = append(flagArgs, arg)
		default:
			flagArgs = append(flagArgs, arg)
			if !isBool(strings.TrimLeft(arg, "-")) && i+1 < len(argv) {
				flagArgs = append(flagArgs, argv[i+1])
				i++
			}
		}
	}
	return flagArgs, posArgs
}

// expandGlobs expands shell-style patterns among input paths.
func expandGlobs(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		if p == "-" || !strings.ContainsAny(p, "*?[") {
			out = append(out, p)
			continue
		}
		m, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %v", p, err)
		}
		if len(m) == 0 {
			return nil, fmt.Errorf("no input matched %q", p)
		}
		out = append(out, m...)
	}
	return out, nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
