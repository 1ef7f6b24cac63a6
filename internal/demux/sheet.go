// internal/demux/sheet.go
package demux

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Sample is one sample sheet row.
type Sample struct {
	Name  string
	Index string
}

// LoadSheet reads a whitespace-separated sample sheet:
//
//	name index
//
// Blank lines and lines starting with '#' are ignored. Indexes are
// upper-cased; names and indexes must be unique.
func LoadSheet(path string) ([]Sample, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return ParseSheet(fh, path)
}

// ParseSheet is LoadSheet over a reader; name is used in error messages.
func ParseSheet(r io.Reader, name string) ([]Sample, error) {
	var list []Sample
	names := map[string]bool{}
	indexes := map[string]string{}
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 2 {
			return nil, fmt.Errorf("%s:%d bad field count", name, ln)
		}
		s := Sample{Name: f[0], Index: strings.ToUpper(f[1])}
		if s.Name == UnassignedName {
			return nil, fmt.Errorf("%s:%d sample name %q is reserved", name, ln, UnassignedName)
		}
		if strings.ContainsAny(s.Name, `/\`) {
			return nil, fmt.Errorf("%s:%d sample name %q must not contain path separators", name, ln, s.Name)
		}
		if names[s.Name] {
			return nil, fmt.Errorf("%s:%d duplicate sample %q", name, ln, s.Name)
		}
		if prev, dup := indexes[s.Index]; dup {
			return nil, fmt.Errorf("%s:%d index %s already assigned to %q", name, ln, s.Index, prev)
		}
		names[s.Name] = true
		indexes[s.Index] = s.Name
		list = append(list, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%s: no samples", name)
	}
	return list, nil
}
