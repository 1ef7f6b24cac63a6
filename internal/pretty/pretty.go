package pretty

import (
	"fmt"
	"strings"
)

// Options control the ASCII rendering.
type Options struct {
	// Interior width cap for readability. Longer inserts show head and tail
	// around a gap marker. If <=0, use default (60).
	MaxGap int

	// Glyphs
	UMIGlyph   string // default "N"
	IndexGlyph string // default "I"
	DotGlyph   string // default "."
}

// DefaultOptions is the look used by the pretty output format.
var DefaultOptions = Options{
	MaxGap:     60,
	UMIGlyph:   "N",
	IndexGlyph: "I",
	DotGlyph:   ".",
}

const linePrefix = "# "

// Block is one split read to draw.
type Block struct {
	ID          string
	Prefix      string // linker prefix spec (N/I)
	Suffix      string // linker suffix spec (N/I)
	UMI         []byte
	SampleIndex []byte
	Sequence    []byte
}

// Render draws the read back in its original order: the role track on top,
// the bases below, linker segments separated from the insert by spaces.
//
//	# read7 umi=ACG index=CGT insert=10
//	# NNN .......... III
//	# ACG TACGTACGTA CGT
func Render(b Block, opt Options) (string, error) {
	if opt.MaxGap <= 0 {
		opt.MaxGap = DefaultOptions.MaxGap
	}
	glyph := func(g, def string) string {
		if g == "" {
			return def
		}
		return g
	}
	umiG, idxG, dotG := glyph(opt.UMIGlyph, "N"), glyph(opt.IndexGlyph, "I"), glyph(opt.DotGlyph, ".")

	umi, idx := b.UMI, b.SampleIndex
	replay := func(spec string) (roles, bases string, err error) {
		var r, s strings.Builder
		for _, ch := range spec {
			switch ch {
			case 'N':
				if len(umi) == 0 {
					return "", "", fmt.Errorf("read %s: UMI shorter than linker spec", b.ID)
				}
				r.WriteString(umiG)
				s.WriteByte(umi[0])
				umi = umi[1:]
			case 'I':
				if len(idx) == 0 {
					return "", "", fmt.Errorf("read %s: sample index shorter than linker spec", b.ID)
				}
				r.WriteString(idxG)
				s.WriteByte(idx[0])
				idx = idx[1:]
			default:
				return "", "", fmt.Errorf("read %s: bad linker spec char '%c'", b.ID, ch)
			}
		}
		return r.String(), s.String(), nil
	}
	preRoles, preBases, err := replay(b.Prefix)
	if err != nil {
		return "", err
	}
	sufRoles, sufBases, err := replay(b.Suffix)
	if err != nil {
		return "", err
	}
	if len(umi) != 0 || len(idx) != 0 {
		return "", fmt.Errorf("read %s: linker bases left over after replaying spec", b.ID)
	}

	insert := string(b.Sequence)
	track := strings.Repeat(dotG, len(insert))
	if len(insert) > opt.MaxGap {
		head := opt.MaxGap / 2
		tail := opt.MaxGap - head
		gap := fmt.Sprintf("~%d~", len(insert)-opt.MaxGap)
		insert = insert[:head] + gap + insert[len(insert)-tail:]
		track = strings.Repeat(dotG, head) + gap + strings.Repeat(dotG, tail)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s%s umi=%s index=%s insert=%d\n", linePrefix, b.ID, orDash(b.UMI), orDash(b.SampleIndex), len(b.Sequence))
	sb.WriteString(linePrefix + join(preRoles, track, sufRoles) + "\n")
	sb.WriteString(linePrefix + join(preBases, insert, sufBases) + "\n")
	return sb.String(), nil
}

func join(parts ...string) string {
	var keep []string
	for _, p := range parts {
		if p != "" {
			keep = append(keep, p)
		}
	}
	return strings.Join(keep, " ")
}

func orDash(b []byte) string {
	if len(b) == 0 {
		return "-"
	}
	return string(b)
}
