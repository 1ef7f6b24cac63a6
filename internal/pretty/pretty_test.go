package pretty

import (
	"strings"
	"testing"
)

func TestRenderRestoresReadOrder(t *testing.T) {
	got, err := Render(Block{
		ID:          "r1",
		Prefix:      "NIN",
		Suffix:      "IN",
		UMI:         []byte("AGT"),
		SampleIndex: []byte("CG"),
		Sequence:    []byte("TTTT"),
	}, DefaultOptions)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "# r1 umi=AGT index=CG insert=4\n" +
		"# NIN .... IN\n" +
		"# ACG TTTT GT\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderTruncatesLongInsert(t *testing.T) {
	seq := strings.Repeat("A", 10) + strings.Repeat("C", 30) + strings.Repeat("G", 10)
	got, err := Render(Block{ID: "r", Prefix: "N", UMI: []byte("T"), Sequence: []byte(seq)}, Options{MaxGap: 20})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(got, "\n")
	if lines[1] != "# N "+strings.Repeat(".", 10)+"~30~"+strings.Repeat(".", 10) {
		t.Fatalf("track: %q", lines[1])
	}
	if lines[2] != "# T "+strings.Repeat("A", 10)+"~30~"+strings.Repeat("G", 10) {
		t.Fatalf("bases: %q", lines[2])
	}
}

func TestRenderEmptyInsertAndLinker(t *testing.T) {
	got, err := Render(Block{ID: "e", Suffix: "II", SampleIndex: []byte("AC")}, DefaultOptions)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "# e umi=- index=AC insert=0\n# II\n# AC\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderRejectsInconsistentBlock(t *testing.T) {
	if _, err := Render(Block{ID: "x", Prefix: "NN", UMI: []byte("A")}, DefaultOptions); err == nil {
		t.Fatal("expected error for short UMI")
	}
	if _, err := Render(Block{ID: "x", Prefix: "N", UMI: []byte("AA")}, DefaultOptions); err == nil {
		t.Fatal("expected error for leftover UMI")
	}
}
