package flatten

import (
	"testing"

	"github.com/benoitkugler/svgmesh/svgtree"
)

func TestCollectEmpty(t *testing.T) {
	if got := Collect(nil); got == nil || len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
	if got := Collect(&svgtree.Group{}); got == nil || len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
	if CountPaths(nil) != 0 {
		t.Error("expected no path")
	}
}

func TestCollectOrder(t *testing.T) {
	a, b, c, d := &svgtree.Path{ID: "a"}, &svgtree.Path{ID: "b"}, &svgtree.Path{ID: "c"}, &svgtree.Path{ID: "d"}
	root := (&svgtree.Group{}).Append(
		a,
		&svgtree.Image{ID: "img"},
		(&svgtree.Group{}).Append(
			b,
			&svgtree.Text{ID: "txt"},
			(&svgtree.Group{}).Append(c),
		),
		&svgtree.Group{},
		d,
	)
	got := Collect(root)
	want := []*svgtree.Path{a, b, c, d}
	if len(got) != len(want) {
		t.Fatalf("expected %d paths, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("path %d: got %s, want %s", i, got[i].ID, want[i].ID)
		}
	}
	if n := CountPaths(root); n != 4 {
		t.Errorf("expected 4 paths, got %d", n)
	}
}

func TestCollectSkipsNonDrawable(t *testing.T) {
	root := (&svgtree.Group{}).Append(&svgtree.Image{}, &svgtree.Text{}, (&svgtree.Group{}).Append(&svgtree.Text{}))
	if got := Collect(root); len(got) != 0 {
		t.Errorf("expected no paths, got %d", len(got))
	}
}

func TestCollectParsed(t *testing.T) {
	tree, err := svgtree.Parse([]byte(`<svg width="10" height="10">
		<path d="M0 0 L1 1"/>
		<g><rect width="1" height="1"/><g><circle r="1"/></g></g>
		<text>ignored</text>
		<line x2="1" y2="1"/>
	</svg>`), svgtree.StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	paths := Collect(tree.Root)
	if len(paths) != 4 {
		t.Fatalf("expected 4 paths, got %d", len(paths))
	}
	if CountPaths(tree.Root) != len(paths) {
		t.Errorf("inconsistent count %d", CountPaths(tree.Root))
	}
}

func TestCollectNilNodes(t *testing.T) {
	var nilGroup *svgtree.Group
	var nilPath *svgtree.Path
	p := &svgtree.Path{}
	root := (&svgtree.Group{}).Append(nil, nilGroup, nilPath, (&svgtree.Group{}).Append(nil, p))
	got := Collect(root)
	if len(got) != 1 || got[0] != p {
		t.Fatalf("unexpected paths %v", got)
	}
	if n := CountPaths(root); n != len(got) {
		t.Errorf("CountPaths returned %d, Collect %d", n, len(got))
	}
}
