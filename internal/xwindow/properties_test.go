package xwindow

import "testing"

func TestPropertiesSparse(t *testing.T) {
	var p Properties
	if p.Specified() {
		t.Fatal("zero value should specify nothing")
	}
	if p.HasSize() || p.HasTitle() || p.Fullscreen() {
		t.Fatal("unset attributes should read as absent")
	}

	p.SetSize(640, 480)
	if !p.HasSize() {
		t.Fatal("size should be specified after SetSize")
	}
	w, h := p.Size()
	if w != 640 || h != 480 {
		t.Fatalf("got size %dx%d", w, h)
	}
	if p.HasOrigin() {
		t.Fatal("setting size must not specify origin")
	}

	p.ClearSize()
	if p.HasSize() {
		t.Fatal("size should be absent after ClearSize")
	}
}

func TestPropertiesBoolGetters(t *testing.T) {
	var p Properties
	p.SetFullscreen(false)
	if !p.HasFullscreen() {
		t.Fatal("explicit false should still be specified")
	}
	if p.Fullscreen() {
		t.Fatal("explicit false should read false")
	}
}

func TestPropertiesMerge(t *testing.T) {
	var base Properties
	base.SetTitle("one")
	base.SetSize(800, 600)
	base.SetFullscreen(false)

	var delta Properties
	delta.SetTitle("two")
	delta.SetOrigin(10, 20)

	base.Merge(delta)

	if got := base.Title(); got != "two" {
		t.Fatalf("title = %q, want overridden", got)
	}
	if w, h := base.Size(); w != 800 || h != 600 {
		t.Fatal("unspecified attributes must survive a merge")
	}
	if !base.HasOrigin() {
		t.Fatal("merged origin missing")
	}
	if x, y := base.Origin(); x != 10 || y != 20 {
		t.Fatalf("origin = %d,%d", x, y)
	}
	if base.HasMinimized() {
		t.Fatal("merge must not invent attributes")
	}
}

func TestParseZOrder(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want ZOrder
		err  bool
	}{
		{"bottom", ZBottom, false},
		{"normal", ZNormal, false},
		{"", ZNormal, false},
		{"TOP", ZTop, false},
		{"middle", ZNormal, true},
	} {
		got, err := ParseZOrder(tc.in)
		if (err != nil) != tc.err {
			t.Fatalf("ParseZOrder(%q) error = %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseZOrder(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
