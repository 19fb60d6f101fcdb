package colorutil

import (
	"image/color"
	"math/rand/v2"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		err  bool
	}{
		{"#3498db", color.RGBA{0x34, 0x98, 0xdb, 0xff}, false},
		{"800080", color.RGBA{0x80, 0x00, 0x80, 0xff}, false},
		{"#fff", color.RGBA{0xff, 0xff, 0xff, 0xff}, false},
		{"#00000080", color.RGBA{0, 0, 0, 0x80}, false},
		{"#12", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.err {
				t.Fatalf("ParseHex(%q) error = %v, want error %v", tt.in, err, tt.err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToHexRoundTrip(t *testing.T) {
	for _, s := range []string{"#3498db", "#9b59b6", "#000000", "#ffffff"} {
		if got := ToHex(MustParseHex(s)); got != s {
			t.Errorf("ToHex(ParseHex(%q)) = %q", s, got)
		}
	}
}

func TestParseHexOr(t *testing.T) {
	if got := ParseHexOr("#fff", Black); got != White {
		t.Errorf("ParseHexOr(#fff) = %v", got)
	}
	if got := ParseHexOr("not a color", Danger); got != Danger {
		t.Errorf("ParseHexOr fallback = %v, want %v", got, Danger)
	}
}

func TestMustParseHexPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseHex should panic on an invalid color")
		}
	}()
	MustParseHex("#12")
}

func TestQuantize(t *testing.T) {
	got := Quantize(color.RGBA{R: 252, G: 3, B: 128, A: 10}, 5)
	want := color.RGBA{R: 250, G: 5, B: 130, A: 255}
	if got != want {
		t.Errorf("Quantize = %v, want %v", got, want)
	}
}

func TestDistanceSq(t *testing.T) {
	if d := DistanceSq(Black, White); d != 3*255*255 {
		t.Errorf("DistanceSq(black, white) = %v", d)
	}
}

func TestRandomIsDeterministicForSeed(t *testing.T) {
	a := Random(rand.New(rand.NewPCG(1, 2)))
	b := Random(rand.New(rand.NewPCG(1, 2)))
	if a != b {
		t.Errorf("same seed produced %v and %v", a, b)
	}
}
