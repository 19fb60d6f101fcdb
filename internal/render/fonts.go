package render

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"snapframe/internal/overlay"
)

// builtinFaces maps the families offered for text entities to the Go fonts
// that stand in for them.
var builtinFaces = map[string][]byte{
	"Arial":           goregular.TTF,
	"Verdana":         goregular.TTF,
	"Inter":           goregular.TTF,
	"Comic Sans MS":   goregular.TTF,
	"Times New Roman": gomedium.TTF,
	"Georgia":         gomedium.TTF,
	"Courier New":     gomono.TTF,
	"Impact":          gobold.TTF,
}

// Sizes change continuously while text is resized.
const maxCachedFaces = 256

type faceKey struct {
	family string
	size   float64
}

// Fonts resolves font families to faces and measures text. It implements
// overlay.Measurer. Unknown families fall back to Go Regular.
type Fonts struct {
	mu       sync.Mutex
	sources  map[string]*text.FontSource
	fallback *text.FontSource
	faces    map[faceKey]text.Face
}

var _ overlay.Measurer = (*Fonts)(nil)

// NewFonts loads the built-in families.
func NewFonts() (*Fonts, error) {
	f := &Fonts{
		sources: make(map[string]*text.FontSource),
		faces:   make(map[faceKey]text.Face),
	}
	parsed := make(map[*byte]*text.FontSource)
	for family, data := range builtinFaces {
		// Several families share one TTF; parse each once.
		if src, ok := parsed[&data[0]]; ok {
			f.sources[family] = src
			continue
		}
		src, err := text.NewFontSource(data)
		if err != nil {
			return nil, fmt.Errorf("failed to load font for %s: %w", family, err)
		}
		parsed[&data[0]] = src
		f.sources[family] = src
	}
	f.fallback = f.sources["Arial"]
	return f, nil
}

// RegisterFile loads a TTF or OTF file for family, replacing any previous
// face.
func (f *Fonts) RegisterFile(family, path string) error {
	src, err := text.NewFontSourceFromFile(path)
	if err != nil {
		return fmt.Errorf("failed to load font %s: %w", path, err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources[family] = src
	for k := range f.faces {
		if k.family == family {
			delete(f.faces, k)
		}
	}
	return nil
}

// Families returns the registered family names in sorted order.
func (f *Fonts) Families() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Sorted(maps.Keys(f.sources))
}

// Face returns the face for family at a pixel size.
func (f *Fonts) Face(family string, size float64) text.Face {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := faceKey{family, size}
	if face, ok := f.faces[k]; ok {
		return face
	}
	src, ok := f.sources[family]
	if !ok {
		src = f.fallback
	}
	face := src.Face(size)
	if len(f.faces) >= maxCachedFaces {
		clear(f.faces)
	}
	f.faces[k] = face
	return face
}

// MeasureText returns the advance width of s.
func (f *Fonts) MeasureText(s, family string, size float64) float64 {
	w, _ := text.Measure(s, f.Face(family, size))
	return w
}
