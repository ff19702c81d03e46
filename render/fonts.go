package render

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FontLibrary resolves theme font families to concrete faces. Families
// map to TTF files under the configured directory
// (<dir>/<family>.ttf, bold variant <dir>/<family>-bold.ttf); a family
// with no file on disk falls back to the built-in face so a missing font
// never breaks a render.
type FontLibrary struct {
	dir string

	mu     sync.Mutex
	faces  map[string]font.Face
	missed map[string]bool
}

// NewFontLibrary creates a library rooted at dir. An empty dir means
// "static/fonts" relative to the working directory.
func NewFontLibrary(dir string) *FontLibrary {
	if dir == "" {
		dir = filepath.Join("static", "fonts")
	}
	return &FontLibrary{
		dir:    dir,
		faces:  make(map[string]font.Face),
		missed: make(map[string]bool),
	}
}

// Face returns a face for the family at the given point size. Sizes are
// quantized to half points so the shrink loop reuses cached faces.
func (l *FontLibrary) Face(family string, size float64, bold bool) font.Face {
	if size < 1 {
		size = 1
	}
	size = float64(int(size*2)) / 2

	key := fmt.Sprintf("%s|%v|%.1f", family, bold, size)

	l.mu.Lock()
	defer l.mu.Unlock()

	if face, ok := l.faces[key]; ok {
		return face
	}

	face := l.loadFaceLocked(family, size, bold)
	l.faces[key] = face
	return face
}

func (l *FontLibrary) loadFaceLocked(family string, size float64, bold bool) font.Face {
	base := strings.ToLower(strings.TrimSpace(family))
	if base == "" {
		return basicfont.Face7x13
	}

	candidates := []string{base + ".ttf"}
	if bold {
		candidates = []string{base + "-bold.ttf", base + ".ttf"}
	}

	for _, name := range candidates {
		path := filepath.Join(l.dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		face, err := gg.LoadFontFace(path, size)
		if err != nil {
			log.Printf("⚠️  Failed to load font %s: %v", path, err)
			continue
		}
		return face
	}

	if !l.missed[base] {
		l.missed[base] = true
		log.Printf("⚠️  Font family %q not found in %s, using built-in face", family, l.dir)
	}
	return basicfont.Face7x13
}
