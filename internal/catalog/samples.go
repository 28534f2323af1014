package catalog

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/san-kum/algoviz/internal/anim"
)

// Unavailable is shown when no sample exists for a language/algorithm pair.
const Unavailable = "Implementation not available for this combination"

const DefaultLanguage = "java"

//go:embed samples
var samples embed.FS

// CodeSample returns the source listing of a in lang, or Unavailable.
func CodeSample(lang string, a anim.Algorithm) string {
	data, err := samples.ReadFile(path.Join("samples", lang, string(a)+".txt"))
	if err != nil {
		return Unavailable
	}
	return strings.TrimRight(string(data), "\n")
}

// HasSample reports whether a listing exists without falling back.
func HasSample(lang string, a anim.Algorithm) bool {
	_, err := fs.Stat(samples, path.Join("samples", lang, string(a)+".txt"))
	return err == nil
}

// Languages lists the languages with at least one sample.
func Languages() []string {
	entries, err := samples.ReadDir("samples")
	if err != nil {
		return nil
	}
	langs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			langs = append(langs, e.Name())
		}
	}
	sort.Strings(langs)
	return langs
}
