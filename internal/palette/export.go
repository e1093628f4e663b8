package palette

import (
	"fmt"
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// Slug lowercases name and joins its words with hyphens.
func Slug(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// Tailwind renders colors as a tailwind.config.js color scale: the first
// color is shade 50, then 100, 200 and so on.
func Tailwind(colors []string, name string) string {
	var b strings.Builder
	b.WriteString("// tailwind.config.js\nmodule.exports = {\n  theme: {\n    extend: {\n      colors: {\n")
	fmt.Fprintf(&b, "        '%s': {\n", Slug(name))
	for i, c := range colors {
		shade := "50"
		if i > 0 {
			shade = fmt.Sprint(i * 100)
		}
		sep := ","
		if i == len(colors)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "          '%s': '%s'%s\n", shade, c, sep)
	}
	b.WriteString("        }\n      }\n    }\n  }\n}")
	return b.String()
}

// CSSVariables renders colors as custom properties on :root, numbered
// from 1.
func CSSVariables(colors []string, name string) string {
	slug := Slug(name)
	lines := make([]string, len(colors))
	for i, c := range colors {
		lines[i] = fmt.Sprintf("  --%s-%d: %s;", slug, i+1, c)
	}
	return ":root {\n" + strings.Join(lines, "\n") + "\n}"
}

// SCSS renders colors as numbered variables followed by a map.
func SCSS(colors []string, name string) string {
	slug := Slug(name)
	vars := make([]string, len(colors))
	entries := make([]string, len(colors))
	for i, c := range colors {
		vars[i] = fmt.Sprintf("$%s-%d: %s;", slug, i+1, c)
		entries[i] = fmt.Sprintf("  %d: %s", i+1, c)
	}
	return strings.Join(vars, "\n") + "\n\n$" + slug + ": (\n" + strings.Join(entries, ",\n") + "\n);"
}

// Export renders colors in one of "tailwind", "css" or "scss". Any other
// format yields one color per line.
func Export(colors []string, name, format string) string {
	switch strings.ToLower(format) {
	case "tailwind":
		return Tailwind(colors, name)
	case "css":
		return CSSVariables(colors, name)
	case "scss":
		return SCSS(colors, name)
	default:
		return strings.Join(colors, "\n")
	}
}
