// Package preview prints converted HTML on a terminal.
package preview

import (
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Write writes html to w. When color is true the HTML is highlighted for a 256 color
// terminal with the chroma style named styleName.
func Write(w io.Writer, html []byte, styleName string, color bool) error {

	if !color {
		_, err := w.Write(html)
		return err
	}

	// Determine lexer
	l := lexers.Get("html")
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)

	// styles.Get returns the fallback style for unknown names
	s := styles.Get(styleName)

	f := formatters.Get("terminal256")
	if f == nil {
		f = formatters.Fallback
	}

	it, err := l.Tokenise(nil, string(html))
	if err != nil {
		return err
	}

	return f.Format(w, s, it)
}
