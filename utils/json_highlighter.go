package utils

import (
	"bytes"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
)

// HighlightJSON writes a JSON document to w with terminal colors for the given chroma theme.
func HighlightJSON(w io.Writer, document []byte, theme string) error {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, string(document), "json", "terminal256", theme); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
