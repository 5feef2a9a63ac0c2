package report

import (
	"encoding/json"
	"io"

	"github.com/tidwall/pretty"
)

// WriteJSON writes v as indented JSON followed by a newline. color adds ANSI
// syntax colouring for terminals.
func WriteJSON(w io.Writer, v any, color bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b = pretty.Pretty(b)
	if color {
		b = pretty.Color(b, nil)
	}
	_, err = w.Write(b)
	return err
}
