// Package output serializes read results.
package output

import (
	"io"

	json "github.com/goccy/go-json"
)

// ToJSON marshals v, indenting with two spaces when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WriteJSON writes v to w followed by a newline.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	data, err := ToJSON(v, pretty)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
