package pipeline

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/QtravelPL/duckling/internal/model"
)

// Renderer writes parse output in the wire format or as a human
// summary.
type Renderer struct {
	pretty bool
}

// NewRenderer creates a renderer. Pretty output is indented.
func NewRenderer(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

// JSON renders entities as the wire array. A nil slice renders as [].
func (r *Renderer) JSON(entities []model.Entity) ([]byte, error) {
	if entities == nil {
		entities = []model.Entity{}
	}
	if r.pretty {
		return json.MarshalIndent(entities, "", "  ")
	}
	return json.Marshal(entities)
}

// WriteJSON writes the wire array and a trailing newline.
func (r *Renderer) WriteJSON(w io.Writer, entities []model.Entity) error {
	data, err := r.JSON(entities)
	if err != nil {
		return errors.Wrap(err, "marshal entities")
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// Summary writes one line per entity: dimension, matched body and the
// resolved wire value.
func (r *Renderer) Summary(w io.Writer, res *Result) {
	cached := ""
	if res.Cached {
		cached = " (cached)"
	}
	switch len(res.Entities) {
	case 0:
		fmt.Fprintf(w, "no entities%s\n", cached)
		return
	case 1:
		fmt.Fprintf(w, "1 entity%s\n", cached)
	default:
		fmt.Fprintf(w, "%d entities%s\n", len(res.Entities), cached)
	}
	for _, e := range res.Entities {
		value, err := json.Marshal(e.Value)
		if err != nil {
			value = []byte(`"?"`)
		}
		latent := ""
		if e.Latent {
			latent = " latent"
		}
		fmt.Fprintf(w, "  %-16s %-28s %s%s\n", e.Dim, fmt.Sprintf("%q", e.Body), value, latent)
	}
}
