package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/QtravelPL/duckling/internal/model"
)

// RenderTrace writes each entity's derivation tree: which rules fired,
// over which text fragments, bottoming out at the lexical leaves.
func RenderTrace(w io.Writer, res *Result) error {
	if res.Chart == nil {
		return errors.New("no derivation chart: result was served from the cache")
	}
	for _, e := range res.Entities {
		fmt.Fprintf(w, "%s %q [%d,%d)\n", e.Dim, e.Body, e.Start, e.End)
		renderNode(w, res, e.Node, 1)
	}
	return nil
}

func renderNode(w io.Writer, res *Result, id model.NodeID, depth int) {
	n := res.Chart.Node(id)
	indent := strings.Repeat("  ", depth)
	if n.IsLeaf() {
		fmt.Fprintf(w, "%smatch %q [%d,%d)\n",
			indent, res.Text[n.Span.Start:n.Span.End], n.Span.Start, n.Span.End)
		return
	}
	fmt.Fprintf(w, "%s%s via %q [%d,%d)\n", indent, n.Token, n.Rule, n.Span.Start, n.Span.End)
	for _, c := range n.Children {
		renderNode(w, res, c, depth+1)
	}
}
