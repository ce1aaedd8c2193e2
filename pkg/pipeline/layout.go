package pipeline

import (
	"context"
	"time"

	"github.com/nagyist/rover-android/pkg/document"
	rerrors "github.com/nagyist/rover-android/pkg/errors"
	"github.com/nagyist/rover-android/pkg/layout"
	"github.com/nagyist/rover-android/pkg/observability"
)

// ComputeLayout builds the layout tree for doc and measures it against the
// document's constraints on the options' screen.
func ComputeLayout(ctx context.Context, doc *document.Document, opts Options) (*layout.Placement, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, rerrors.New(rerrors.ErrCodeInvalidInput, "no document to lay out")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := document.Build(doc, opts.BuildOptions())
	if err != nil {
		return nil, err
	}

	c := doc.Constraints(opts.Screen())
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, doc.Name, c.String())
	start := time.Now()

	p, err := layout.Layout(root, c)
	if err != nil {
		hooks.OnLayoutComplete(ctx, doc.Name, 0, time.Since(start), err)
		return nil, err
	}
	boxes := p.Count()
	hooks.OnLayoutComplete(ctx, doc.Name, boxes, time.Since(start), nil)

	opts.Logger.Debug("measured document", "name", doc.Name, "constraints", c, "size", p.Size, "boxes", boxes)
	for _, msg := range p.Errors() {
		opts.Logger.Warn("isolated layout failure", "name", doc.Name, "error", msg)
	}
	return p, nil
}
