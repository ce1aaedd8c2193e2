package pipeline

import (
	"context"
	"time"

	"github.com/nagyist/rover-android/pkg/document"
	"github.com/nagyist/rover-android/pkg/observability"
)

// Load reads the document named by opts.Path, or validates opts.Document
// when it is given inline.
func Load(ctx context.Context, opts Options) (*document.Document, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source := opts.Path
	if source == "" {
		source = "inline"
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	var doc *document.Document
	var err error
	if opts.Document != nil {
		doc, err = opts.Document, opts.Document.Validate()
	} else {
		doc, err = document.ReadFile(opts.Path)
	}
	if err != nil {
		hooks.OnLoadComplete(ctx, source, 0, time.Since(start), err)
		return nil, err
	}

	nodes := CountNodes(doc)
	hooks.OnLoadComplete(ctx, source, nodes, time.Since(start), nil)
	opts.Logger.Debug("loaded document", "source", source, "name", doc.Name, "nodes", nodes)
	return doc, nil
}

// CountNodes returns the number of nodes in doc, decoration nodes included.
func CountNodes(doc *document.Document) int {
	if doc == nil || doc.Root == nil {
		return 0
	}
	n := 0
	_ = doc.Root.Walk("root", func(string, *document.Node) error {
		n++
		return nil
	})
	return n
}
