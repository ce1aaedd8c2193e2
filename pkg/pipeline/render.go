package pipeline

import (
	"context"
	"fmt"
	"time"

	rerrors "github.com/nagyist/rover-android/pkg/errors"
	"github.com/nagyist/rover-android/pkg/layout"
	"github.com/nagyist/rover-android/pkg/observability"
	"github.com/nagyist/rover-android/pkg/render"
)

// Render writes p in every format in opts.Formats.
func Render(ctx context.Context, p *layout.Placement, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, rerrors.New(rerrors.ErrCodeInvalidInput, "no placement to render")
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderAll(ctx, p, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderAll(ctx context.Context, p *layout.Placement, opts Options) (map[string][]byte, error) {
	ropts := opts.RenderOptions()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, name := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := render.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		data, err := render.Render(ctx, p, f, ropts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f, err)
		}
		opts.Logger.Debug("rendered artifact", "format", f, "bytes", len(data))
		artifacts[string(f)] = data
	}
	return artifacts, nil
}
