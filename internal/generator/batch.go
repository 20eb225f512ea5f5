package generator

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/unkn0wn-root/themr/internal/palette"
	"github.com/unkn0wn-root/themr/internal/stylesheet"
)

// BatchResult is one theme's outcome in a batch run.
type BatchResult struct {
	Theme       string
	Path        string
	Err         error
	Diagnostics []stylesheet.Diagnostic
}

// ConvertBatch converts themes concurrently. Runs are independent: the only
// shared state is the generator's preprocessed template, which is read-only
// after construction, so no locking is needed. A theme that fails is
// recorded in its slot and never stops the others.
func (g *Generator) ConvertBatch(ctx context.Context, themes []*palette.Theme, workers int) []BatchResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]BatchResult, len(themes))

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(workers)
	for i, theme := range themes {
		i, theme := i, theme
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = BatchResult{Theme: theme.Name, Err: err}
				return nil
			}
			out := g.Convert(theme)
			path, err := g.Write(out)
			results[i] = BatchResult{
				Theme:       out.Name,
				Path:        path,
				Err:         err,
				Diagnostics: out.Diagnostics,
			}
			return nil
		})
	}
	// Workers report per-theme failures through their result slot.
	_ = grp.Wait()
	return results
}
