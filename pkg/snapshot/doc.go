// Package snapshot compares painted layouts against golden PNG images.
//
// A snapshot test paints a placement tree with [render.Paint] and checks the
// result against a golden file:
//
//	img, _ := render.Paint(p, render.Options{})
//	res, err := snapshot.Check(img, "testdata/home.png", snapshot.DefaultOptions(), update)
//	if err != nil {
//		return err
//	}
//	if !res.Match {
//		snapshot.SavePNG("home.diff.png", res.Diff)
//	}
//
// Comparison is per pixel with a per-channel [Options.Tolerance]. Small
// positional drift is absorbed by [Options.FuzzyRadius], and
// [Options.MaxDifferentPercent] accepts images where only a small share of
// pixels differ.
//
// [render.Paint]: github.com/nagyist/rover-android/pkg/render.Paint
package snapshot
