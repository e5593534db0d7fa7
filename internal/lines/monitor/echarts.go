package monitor

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/edgelines/internal/lines"
)

// maxViewerPoints caps the scatter payload so large clouds do not produce
// multi-megabyte pages; points beyond the cap are dropped by stride.
const maxViewerPoints = 20000

// RenderCloudHTML writes a standalone HTML page with an interactive 3D view:
// one scatter chart of the residual cloud and one line chart of the extracted
// segments.
func RenderCloudHTML(w io.Writer, title string, cloud []lines.Point, segments []lines.Segment) error {
	page := components.NewPage()

	if len(cloud) > 0 {
		page.AddCharts(cloudScatter3D(title, cloud))
	}
	page.AddCharts(segmentsLine3D(title, segments))

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render 3D view: %w", err)
	}
	return nil
}

// CloudHandler serves the 3D view over HTTP.
func CloudHandler(title string, cloud []lines.Point, segments []lines.Segment) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := RenderCloudHTML(w, title, cloud, segments); err != nil {
			http.Error(w, fmt.Sprintf("failed to render view: %v", err), http.StatusInternalServerError)
		}
	}
}

func cloudScatter3D(title string, cloud []lines.Point) *charts.Scatter3D {
	stride := 1
	if len(cloud) > maxViewerPoints {
		stride = len(cloud)/maxViewerPoints + 1
	}

	data := make([]opts.Chart3DData, 0, len(cloud)/stride+1)
	for i := 0; i < len(cloud); i += stride {
		p := cloud[i]
		data = append(data, opts.Chart3DData{Value: []interface{}{p.X, p.Y, p.Z}})
	}

	sc := charts.NewScatter3D()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Theme:     "dark",
			Width:     "900px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Residual cloud",
			Subtitle: fmt.Sprintf("%d points (stride %d)", len(data), stride),
		}),
	)
	sc.AddSeries("cloud", data)
	return sc
}

func segmentsLine3D(title string, segments []lines.Segment) *charts.Line3D {
	ln := charts.NewLine3D()
	ln.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Theme:     "dark",
			Width:     "900px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Extracted segments",
			Subtitle: fmt.Sprintf("%d segments", len(segments)),
		}),
	)

	// One series per segment: line3D joins consecutive data points, so
	// sharing a series would draw spurious connectors between segments.
	for i, s := range segments {
		ln.AddSeries(fmt.Sprintf("seg-%d", i), []opts.Chart3DData{
			{Value: []interface{}{s.Start.X, s.Start.Y, s.Start.Z}},
			{Value: []interface{}{s.End.X, s.End.Y, s.End.Z}},
		})
	}
	return ln
}
