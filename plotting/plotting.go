// Package plotting renders the compartment series of a run as a line chart.
package plotting

import (
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/sarchlab/sirda/model"
	"github.com/sarchlab/sirda/sim"
)

// DefaultFilename is the file the reference figure is saved to.
const DefaultFilename = "SIRDA_Fig.png"

// Default figure size.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

var (
	dashed = []vg.Length{vg.Points(6), vg.Points(3)}
	dotted = []vg.Length{vg.Points(1), vg.Points(2)}
)

// Style describes how one compartment is drawn.
type Style struct {
	Color  color.Color
	Dashes []vg.Length
}

// Styles maps each compartment to its line style: S red dashed, I solid,
// R dotted, D blue dashed, A yellow dotted.
var Styles = map[model.Compartment]Style{
	model.Susceptible: {Color: color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}, Dashes: dashed},
	model.Infected:    {Color: color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}},
	model.Recovered:   {Color: color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}, Dashes: dotted},
	model.Diagnosed:   {Color: color.RGBA{R: 0x1f, G: 0x3b, B: 0xd4, A: 0xff}, Dashes: dashed},
	model.Ailing:      {Color: color.RGBA{R: 0xd4, G: 0xc1, B: 0x1f, A: 0xff}, Dashes: dotted},
}

// Figure is a chart of the five compartments against time.
type Figure struct {
	Title  string
	Width  vg.Length
	Height vg.Length
}

// NewFigure creates a Figure of the default size.
func NewFigure(title string) *Figure {
	return &Figure{
		Title:  title,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

// Plot builds the chart. Series holding NaN or infinite values cannot be
// plotted and return an error.
func (f *Figure) Plot(series sim.Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = f.Title
	p.X.Label.Text = "Time (days)"
	p.Y.Label.Text = "Fraction of Population"
	p.Legend.Top = true
	p.Legend.Left = false
	p.Add(plotter.NewGrid())

	for _, c := range model.Compartments {
		line, err := plotter.NewLine(toXYs(series.Compartment(c)))
		if err != nil {
			return nil, err
		}

		style := Styles[c]
		line.LineStyle = draw.LineStyle{
			Color:  style.Color,
			Width:  vg.Points(1.5),
			Dashes: style.Dashes,
		}

		p.Add(line)
		p.Legend.Add(c.Label(), line)
	}

	return p, nil
}

// Render writes the chart to w in the given format ("png", "svg", "pdf",
// ...).
func (f *Figure) Render(w io.Writer, series sim.Series, format string) error {
	p, err := f.Plot(series)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(f.Width, f.Height, format)
	if err != nil {
		return err
	}

	_, err = wt.WriteTo(w)

	return err
}

// Save writes the chart to a file. The format follows the file extension.
func (f *Figure) Save(path string, series sim.Series) error {
	p, err := f.Plot(series)
	if err != nil {
		return err
	}

	return p.Save(f.Width, f.Height, path)
}

// FormatOf returns the image format implied by a file name.
func FormatOf(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

func toXYs(ts sim.TimeSeries) plotter.XYs {
	xys := make(plotter.XYs, ts.Len())
	for i, p := range ts {
		xys[i].X = float64(p.Day)
		xys[i].Y = p.Value
	}

	return xys
}
