package plotting_test

import (
	"bytes"
	"math"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sirda/model"
	"github.com/sarchlab/sirda/plotting"
	"github.com/sarchlab/sirda/scenario"
	"github.com/sarchlab/sirda/sim"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

var _ = Describe("Figure", func() {
	var (
		figure *plotting.Figure
		series sim.Series
	)

	BeforeEach(func() {
		figure = plotting.NewFigure("SIRDA")
		series = sim.Run(scenario.Reference(), model.Step)
	})

	It("should draw one legend entry per compartment", func() {
		p, err := figure.Plot(series)

		Expect(err).NotTo(HaveOccurred())
		Expect(p.X.Label.Text).To(Equal("Time (days)"))
		Expect(p.Y.Label.Text).To(Equal("Fraction of Population"))
		Expect(p.X.Max).To(BeNumerically(">=", 105))
	})

	It("should render a PNG image", func() {
		buf := new(bytes.Buffer)

		err := figure.Render(buf, series, "png")

		Expect(err).NotTo(HaveOccurred())
		Expect(buf.Bytes()[:len(pngSignature)]).To(Equal(pngSignature))
	})

	It("should save to a file", func() {
		path := filepath.Join(GinkgoT().TempDir(), plotting.DefaultFilename)

		Expect(figure.Save(path, series)).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(data[:len(pngSignature)]).To(Equal(pngSignature))
	})

	It("should refuse series holding NaN", func() {
		cfg := scenario.Reference()
		cfg.Init.I = math.NaN()

		_, err := figure.Plot(sim.Run(cfg, model.Step))

		Expect(err).To(HaveOccurred())
	})

	It("should derive formats from file names", func() {
		Expect(plotting.FormatOf("out/SIRDA_Fig.PNG")).To(Equal("png"))
		Expect(plotting.FormatOf("fig.svg")).To(Equal("svg"))
	})
})
