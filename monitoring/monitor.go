// Package monitoring serves the progress and results of simulation runs
// over HTTP.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/rs/xid"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
	"go.uber.org/zap"

	"github.com/sarchlab/sirda/model"
	"github.com/sarchlab/sirda/plotting"
	"github.com/sarchlab/sirda/sim"
)

// Monitor is a hook that keeps the latest state of the runs it observes and
// can serve them through a web server.
type Monitor struct {
	portNumber int
	logger     *zap.Logger

	lock    sync.RWMutex
	running bool
	cfg     sim.Config
	latest  sim.Sample
	series  sim.Series
	runs    int

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
	currentBar       *ProgressBar

	server *http.Server
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{logger: zap.NewNop()}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		m.logger.Warn("port number not allowed, using a random port instead",
			zap.Int("port", portNumber))

		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithLogger sets the logger of the monitor.
func (m *Monitor) WithLogger(logger *zap.Logger) *Monitor {
	m.logger = logger
	return m
}

// Func tracks the run.
func (m *Monitor) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case sim.HookPosRunStart:
		cfg, ok := ctx.Item.(sim.Config)
		if !ok {
			return
		}

		m.startRun(cfg)
	case sim.HookPosAfterStep:
		sample, ok := ctx.Item.(sim.Sample)
		if !ok {
			return
		}

		m.recordSample(sample)
	case sim.HookPosRunEnd:
		m.endRun()
	}
}

func (m *Monitor) endRun() {
	m.lock.Lock()
	m.running = false
	m.lock.Unlock()

	m.progressBarsLock.Lock()
	bar := m.currentBar
	m.currentBar = nil
	m.progressBarsLock.Unlock()

	if bar != nil {
		m.CompleteProgressBar(bar)
	}
}

func (m *Monitor) startRun(cfg sim.Config) {
	m.lock.Lock()
	m.running = true
	m.cfg = cfg
	m.series = sim.Series{}
	m.runs++
	runNumber := m.runs
	m.lock.Unlock()

	bar := m.CreateProgressBar(
		fmt.Sprintf("run %d", runNumber),
		uint64(cfg.NumSteps()+1),
	)

	m.progressBarsLock.Lock()
	m.currentBar = bar
	m.progressBarsLock.Unlock()
}

func (m *Monitor) recordSample(sample sim.Sample) {
	m.lock.Lock()
	m.latest = sample
	m.series.Append(sample.Day, sample.State)
	m.lock.Unlock()

	m.progressBarsLock.Lock()
	bar := m.currentBar
	m.progressBarsLock.Unlock()

	if bar != nil {
		bar.IncrementFinished(1)
	}
}

// Latest returns the most recent sample and whether a run has been observed.
func (m *Monitor) Latest() (sim.Sample, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return m.latest, m.runs > 0
}

// Series returns a copy of the series of the latest run.
func (m *Monitor) Series() sim.Series {
	m.lock.RLock()
	defer m.lock.RUnlock()

	var s sim.Series
	for _, sample := range m.series.Samples() {
		s.Append(sample.Day, sample.State)
	}

	return s
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Handler returns the HTTP routes of the monitor.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", m.index)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/state", m.state)
	r.HandleFunc("/api/config", m.config)
	r.HandleFunc("/api/series", m.listSeries)
	r.HandleFunc("/api/series/{compartment}", m.compartmentSeries)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.HandleFunc("/api/plot/{file}", m.plot)

	return r
}

// StartServer starts the monitor as a web server and returns its URL.
func (m *Monitor) StartServer() (string, error) {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = fmt.Sprintf(":%d", m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	m.server = &http.Server{
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		err := m.server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error("monitoring server stopped", zap.Error(err))
		}
	}()

	m.logger.Info("monitoring simulation", zap.String("url", url))

	return url, nil
}

// OpenInBrowser opens the given URL with the default browser.
func (m *Monitor) OpenInBrowser(url string) error {
	browser.Stdout = os.Stderr
	return browser.OpenURL(url)
}

// Shutdown stops the web server.
func (m *Monitor) Shutdown(ctx context.Context) error {
	if m.server == nil {
		return nil
	}

	return m.server.Shutdown(ctx)
}

type indexRsp struct {
	Runs      int      `json:"runs"`
	Running   bool     `json:"running"`
	Endpoints []string `json:"endpoints"`
}

func (m *Monitor) index(w http.ResponseWriter, _ *http.Request) {
	m.lock.RLock()
	rsp := indexRsp{
		Runs:    m.runs,
		Running: m.running,
		Endpoints: []string{
			"/api/now", "/api/state", "/api/config", "/api/series",
			"/api/series/{compartment}", "/api/progress", "/api/resource",
			"/api/profile", "/api/plot/{file}",
		},
	}
	m.lock.RUnlock()

	writeJSON(w, rsp)
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	sample, ok := m.Latest()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "{\"error\":\"no run observed\"}")

		return
	}

	fmt.Fprintf(w, "{\"day\":%d}", sample.Day)
}

func (m *Monitor) state(w http.ResponseWriter, _ *http.Request) {
	sample, ok := m.Latest()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	state := sample.State

	serializer := goseth.NewSerializer()
	serializer.SetRoot(&state)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type configRsp struct {
	T0     int              `json:"t0"`
	TEnd   int              `json:"t_end"`
	Init   model.State      `json:"init"`
	Params model.Parameters `json:"params"`
}

func (m *Monitor) config(w http.ResponseWriter, _ *http.Request) {
	m.lock.RLock()
	cfg := m.cfg
	runs := m.runs
	m.lock.RUnlock()

	if runs == 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	writeJSON(w, configRsp{
		T0:     cfg.T0,
		TEnd:   cfg.TEnd,
		Init:   cfg.Init,
		Params: cfg.Params,
	})
}

func (m *Monitor) listSeries(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, m.Series())
}

func (m *Monitor) compartmentSeries(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["compartment"]

	c, ok := model.ParseCompartment(name)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Compartment not found"))
		dieOnErr(err)

		return
	}

	ts := m.Series().Compartment(c)
	if ts == nil {
		ts = sim.TimeSeries{}
	}

	writeJSON(w, ts)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	snapshots := make([]ProgressSnapshot, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		snapshots = append(snapshots, b.Snapshot())
	}
	m.progressBarsLock.Unlock()

	writeJSON(w, snapshots)
}

var plotContentTypes = map[string]string{
	"png": "image/png",
	"svg": "image/svg+xml",
	"pdf": "application/pdf",
}

func (m *Monitor) plot(w http.ResponseWriter, r *http.Request) {
	format := plotting.FormatOf(mux.Vars(r)["file"])

	contentType, ok := plotContentTypes[format]
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "{\"error\":\"unsupported format %s\"}", format)

		return
	}

	series := m.Series()
	if series.Len() == 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	buf := new(bytes.Buffer)

	err := plotting.NewFigure("SIRDA").Render(buf, series, format)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprintf(w, "{\"error\":%q}", err.Error())

		return
	}

	w.Header().Set("Content-Type", contentType)
	_, err = buf.WriteTo(w)
	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	writeJSON(w, rsp)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprintf(w, "{\"error\":%q}", err.Error())

		return
	}

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(data)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
