package logic

import (
	"magpie/shared"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type IMetrics interface {
	StartWebRequestIn(label string) IRequestObserver
	StartRemoteCall(label string) IRequestObserver
	RefreshStarted(class string)
	ItemsStored(table string, count int)
	StatusPosted(succeeded bool)
	DraftSaved()
	GapMarked()
	ServiceStarted()
	TasksRunning(count int)
}

type IRequestObserver interface {
	Finish()
}

type metrics struct {
	cfg            *shared.Config
	webRequestsIn  *prometheus.HistogramVec
	remoteCalls    *prometheus.HistogramVec
	refreshesRun   *prometheus.CounterVec
	itemsStored    *prometheus.CounterVec
	statusesPosted *prometheus.CounterVec
	draftsSaved    prometheus.Counter
	gapsMarked     prometheus.Counter
	serviceStarted prometheus.Counter
	tasksRunning   prometheus.Gauge
}

func NewMetrics(cfg *shared.Config) IMetrics {

	res := metrics{}
	res.cfg = cfg

	res.webRequestsIn = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: "web_requests_in_duration",
		Help: "Duration in seconds of Web requests served.",
	}, []string{"label"})
	prometheus.Register(res.webRequestsIn)

	res.remoteCalls = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: "remote_calls_duration",
		Help: "Duration in seconds of calls made to the remote service.",
	}, []string{"label"})
	prometheus.Register(res.remoteCalls)

	res.refreshesRun = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "refreshes_run",
		Help: "Number of refresh rounds started, by class",
	}, []string{"class"})
	prometheus.Register(res.refreshesRun)

	res.itemsStored = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "items_stored",
		Help: "Number of new items written to the cache, by table",
	}, []string{"table"})
	prometheus.Register(res.itemsStored)

	res.statusesPosted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "statuses_posted",
		Help: "Number of statuses posted, by outcome",
	}, []string{"outcome"})
	prometheus.Register(res.statusesPosted)

	res.draftsSaved = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "drafts_saved",
		Help: "Number of drafts saved after failed posts",
	})
	prometheus.Register(res.draftsSaved)

	res.gapsMarked = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gaps_marked",
		Help: "Number of timeline gap markers written",
	})
	prometheus.Register(res.gapsMarked)

	res.serviceStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "service_started",
		Help: "Service has started up",
	})
	prometheus.Register(res.serviceStarted)

	res.tasksRunning = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tasks_running",
		Help: "Background tasks currently running",
	})
	prometheus.Register(res.tasksRunning)

	return &res
}

type requestObserver struct {
	label string
	start time.Time
	hgvec *prometheus.HistogramVec
}

func (ro *requestObserver) Finish() {
	now := time.Now()
	elapsed := float64(now.UnixMilli()-ro.start.UnixMilli()) / 1000.0
	ro.hgvec.WithLabelValues(ro.label).Observe(elapsed)
}

func (m *metrics) StartWebRequestIn(label string) IRequestObserver {
	return &requestObserver{label, time.Now(), m.webRequestsIn}
}

func (m *metrics) StartRemoteCall(label string) IRequestObserver {
	return &requestObserver{label, time.Now(), m.remoteCalls}
}

func (m *metrics) RefreshStarted(class string) {
	m.refreshesRun.WithLabelValues(class).Add(1)
}

func (m *metrics) ItemsStored(table string, count int) {
	m.itemsStored.WithLabelValues(table).Add(float64(count))
}

func (m *metrics) StatusPosted(succeeded bool) {
	outcome := "ok"
	if !succeeded {
		outcome = "failed"
	}
	m.statusesPosted.WithLabelValues(outcome).Add(1)
}

func (m *metrics) DraftSaved() {
	m.draftsSaved.Add(1)
}

func (m *metrics) GapMarked() {
	m.gapsMarked.Add(1)
}

func (m *metrics) ServiceStarted() {
	m.serviceStarted.Add(1)
}

func (m *metrics) TasksRunning(count int) {
	m.tasksRunning.Set(float64(count))
}
