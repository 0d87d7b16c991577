package cmd

import (
	"github.com/prometheus/client_golang/prometheus"

	"bottleneck-analyzer/simulator"
)

var (
	// Prometheus metrics (gauges)
	promMetrics = struct {
		memoryLoad    prometheus.Gauge
		diskIOLoad    prometheus.Gauge
		fifoFaults    prometheus.Gauge
		lruFaults     prometheus.Gauge
		optimalFaults prometheus.Gauge
		fcfsSeek      prometheus.Gauge
		sstfSeek      prometheus.Gauge
		diagnosis     prometheus.Gauge
	}{
		memoryLoad: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bottleneck_memory_load_percent",
			Help: "Memory load percentage from the latest report",
		}),
		diskIOLoad: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bottleneck_disk_io_load",
			Help: "Abstract disk I/O activity score from the latest report",
		}),
		fifoFaults: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bottleneck_page_faults_fifo",
			Help: "Page faults under FIFO replacement (simulation reports only)",
		}),
		lruFaults: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bottleneck_page_faults_lru",
			Help: "Page faults under LRU replacement (simulation reports only)",
		}),
		optimalFaults: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bottleneck_page_faults_optimal",
			Help: "Page faults under Optimal replacement (simulation reports only)",
		}),
		fcfsSeek: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bottleneck_seek_total_fcfs",
			Help: "Total seek distance under FCFS scheduling (simulation reports only)",
		}),
		sstfSeek: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bottleneck_seek_total_sstf",
			Help: "Total seek distance under SSTF scheduling (simulation reports only)",
		}),
		diagnosis: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bottleneck_diagnosis_code",
			Help: "Latest diagnosis (0=balanced, 1=ram, 2=disk, 3=inefficient paging)",
		}),
	}
)

func initPrometheusMetrics() {
	prometheus.MustRegister(
		promMetrics.memoryLoad,
		promMetrics.diskIOLoad,
		promMetrics.fifoFaults,
		promMetrics.lruFaults,
		promMetrics.optimalFaults,
		promMetrics.fcfsSeek,
		promMetrics.sstfSeek,
		promMetrics.diagnosis,
	)
}

func updatePrometheusMetrics(report *simulator.Report) {
	promMetrics.memoryLoad.Set(report.Metrics.MemoryLoadPercent)
	promMetrics.diskIOLoad.Set(report.Metrics.DiskIOLoad)
	promMetrics.diagnosis.Set(float64(report.Analysis.Diagnosis))

	if faults := report.Metrics.Faults; faults != nil {
		promMetrics.fifoFaults.Set(float64(faults.FIFO))
		promMetrics.lruFaults.Set(float64(faults.LRU))
		promMetrics.optimalFaults.Set(float64(faults.Optimal))
	}
	if seeks := report.Metrics.Seeks; seeks != nil {
		promMetrics.fcfsSeek.Set(float64(seeks.FCFS))
		promMetrics.sstfSeek.Set(float64(seeks.SSTF))
	}
}
