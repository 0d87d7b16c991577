// Package monitor samples live system metrics from /proc and converts them
// into the same record shape the simulators produce, so the classifier is
// exercised identically regardless of data source.
package monitor

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/procfs"
	"github.com/prometheus/procfs/blockdevice"
	"github.com/sirupsen/logrus"

	"bottleneck-analyzer/simulator"
)

// SystemMetrics is one live snapshot of system resource usage
type SystemMetrics struct {
	CPUPercent    float64   `json:"cpuPercent"`
	MemoryPercent float64   `json:"memoryPercent"`
	MemoryTotalMB float64   `json:"memoryTotalMB"`
	MemoryUsedMB  float64   `json:"memoryUsedMB"`
	MemoryAvailMB float64   `json:"memoryAvailMB"`
	DiskReadMBps  float64   `json:"diskReadMBps"`  // Since previous sample
	DiskWriteMBps float64   `json:"diskWriteMBps"` // Since previous sample
	DiskReadOps   uint64    `json:"diskReadOps"`   // Since previous sample
	DiskWriteOps  uint64    `json:"diskWriteOps"`  // Since previous sample
	ProcessCount  int       `json:"processCount"`
	Timestamp     time.Time `json:"timestamp"`
}

const sectorSizeBytes = 512

// Monitor reads /proc on demand. Disk and CPU figures are deltas between
// consecutive samples; the first sample has no baseline and reports zero
// rates.
type Monitor struct {
	fs    procfs.FS
	block blockdevice.FS
	log   *logrus.Entry

	mu          sync.Mutex
	hasBaseline bool
	lastSample  time.Time
	lastCPU     cpuCounters
	lastDisk    diskCounters
}

type cpuCounters struct {
	busy  float64
	total float64
}

type diskCounters struct {
	readIOs      uint64
	writeIOs     uint64
	readSectors  uint64
	writeSectors uint64
}

// NewMonitor opens /proc. On hosts without a readable procfs the error is a
// capability notice, not a fatal condition: callers degrade to
// simulation-only operation.
func NewMonitor() (*Monitor, error) {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return nil, fmt.Errorf("realtime metrics unavailable: %w", err)
	}
	block, err := blockdevice.NewDefaultFS()
	if err != nil {
		return nil, fmt.Errorf("realtime metrics unavailable: %w", err)
	}
	return &Monitor{
		fs:    fs,
		block: block,
		log:   logrus.WithField("component", "monitor"),
	}, nil
}

// Available reports whether live sampling can work on this host
func Available() bool {
	_, err := NewMonitor()
	return err == nil
}

// Sample captures one snapshot of system metrics
func (m *Monitor) Sample() (SystemMetrics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	metrics := SystemMetrics{Timestamp: now}

	meminfo, err := m.fs.Meminfo()
	if err != nil {
		return SystemMetrics{}, fmt.Errorf("reading meminfo: %w", err)
	}
	if meminfo.MemTotal != nil && *meminfo.MemTotal > 0 {
		totalKB := float64(*meminfo.MemTotal)
		availKB := 0.0
		if meminfo.MemAvailable != nil {
			availKB = float64(*meminfo.MemAvailable)
		} else if meminfo.MemFree != nil {
			availKB = float64(*meminfo.MemFree)
		}
		metrics.MemoryTotalMB = totalKB / 1024
		metrics.MemoryAvailMB = availKB / 1024
		metrics.MemoryUsedMB = (totalKB - availKB) / 1024
		metrics.MemoryPercent = 100 * (totalKB - availKB) / totalKB
	}

	stat, err := m.fs.Stat()
	if err != nil {
		return SystemMetrics{}, fmt.Errorf("reading stat: %w", err)
	}
	cpu := cpuCounters{
		busy: stat.CPUTotal.User + stat.CPUTotal.Nice + stat.CPUTotal.System +
			stat.CPUTotal.IRQ + stat.CPUTotal.SoftIRQ + stat.CPUTotal.Steal,
	}
	cpu.total = cpu.busy + stat.CPUTotal.Idle + stat.CPUTotal.Iowait

	disk, err := m.readDiskCounters()
	if err != nil {
		return SystemMetrics{}, err
	}

	if procs, err := m.fs.AllProcs(); err == nil {
		metrics.ProcessCount = len(procs)
	} else {
		m.log.WithError(err).Warn("could not enumerate processes")
	}

	if m.hasBaseline {
		elapsed := now.Sub(m.lastSample).Seconds()
		if elapsed > 0 {
			metrics.DiskReadMBps = float64(disk.readSectors-m.lastDisk.readSectors) * sectorSizeBytes / (1024 * 1024) / elapsed
			metrics.DiskWriteMBps = float64(disk.writeSectors-m.lastDisk.writeSectors) * sectorSizeBytes / (1024 * 1024) / elapsed
		}
		metrics.DiskReadOps = disk.readIOs - m.lastDisk.readIOs
		metrics.DiskWriteOps = disk.writeIOs - m.lastDisk.writeIOs
		if dt := cpu.total - m.lastCPU.total; dt > 0 {
			metrics.CPUPercent = 100 * (cpu.busy - m.lastCPU.busy) / dt
		}
	}

	m.lastSample = now
	m.lastCPU = cpu
	m.lastDisk = disk
	m.hasBaseline = true

	return metrics, nil
}

// Record samples once and converts the snapshot into a classifier record
func (m *Monitor) Record() (simulator.MetricsRecord, SystemMetrics, error) {
	metrics, err := m.Sample()
	if err != nil {
		return simulator.MetricsRecord{}, SystemMetrics{}, err
	}
	return BuildRecord(metrics), metrics, nil
}

// BuildRecord converts a live snapshot into the unified record shape. Live
// records carry no fault or seek tallies; those are simulation-only.
// Disk activity counts stand in for seek load: each operation in the sample
// window scores 10 abstract seek-time units.
func BuildRecord(metrics SystemMetrics) simulator.MetricsRecord {
	return simulator.MetricsRecord{
		MemoryLoadPercent: metrics.MemoryPercent,
		DiskIOLoad:        float64(metrics.DiskReadOps+metrics.DiskWriteOps) * 10,
	}
}

func (m *Monitor) readDiskCounters() (diskCounters, error) {
	stats, err := m.block.ProcDiskstats()
	if err != nil {
		return diskCounters{}, fmt.Errorf("reading diskstats: %w", err)
	}

	var total diskCounters
	for _, s := range stats {
		if skipDevice(s.Info.DeviceName) {
			continue
		}
		total.readIOs += s.ReadIOs
		total.writeIOs += s.WriteIOs
		total.readSectors += s.ReadSectors
		total.writeSectors += s.WriteSectors
	}
	return total, nil
}

// skipDevice filters pseudo block devices out of the aggregate
func skipDevice(name string) bool {
	for _, prefix := range []string{"loop", "ram", "zram"} {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
