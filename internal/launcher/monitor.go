package launcher

import (
	"context"
	"strconv"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/atlas-128/convertDecimaltoBase32/internal/metrics"
)

// sampleWorkers periodically reads RSS and CPU usage for each worker pid and
// exports them as gauges. Sampling is observation only; it never feeds back
// into worker lifecycle decisions.
func (s *Supervisor) sampleWorkers(ctx context.Context, pids map[int]int) {
	interval := s.cfg.Metrics.SampleInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for idx, pid := range pids {
				s.sampleOne(strconv.Itoa(idx), pid)
			}
		}
	}
}

func (s *Supervisor) sampleOne(label string, pid int) {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		// Worker already gone; the exit path owns the bookkeeping.
		return
	}
	if mem, err := p.MemoryInfo(); err == nil && mem != nil {
		metrics.WorkerResidentBytes.WithLabelValues(label).Set(float64(mem.RSS))
	}
	if cpu, err := p.CPUPercent(); err == nil {
		metrics.WorkerCPUPercent.WithLabelValues(label).Set(cpu)
	}
}
