package validate

import (
	"context"
	"sync/atomic"
	"time"

	"riichiengine/internal/rlog"

	"github.com/shirou/gopsutil/v3/cpu"
)

// progress is a counter Run's workers bump as they process events,
// drained periodically by reportProgress. Kept separate from Report
// (which aggregates final per-log results) since it is read while the
// run is still in flight.
type progress struct {
	logsDone   int64
	eventsDone int64
}

func (p *progress) addEvents(n int) { atomic.AddInt64(&p.eventsDone, int64(n)) }
func (p *progress) addLog()         { atomic.AddInt64(&p.logsDone, 1) }

// reportProgress logs throughput and system-wide CPU usage every interval
// until ctx is done, the same periodic load-reporting shape as the
// teacher's game.Monitor, repurposed from cluster load balancing to a
// single long validation run's progress.
func reportProgress(ctx context.Context, p *progress, totalLogs int, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pct, err := cpu.Percent(0, false)
			cpuUsage := 0.0
			if err == nil && len(pct) > 0 {
				cpuUsage = pct[0]
			}
			rlog.Info("validate progress: logs=%d/%d events=%d cpu=%.1f%%",
				atomic.LoadInt64(&p.logsDone), totalLogs, atomic.LoadInt64(&p.eventsDone), cpuUsage)
		}
	}
}
