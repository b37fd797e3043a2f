package stream

import (
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/rotblauer/polysplit/common"
)

// Meter keeps running counts of features read and pieces written,
// logging a progress line every interval and once more on Stop.
type Meter struct {
	interval time.Duration
	started  time.Time
	ticker   *time.Ticker
	done     chan struct{}

	read      metrics.Counter
	written   metrics.Counter
	size      metrics.Counter
	readMeter metrics.Meter
	sizeMeter metrics.Meter
}

func NewMeter(interval time.Duration) *Meter {
	// Won't work without this global setting.
	metrics.Enabled = true

	m := &Meter{
		interval:  interval,
		started:   time.Now(),
		done:      make(chan struct{}),
		read:      metrics.NewCounter(),
		written:   metrics.NewCounter(),
		size:      metrics.NewCounter(),
		readMeter: metrics.NewMeter(),
		sizeMeter: metrics.NewMeter(),
	}
	go m.run()
	return m
}

// MarkRead records one input feature of the given encoded size.
func (m *Meter) MarkRead(size int) {
	m.read.Inc(1)
	m.size.Inc(int64(size))
	m.readMeter.Mark(1)
	m.sizeMeter.Mark(int64(size))
}

// MarkWritten records n output pieces.
func (m *Meter) MarkWritten(n int) {
	m.written.Inc(int64(n))
}

func (m *Meter) Read() int64    { return m.read.Snapshot().Count() }
func (m *Meter) Written() int64 { return m.written.Snapshot().Count() }

func (m *Meter) run() {
	m.ticker = time.NewTicker(m.interval)
	for {
		select {
		case <-m.done:
			return
		case <-m.ticker.C:
			m.log()
		}
	}
}

func (m *Meter) log() {
	readSnap := m.readMeter.Snapshot()
	sizeSnap := m.sizeMeter.Snapshot()

	slog.Info("Split features",
		"read", humanize.Comma(m.Read()),
		"written", humanize.Comma(m.Written()),
		"fps", common.DecimalToFixed(readSnap.Rate1(), 0),
		"bps", humanize.Bytes(uint64(sizeSnap.Rate1())),
		"total.bytes", humanize.Bytes(uint64(m.size.Snapshot().Count())),
		"running", time.Since(m.started).Round(time.Second))
}

func (m *Meter) Stop() {
	if m == nil || m.ticker == nil {
		return
	}
	m.ticker.Stop()
	close(m.done)
	m.readMeter.Stop()
	m.sizeMeter.Stop()
	m.log()
}
