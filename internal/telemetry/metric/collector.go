package metric

import (
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type channelProbe struct {
	pending  func() int
	capacity func() int
}

// ChannelCollector reports pending messages and capacity of every
// watched channel at scrape time.
type ChannelCollector struct {
	mu     sync.RWMutex
	probes map[string]channelProbe

	pendingDesc  *prometheus.Desc
	capacityDesc *prometheus.Desc
}

// NewChannelCollector creates an empty collector.
func NewChannelCollector() *ChannelCollector {
	return &ChannelCollector{
		probes: make(map[string]channelProbe),
		pendingDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "channel", "pending"),
			"Messages currently queued in the channel",
			[]string{"channel"}, nil,
		),
		capacityDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "channel", "capacity"),
			"Fixed capacity of the channel",
			[]string{"channel"}, nil,
		),
	}
}

// Watch registers or replaces the probes for a channel.
func (c *ChannelCollector) Watch(name string, pending, capacity func() int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.probes[name] = channelProbe{pending: pending, capacity: capacity}
}

// Describe implements prometheus.Collector.
func (c *ChannelCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.pendingDesc
	ch <- c.capacityDesc
}

// Collect implements prometheus.Collector.
func (c *ChannelCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.probes))
	for name := range c.probes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := c.probes[name]
		ch <- prometheus.MustNewConstMetric(c.pendingDesc, prometheus.GaugeValue, float64(p.pending()), name)
		ch <- prometheus.MustNewConstMetric(c.capacityDesc, prometheus.GaugeValue, float64(p.capacity()), name)
	}
}
