package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PagesGroup labels the cache of fetched site pages kept by the client.
const PagesGroup = "pages"

// Lookup results recorded on LookupsTotal.
const (
	resultHit  = "hit"
	resultMiss = "miss"
	// lookups abandoned because the caller's context was already done
	resultCanceled = "canceled"
)

var (
	// LookupsTotal counts page lookups per group and result.
	LookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "akwam",
			Subsystem: "page_cache",
			Name:      "lookups_total",
			Help:      "Page cache lookups by result (hit, miss, canceled).",
		},
		[]string{"cache", "result"},
	)

	// StoredBytes observes the size of every page body written to a group.
	StoredBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "akwam",
			Subsystem: "page_cache",
			Name:      "stored_bytes",
			Help:      "Size of page bodies stored in the page cache.",
			// 4KiB .. 4MiB
			Buckets: prometheus.ExponentialBuckets(4<<10, 4, 6),
		},
		[]string{"cache"},
	)

	// EvictionsTotal counts pages dropped for capacity or expiry.
	EvictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "akwam",
			Subsystem: "page_cache",
			Name:      "evictions_total",
			Help:      "Pages evicted from the page cache.",
		},
		[]string{"cache"},
	)
)

func init() {
	prometheus.MustRegister(LookupsTotal, StoredBytes, EvictionsTotal)
}

// pageCountCollector reports how many pages a group holds, asking the cache
// at scrape time.
type pageCountCollector struct {
	desc  *prometheus.Desc
	count func() int
}

func (c *pageCountCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *pageCountCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(c.count()))
}

var (
	pageCountMu         sync.Mutex
	pageCountCollectors = make(map[string]*pageCountCollector)
	// swapped for an isolated registry in tests
	pageCountReg prometheus.Registerer = prometheus.DefaultRegisterer
)

// trackPageCount exposes akwam_page_cache_pages for group. A client rebuilt
// with the same group replaces the previous collector.
func trackPageCount(group string, count func() int) *pageCountCollector {
	c := &pageCountCollector{
		desc: prometheus.NewDesc(
			prometheus.BuildFQName("akwam", "page_cache", "pages"),
			"Pages currently held in the page cache.",
			nil,
			prometheus.Labels{"cache": group},
		),
		count: count,
	}

	pageCountMu.Lock()
	defer pageCountMu.Unlock()

	if old, ok := pageCountCollectors[group]; ok {
		pageCountReg.Unregister(old)
	}
	pageCountCollectors[group] = c
	_ = pageCountReg.Register(c)
	return c
}

// untrackPageCount removes c unless a newer cache already took over group.
func untrackPageCount(group string, c *pageCountCollector) {
	pageCountMu.Lock()
	defer pageCountMu.Unlock()

	if cur, ok := pageCountCollectors[group]; ok && cur == c {
		pageCountReg.Unregister(c)
		delete(pageCountCollectors, group)
	}
}
