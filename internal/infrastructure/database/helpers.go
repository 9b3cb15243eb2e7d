package database

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PoolStats is a snapshot of the pgx pool counters
type PoolStats struct {
	TotalConns    int32
	IdleConns     int32
	AcquiredConns int32
	MaxConns      int32
}

// Stats returns the current pool counters; zero value when not connected
func (db *PostgresDB) Stats() PoolStats {
	if db == nil || db.Pool == nil {
		return PoolStats{}
	}
	s := db.Pool.Stat()
	return PoolStats{
		TotalConns:    s.TotalConns(),
		IdleConns:     s.IdleConns(),
		AcquiredConns: s.AcquiredConns(),
		MaxConns:      s.MaxConns(),
	}
}

// PoolCollectors exposes the pool counters as gauges for /metrics
func (db *PostgresDB) PoolCollectors() []prometheus.Collector {
	gauge := func(name, help string, read func(PoolStats) int32) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: name,
			Help: help,
		}, func() float64 {
			return float64(read(db.Stats()))
		})
	}

	return []prometheus.Collector{
		gauge("db_pool_total_connections", "Connections currently open in the pool.",
			func(s PoolStats) int32 { return s.TotalConns }),
		gauge("db_pool_idle_connections", "Idle connections in the pool.",
			func(s PoolStats) int32 { return s.IdleConns }),
		gauge("db_pool_acquired_connections", "Connections checked out of the pool.",
			func(s PoolStats) int32 { return s.AcquiredConns }),
	}
}
