package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Счётчики жизненного цикла сессии. Отдаются через /metrics шлюза.
var (
	loginTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "admin_gateway",
		Subsystem: "session",
		Name:      "login_total",
		Help:      "Login attempts by result.",
	}, []string{"result"})

	refreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "admin_gateway",
		Subsystem: "session",
		Name:      "refresh_total",
		Help:      "Silent refresh attempts by result.",
	}, []string{"result"})
)

func observeLogin(result string)   { loginTotal.WithLabelValues(result).Inc() }
func observeRefresh(result string) { refreshTotal.WithLabelValues(result).Inc() }
