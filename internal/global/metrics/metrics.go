// Package metrics 定义活动生命周期相关的 Prometheus 指标
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ActivitiesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "coucou",
		Name:      "activity_created_total",
		Help:      "Activities created.",
	})

	// Joins result: joined | already_joined | failed
	Joins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coucou",
		Name:      "activity_joins_total",
		Help:      "Join attempts by result.",
	}, []string{"result"})

	Leaves = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "coucou",
		Name:      "activity_leaves_total",
		Help:      "Participant links removed.",
	})

	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coucou",
		Name:      "activity_status_transitions_total",
		Help:      "Derived status changes by new status.",
	}, []string{"status"})

	// Fanout result: delivered | failed
	Fanout = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coucou",
		Name:      "notification_fanout_total",
		Help:      "Edit notifications by delivery result.",
	}, []string{"result"})
)

// Handler 暴露 /metrics
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
