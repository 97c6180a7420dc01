// Package metrics expõe as métricas Prometheus do serviço
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vfg2006/rank-tracker-api/internal/domain"
)

const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
	OutcomeSuccess  = "success"
	OutcomeEmpty    = "empty"
)

var (
	providerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rank_tracker_provider_requests_total",
		Help: "Requisições ao provedor de busca por engine e resultado",
	}, []string{"engine", "outcome"})

	providerLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rank_tracker_provider_request_duration_seconds",
		Help:    "Latência das requisições ao provedor de busca",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
	}, []string{"engine"})

	resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rank_tracker_resolutions_total",
		Help: "Resoluções de posição por dispositivo e resultado",
	}, []string{"device", "outcome"})

	quotaDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rank_tracker_quota_denials_total",
		Help: "Admissões negadas pelo controle de cota",
	}, []string{"kind", "reason"})

	ledgerUpserts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rank_tracker_ledger_upserts_total",
		Help: "Gravações no ledger de posições",
	}, []string{"outcome"})

	creditMismatches = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rank_tracker_scan_credit_mismatches",
		Help: "Usuários com saldo de créditos divergente na última reconciliação",
	})
)

func ObserveProviderRequest(engine, outcome string, duration time.Duration) {
	providerRequests.WithLabelValues(engine, outcome).Inc()
	providerLatency.WithLabelValues(engine).Observe(duration.Seconds())
}

func ObserveResolution(device domain.Device, outcome string) {
	resolutions.WithLabelValues(string(device), outcome).Inc()
}

func ObserveQuotaDenial(kind, reason string) {
	quotaDenials.WithLabelValues(kind, reason).Inc()
}

func ObserveLedgerUpsert(outcome string) {
	ledgerUpserts.WithLabelValues(outcome).Inc()
}

func SetCreditMismatches(count int) {
	creditMismatches.Set(float64(count))
}
