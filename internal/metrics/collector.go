package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/rank-tracker-api/internal/domain"
)

var trackedKeywordsDesc = prometheus.NewDesc(
	"rank_tracker_tracked_keywords",
	"Registros de palavras-chave acompanhadas por dispositivo",
	[]string{"device"},
	nil,
)

// TrackedCounter é a consulta usada pelo coletor a cada scrape
type TrackedCounter interface {
	CountTrackedByDevice(ctx context.Context) (map[domain.Device]int, error)
}

// TrackedKeywordsCollector lê a contagem de palavras-chave do banco a cada scrape
type TrackedKeywordsCollector struct {
	counter TrackedCounter
	timeout time.Duration
}

func NewTrackedKeywordsCollector(counter TrackedCounter) *TrackedKeywordsCollector {
	return &TrackedKeywordsCollector{counter: counter, timeout: 5 * time.Second}
}

func (c *TrackedKeywordsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- trackedKeywordsDesc
}

func (c *TrackedKeywordsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	counts, err := c.counter.CountTrackedByDevice(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao coletar métrica de palavras-chave acompanhadas")
		return
	}

	for device, count := range counts {
		ch <- prometheus.MustNewConstMetric(
			trackedKeywordsDesc,
			prometheus.GaugeValue,
			float64(count),
			string(device),
		)
	}
}

var registerOnce sync.Once

// Init registra o coletor customizado. Deve ser chamado uma vez na inicialização.
func Init(counter TrackedCounter) {
	registerOnce.Do(func() {
		prometheus.MustRegister(NewTrackedKeywordsCollector(counter))
	})
}
