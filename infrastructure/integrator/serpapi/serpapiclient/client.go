package serpapiclient

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	serpdomain "github.com/vfg2006/rank-tracker-api/infrastructure/integrator/serpapi/domain"
	"github.com/vfg2006/rank-tracker-api/internal/config"
	"github.com/vfg2006/rank-tracker-api/pkg/utils"
	"golang.org/x/time/rate"
)

type Client interface {
	Search(ctx context.Context, params url.Values) (*serpdomain.SearchResponse, error)
}

type SerpAPIClient struct {
	httpClient *http.Client
	cfg        config.SerpAPI
	limiter    *rate.Limiter
	retry      utils.RetryConfig
}

func NewClient(cfg *config.Config) Client {
	limit := rate.Inf
	if cfg.SerpAPI.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.SerpAPI.RequestsPerSecond)
	}

	burst := cfg.SerpAPI.Burst
	if burst < 1 {
		burst = 1
	}

	return &SerpAPIClient{
		httpClient: &http.Client{
			Timeout: cfg.SerpAPI.Timeout,
		},
		cfg:     cfg.SerpAPI,
		limiter: rate.NewLimiter(limit, burst),
		retry: utils.RetryConfig{
			MaxAttempts: cfg.SerpAPI.MaxRetries + 1,
			BaseDelay:   cfg.SerpAPI.RetryBaseDelay,
			ShouldRetry: isTransient,
		},
	}
}

// isTransient repete falhas de rede e respostas 5xx
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrMalformedResponse) {
		return false
	}

	var statusErr *serpdomain.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}

	var providerErr *serpdomain.ProviderError
	return !errors.As(err, &providerErr)
}
