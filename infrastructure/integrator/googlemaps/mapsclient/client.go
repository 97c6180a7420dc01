package mapsclient

import (
	"context"
	"net/http"

	"github.com/vfg2006/rank-tracker-api/internal/config"
	"github.com/vfg2006/rank-tracker-api/internal/domain"
)

type Client interface {
	Geocode(ctx context.Context, address string) (*domain.Coordinates, error)
}

type GoogleMapsClient struct {
	httpClient *http.Client
	cfg        config.GoogleMaps
}

func NewClient(cfg *config.Config) Client {
	return &GoogleMapsClient{
		httpClient: &http.Client{
			Timeout: cfg.GoogleMaps.Timeout,
		},
		cfg: cfg.GoogleMaps,
	}
}
