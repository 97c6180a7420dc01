package tracking

import (
	"context"

	"github.com/vfg2006/rank-tracker-api/internal/domain"
)

// MapsSearcher devolve os estabelecimentos do Google Maps ao redor de um ponto
type MapsSearcher interface {
	MapsSearch(ctx context.Context, params domain.MapsSearchParams) ([]domain.Place, error)
}

// Geocoder converte um endereço em coordenadas
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*domain.Coordinates, error)
}
