package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/rank-tracker-api/infrastructure/integrator/googlemaps/mapsclient"
	"github.com/vfg2006/rank-tracker-api/internal/domain"
)

const geocodeKeyPrefix = "geocode:"

// GeocodeCache guarda as coordenadas já resolvidas. Falhas do cache não
// impedem a consulta ao provedor.
type GeocodeCache struct {
	next  mapsclient.Client
	store Store
	ttl   time.Duration
}

var _ mapsclient.Client = (*GeocodeCache)(nil)

func NewGeocodeCache(next mapsclient.Client, store Store, ttl time.Duration) *GeocodeCache {
	return &GeocodeCache{
		next:  next,
		store: store,
		ttl:   ttl,
	}
}

func GeocodeKey(address string) string {
	return geocodeKeyPrefix + strings.ToLower(strings.TrimSpace(address))
}

func (c *GeocodeCache) Geocode(ctx context.Context, address string) (*domain.Coordinates, error) {
	key := GeocodeKey(address)

	cached, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var coordinates domain.Coordinates
		if err := jsoniter.Unmarshal(cached, &coordinates); err == nil {
			return &coordinates, nil
		}
		logrus.WithField("key", key).Warn("Valor inválido no cache de geocodificação")
	case !errors.Is(err, ErrCacheMiss):
		logrus.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("Erro ao ler cache de geocodificação")
	}

	coordinates, err := c.next.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	payload, err := jsoniter.Marshal(coordinates)
	if err == nil {
		err = c.store.Set(ctx, key, payload, c.ttl)
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("Erro ao gravar cache de geocodificação")
	}

	return coordinates, nil
}
