package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mapsdomain "github.com/vfg2006/rank-tracker-api/infrastructure/integrator/googlemaps/domain"
	"github.com/vfg2006/rank-tracker-api/internal/domain"
)

type memoryStore struct {
	values  map[string][]byte
	ttls    map[string]time.Duration
	failGet error
	failSet error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	if s.failGet != nil {
		return nil, s.failGet
	}
	value, ok := s.values[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return value, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if s.failSet != nil {
		return s.failSet
	}
	s.values[key] = value
	s.ttls[key] = ttl
	return nil
}

type countingGeocoder struct {
	calls       int
	coordinates *domain.Coordinates
	err         error
}

func (g *countingGeocoder) Geocode(context.Context, string) (*domain.Coordinates, error) {
	g.calls++
	return g.coordinates, g.err
}

func TestGeocodeCache_Geocode(t *testing.T) {
	t.Run("Segunda consulta vem do cache", func(t *testing.T) {
		store := newMemoryStore()
		next := &countingGeocoder{coordinates: &domain.Coordinates{Lat: 37.99, Lng: -1.13}}
		cache := NewGeocodeCache(next, store, time.Hour)

		first, err := cache.Geocode(context.Background(), "Calle Mayor 1, Murcia")
		require.NoError(t, err)
		second, err := cache.Geocode(context.Background(), "  calle mayor 1, murcia ")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, next.calls)
		assert.Equal(t, time.Hour, store.ttls["geocode:calle mayor 1, murcia"])
	})

	t.Run("Endereço não encontrado não é cacheado", func(t *testing.T) {
		store := newMemoryStore()
		next := &countingGeocoder{err: mapsdomain.ErrAddressNotFound}
		cache := NewGeocodeCache(next, store, time.Hour)

		_, err := cache.Geocode(context.Background(), "???")
		assert.ErrorIs(t, err, mapsdomain.ErrAddressNotFound)
		assert.Empty(t, store.values)
	})

	t.Run("Falha do cache consulta o provedor", func(t *testing.T) {
		store := newMemoryStore()
		store.failGet = errors.New("connection refused")
		store.failSet = errors.New("connection refused")
		next := &countingGeocoder{coordinates: &domain.Coordinates{Lat: 1, Lng: 2}}

		coordinates, err := NewGeocodeCache(next, store, time.Hour).Geocode(context.Background(), "Madrid")
		require.NoError(t, err)
		assert.Equal(t, &domain.Coordinates{Lat: 1, Lng: 2}, coordinates)
		assert.Equal(t, 1, next.calls)
	})

	t.Run("Valor corrompido é ignorado", func(t *testing.T) {
		store := newMemoryStore()
		store.values[GeocodeKey("Madrid")] = []byte("{")
		next := &countingGeocoder{coordinates: &domain.Coordinates{Lat: 40.4, Lng: -3.7}}

		coordinates, err := NewGeocodeCache(next, store, time.Hour).Geocode(context.Background(), "Madrid")
		require.NoError(t, err)
		assert.Equal(t, 40.4, coordinates.Lat)
		assert.Equal(t, 1, next.calls)
	})
}
