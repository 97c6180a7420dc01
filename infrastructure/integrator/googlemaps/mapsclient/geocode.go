package mapsclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	mapsdomain "github.com/vfg2006/rank-tracker-api/infrastructure/integrator/googlemaps/domain"
	"github.com/vfg2006/rank-tracker-api/internal/domain"
	"github.com/vfg2006/rank-tracker-api/internal/metrics"
)

const zeroResultsStatus = "ZERO_RESULTS"

// Geocode converte um endereço em coordenadas usando o primeiro resultado da Geocoding API
func (c *GoogleMapsClient) Geocode(ctx context.Context, address string) (*domain.Coordinates, error) {
	startedAt := time.Now()

	coordinates, err := c.geocode(ctx, address)

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
		if errors.Is(err, mapsdomain.ErrAddressNotFound) {
			outcome = metrics.OutcomeEmpty
		}
	}
	metrics.ObserveProviderRequest("google_geocoding", outcome, time.Since(startedAt))

	return coordinates, err
}

func (c *GoogleMapsClient) geocode(ctx context.Context, address string) (*domain.Coordinates, error) {
	query := url.Values{}
	query.Set("address", address)
	query.Set("key", c.cfg.APIKey)

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/geocode/json?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocodificação falhou com status: %s", resp.Status)
	}

	var response mapsdomain.GeocodeResponse
	if err := jsoniter.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	if response.Status == zeroResultsStatus || (response.Status == mapsdomain.StatusOK && len(response.Results) == 0) {
		logrus.WithField("address", address).Info("Endereço não encontrado na geocodificação")
		return nil, mapsdomain.ErrAddressNotFound
	}

	if response.Status != mapsdomain.StatusOK {
		return nil, fmt.Errorf("geocodificação falhou com status %s: %s", response.Status, response.ErrorMessage)
	}

	location := response.Results[0].Geometry.Location
	return &domain.Coordinates{Lat: location.Lat, Lng: location.Lng}, nil
}
