package serpapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
	serpdomain "github.com/vfg2006/rank-tracker-api/infrastructure/integrator/serpapi/domain"
	"github.com/vfg2006/rank-tracker-api/infrastructure/integrator/serpapi/serpapiclient"
	"github.com/vfg2006/rank-tracker-api/internal/config"
	"github.com/vfg2006/rank-tracker-api/internal/domain"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/resolving"
)

const (
	engineGoogle      = "google"
	engineGoogleLocal = "google_local"
	engineGoogleMaps  = "google_maps"

	mapsResultsPerPage = 20
)

// SerpAPIIntegrator adapta a SerpAPI às páginas de busca e aos resultados do Google Maps
type SerpAPIIntegrator struct {
	cfg    config.SerpAPI
	Client serpapiclient.Client
}

var _ resolving.SearchProvider = (*SerpAPIIntegrator)(nil)

func New(cfg *config.Config, client serpapiclient.Client) *SerpAPIIntegrator {
	return &SerpAPIIntegrator{
		cfg:    cfg.SerpAPI,
		Client: client,
	}
}

// Search busca uma página orgânica ou do local pack
func (s *SerpAPIIntegrator) Search(ctx context.Context, params domain.SearchParams) (*domain.SearchPage, error) {
	switch params.SearchType {
	case domain.SearchTypeOrganic:
		resp, err := s.Client.Search(ctx, s.OrganicParams(params))
		if err != nil {
			return nil, err
		}
		return FactoryOrganicPage(resp), nil
	case domain.SearchTypeLocal:
		resp, err := s.Client.Search(ctx, s.LocalParams(params))
		if err != nil {
			return nil, err
		}
		return FactoryLocalPage(resp), nil
	default:
		return nil, fmt.Errorf("tipo de busca não suportado pela serpapi: %s", params.SearchType)
	}
}

// MapsSearch busca os estabelecimentos do Google Maps ao redor de ll
func (s *SerpAPIIntegrator) MapsSearch(ctx context.Context, params domain.MapsSearchParams) ([]domain.Place, error) {
	resp, err := s.Client.Search(ctx, s.MapsParams(params))
	if err != nil {
		return nil, err
	}

	places := FactoryPlaces(resp)

	logrus.WithFields(logrus.Fields{
		"keyword": params.Keyword,
		"ll":      params.LL,
		"results": len(places),
	}).Debug("Resultados do Google Maps obtidos")

	return places, nil
}

func (s *SerpAPIIntegrator) OrganicParams(params domain.SearchParams) url.Values {
	engine := params.Engine
	if engine == "" {
		engine = engineGoogle
	}

	values := url.Values{}
	values.Set("engine", engine)
	values.Set("q", params.Query)
	values.Set("google_domain", s.cfg.GoogleDomain)
	values.Set("gl", s.cfg.Country)
	values.Set("hl", s.cfg.Language)
	values.Set("num", strconv.Itoa(params.PageSize))
	values.Set("start", strconv.Itoa(params.Start))
	values.Set("device", string(params.Device))
	if params.Location != nil && *params.Location != "" {
		values.Set("location", *params.Location)
	}
	return values
}

// LocalParams monta a consulta do local pack, sempre como dispositivo móvel
func (s *SerpAPIIntegrator) LocalParams(params domain.SearchParams) url.Values {
	values := url.Values{}
	values.Set("engine", engineGoogleLocal)
	values.Set("q", params.Query)
	values.Set("google_domain", s.cfg.LocalGoogleDomain)
	values.Set("gl", s.cfg.Country)
	values.Set("hl", s.cfg.Language)
	values.Set("num", strconv.Itoa(params.PageSize))
	values.Set("start", strconv.Itoa(params.Start))
	values.Set("device", string(domain.DeviceMobile))
	if params.Location != nil && *params.Location != "" {
		values.Set("location", *params.Location)
	}
	return values
}

func (s *SerpAPIIntegrator) MapsParams(params domain.MapsSearchParams) url.Values {
	values := url.Values{}
	values.Set("engine", engineGoogleMaps)
	values.Set("type", "search")
	values.Set("q", params.Keyword)
	values.Set("ll", params.LL)
	values.Set("num", strconv.Itoa(mapsResultsPerPage))
	return values
}

func FactoryOrganicPage(resp *serpdomain.SearchResponse) *domain.SearchPage {
	page := &domain.SearchPage{Items: make([]domain.SearchResultItem, 0, len(resp.OrganicResults))}
	for _, result := range resp.OrganicResults {
		page.Items = append(page.Items, domain.SearchResultItem{
			Rank:    result.Position,
			Website: optionalString(result.Link),
			Title:   optionalString(result.Title),
		})
	}
	return page
}

// FactoryLocalPage lê local_results e, na ausência deles, ads_results
func FactoryLocalPage(resp *serpdomain.SearchResponse) *domain.SearchPage {
	results := resp.LocalResults
	if len(results) == 0 {
		results = resp.AdsResults
	}

	page := &domain.SearchPage{Items: make([]domain.SearchResultItem, 0, len(results))}
	for _, result := range results {
		page.Items = append(page.Items, domain.SearchResultItem{
			Rank:        result.Position,
			Website:     optionalString(result.WebsiteURL()),
			Title:       optionalString(result.Title),
			Rating:      result.Rating,
			ReviewCount: result.Reviews,
		})
	}
	return page
}

func FactoryPlaces(resp *serpdomain.SearchResponse) []domain.Place {
	places := make([]domain.Place, 0, len(resp.LocalResults))
	for i, result := range resp.LocalResults {
		place := domain.Place{
			Title:         result.Title,
			Address:       result.Address,
			Rating:        result.Rating,
			Reviews:       result.Reviews,
			GoogleMapsURL: result.PlaceIDSearch,
			Position:      i + 1,
		}
		if place.GoogleMapsURL == "" {
			place.GoogleMapsURL = "#"
		}

		if result.GPSCoordinates != nil {
			lat := result.GPSCoordinates.Latitude
			lng := result.GPSCoordinates.Longitude
			place.Lat = &lat
			place.Lng = &lng
		}

		if website := result.WebsiteURL(); website != "" {
			if normalized, ok := resolving.NormalizeDomain(website); ok {
				place.Domain = &normalized
			}
		}

		places = append(places, place)
	}
	return places
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
