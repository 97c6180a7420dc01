package serpapi

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	serpdomain "github.com/vfg2006/rank-tracker-api/infrastructure/integrator/serpapi/domain"
	"github.com/vfg2006/rank-tracker-api/internal/config"
	"github.com/vfg2006/rank-tracker-api/internal/domain"
)

type fakeClient struct {
	response *serpdomain.SearchResponse
	err      error
	params   []url.Values
}

func (f *fakeClient) Search(_ context.Context, params url.Values) (*serpdomain.SearchResponse, error) {
	f.params = append(f.params, params)
	return f.response, f.err
}

func newTestIntegrator(client *fakeClient) *SerpAPIIntegrator {
	return New(&config.Config{SerpAPI: config.SerpAPI{
		GoogleDomain:      "google.es",
		LocalGoogleDomain: "google.com",
		Country:           "es",
		Language:          "es",
	}}, client)
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestSerpAPIIntegrator_Search_Organico(t *testing.T) {
	client := &fakeClient{response: &serpdomain.SearchResponse{
		OrganicResults: []serpdomain.OrganicResult{
			{Position: 1, Title: "Outro", Link: "https://outro.es"},
			{Position: 2, Title: "Clínica Sol", Link: "https://www.clinicasol.es/contacto"},
		},
	}}

	location := "Murcia, Spain"
	page, err := newTestIntegrator(client).Search(context.Background(), domain.SearchParams{
		Query:      "dentista Murcia, Spain",
		Location:   &location,
		Device:     domain.DeviceDesktop,
		SearchType: domain.SearchTypeOrganic,
		Start:      10,
		PageSize:   10,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Items[1].Rank)
	assert.Equal(t, "https://www.clinicasol.es/contacto", *page.Items[1].Website)

	require.Len(t, client.params, 1)
	params := client.params[0]
	assert.Equal(t, "google", params.Get("engine"))
	assert.Equal(t, "google.es", params.Get("google_domain"))
	assert.Equal(t, "es", params.Get("gl"))
	assert.Equal(t, "es", params.Get("hl"))
	assert.Equal(t, "10", params.Get("num"))
	assert.Equal(t, "10", params.Get("start"))
	assert.Equal(t, "desktop", params.Get("device"))
	assert.Equal(t, "Murcia, Spain", params.Get("location"))
}

func TestSerpAPIIntegrator_Search_OrganicoComMotorDoCliente(t *testing.T) {
	client := &fakeClient{response: &serpdomain.SearchResponse{}}

	page, err := newTestIntegrator(client).Search(context.Background(), domain.SearchParams{
		Engine:     "bing",
		Query:      "dentista",
		Device:     domain.DeviceMobile,
		SearchType: domain.SearchTypeOrganic,
		PageSize:   10,
	})
	require.NoError(t, err)
	assert.True(t, page.IsEmpty())
	assert.Equal(t, "bing", client.params[0].Get("engine"))
	assert.False(t, client.params[0].Has("location"))
}

func TestSerpAPIIntegrator_Search_Local(t *testing.T) {
	client := &fakeClient{response: &serpdomain.SearchResponse{
		AdsResults: []serpdomain.LocalResult{
			{Position: 1, Title: "Dentistas Sol", Links: &serpdomain.Links{Website: "https://clinicasol.es"}, Rating: floatPtr(4.7), Reviews: intPtr(120)},
			{Position: 3, Title: "Sem site"},
		},
	}}

	page, err := newTestIntegrator(client).Search(context.Background(), domain.SearchParams{
		Query:      "dentista",
		Device:     domain.DeviceGoogleLocal,
		SearchType: domain.SearchTypeLocal,
		Start:      20,
		PageSize:   20,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "https://clinicasol.es", *page.Items[0].Website)
	assert.Equal(t, 4.7, *page.Items[0].Rating)
	assert.Nil(t, page.Items[1].Website)
	assert.Equal(t, 3, page.Items[1].Rank)

	params := client.params[0]
	assert.Equal(t, "google_local", params.Get("engine"))
	assert.Equal(t, "google.com", params.Get("google_domain"))
	assert.Equal(t, "mobile", params.Get("device"))
	assert.Equal(t, "20", params.Get("num"))
	assert.Equal(t, "20", params.Get("start"))
}

func TestSerpAPIIntegrator_MapsSearch(t *testing.T) {
	client := &fakeClient{response: &serpdomain.SearchResponse{
		LocalResults: []serpdomain.LocalResult{
			{
				Title:          "Clínica Sol",
				Address:        "Calle Mayor 1",
				Website:        "https://www.ClinicaSol.es/",
				Rating:         floatPtr(4.5),
				Reviews:        intPtr(80),
				GPSCoordinates: &serpdomain.GPSCoordinates{Latitude: 37.98, Longitude: -1.13},
				PlaceIDSearch:  "https://serpapi.com/place/1",
			},
			{Title: "Sem dados"},
		},
	}}

	places, err := newTestIntegrator(client).MapsSearch(context.Background(), domain.MapsSearchParams{
		Keyword: "dentista",
		LL:      "@37.98,-1.13,14z",
	})
	require.NoError(t, err)
	require.Len(t, places, 2)

	assert.Equal(t, 1, places[0].Position)
	require.NotNil(t, places[0].Domain)
	assert.Equal(t, "clinicasol.es", *places[0].Domain)
	assert.True(t, places[0].HasCoordinates())
	assert.Equal(t, "https://serpapi.com/place/1", places[0].GoogleMapsURL)

	assert.Equal(t, 2, places[1].Position)
	assert.Nil(t, places[1].Domain)
	assert.False(t, places[1].HasCoordinates())
	assert.Equal(t, "#", places[1].GoogleMapsURL)

	params := client.params[0]
	assert.Equal(t, "google_maps", params.Get("engine"))
	assert.Equal(t, "search", params.Get("type"))
	assert.Equal(t, "@37.98,-1.13,14z", params.Get("ll"))
	assert.Equal(t, "20", params.Get("num"))
}

func TestSerpAPIIntegrator_Search_TipoNaoSuportado(t *testing.T) {
	_, err := newTestIntegrator(&fakeClient{}).Search(context.Background(), domain.SearchParams{SearchType: domain.SearchTypeMaps})
	assert.Error(t, err)
}
