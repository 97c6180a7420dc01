package mapsclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mapsdomain "github.com/vfg2006/rank-tracker-api/infrastructure/integrator/googlemaps/domain"
	"github.com/vfg2006/rank-tracker-api/internal/config"
	"github.com/vfg2006/rank-tracker-api/internal/domain"
)

func TestGoogleMapsClient_Geocode(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected *domain.Coordinates
		validate func(t *testing.T, err error)
	}{
		{
			name:     "Endereço encontrado usa o primeiro resultado",
			status:   http.StatusOK,
			body:     `{"status":"OK","results":[{"geometry":{"location":{"lat":37.9922,"lng":-1.1307}}},{"geometry":{"location":{"lat":1,"lng":1}}}]}`,
			expected: &domain.Coordinates{Lat: 37.9922, Lng: -1.1307},
			validate: func(t *testing.T, err error) { require.NoError(t, err) },
		},
		{
			name:   "Nenhum resultado",
			status: http.StatusOK,
			body:   `{"status":"ZERO_RESULTS","results":[]}`,
			validate: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, mapsdomain.ErrAddressNotFound)
			},
		},
		{
			name:   "Status OK sem resultados",
			status: http.StatusOK,
			body:   `{"status":"OK","results":[]}`,
			validate: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, mapsdomain.ErrAddressNotFound)
			},
		},
		{
			name:   "Chave recusada",
			status: http.StatusOK,
			body:   `{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid.","results":[]}`,
			validate: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.NotErrorIs(t, err, mapsdomain.ErrAddressNotFound)
				assert.Contains(t, err.Error(), "REQUEST_DENIED")
			},
		},
		{
			name:   "Erro HTTP",
			status: http.StatusInternalServerError,
			body:   `{}`,
			validate: func(t *testing.T, err error) {
				require.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/geocode/json", r.URL.Path)
				assert.Equal(t, "Calle Mayor 1, Murcia", r.URL.Query().Get("address"))
				assert.Equal(t, "chave", r.URL.Query().Get("key"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(&config.Config{GoogleMaps: config.GoogleMaps{
				BaseURL: server.URL,
				APIKey:  "chave",
				Timeout: time.Second,
			}})

			coordinates, err := client.Geocode(context.Background(), "Calle Mayor 1, Murcia")
			tt.validate(t, err)
			assert.Equal(t, tt.expected, coordinates)
		})
	}
}
