package serpdomain

import "strings"

const noResultsMessage = "hasn't returned any results"

// SearchResponse representa o corpo devolvido pelo endpoint /search da SerpAPI
type SearchResponse struct {
	OrganicResults []OrganicResult `json:"organic_results"`
	LocalResults   []LocalResult   `json:"local_results"`
	AdsResults     []LocalResult   `json:"ads_results"`
	Error          string          `json:"error,omitempty"`
}

// HasNoResults indica a resposta de busca sem resultados, que não é uma falha
func (r *SearchResponse) HasNoResults() bool {
	return strings.Contains(r.Error, noResultsMessage)
}

type OrganicResult struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	Link     string `json:"link"`
}

// LocalResult cobre tanto o local pack (google_local) quanto o Google Maps
type LocalResult struct {
	Position       int             `json:"position"`
	Title          string          `json:"title"`
	Address        string          `json:"address"`
	Website        string          `json:"website"`
	Links          *Links          `json:"links,omitempty"`
	Rating         *float64        `json:"rating,omitempty"`
	Reviews        *int            `json:"reviews,omitempty"`
	GPSCoordinates *GPSCoordinates `json:"gps_coordinates,omitempty"`
	PlaceIDSearch  string          `json:"place_id_search"`
}

// WebsiteURL devolve o site do resultado, procurando também em links.website
func (r LocalResult) WebsiteURL() string {
	if r.Website != "" {
		return r.Website
	}
	if r.Links != nil {
		return r.Links.Website
	}
	return ""
}

type Links struct {
	Website string `json:"website"`
}

type GPSCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
