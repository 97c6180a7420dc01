package domain

// Place é um resultado do Google Maps já normalizado
type Place struct {
	Title         string   `json:"title"`
	Address       string   `json:"address"`
	Rating        *float64 `json:"rating"`
	Reviews       *int     `json:"reviews"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	Domain        *string  `json:"domain"`
	GoogleMapsURL string   `json:"google_maps_url"`
	Position      int      `json:"position"`
}

// HasCoordinates indica se o provedor devolveu latitude e longitude
func (p Place) HasCoordinates() bool {
	return p.Lat != nil && p.Lng != nil
}

type CompetitorComparison struct {
	Rating  bool `json:"rating"`
	Reviews bool `json:"reviews"`
}

// CompetitiveReport é o relatório competitivo de um conjunto de resultados
type CompetitiveReport struct {
	Results                 []Place               `json:"results"`
	TotalResults            int                   `json:"total_results"`
	DomainPosition          int                   `json:"domain_position"`
	DomainPositionText      string                `json:"domain_position_text"`
	DomainRating            *float64              `json:"domain_rating,omitempty"`
	DomainReviews           *int                  `json:"domain_reviews,omitempty"`
	AvgPosition             float64               `json:"avg_position"`
	AvgRating               float64               `json:"avg_rating"`
	AvgReviews              float64               `json:"avg_reviews"`
	IsBetterThanCompetitors *CompetitorComparison `json:"is_better_than_competitors"`
	DistanceFilter          *float64              `json:"distance_filter,omitempty"`
}

type CompetitiveAnalysis struct {
	Overall  CompetitiveReport  `json:"overall"`
	Filtered *CompetitiveReport `json:"filtered,omitempty"`
}

type RankMapRequest struct {
	Keyword        string   `json:"keyword"`
	Location       string   `json:"location"`
	Domain         string   `json:"domain"`
	DistanceFilter *float64 `json:"distance_filter"`
}

type RankMapResponse struct {
	Analysis CompetitiveAnalysis `json:"analysis"`
	Record   *PositionRecord     `json:"record,omitempty"`
}

// MapsSearchParams são os parâmetros de uma busca no Google Maps
type MapsSearchParams struct {
	Keyword string
	LL      string
}
