// Package analyzing gera as estatísticas competitivas de um conjunto de resultados do Google Maps
package analyzing

import (
	"fmt"
	"math"

	"github.com/vfg2006/rank-tracker-api/internal/domain"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/resolving"
)

const (
	earthRadiusMeters = 6371e3

	notFoundText = "No encontrado"
)

// Analyze produz o relatório sobre todos os resultados e, quando há filtro de
// distância e o domínio alvo tem coordenadas, um segundo relatório só com os
// resultados dentro do raio, com posições renumeradas.
func Analyze(places []domain.Place, targetDomain string, distanceFilter *float64) domain.CompetitiveAnalysis {
	target, _ := resolving.NormalizeDomain(targetDomain)

	ranked := renumber(places)
	analysis := domain.CompetitiveAnalysis{
		Overall: buildReport(ranked, target),
	}

	if distanceFilter == nil || *distanceFilter <= 0 {
		return analysis
	}

	center := findTarget(ranked, target)
	if center == nil || !center.HasCoordinates() {
		return analysis
	}

	nearby := make([]domain.Place, 0, len(ranked))
	for _, place := range ranked {
		if !place.HasCoordinates() {
			continue
		}
		if Haversine(*center.Lat, *center.Lng, *place.Lat, *place.Lng) <= *distanceFilter {
			nearby = append(nearby, place)
		}
	}

	filtered := buildReport(renumber(nearby), target)
	radius := *distanceFilter
	filtered.DistanceFilter = &radius
	analysis.Filtered = &filtered

	return analysis
}

// Haversine retorna a distância em metros entre dois pontos
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaPhi := (lat2 - lat1) * math.Pi / 180
	deltaLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

func renumber(places []domain.Place) []domain.Place {
	ranked := make([]domain.Place, len(places))
	for i, place := range places {
		place.Position = i + 1
		ranked[i] = place
	}
	return ranked
}

func findTarget(places []domain.Place, target string) *domain.Place {
	if target == "" {
		return nil
	}
	for i := range places {
		if places[i].Domain != nil && *places[i].Domain == target {
			return &places[i]
		}
	}
	return nil
}

func buildReport(places []domain.Place, target string) domain.CompetitiveReport {
	total := len(places)
	report := domain.CompetitiveReport{
		Results:            places,
		TotalResults:       total,
		DomainPositionText: notFoundText,
	}

	if total > 0 {
		var sumPosition, sumRating, sumReviews float64
		for _, place := range places {
			sumPosition += float64(place.Position)
			sumRating += ratingValue(place.Rating)
			sumReviews += float64(reviewsValue(place.Reviews))
		}
		report.AvgPosition = sumPosition / float64(total)
		report.AvgRating = sumRating / float64(total)
		report.AvgReviews = sumReviews / float64(total)
	}

	own := findTarget(places, target)
	if own == nil {
		return report
	}

	report.DomainPosition = own.Position
	report.DomainPositionText = fmt.Sprintf("%d/%d", own.Position, total)
	report.DomainRating = own.Rating
	report.DomainReviews = own.Reviews
	report.IsBetterThanCompetitors = &domain.CompetitorComparison{
		Rating:  ratingValue(own.Rating) > report.AvgRating,
		Reviews: float64(reviewsValue(own.Reviews)) > report.AvgReviews,
	}

	return report
}

func ratingValue(rating *float64) float64 {
	if rating == nil {
		return 0
	}
	return *rating
}

func reviewsValue(reviews *int) int {
	if reviews == nil {
		return 0
	}
	return *reviews
}
