package resolving

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/rank-tracker-api/internal/domain"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

func TestDomainMatcher_Match(t *testing.T) {
	matcher := NewDomainMatcher()
	target := "clinicasol.es"

	tests := []struct {
		name       string
		item       domain.SearchResultItem
		searchType domain.SearchType
		matched    bool
		resolved   string
	}{
		{
			name:       "Website igual após normalização",
			item:       domain.SearchResultItem{Rank: 1, Website: strPtr("https://www.ClinicaSol.es/contacto")},
			searchType: domain.SearchTypeOrganic,
			matched:    true,
			resolved:   "clinicasol.es",
		},
		{
			name:       "Website diferente não casa",
			item:       domain.SearchResultItem{Rank: 1, Website: strPtr("https://otraclinica.es")},
			searchType: domain.SearchTypeLocal,
		},
		{
			name:       "Website diferente não usa fallback de título",
			item:       domain.SearchResultItem{Rank: 1, Website: strPtr("https://directorio.com"), Title: strPtr("Clínica Sol")},
			searchType: domain.SearchTypeLocal,
		},
		{
			name:       "Local sem website casa pelo título",
			item:       domain.SearchResultItem{Rank: 2, Title: strPtr("Clinica Sol - Dentistas Madrid")},
			searchType: domain.SearchTypeLocal,
			matched:    true,
			resolved:   "clinicasol.es",
		},
		{
			name:       "Local com website inválido casa pelo título",
			item:       domain.SearchResultItem{Rank: 2, Website: strPtr("exa mple"), Title: strPtr("ClinicaSol")},
			searchType: domain.SearchTypeLocal,
			matched:    true,
			resolved:   "clinicasol.es",
		},
		{
			name:       "Orgânico sem website nunca usa título",
			item:       domain.SearchResultItem{Rank: 1, Title: strPtr("Clinica Sol")},
			searchType: domain.SearchTypeOrganic,
		},
		{
			name:       "Título contido na base do domínio também casa",
			item:       domain.SearchResultItem{Rank: 1, Title: strPtr("Sol")},
			searchType: domain.SearchTypeMaps,
			matched:    true,
			resolved:   "clinicasol.es",
		},
		{
			name:       "Título só com símbolos não casa",
			item:       domain.SearchResultItem{Rank: 1, Title: strPtr("★ ★ ★")},
			searchType: domain.SearchTypeLocal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matcher.Match(tt.item, target, tt.searchType)
			assert.Equal(t, tt.matched, result.Matched)
			if tt.matched {
				assert.Equal(t, tt.resolved, *result.ResolvedDomain)
			} else {
				assert.Nil(t, result.ResolvedDomain)
			}
		})
	}
}

func TestDomainMatcher_CarriesRatingAndReviews(t *testing.T) {
	result := NewDomainMatcher().Match(domain.SearchResultItem{
		Rank:        3,
		Website:     strPtr("clinicasol.es"),
		Rating:      floatPtr(4.7),
		ReviewCount: intPtr(120),
	}, "clinicasol.es", domain.SearchTypeLocal)

	assert.True(t, result.Matched)
	assert.Equal(t, 4.7, *result.Rating)
	assert.Equal(t, 120, *result.ReviewCount)
}

func TestStrictMatcher_IgnoresTitle(t *testing.T) {
	result := NewStrictMatcher().Match(domain.SearchResultItem{Rank: 1, Title: strPtr("Clinica Sol")}, "clinicasol.es", domain.SearchTypeLocal)
	assert.False(t, result.Matched)
}

func TestDomainBase(t *testing.T) {
	assert.Equal(t, "clinicasol", DomainBase("www.clinica-sol.es"))
	assert.Equal(t, "examplecouk", DomainBase("example.co.uk"))
	assert.Equal(t, "myapp", DomainBase("my.app.io"))
	// caracteres acentuados são descartados junto com os símbolos
	assert.Equal(t, "clnicasoldentistas", CleanTitle("Clínica Sol · Dentistas"))
}
