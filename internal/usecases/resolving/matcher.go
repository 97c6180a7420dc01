package resolving

import (
	"regexp"
	"strings"

	"github.com/vfg2006/rank-tracker-api/internal/domain"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]`)
	trailingTLD     = regexp.MustCompile(`\.(es|com|net|org|eu|io|co)$`)
)

// Matcher decide se um item de resultado corresponde ao domínio alvo já normalizado
type Matcher interface {
	Match(item domain.SearchResultItem, target string, searchType domain.SearchType) domain.MatchResult
}

// DomainMatcher compara o website normalizado do item com o alvo. Em resultados
// locais sem website, pode cair no casamento aproximado pelo título.
//
// O casamento por título tem risco conhecido de falso positivo para nomes curtos
// ou genéricos.
type DomainMatcher struct {
	titleFallback bool
}

func NewDomainMatcher() *DomainMatcher {
	return &DomainMatcher{titleFallback: true}
}

// NewStrictMatcher cria um matcher que só aceita igualdade de domínio
func NewStrictMatcher() *DomainMatcher {
	return &DomainMatcher{titleFallback: false}
}

func (m *DomainMatcher) Match(item domain.SearchResultItem, target string, searchType domain.SearchType) domain.MatchResult {
	var resolved string
	hasDomain := false

	if item.Website != nil {
		resolved, hasDomain = NormalizeDomain(*item.Website)
	}

	if !hasDomain && m.titleFallback && searchType != domain.SearchTypeOrganic && item.Title != nil {
		if titleMatches(*item.Title, target) {
			resolved, hasDomain = target, true
		}
	}

	if !hasDomain || resolved != target {
		return domain.MatchResult{}
	}

	return domain.MatchResult{
		Matched:        true,
		ResolvedDomain: &resolved,
		Rating:         item.Rating,
		ReviewCount:    item.ReviewCount,
	}
}

// DomainBase remove "www.", o TLD conhecido e caracteres não alfanuméricos
func DomainBase(target string) string {
	base := strings.TrimPrefix(strings.ToLower(target), "www.")
	base = trailingTLD.ReplaceAllString(base, "")
	return nonAlphanumeric.ReplaceAllString(base, "")
}

// CleanTitle deixa o título comparável com DomainBase
func CleanTitle(title string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(title), "")
}

func titleMatches(title, target string) bool {
	cleanTitle := CleanTitle(title)
	base := DomainBase(target)

	// string vazia estaria contida em qualquer outra
	if cleanTitle == "" || base == "" {
		return false
	}

	return strings.Contains(cleanTitle, base) || strings.Contains(base, cleanTitle)
}
