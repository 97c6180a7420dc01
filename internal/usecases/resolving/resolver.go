// Package resolving localiza a posição de um domínio paginando os resultados do provedor de busca
package resolving

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/rank-tracker-api/internal/domain"
	"github.com/vfg2006/rank-tracker-api/internal/metrics"
)

var (
	ErrInvalidTargetDomain    = errors.New("domínio alvo inválido")
	ErrUnsupportedSearchType  = errors.New("tipo de busca não suportado pelo resolvedor paginado")
	ErrProviderRequestFailure = errors.New("falha na requisição ao provedor de busca")
)

// SearchProvider devolve uma página de resultados. Página vazia significa fim dos resultados.
type SearchProvider interface {
	Search(ctx context.Context, params domain.SearchParams) (*domain.SearchPage, error)
}

type Resolver interface {
	Resolve(ctx context.Context, query domain.RankQuery) (*domain.Resolution, error)
}

// PageBudget limita quantos resultados são percorridos por tipo de busca
type PageBudget struct {
	PageSize   int
	MaxResults int
}

var DefaultBudgets = map[domain.SearchType]PageBudget{
	domain.SearchTypeOrganic: {PageSize: 10, MaxResults: 100},
	domain.SearchTypeLocal:   {PageSize: 20, MaxResults: 100},
}

type PaginatedResolver struct {
	provider SearchProvider
	matcher  Matcher
	budgets  map[domain.SearchType]PageBudget
}

func NewResolver(provider SearchProvider, matcher Matcher) *PaginatedResolver {
	return &PaginatedResolver{
		provider: provider,
		matcher:  matcher,
		budgets:  DefaultBudgets,
	}
}

// WithBudgets substitui os limites de paginação padrão
func (r *PaginatedResolver) WithBudgets(budgets map[domain.SearchType]PageBudget) *PaginatedResolver {
	r.budgets = budgets
	return r
}

// QueryText monta o texto enviado ao provedor
func QueryText(keyword string, location *string) string {
	if location != nil && strings.TrimSpace(*location) != "" {
		return fmt.Sprintf("%s %s", keyword, strings.TrimSpace(*location))
	}
	return keyword
}

// Resolve percorre as páginas até o primeiro casamento ou até esgotar o orçamento.
// O primeiro casamento encontrado encerra a paginação.
func (r *PaginatedResolver) Resolve(ctx context.Context, query domain.RankQuery) (*domain.Resolution, error) {
	target, ok := NormalizeDomain(query.TargetDomain)
	if !ok {
		return nil, ErrInvalidTargetDomain
	}

	searchType := query.SearchType
	if searchType == "" {
		searchType = query.Device.SearchType()
	}

	budget, ok := r.budgets[searchType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSearchType, searchType)
	}

	startedAt := time.Now()
	queryText := QueryText(query.Keyword, query.Location)
	pages := 0

	for start := 0; start < budget.MaxResults; start += budget.PageSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := r.provider.Search(ctx, domain.SearchParams{
			Engine:     query.Engine,
			Query:      queryText,
			Location:   query.Location,
			Device:     query.Device,
			SearchType: searchType,
			Start:      start,
			PageSize:   budget.PageSize,
		})
		if err != nil {
			metrics.ObserveResolution(query.Device, metrics.OutcomeError)
			return nil, fmt.Errorf("%w: palavra-chave %q, início %d: %v", ErrProviderRequestFailure, query.Keyword, start, err)
		}
		pages++

		if page.IsEmpty() {
			break
		}

		for i, item := range page.Items {
			rank := item.Rank
			if searchType == domain.SearchTypeOrganic && rank <= 0 {
				rank = i + 1
			}
			// resultados locais sem posição informada são ignorados
			if rank <= 0 {
				continue
			}

			match := r.matcher.Match(item, target, searchType)
			if !match.Matched {
				continue
			}

			resolved := target
			if match.ResolvedDomain != nil {
				resolved = *match.ResolvedDomain
			}

			resolution := &domain.Resolution{
				Found:          true,
				Position:       start + rank,
				ResolvedDomain: resolved,
				Rating:         match.Rating,
				ReviewCount:    match.ReviewCount,
				PagesRequested: pages,
			}

			logrus.WithFields(logrus.Fields{
				"keyword":  query.Keyword,
				"domain":   target,
				"device":   query.Device,
				"position": resolution.Position,
				"pages":    pages,
				"duration": time.Since(startedAt).String(),
			}).Debug("Domínio encontrado nos resultados")

			metrics.ObserveResolution(query.Device, metrics.OutcomeFound)
			return resolution, nil
		}
	}

	logrus.WithFields(logrus.Fields{
		"keyword": query.Keyword,
		"domain":  target,
		"device":  query.Device,
		"pages":   pages,
	}).Debug("Domínio não encontrado dentro do limite de páginas")

	metrics.ObserveResolution(query.Device, metrics.OutcomeNotFound)
	return &domain.Resolution{Found: false, Position: 0, PagesRequested: pages}, nil
}
