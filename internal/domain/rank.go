// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "strings"

// Device identifica a superfície de busca consultada
type Device string

const (
	DeviceDesktop     Device = "desktop"
	DeviceMobile      Device = "mobile"
	DeviceGoogleLocal Device = "google_local"
	// DeviceGoogleMaps só é gravado pelo RankMap; não é aceito na busca
	DeviceGoogleMaps Device = "google_maps"
)

// SearchType define o tipo de resultado que o provedor devolve
type SearchType string

const (
	SearchTypeOrganic SearchType = "organic"
	SearchTypeLocal   SearchType = "local"
	SearchTypeMaps    SearchType = "maps"
)

// ParseDevice converte a string recebida na API para um Device conhecido
func ParseDevice(s string) (Device, bool) {
	switch Device(strings.ToLower(strings.TrimSpace(s))) {
	case DeviceDesktop:
		return DeviceDesktop, true
	case DeviceMobile:
		return DeviceMobile, true
	case DeviceGoogleLocal:
		return DeviceGoogleLocal, true
	}
	return "", false
}

// SearchType retorna o tipo de busca usado para resolver o dispositivo
func (d Device) SearchType() SearchType {
	switch d {
	case DeviceGoogleLocal:
		return SearchTypeLocal
	case DeviceGoogleMaps:
		return SearchTypeMaps
	}
	return SearchTypeOrganic
}

// RankQuery é construída para cada combinação palavra-chave × dispositivo
type RankQuery struct {
	Keyword      string
	TargetDomain string
	Location     *string
	Device       Device
	SearchType   SearchType
	// Engine é o motor orgânico pedido pelo cliente; vazio usa "google"
	Engine string
}

// LocationValue devolve a localização ou string vazia
func (q RankQuery) LocationValue() string {
	if q.Location == nil {
		return ""
	}
	return *q.Location
}

// SearchResultItem é um item de uma página do provedor.
// Rank é 1-based dentro da página; 0 indica que o provedor não informou posição.
type SearchResultItem struct {
	Rank        int      `json:"rank"`
	Website     *string  `json:"website,omitempty"`
	Title       *string  `json:"title,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount *int     `json:"review_count,omitempty"`
}

// SearchPage representa uma página de resultados do provedor
type SearchPage struct {
	Items []SearchResultItem
}

// IsEmpty indica que o provedor não possui mais páginas
func (p *SearchPage) IsEmpty() bool {
	return p == nil || len(p.Items) == 0
}

// SearchParams são os parâmetros de uma requisição de página
type SearchParams struct {
	Engine     string
	Query      string
	Location   *string
	Device     Device
	SearchType SearchType
	Start      int
	PageSize   int
}

type MatchResult struct {
	Matched        bool
	ResolvedDomain *string
	Rating         *float64
	ReviewCount    *int
}

// Resolution é o resultado da resolução de uma RankQuery
type Resolution struct {
	Found          bool     `json:"found"`
	Position       int      `json:"position"`
	ResolvedDomain string   `json:"resolved_domain,omitempty"`
	Rating         *float64 `json:"rating,omitempty"`
	ReviewCount    *int     `json:"review_count,omitempty"`
	PagesRequested int      `json:"-"`
}
