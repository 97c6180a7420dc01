package domain

import "time"

// SearchRequest é a busca sob demanda de um usuário
type SearchRequest struct {
	Keywords     string   `json:"keywords"` // separadas por vírgula ou quebra de linha
	Domain       string   `json:"domain"`
	Location     *string  `json:"location"`
	SearchEngine string   `json:"search_engine"`
	Devices      []string `json:"devices"`
}

// UnitResult é o resultado de uma combinação palavra-chave × dispositivo
type UnitResult struct {
	Keyword    string          `json:"keyword"`
	Device     Device          `json:"device"`
	Resolution Resolution      `json:"resolution"`
	Record     *PositionRecord `json:"record,omitempty"`
}

type UnitFailure struct {
	Keyword string `json:"keyword"`
	Device  Device `json:"device"`
	Error   string `json:"error"`
}

type SearchResponse struct {
	Results  []UnitResult  `json:"results"`
	Failures []UnitFailure `json:"failures,omitempty"`
	Quota    QuotaDecision `json:"quota"`
}

// RefreshSummary resume uma execução da atualização em lote
type RefreshSummary struct {
	Combinations int `json:"combinations"`
	Found        int `json:"found"`
	NotFound     int `json:"not_found"`
	Failed       int `json:"failed"`
	Updated      int `json:"updated"`
	// PrunedSnapshots é o total de snapshots removidos pela retenção ao final da execução
	PrunedSnapshots int64 `json:"pruned_snapshots"`
}

// RefreshOptions controla a atualização em lote
type RefreshOptions struct {
	MaxConcurrent int
	Delay         time.Duration
}
