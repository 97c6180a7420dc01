package domain

import (
	"fmt"
	"time"
)

type PositionKey struct {
	UserID         int
	Keyword        string
	FilteredDomain string
	Device         Device
	Location       *string
}

// LocationValue devolve a localização persistida (string vazia quando ausente)
func (k PositionKey) LocationValue() string {
	if k.Location == nil {
		return ""
	}
	return *k.Location
}

func (k PositionKey) String() string {
	return fmt.Sprintf("%d|%s|%s|%s|%s", k.UserID, k.Keyword, k.FilteredDomain, k.Device, k.LocationValue())
}

// PositionRecord é a linha do ledger de posições, única por PositionKey
type PositionRecord struct {
	ID                 int64      `json:"id"`
	UserID             int        `json:"user_id"`
	Keyword            string     `json:"keyword"`
	FilteredDomain     string     `json:"filtered_domain"`
	Device             Device     `json:"device"`
	Location           *string    `json:"location"`
	CurrentPosition    int        `json:"current_position"` // 0 = não encontrado
	PreviousPosition   *int       `json:"previous_position"`
	PreviousPositionAt *time.Time `json:"previous_position_at"`
	ResolvedDomain     string     `json:"resolved_domain"`
	Rating             *float64   `json:"rating"`
	ReviewCount        *int       `json:"review_count"`
	SearchEngineLabel  string     `json:"search_engine"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	Comparison24h *Comparison `json:"comparison_24h,omitempty"`
	Comparison7d  *Comparison `json:"comparison_7d,omitempty"`
}

// Key reconstrói a chave do registro
func (r *PositionRecord) Key() PositionKey {
	return PositionKey{
		UserID:         r.UserID,
		Keyword:        r.Keyword,
		FilteredDomain: r.FilteredDomain,
		Device:         r.Device,
		Location:       r.Location,
	}
}

// LastChangedAt é o momento em que a posição atual foi gravada
func (r *PositionRecord) LastChangedAt() time.Time {
	if r.UpdatedAt.IsZero() {
		return r.CreatedAt
	}
	return r.UpdatedAt
}

// PositionUpdate carrega uma posição resolvida para o ledger
type PositionUpdate struct {
	Key               PositionKey
	Position          int
	ResolvedDomain    string
	Rating            *float64
	ReviewCount       *int
	SearchEngineLabel string
}

type PositionSnapshot struct {
	Position   int       `json:"position"`
	RecordedAt time.Time `json:"recorded_at"`
}

type Direction string

const (
	DirectionImproved  Direction = "improved"
	DirectionWorsened  Direction = "worsened"
	DirectionUnchanged Direction = "unchanged"
)

// Comparison é a diferença entre a posição atual e uma posição de referência.
// Diff negativo significa melhora (número de posição menor).
type Comparison struct {
	Diff              int       `json:"diff"`
	Direction         Direction `json:"direction"`
	ReferencePosition int       `json:"reference_position"`
	ReferenceAt       time.Time `json:"reference_at"`
}

func NewComparison(current int, reference PositionSnapshot) Comparison {
	diff := current - reference.Position

	direction := DirectionUnchanged
	if diff < 0 {
		direction = DirectionImproved
	} else if diff > 0 {
		direction = DirectionWorsened
	}

	return Comparison{
		Diff:              diff,
		Direction:         direction,
		ReferencePosition: reference.Position,
		ReferenceAt:       reference.RecordedAt,
	}
}

// CompareQuery identifica a série histórica consultada por compareAt
type CompareQuery struct {
	UserID   int
	Keyword  string
	Domain   string
	Device   *Device
	Location *string
}

// TrackedCombination agrupa os usuários que acompanham a mesma busca
type TrackedCombination struct {
	Keyword        string
	FilteredDomain string
	Device         Device
	Location       *string
	UserIDs        []int
}

type HistoryOptions struct {
	Keywords []string `json:"keywords"`
	Domains  []string `json:"domains"`
}
