package domain

import "time"

const (
	ScanCampaignStatusProcessing = "processing"

	DefaultScanMaxRadiusMeters = 1000
	DefaultScanStepMeters      = 500
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ScanCampaign é uma campanha de scan geográfico. A amostragem em grade roda fora deste serviço.
type ScanCampaign struct {
	ID              string      `json:"id"`
	UserID          int         `json:"user_id"`
	Keyword         string      `json:"keyword"`
	Domain          string      `json:"domain"`
	Address         string      `json:"address"`
	Center          Coordinates `json:"center"`
	MaxRadiusMeters int         `json:"max_radius_meters"`
	StepMeters      int         `json:"step_meters"`
	Status          string      `json:"status"`
	Funding         ScanFunding `json:"funding"`
	CreatedAt       time.Time   `json:"created_at"`
}

type CreateScanCampaignRequest struct {
	Keyword         string `json:"keyword"`
	Domain          string `json:"domain"`
	Address         string `json:"address"`
	MaxRadiusMeters int    `json:"max_radius_meters"`
	StepMeters      int    `json:"step_meters"`
}
