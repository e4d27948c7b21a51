package model

import "github.com/PavaniTiago/lcp-network-api/internal/domain/analytics"

// Overview represents the headline analytics of one survey year
type Overview struct {
	Year               int     `json:"year"`
	CompletedOnly      bool    `json:"completed_only"`
	Responses          int     `json:"responses"`
	Completed          int     `json:"completed"`
	CompletedThisMonth int     `json:"completed_this_month"`
	TotalCapital       float64 `json:"total_capital"`
	AverageTicketSize  float64 `json:"average_ticket_size"`
	MedianTicketSize   float64 `json:"median_ticket_size"`
	// CapitalEfficiency is capital raised over target capital, in percent
	CapitalEfficiency   float64           `json:"capital_efficiency"`
	GeographicDiversity float64           `json:"geographic_diversity"`
	Domiciles           []analytics.Point `json:"domiciles"`
	FundStages          []analytics.Point `json:"fund_stages"`
	SectorAllocation    []AllocationShare `json:"sector_allocation"`
}

// AllocationShare is the average percentage assigned to one category
type AllocationShare struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

// Distribution represents how often each answer of a field was given
type Distribution struct {
	Year      int               `json:"year"`
	Field     string            `json:"field"`
	Category  string            `json:"category,omitempty"`
	Responses int               `json:"responses"`
	Points    []analytics.Point `json:"points"`
}

// FieldStats represents the summary of a numeric field
type FieldStats struct {
	Year     int    `json:"year"`
	Field    string `json:"field"`
	Category string `json:"category,omitempty"`
	analytics.Stats
}
