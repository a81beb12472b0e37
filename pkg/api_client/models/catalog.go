package models

import "time"

// CatalogSource beschrijft een index die periodiek geharvest wordt
// - IndexURL: URL van de index.json met links naar workflow documenten
// - Name: optionele naam voor logging
type CatalogSource struct {
	Name     string `json:"name,omitempty"`
	IndexURL string `json:"indexUrl"`
}

// CatalogSummary bevat de tellingen van een geanalyseerde workflow
type CatalogSummary struct {
	TotalSteps   int `json:"totalSteps"`
	AISteps      int `json:"aiSteps"`
	HTTPSteps    int `json:"httpSteps"`
	CodeSteps    int `json:"codeSteps"`
	Disconnected int `json:"disconnected"`
}

// CatalogEntry is één workflow uit de catalogus
type CatalogEntry struct {
	ID         string         `json:"id"`
	Source     string         `json:"source"`
	SourceURL  string         `json:"sourceUrl"`
	Name       string         `json:"name"`
	Tags       []string       `json:"tags,omitempty"`
	HasError   bool           `json:"hasError"`
	Error      string         `json:"error,omitempty"`
	Summary    CatalogSummary `json:"summary"`
	AnalyzedAt time.Time      `json:"analyzedAt"`
}
