// Package domain holds DTOs for the runs http and service contracts
package domain

// RecentInput is the input for listing finished runs
type RecentInput struct {
	Limit int `json:"limit,omitempty" validate:"omitempty,min=1,max=200" example:"20"`
}

// Run is one finished cleaning run
type Run struct {
	RunID           string  `json:"run_id"`
	Source          string  `json:"source"`
	StartedAt       string  `json:"started_at"`
	FinishedAt      string  `json:"finished_at"`
	Read            int     `json:"read"`
	Written         int     `json:"written"`
	DroppedEmpty    int     `json:"dropped_empty"`
	DroppedFiltered int     `json:"dropped_filtered"`
	EmptyPct        float64 `json:"empty_pct"`
	StageFailures   int     `json:"stage_failures"`
	Options         string  `json:"options"`
}

// ReportInput selects the run whose per comment reports are summarized
type ReportInput struct {
	RunID     string `json:"run_id"               validate:"required,run_id" example:"5f1c0c5e-0d7e-4a55-9d0e-2f8b7f3b8e11"`
	TopBrands int    `json:"top_brands,omitempty" validate:"omitempty,min=1,max=100" example:"10"`
}

// SeverityCount is the number of comments at one severity
type SeverityCount struct {
	Severity int   `json:"severity" example:"2"`
	Comments int64 `json:"comments" example:"120"`
}

// BrandCount is the number of comments naming one brand
type BrandCount struct {
	Brand    string `json:"brand"    example:"sgi88"`
	Comments int64  `json:"comments" example:"40"`
}

// Report summarizes the per comment reports of one run
type Report struct {
	RunID        string          `json:"run_id"`
	Comments     int64           `json:"comments"      example:"1000"`
	WithKeywords int64           `json:"with_keywords" example:"310"`
	AvgReduction float64         `json:"avg_reduction" example:"0.18"`
	MaxSeverity  int             `json:"max_severity"  example:"3"`
	Severities   []SeverityCount `json:"severities"`
	Brands       []BrandCount    `json:"brands"`
}
