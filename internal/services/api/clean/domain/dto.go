// Package domain holds DTOs for the clean http and service contracts
package domain

import "judolguard/internal/core/cleaner"

// Options override the server defaults for one request
type Options struct {
	DomainNumber string `json:"domain_number,omitempty" validate:"omitempty,oneof=remove preserve separate_token" example:"preserve"`
	Number       string `json:"number,omitempty"        validate:"omitempty,oneof=aggressive smart preserve" example:"smart"`
	Aggressive   *bool  `json:"aggressive,omitempty" example:"false"`
}

// CleanInput is one comment to clean
type CleanInput struct {
	Text string `json:"text" validate:"max=20000" example:"DEPO 50K WD 500K DI sgi 88"`
	Options
}

// CleanOutput is the canonical text of one comment
type CleanOutput struct {
	Cleaned      string   `json:"cleaned" example:"depo 50k wd 500k sgi88"`
	Empty        bool     `json:"empty"   example:"false"`
	FailedStages []string `json:"failed_stages,omitempty"`
}

// BatchInput is a list of comments cleaned with the same options
type BatchInput struct {
	Texts []string `json:"texts" validate:"required,min=1,dive,max=20000"`
	Options
}

// BatchItem is one cleaned comment, in input position
type BatchItem struct {
	ID      string `json:"id"      example:"5f1c0c5e-0d7e-4a55-9d0e-2f8b7f3b8e11"`
	Index   int    `json:"index"   example:"0"`
	Cleaned string `json:"cleaned" example:"depo 50k wd 500k sgi88"`
	Empty   bool   `json:"empty"   example:"false"`
}

// BatchOutput lists the cleaned comments in input order
type BatchOutput struct {
	Items []BatchItem `json:"items"`
	Empty int         `json:"empty" example:"0"`
}

// AnalyzeOutput is the per comment analysis
type AnalyzeOutput = cleaner.Analysis

// TraceOutput lists every stage output of one pipeline pass
type TraceOutput struct {
	Stages  []cleaner.StageResult `json:"stages"`
	Cleaned string                `json:"cleaned"`
}
