package cleaner

import (
	"fmt"
	"strings"
)

// DomainNumberStrategy decides what happens to digits glued to a gambling domain word
type DomainNumberStrategy string

const (
	// DomainRemove drops the digits: slot88 -> slot
	DomainRemove DomainNumberStrategy = "remove"
	// DomainPreserve splits them off: slot88 -> slot 88
	DomainPreserve DomainNumberStrategy = "preserve"
	// DomainSeparate replaces them with a sentinel token: slot88 -> slot domain_number
	DomainSeparate DomainNumberStrategy = "separate_token"
)

// NumberStrategy decides how digits inside ordinary words are treated
type NumberStrategy string

const (
	// NumberAggressive maps every remaining digit to its lookalike letter
	NumberAggressive NumberStrategy = "aggressive"
	// NumberSmart only applies the leet dictionary
	NumberSmart NumberStrategy = "smart"
	// NumberPreserve leaves digits alone
	NumberPreserve NumberStrategy = "preserve"
)

// DomainNumberToken is the sentinel emitted by DomainSeparate
const DomainNumberToken = "domain_number"

// Options are fixed when the Cleaner is built
type Options struct {
	DomainNumber DomainNumberStrategy `json:"domain_number"`
	Number       NumberStrategy       `json:"number"`
	// Aggressive re-runs stopword removal and stemming at the end of the pipeline
	Aggressive bool `json:"aggressive"`
}

// DefaultOptions returns preserve / smart / non aggressive
func DefaultOptions() Options {
	return Options{DomainNumber: DomainPreserve, Number: NumberSmart}
}

// DomainNumberStrategies lists the accepted values
func DomainNumberStrategies() []string {
	return []string{string(DomainRemove), string(DomainPreserve), string(DomainSeparate)}
}

// NumberStrategies lists the accepted values
func NumberStrategies() []string {
	return []string{string(NumberAggressive), string(NumberSmart), string(NumberPreserve)}
}

// ParseDomainNumberStrategy accepts one of DomainNumberStrategies, empty means preserve
func ParseDomainNumberStrategy(s string) (DomainNumberStrategy, error) {
	switch v := DomainNumberStrategy(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return DomainPreserve, nil
	case DomainRemove, DomainPreserve, DomainSeparate:
		return v, nil
	default:
		return "", fmt.Errorf("cleaner: unknown domain number strategy %q", s)
	}
}

// ParseNumberStrategy accepts one of NumberStrategies, empty means smart
func ParseNumberStrategy(s string) (NumberStrategy, error) {
	switch v := NumberStrategy(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return NumberSmart, nil
	case NumberAggressive, NumberSmart, NumberPreserve:
		return v, nil
	default:
		return "", fmt.Errorf("cleaner: unknown number strategy %q", s)
	}
}

// withDefaults fills zero values and validates the rest
func (o Options) withDefaults() (Options, error) {
	var err error
	if o.DomainNumber, err = ParseDomainNumberStrategy(string(o.DomainNumber)); err != nil {
		return o, err
	}
	if o.Number, err = ParseNumberStrategy(string(o.Number)); err != nil {
		return o, err
	}
	return o, nil
}
