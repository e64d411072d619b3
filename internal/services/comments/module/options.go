package module

import (
	"judolguard/internal/core/cleaner"
	"judolguard/internal/core/rulepack"
	"judolguard/internal/core/stemmer"
	"judolguard/internal/platform/config"
	"judolguard/internal/platform/logger"
	"judolguard/internal/services/comments/domain"
)

// Stemmer choices for CORE_CLEAN_STEMMER
const (
	StemmerSastrawi = "sastrawi"
	StemmerNone     = "none"
)

// Options holds configuration settings for the comments module
type Options struct {
	DomainNumber string
	Number       string
	Aggressive   bool
	Stemmer      string

	Workers    int
	BatchSize  int
	TextColumn string
	Columns    []string
	KeepRaw    bool
	Filters    domain.Filters
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	cf := cfg.Prefix("CORE_CLEAN_")
	return Options{
		DomainNumber: cf.MayEnum("DOMAIN_NUMBER_STRATEGY", string(cleaner.DomainPreserve), cleaner.DomainNumberStrategies()...),
		Number:       cf.MayEnum("NUMBER_STRATEGY", string(cleaner.NumberSmart), cleaner.NumberStrategies()...),
		Aggressive:   cf.MayBool("AGGRESSIVE", false),
		Stemmer:      cf.MayEnum("STEMMER", StemmerSastrawi, StemmerSastrawi, StemmerNone),
		Workers:      cf.MayInt("WORKERS", 4),
		BatchSize:    cf.MayInt("BATCH_SIZE", 1000),
		TextColumn:   cf.MayString("TEXT_COLUMN", domain.DefaultTextColumn),
		Columns:      cf.MayCSV("COLUMNS", nil),
		KeepRaw:      cf.MayBool("KEEP_RAW", false),
		Filters: domain.Filters{
			SingleWord: cf.MayBool("DROP_SINGLE_WORD", false),
			Timestamps: cf.MayBool("DROP_TIMESTAMPS", false),
			Numeric:    cf.MayBool("DROP_NUMERIC", false),
		},
	}
}

// CleanerOptions converts the strategy names into cleaner.Options
func (o Options) CleanerOptions() (cleaner.Options, error) {
	dn, err := cleaner.ParseDomainNumberStrategy(o.DomainNumber)
	if err != nil {
		return cleaner.Options{}, err
	}
	n, err := cleaner.ParseNumberStrategy(o.Number)
	if err != nil {
		return cleaner.Options{}, err
	}
	return cleaner.Options{DomainNumber: dn, Number: n, Aggressive: o.Aggressive}, nil
}

// NewCleaner loads the embedded rule pack and builds a Cleaner for o
func NewCleaner(o Options, log *logger.Logger) (*cleaner.Cleaner, error) {
	co, err := o.CleanerOptions()
	if err != nil {
		return nil, err
	}
	p, err := rulepack.Load()
	if err != nil {
		return nil, err
	}
	st, err := stemmer.ByName(o.Stemmer, cleaner.Protect(p))
	if err != nil {
		return nil, err
	}
	return cleaner.New(p, st, co, log)
}
