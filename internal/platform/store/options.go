package store

import "judolguard/internal/platform/logger"

// Option adjusts a Store before Open connects anything
type Option func(*Store)

// WithLogger routes backend logs, SQL traces included, through log
func WithLogger(log logger.Logger) Option { return func(s *Store) { s.Log = log } }
