package modkit

import (
	"judolguard/internal/modkit/repokit"
	"judolguard/internal/platform/config"
	"judolguard/internal/platform/logger"
	"judolguard/internal/platform/store"
)

// Deps are handed to every module constructor. PG and CH are nil when the
// store is disabled, modules must check
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}
