package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes the sinks care about
var (
	pgCodes = map[string]ErrorCode{
		"23505": ErrorCodeConflict,        // unique_violation
		"23503": ErrorCodeInvalidArgument, // foreign_key_violation
		"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
		"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
		"23502": ErrorCodeValidation,      // not_null_violation
		"23514": ErrorCodeValidation,      // check_violation
		"25006": ErrorCodeUnavailable,     // read_only_sql_transaction
		"57P03": ErrorCodeUnavailable,     // cannot_connect_now
	}
	pgRetry = map[string]bool{
		"40001": true, // serialization_failure
		"40P01": true, // deadlock_detected
		"55P03": true, // lock_not_available
		"57P03": true,
	}
	// driver text seen when no PgError survives, e.g. on commit
	retryText = []string{
		"commit unexpectedly resulted in rollback",
		"deadlock detected",
		"could not serialize access",
		"canceling statement due to lock timeout",
		"terminating connection due to administrator command",
	}
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	ok := stderrs.As(err, &pgErr)
	return pgErr, ok
}

// DBErrorCode classifies a Postgres error. ok is false when err carries no PgError
func DBErrorCode(err error) (code ErrorCode, ok bool) {
	pgErr, ok := pgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	if c, known := pgCodes[pgErr.Code]; known {
		return c, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps err with the code DBErrorCode picks, ErrorCodeDB otherwise. nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return Wrap(err, code, msg)
}

func FromPostgresf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return FromPostgres(err, fmt.Sprintf(format, a...))
}

// IsRetryable reports a transient database failure: contention, a server still
// starting, or the matching driver text. Context cancellation is never retryable
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pgErr, ok := pgError(err); ok {
		return pgRetry[pgErr.Code]
	}
	msg := strings.ToLower(Root(err).Error())
	for _, s := range retryText {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
