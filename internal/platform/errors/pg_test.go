package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestDBErrorCode(t *testing.T) {
	cases := map[string]ErrorCode{
		"23505": ErrorCodeConflict,
		"23503": ErrorCodeInvalidArgument,
		"22P02": ErrorCodeInvalidArgument,
		"23502": ErrorCodeValidation,
		"57P03": ErrorCodeUnavailable,
		"40P01": ErrorCodeDB,
		"XX000": ErrorCodeDB,
	}
	for state, want := range cases {
		got, ok := DBErrorCode(fmt.Errorf("copy: %w", &pgconn.PgError{Code: state}))
		if !ok || got != want {
			t.Fatalf("DBErrorCode(%s) = %v,%v want %v", state, got, ok, want)
		}
	}
	if _, ok := DBErrorCode(stderrs.New("plain")); ok {
		t.Fatalf("plain error classified as pg")
	}
}

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "x") != nil || FromPostgresf(nil, "x %d", 1) != nil {
		t.Fatalf("nil must stay nil")
	}
	err := FromPostgresf(&pgconn.PgError{Code: "23505"}, "save run %s", "r1")
	if CodeOf(err) != ErrorCodeConflict {
		t.Fatalf("code = %v", CodeOf(err))
	}
	if got := FromPostgres(stderrs.New("conn reset"), "list runs"); CodeOf(got) != ErrorCodeDB {
		t.Fatalf("foreign error code = %v", CodeOf(got))
	}
}

func TestIsRetryable(t *testing.T) {
	retry := []error{
		&pgconn.PgError{Code: "40001"},
		Wrap(&pgconn.PgError{Code: "40P01"}, ErrorCodeDB, "copy"),
		&pgconn.PgError{Code: "57P03"},
		stderrs.New("commit unexpectedly resulted in rollback"),
	}
	for _, err := range retry {
		if !IsRetryable(err) {
			t.Fatalf("want retryable: %v", err)
		}
	}
	fatal := []error{
		nil,
		context.Canceled,
		fmt.Errorf("copy: %w", context.DeadlineExceeded),
		&pgconn.PgError{Code: "23505"},
		stderrs.New("syntax error"),
	}
	for _, err := range fatal {
		if IsRetryable(err) {
			t.Fatalf("want fatal: %v", err)
		}
	}
}
