package errors

import (
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgCodes maps the SQLSTATEs a caller can cause onto catalog codes; anything else is a server error
var pgCodes = map[string]ErrorCode{
	"23505": ErrorCodeConflict,       // unique_violation
	"23503": ErrorCodeInvalidRequest, // foreign_key_violation
	"23502": ErrorCodeInvalidRequest, // not_null_violation
	"23514": ErrorCodeInvalidRequest, // check_violation
	"22001": ErrorCodeInvalidRequest, // string_data_right_truncation
	"22P02": ErrorCodeInvalidRequest, // invalid_text_representation
	"22007": ErrorCodeInvalidRequest, // invalid_datetime_format
}

// constraintSuffixes are the postgres default constraint name endings
var constraintSuffixes = []string{"_key", "_fkey", "_check", "_not_null", "_pkey", "_idx"}

// ExtractPgError returns the *pgconn.PgError at the root of err
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(Root(err), &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// DBErrorCode maps a postgres error to a catalog code; ok is false when err is not a PgError
func DBErrorCode(err error) (code ErrorCode, ok bool) {
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return ErrorCodeServer, false
	}
	if c, known := pgCodes[pgErr.Code]; known {
		return c, true
	}
	return ErrorCodeServer, true
}

// FromPostgres wraps err with its mapped code and msg, attaching the offending column
// when postgres names one. nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, _ := DBErrorCode(err)
	out := Wrap(err, code, msg)
	if pgErr, ok := ExtractPgError(err); ok {
		if f := pgField(pgErr); f != "" {
			out = WithField(out, f)
		}
	}
	return out
}

// pgField names the column behind a constraint failure: the column itself when reported,
// otherwise the constraint name minus its table prefix and default suffix
// (queues_uuid_key on queues -> uuid)
func pgField(e *pgconn.PgError) string {
	if col := strings.TrimSpace(e.ColumnName); col != "" {
		return col
	}
	c := strings.TrimSpace(e.ConstraintName)
	if c == "" {
		return ""
	}
	if t := strings.TrimSpace(e.TableName); t != "" {
		c = strings.TrimPrefix(c, t+"_")
	}
	for _, s := range constraintSuffixes {
		if strings.HasSuffix(c, s) {
			c = strings.TrimSuffix(c, s)
			break
		}
	}
	if c == "" || c == e.ConstraintName {
		return ""
	}
	return c
}
