package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberpro/internal/domain"
)

const pgUniqueViolation = "23505"

// translate maps driver errors onto the domain sentinels. Unique violations
// are attributed by constraint name; dup is returned when the violated
// constraint cannot be identified.
func translate(err error, dup error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}

	detail, ok := uniqueViolation(err)
	if !ok {
		return err
	}

	switch {
	case strings.Contains(detail, "phone"):
		return domain.ErrPhoneTaken
	case strings.Contains(detail, "slug"):
		return domain.ErrSlugTaken
	case strings.Contains(detail, "email"):
		return domain.ErrEmailTaken
	case strings.Contains(detail, "appointment"):
		return domain.ErrSlotTaken
	}
	if dup != nil {
		return dup
	}
	return err
}

// uniqueViolation reports whether err is a unique constraint violation and
// returns whatever names the constraint: the postgres constraint name or
// the sqlite column list.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return "", false
		}
		return strings.ToLower(pgErr.ConstraintName + " " + pgErr.TableName), true
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}

	msg := err.Error()
	if i := strings.Index(msg, "UNIQUE constraint failed"); i >= 0 {
		return strings.ToLower(msg[i:]), true
	}
	return "", false
}
