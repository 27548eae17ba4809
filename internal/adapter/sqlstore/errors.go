package sqlstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
)

const (
	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

// uniqueFields are matched against the violated index name, most specific first.
var uniqueFields = []string{"username", "email", "name"}

// translate maps driver constraint errors onto domain errors. op names the
// failed operation for everything else.
func translate(err error, op string) error {
	if err == nil {
		return nil
	}

	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlDuplicateEntry:
			return &domain.UniqueViolation{Field: uniqueField(me.Message), Err: err}
		case mysqlRowIsReferenced:
			return fmt.Errorf("%s: %w", op, domain.ErrInUse)
		case mysqlNoReferencedRow:
			return fmt.Errorf("%s: referenced record: %w", op, domain.ErrNotFound)
		}
	}

	var se *sqlite.Error
	if errors.As(err, &se) {
		msg := se.Error()
		switch {
		case se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE,
			se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY,
			strings.Contains(msg, "UNIQUE constraint failed"):
			return &domain.UniqueViolation{Field: uniqueField(msg), Err: err}
		case se.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY,
			strings.Contains(msg, "FOREIGN KEY constraint failed"):
			if strings.HasPrefix(op, "delete") {
				return fmt.Errorf("%s: %w", op, domain.ErrInUse)
			}
			return fmt.Errorf("%s: referenced record: %w", op, domain.ErrNotFound)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

// uniqueField extracts the column name from a duplicate-key message:
// "... for key 'anglers.username'" (mysql) or
// "UNIQUE constraint failed: anglers.username" (sqlite).
func uniqueField(msg string) string {
	if i := strings.LastIndex(msg, "for key "); i >= 0 {
		msg = msg[i:]
	} else if i := strings.LastIndex(msg, "failed: "); i >= 0 {
		msg = msg[i:]
	}
	for _, f := range uniqueFields {
		if strings.Contains(msg, f) {
			return f
		}
	}
	return "record"
}
