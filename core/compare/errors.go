package compare

import (
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"dbcompare/core/fingerprint"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// Classify maps a per-table error to its kind.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, fingerprint.ErrStorage) {
		return KindStorage
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return KindConnection
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindConnection
	}

	// Class 08 is "connection exception".
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && strings.HasPrefix(string(pqErr.Code), "08") {
		return KindConnection
	}

	return KindQuery
}
