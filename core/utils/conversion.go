package utils

import (
	"fmt"
	"strconv"
	"time"
)

// CanonicalTimeLayout is the text form used for time values when rows are hashed in process.
const CanonicalTimeLayout = "2006-01-02 15:04:05.999999999"

// ToCanonicalString converts a scanned column value to the text representation used
// for fingerprinting. NULL (nil) maps to the empty string.
func ToCanonicalString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		// SQL engines render booleans as 1/0.
		if v {
			return "1"
		}
		return "0"
	case time.Time:
		return v.UTC().Format(CanonicalTimeLayout)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
