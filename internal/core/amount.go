// AngelaMos | 2026
// amount.go

package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Amount is a NUMERIC money value carried as the decimal text Postgres
// returns, so totals never round through binary floating point.
type Amount string

func (a *Amount) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = "0"
	case string:
		*a = Amount(strings.TrimSpace(v))
	case []byte:
		*a = Amount(strings.TrimSpace(string(v)))
	case int64:
		*a = Amount(strconv.FormatInt(v, 10))
	default:
		return fmt.Errorf("scan amount: unsupported type %T", src)
	}
	return nil
}

// String renders the amount with exactly two fraction digits.
func (a Amount) String() string {
	s := string(a)
	if s == "" {
		return "0.00"
	}

	sign := ""
	if s[0] == '-' || s[0] == '+' {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) < 2 {
		frac += strings.Repeat("0", 2-len(frac))
	}

	return sign + whole + "." + frac[:2]
}
