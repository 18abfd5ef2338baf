package model

// TimestampLayout is the sortable text form every ledger timestamp column
// is stored in.
const TimestampLayout = "2006-01-02 15:04:05"

const (
	DateLayout = "2006-01-02"

	minTimestamp = "0000-01-01 00:00:00"
	maxTimestamp = "9999-12-31 23:59:59"
)

// DateRange is an inclusive range over timestamp text. Active=false means
// the report runs over all time. From > To is allowed and matches nothing.
type DateRange struct {
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Active bool   `json:"active"`
}

// NewDateRange normalizes the raw from/to query values. A bound that is
// missing or not a date is treated as open.
func NewDateRange(from, to string) DateRange {
	fromOK := IsDate(from)
	toOK := IsDate(to)

	switch {
	case fromOK && toOK:
		return DateRange{From: from[:10] + " 00:00:00", To: to[:10] + " 23:59:59", Active: true}
	case fromOK:
		return DateRange{From: from[:10] + " 00:00:00", To: maxTimestamp, Active: true}
	case toOK:
		return DateRange{From: minTimestamp, To: to[:10] + " 23:59:59", Active: true}
	default:
		return DateRange{}
	}
}

// IsDate reports whether s starts with DDDD-DD-DD. Anything after the first
// ten characters is ignored.
func IsDate(s string) bool {
	if len(s) < 10 {
		return false
	}
	for i := 0; i < 10; i++ {
		c := s[i]
		switch i {
		case 4, 7:
			if c != '-' {
				return false
			}
		default:
			if c < '0' || c > '9' {
				return false
			}
		}
	}
	return true
}
