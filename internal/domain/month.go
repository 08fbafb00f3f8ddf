package domain

import (
	"fmt"
	"strings"
	"time"
)

// Month is a canonical lowercase Spanish month name as stored on allocations.
type Month string

const (
	January   Month = "enero"
	February  Month = "febrero"
	March     Month = "marzo"
	April     Month = "abril"
	May       Month = "mayo"
	June      Month = "junio"
	July      Month = "julio"
	August    Month = "agosto"
	September Month = "septiembre"
	October   Month = "octubre"
	November  Month = "noviembre"
	December  Month = "diciembre"
)

// Months lists the canonical months in calendar order.
var Months = []Month{
	January, February, March, April, May, June,
	July, August, September, October, November, December,
}

// MonthOf maps a calendar month to its canonical name.
func MonthOf(m time.Month) Month {
	return Months[int(m)-1]
}

// ParseMonth accepts a canonical month name in any case.
func ParseMonth(s string) (Month, error) {
	m := Month(strings.ToLower(strings.TrimSpace(s)))
	if m.Index() < 0 {
		return "", fmt.Errorf("invalid month %q", s)
	}
	return m, nil
}

// Index returns the zero-based calendar position, or -1 for unknown names.
func (m Month) Index() int {
	for i, v := range Months {
		if v == m {
			return i
		}
	}
	return -1
}

func (m Month) Valid() bool { return m.Index() >= 0 }

// Title returns the capitalized name used in report headers.
func (m Month) Title() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}
