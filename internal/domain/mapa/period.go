package mapa

import (
	"fmt"
	"regexp"
	"time"

	"github.com/agrofiscal/mapa-api/internal/domain"
)

// Period identifica um trimestre de declaração no formato "Q1-2025".
type Period string

var periodRe = regexp.MustCompile(`^Q[1-4]-\d{4}$`)

// ParsePeriod valida a representação textual de um trimestre.
func ParsePeriod(s string) (Period, error) {
	if !periodRe.MatchString(s) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidPeriod, s)
	}
	return Period(s), nil
}

// PeriodFromDate deriva o trimestre da data de emissão de uma NF-e.
func PeriodFromDate(t time.Time) Period {
	quarter := (int(t.Month())-1)/3 + 1
	return Period(fmt.Sprintf("Q%d-%d", quarter, t.Year()))
}

// Quarter devolve o número do trimestre (1 a 4).
func (p Period) Quarter() int {
	return int(p[1] - '0')
}

// Year devolve o ano do período.
func (p Period) Year() int {
	var year int
	fmt.Sscanf(string(p[3:]), "%d", &year)
	return year
}

func (p Period) String() string { return string(p) }
