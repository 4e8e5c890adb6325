package utils

import (
	"fmt"
	"time"
)

// Brazilian Portuguese month names, indexed by time.Month.
var ptBRMonths = [...]string{
	time.January:   "janeiro",
	time.February:  "fevereiro",
	time.March:     "março",
	time.April:     "abril",
	time.May:       "maio",
	time.June:      "junho",
	time.July:      "julho",
	time.August:    "agosto",
	time.September: "setembro",
	time.October:   "outubro",
	time.November:  "novembro",
	time.December:  "dezembro",
}

// FormatPtBR renders a timestamp the way booking notifications display it,
// e.g. "dia 10 de junho às 14:00h".
func FormatPtBR(t time.Time) string {
	return fmt.Sprintf("dia %02d de %s às %d:%02dh", t.Day(), ptBRMonths[t.Month()], t.Hour(), t.Minute())
}
