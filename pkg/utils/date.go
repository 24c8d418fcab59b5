package utils

import "time"

// FormatDateRange formata o período do dataset no padrão das telas (dd/mm/yyyy)
func FormatDateRange(start, end time.Time) string {
	if start.IsZero() || end.IsZero() {
		return "No date range"
	}
	return start.Format("02/01/2006") + " - " + end.Format("02/01/2006")
}

// ISOWeek retorna a semana ISO de uma data
func ISOWeek(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}
