package utils

import "time"

const monthKeyFormat = "2006-01"

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// MonthKey retorna a chave de mês-calendário no formato YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format(monthKeyFormat)
}

// StartOfDay normaliza o instante para 00:00:00.000 do mesmo dia.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay normaliza o instante para 23:59:59.999 do mesmo dia.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
