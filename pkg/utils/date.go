package utils

import "time"

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

// ElapsedFraction retorna a fração decorrida de uma janela de veiculação no
// instante informado, limitada ao intervalo [0, 1].
func ElapsedFraction(start, end, now time.Time) float64 {
	if !now.After(start) {
		return 0
	}
	if !now.Before(end) {
		return 1
	}

	total := end.Sub(start)
	if total <= 0 {
		return 1
	}

	return float64(now.Sub(start)) / float64(total)
}

// ClampPeriod ajusta um período de consulta aos limites da janela de
// veiculação. Datas zeradas assumem o limite correspondente da janela.
func ClampPeriod(start, end, flightStart, flightEnd time.Time) (time.Time, time.Time) {
	if start.IsZero() || start.Before(flightStart) {
		start = flightStart
	}
	if end.IsZero() || end.After(flightEnd) {
		end = flightEnd
	}
	return start, end
}
