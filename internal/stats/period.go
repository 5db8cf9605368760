package stats

import (
	"time"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/timezone"
)

// Os limites de "hoje" e "deste mês" são derivados na hora da
// consulta, no relógio de parede da barbearia. Não há timer de
// virada de dia: uma sessão aberta atravessando a meia-noite só
// atualiza no próximo refresh explícito.

// DayOf devolve a data local (2006-01-02) da barbearia no instante dado.
func DayOf(tz string, at time.Time) string {
	return at.In(timezone.Location(tz)).Format("2006-01-02")
}

// MonthBounds devolve [primeiro dia do mês, primeiro dia do mês
// seguinte) como datas locais, para filtros date >= from AND date < to.
func MonthBounds(tz string, at time.Time) (from, to string) {
	local := at.In(timezone.Location(tz))
	first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, local.Location())
	next := first.AddDate(0, 1, 0)
	return first.Format("2006-01-02"), next.Format("2006-01-02")
}
