package pipelining

import (
	"time"

	"github.com/vfg2006/campaign-pipeline-api/internal/domain"
	"github.com/vfg2006/campaign-pipeline-api/pkg/utils"
)

// Enrich deriva os KPIs de marketing e as features de calendário sobre o
// conjunto limpo. Nenhuma linha é descartada aqui: divisões por zero ou por
// operando ausente produzem valor ausente, nunca erro ou infinito. Colunas
// de entrada ausentes do schema agem como colunas inteiramente nulas.
func Enrich(clean domain.Frame) domain.Frame {
	columns := make([]string, 0, len(clean.Columns)+len(domain.DerivedColumns))
	columns = append(columns, clean.Columns...)
	columns = append(columns, domain.DerivedColumns...)

	out := domain.Frame{Columns: columns, Rows: make([]domain.Row, 0, len(clean.Rows))}

	for _, row := range clean.Rows {
		enriched := make(domain.Row, len(columns))
		for col, value := range row {
			enriched[col] = value
		}

		impressions := numericCell(clean, row, domain.ColumnImpressions)
		clicks := numericCell(clean, row, domain.ColumnClicks)
		leads := numericCell(clean, row, domain.ColumnLeads)
		orders := numericCell(clean, row, domain.ColumnOrders)
		spend := numericCell(clean, row, domain.ColumnSpend)
		revenue := numericCell(clean, row, domain.ColumnRevenue)

		putKPI(enriched, domain.ColumnCTR, scale(utils.SafeDiv(clicks, impressions), 100))
		putKPI(enriched, domain.ColumnCPC, utils.SafeDiv(spend, clicks))
		putKPI(enriched, domain.ColumnCPA, utils.SafeDiv(spend, orders))
		putKPI(enriched, domain.ColumnConversionRate, scale(utils.SafeDiv(orders, clicks), 100))
		putKPI(enriched, domain.ColumnROAS, utils.SafeDiv(revenue, spend))
		putKPI(enriched, domain.ColumnProfit, utils.SafeSub(revenue, spend))
		putKPI(enriched, domain.ColumnLeadRate, scale(utils.SafeDiv(leads, clicks), 100))

		putCalendar(enriched, calendarDate(clean, row))

		out.Rows = append(out.Rows, enriched)
	}

	return out
}

// numericCell lê o valor numérico da coluna, tratando coluna inexistente e
// célula nula ou não numérica como valor ausente.
func numericCell(frame domain.Frame, row domain.Row, column string) *float64 {
	if !frame.HasColumn(column) {
		return nil
	}

	value, ok := domain.AsFloat(row[column])
	if !ok {
		return nil
	}

	return &value
}

// scale multiplica um valor opcional por um fator (para KPIs percentuais)
func scale(p *float64, factor float64) *float64 {
	if p == nil {
		return nil
	}

	scaled := *p * factor
	return &scaled
}

// putKPI grava o KPI arredondado para duas casas; ausente permanece ausente
func putKPI(row domain.Row, column string, value *float64) {
	rounded := utils.RoundPtr(value)
	if rounded == nil {
		row[column] = nil
		return
	}
	row[column] = *rounded
}

// calendarDate recupera a data normalizada da linha, quando disponível
func calendarDate(frame domain.Frame, row domain.Row) *time.Time {
	if !frame.HasColumn(domain.ColumnDate) {
		return nil
	}

	parsed, ok := parseCellDate(row[domain.ColumnDate])
	if !ok {
		return nil
	}

	return &parsed
}

// putCalendar grava ano, mês, nome do dia da semana e o indicador de fim de
// semana (sábado e domingo). Sem data, todas as quatro ficam ausentes.
func putCalendar(row domain.Row, date *time.Time) {
	if date == nil {
		row[domain.ColumnYear] = nil
		row[domain.ColumnMonth] = nil
		row[domain.ColumnWeekday] = nil
		row[domain.ColumnIsWeekend] = nil
		return
	}

	row[domain.ColumnYear] = date.Year()
	row[domain.ColumnMonth] = int(date.Month())
	row[domain.ColumnWeekday] = date.Weekday().String()

	if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
		row[domain.ColumnIsWeekend] = 1
	} else {
		row[domain.ColumnIsWeekend] = 0
	}
}
