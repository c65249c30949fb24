package pipelining

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/campaign-pipeline-api/internal/domain"
	"github.com/vfg2006/campaign-pipeline-api/pkg/utils"
)

// shadowSuffix marca colunas duplicadas geradas por appends repetidos de
// lotes alinhados por coluna (artefato do estilo "spend.1").
const shadowSuffix = ".1"

// Clean aplica os filtros de qualidade sobre o staging completo, na ordem
// exigida pelas dependências entre os passos: colunas sombra saem antes da
// comparação de linhas, datas são normalizadas antes do dedup por id.
// Entrada vazia ou totalmente descartada é um resultado válido.
func Clean(raw domain.Frame) (domain.Frame, domain.CleanStats) {
	stats := domain.CleanStats{}

	frame := dropShadowColumns(raw, &stats)
	frame = dropDuplicateRows(frame, &stats)
	frame = dropMissingRequired(frame, &stats)
	frame = dropNonPositiveImpressions(frame, &stats)
	frame = dropNegativeCounters(frame, &stats)
	frame = normalizeDates(frame, &stats)
	frame = dedupeByID(frame, &stats)

	return frame, stats
}

// dropShadowColumns remove colunas ".1" que são cópia exata da coluna base.
// Se qualquer linha diverge, a coluna sombra é mantida.
func dropShadowColumns(frame domain.Frame, stats *domain.CleanStats) domain.Frame {
	toDrop := make([]string, 0)

	for _, col := range frame.Columns {
		if !strings.HasSuffix(col, shadowSuffix) {
			continue
		}

		base := strings.TrimSuffix(col, shadowSuffix)
		if !frame.HasColumn(base) {
			continue
		}

		identical := true
		for _, row := range frame.Rows {
			if !domain.ValuesEqual(row[base], row[col]) {
				identical = false
				break
			}
		}

		if identical {
			toDrop = append(toDrop, col)
		}
	}

	if len(toDrop) == 0 {
		return frame
	}

	stats.ShadowColumnsDropped = len(toDrop)
	return frame.DropColumns(toDrop...)
}

// dropDuplicateRows remove linhas exatamente iguais em todas as colunas
func dropDuplicateRows(frame domain.Frame, stats *domain.CleanStats) domain.Frame {
	seen := make(map[string]bool, len(frame.Rows))
	out := domain.Frame{Columns: frame.Columns, Rows: make([]domain.Row, 0, len(frame.Rows))}

	for _, row := range frame.Rows {
		key := frame.Fingerprint(row)
		if seen[key] {
			stats.DuplicateRows++
			continue
		}
		seen[key] = true
		out.Rows = append(out.Rows, row)
	}

	return out
}

// dropMissingRequired descarta linhas sem valor em campos de negócio
// obrigatórios. Campos obrigatórios ausentes do schema são ignorados,
// não tratados como falha universal.
func dropMissingRequired(frame domain.Frame, stats *domain.CleanStats) domain.Frame {
	present := make([]string, 0, len(domain.RequiredColumns))
	for _, col := range domain.RequiredColumns {
		if frame.HasColumn(col) {
			present = append(present, col)
		}
	}

	if len(present) == 0 {
		return frame
	}

	out := domain.Frame{Columns: frame.Columns, Rows: make([]domain.Row, 0, len(frame.Rows))}
	for _, row := range frame.Rows {
		complete := true
		for _, col := range present {
			if domain.IsNull(row[col]) {
				complete = false
				break
			}
		}

		if !complete {
			stats.MissingRequired++
			continue
		}
		out.Rows = append(out.Rows, row)
	}

	return out
}

// dropNonPositiveImpressions exige impressions > 0 quando a coluna existe
func dropNonPositiveImpressions(frame domain.Frame, stats *domain.CleanStats) domain.Frame {
	if !frame.HasColumn(domain.ColumnImpressions) {
		return frame
	}

	out := domain.Frame{Columns: frame.Columns, Rows: make([]domain.Row, 0, len(frame.Rows))}
	for _, row := range frame.Rows {
		impressions, ok := domain.AsFloat(row[domain.ColumnImpressions])
		if !ok || impressions <= 0 {
			stats.NonPositiveImpressions++
			continue
		}
		out.Rows = append(out.Rows, row)
	}

	return out
}

// dropNegativeCounters descarta linhas com contadores numéricos negativos
func dropNegativeCounters(frame domain.Frame, stats *domain.CleanStats) domain.Frame {
	present := make([]string, 0, len(domain.NonNegativeColumns))
	for _, col := range domain.NonNegativeColumns {
		if frame.HasColumn(col) {
			present = append(present, col)
		}
	}

	if len(present) == 0 {
		return frame
	}

	out := domain.Frame{Columns: frame.Columns, Rows: make([]domain.Row, 0, len(frame.Rows))}
	for _, row := range frame.Rows {
		negative := false
		for _, col := range present {
			if value, ok := domain.AsFloat(row[col]); ok && value < 0 {
				negative = true
				break
			}
		}

		if negative {
			stats.NegativeValues++
			continue
		}
		out.Rows = append(out.Rows, row)
	}

	return out
}

// normalizeDates interpreta a data de forma permissiva e a reescreve na
// forma canônica YYYY-MM-DD. Linhas com data irreconhecível são descartadas.
func normalizeDates(frame domain.Frame, stats *domain.CleanStats) domain.Frame {
	if !frame.HasColumn(domain.ColumnDate) {
		return frame
	}

	out := domain.Frame{Columns: frame.Columns, Rows: make([]domain.Row, 0, len(frame.Rows))}
	for _, row := range frame.Rows {
		parsed, ok := parseCellDate(row[domain.ColumnDate])
		if !ok {
			stats.UnparseableDates++
			continue
		}

		normalized := make(domain.Row, len(row))
		for col, value := range row {
			normalized[col] = value
		}
		normalized[domain.ColumnDate] = parsed.Format(domain.DateLayout)
		out.Rows = append(out.Rows, normalized)
	}

	return out
}

// dedupeByID resolve a ambiguidade de múltiplos registros por id mantendo,
// para cada id, o registro de data mais recente. A ordenação ascendente é
// estável: em empate de data vence a última ocorrência na ordem ordenada.
func dedupeByID(frame domain.Frame, stats *domain.CleanStats) domain.Frame {
	if !frame.HasColumn(domain.ColumnID) {
		return frame
	}

	type decorated struct {
		row  domain.Row
		date time.Time
	}

	sorted := make([]decorated, 0, len(frame.Rows))
	for _, row := range frame.Rows {
		date, _ := parseCellDate(row[domain.ColumnDate])
		sorted = append(sorted, decorated{row: row, date: date})
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].date.Before(sorted[j].date)
	})

	lastIndex := make(map[string]int, len(sorted))
	for i, item := range sorted {
		id := item.row[domain.ColumnID]
		if domain.IsNull(id) {
			continue
		}
		lastIndex[idKey(id)] = i
	}

	out := domain.Frame{Columns: frame.Columns, Rows: make([]domain.Row, 0, len(sorted))}
	for i, item := range sorted {
		id := item.row[domain.ColumnID]
		if !domain.IsNull(id) && lastIndex[idKey(id)] != i {
			stats.DuplicatedIDs++
			continue
		}
		out.Rows = append(out.Rows, item.row)
	}

	return out
}

// idKey normaliza o identificador para comparação entre representações
// numéricas e textuais do mesmo valor.
func idKey(id interface{}) string {
	if value, ok := domain.AsFloat(id); ok {
		return strconv.FormatFloat(value, 'g', -1, 64)
	}
	return domain.AsString(id)
}

// parseCellDate interpreta a célula de data vinda do banco ou de um CSV
func parseCellDate(v interface{}) (time.Time, bool) {
	switch value := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return value, true
	default:
		parsed, err := utils.ParseFlexibleDate(domain.AsString(v))
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}
}
