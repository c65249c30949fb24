package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Row é uma linha tabular indexada pelo nome da coluna. Valores ausentes
// são representados por nil, nunca por sentinelas numéricos.
type Row map[string]any

// Frame é o modelo tabular que atravessa todos os estágios do pipeline:
// lote recebido, staging acumulado, conjunto limpo e snapshot enriquecido.
// A ordem das colunas é significativa e preservada em cada estágio.
type Frame struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewFrame cria um frame vazio com as colunas informadas
func NewFrame(columns ...string) Frame {
	return Frame{Columns: columns, Rows: []Row{}}
}

// Len retorna a quantidade de linhas do frame
func (f Frame) Len() int {
	return len(f.Rows)
}

// IsEmpty diz se o frame não possui linhas
func (f Frame) IsEmpty() bool {
	return len(f.Rows) == 0
}

// HasColumn verifica se a coluna existe no frame
func (f Frame) HasColumn(name string) bool {
	for _, col := range f.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// Select projeta o frame mantendo apenas as colunas informadas, na ordem
// informada. Linhas preservam a ordem original. Colunas desconhecidas são
// ignoradas silenciosamente.
func (f Frame) Select(columns []string) Frame {
	kept := make([]string, 0, len(columns))
	for _, col := range columns {
		if f.HasColumn(col) {
			kept = append(kept, col)
		}
	}

	out := Frame{Columns: kept, Rows: make([]Row, 0, len(f.Rows))}
	for _, row := range f.Rows {
		projected := make(Row, len(kept))
		for _, col := range kept {
			projected[col] = row[col]
		}
		out.Rows = append(out.Rows, projected)
	}

	return out
}

// DropColumns remove as colunas informadas do frame
func (f Frame) DropColumns(drop ...string) Frame {
	dropSet := make(map[string]bool, len(drop))
	for _, col := range drop {
		dropSet[col] = true
	}

	kept := make([]string, 0, len(f.Columns))
	for _, col := range f.Columns {
		if !dropSet[col] {
			kept = append(kept, col)
		}
	}

	return f.Select(kept)
}

// Rename devolve um frame com colunas renomeadas conforme o mapa.
// Colunas fora do mapa passam sem alteração.
func (f Frame) Rename(renames map[string]string) Frame {
	out := Frame{Columns: make([]string, 0, len(f.Columns)), Rows: make([]Row, 0, len(f.Rows))}
	for _, col := range f.Columns {
		if renamed, ok := renames[col]; ok {
			out.Columns = append(out.Columns, renamed)
		} else {
			out.Columns = append(out.Columns, col)
		}
	}

	for _, row := range f.Rows {
		renamedRow := make(Row, len(row))
		for col, value := range row {
			if renamed, ok := renames[col]; ok {
				renamedRow[renamed] = value
			} else {
				renamedRow[col] = value
			}
		}
		out.Rows = append(out.Rows, renamedRow)
	}

	return out
}

// Head retorna as primeiras n linhas do frame
func (f Frame) Head(n int) Frame {
	if n > len(f.Rows) {
		n = len(f.Rows)
	}

	return Frame{Columns: f.Columns, Rows: f.Rows[:n]}
}

// IsNull diz se o valor representa um dado ausente
func IsNull(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(value)
	case string:
		return strings.TrimSpace(value) == ""
	case []byte:
		return len(value) == 0
	default:
		return false
	}
}

// AsFloat converte o valor de uma célula para float64 quando possível.
// Bancos e arquivos CSV entregam tipos variados para a mesma coluna.
func AsFloat(v any) (float64, bool) {
	switch value := v.(type) {
	case nil:
		return 0, false
	case float64:
		if math.IsNaN(value) {
			return 0, false
		}
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int32:
		return float64(value), true
	case int64:
		return float64(value), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	case []byte:
		return AsFloat(string(value))
	default:
		return 0, false
	}
}

// AsString converte o valor de uma célula para sua forma textual
func AsString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case []byte:
		return string(value)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// ValuesEqual compara duas células tolerando diferenças de representação
// (int64 vs float64, []byte vs string) introduzidas pelo driver do banco.
func ValuesEqual(a, b any) bool {
	if IsNull(a) && IsNull(b) {
		return true
	}
	if IsNull(a) || IsNull(b) {
		return false
	}

	if fa, okA := AsFloat(a); okA {
		if fb, okB := AsFloat(b); okB {
			return fa == fb
		}
		return false
	}

	return AsString(a) == AsString(b)
}

// Fingerprint gera uma chave estável da linha sobre as colunas do frame,
// usada na remoção de linhas exatamente duplicadas.
func (f Frame) Fingerprint(row Row) string {
	var sb strings.Builder
	for _, col := range f.Columns {
		value := row[col]
		if IsNull(value) {
			sb.WriteString("\x00")
		} else if fv, ok := AsFloat(value); ok {
			sb.WriteString(strconv.FormatFloat(fv, 'g', -1, 64))
		} else {
			sb.WriteString(AsString(value))
		}
		sb.WriteString("\x1f")
	}
	return sb.String()
}
