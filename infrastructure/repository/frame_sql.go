package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaign-pipeline-api/internal/domain"
)

// Limite de parâmetros por statement do lib/pq é 65535; deixamos folga
// para lotes com muitas colunas.
const maxInsertParams = 60000

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// scanFrame materializa o resultado de uma query como Frame genérico,
// preservando a ordem das colunas do resultado.
func scanFrame(rows *sql.Rows) (domain.Frame, error) {
	columns, err := rows.Columns()
	if err != nil {
		return domain.Frame{}, fmt.Errorf("erro ao obter colunas do resultado: %w", err)
	}

	frame := domain.NewFrame(columns...)

	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return domain.Frame{}, fmt.Errorf("erro ao escanear linha: %w", err)
		}

		row := make(domain.Row, len(columns))
		for i, col := range columns {
			row[col] = normalizeDBValue(values[i])
		}
		frame.Rows = append(frame.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return domain.Frame{}, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return frame, nil
}

// normalizeDBValue converte os tipos crus do driver para os tipos que o
// pipeline entende ([]byte vira string; datas viram string canônica).
func normalizeDBValue(v interface{}) interface{} {
	switch value := v.(type) {
	case []byte:
		return string(value)
	case time.Time:
		return value.Format(domain.DateLayout)
	default:
		return v
	}
}

// insertFrame insere todas as linhas do frame na tabela, em lotes que
// respeitam o limite de parâmetros do driver. Frame sem colunas é no-op.
func insertFrame(ctx context.Context, exec execer, table string, frame domain.Frame) error {
	if frame.IsEmpty() || len(frame.Columns) == 0 {
		return nil
	}

	rowsPerChunk := maxInsertParams / len(frame.Columns)
	if rowsPerChunk < 1 {
		rowsPerChunk = 1
	}

	for start := 0; start < len(frame.Rows); start += rowsPerChunk {
		end := start + rowsPerChunk
		if end > len(frame.Rows) {
			end = len(frame.Rows)
		}

		builder := squirrel.
			Insert(table).
			Columns(frame.Columns...).
			PlaceholderFormat(squirrel.Dollar)

		for _, row := range frame.Rows[start:end] {
			values := make([]interface{}, 0, len(frame.Columns))
			for _, col := range frame.Columns {
				value := row[col]
				if domain.IsNull(value) {
					values = append(values, nil)
				} else {
					values = append(values, value)
				}
			}
			builder = builder.Values(values...)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := exec.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("erro ao executar a query: %w", err)
		}
	}

	return nil
}
