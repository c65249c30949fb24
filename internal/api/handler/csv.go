package handler

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vfg2006/campaign-pipeline-api/internal/domain"
)

// parseCSVBatch lê um arquivo separado por vírgulas como lote tabular.
// A primeira linha é o cabeçalho. Células vazias viram valor ausente;
// números são convertidos, o resto permanece texto.
func parseCSVBatch(r io.Reader) (domain.Frame, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return domain.Frame{}, nil
	}
	if err != nil {
		return domain.Frame{}, fmt.Errorf("erro ao ler o cabeçalho do CSV: %w", err)
	}

	columns := make([]string, 0, len(header))
	for _, name := range header {
		columns = append(columns, strings.TrimSpace(name))
	}

	frame := domain.NewFrame(columns...)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.Frame{}, fmt.Errorf("erro ao ler linha do CSV: %w", err)
		}

		row := make(domain.Row, len(columns))
		for i, col := range columns {
			if i >= len(record) {
				row[col] = nil
				continue
			}
			row[col] = parseCSVCell(record[i])
		}
		frame.Rows = append(frame.Rows, row)
	}

	return frame, nil
}

// parseCSVCell infere o tipo da célula: ausente, inteiro, decimal ou texto
func parseCSVCell(raw string) any {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
		return parsed
	}

	if parsed, err := strconv.ParseFloat(value, 64); err == nil {
		return parsed
	}

	return value
}

// writeCSV serializa um frame como CSV, cabeçalho incluído. Valores
// ausentes viram células vazias.
func writeCSV(w io.Writer, frame domain.Frame) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(frame.Columns); err != nil {
		return fmt.Errorf("erro ao escrever o cabeçalho do CSV: %w", err)
	}

	for _, row := range frame.Rows {
		record := make([]string, 0, len(frame.Columns))
		for _, col := range frame.Columns {
			value := row[col]
			if domain.IsNull(value) {
				record = append(record, "")
				continue
			}
			record = append(record, formatCSVCell(value))
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("erro ao escrever linha do CSV: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// formatCSVCell evita notação científica em números vindos do banco
func formatCSVCell(value any) string {
	switch v := value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return domain.AsString(value)
	}
}
