package pipelining

import (
	"github.com/vfg2006/campaign-pipeline-api/internal/domain"
)

// Align projeta o lote recebido sobre o schema do staging: mantém apenas as
// colunas que existem no staging, preservando a ordem das linhas e a ordem
// original das colunas do lote. Interseção vazia não é erro; o resultado é
// um lote sem colunas úteis e os filtros de campos obrigatórios descartam
// as linhas dele mais adiante.
func Align(batch domain.Frame, stagingColumns []string) domain.Frame {
	known := make(map[string]bool, len(stagingColumns))
	for _, col := range stagingColumns {
		known[col] = true
	}

	kept := make([]string, 0, len(batch.Columns))
	for _, col := range batch.Columns {
		if known[col] {
			kept = append(kept, col)
		}
	}

	return batch.Select(kept)
}
