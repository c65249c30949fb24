package pipelining

import (
	"context"

	"github.com/vfg2006/campaign-pipeline-api/internal/domain"
)

// Pipeliner é a porta de entrada do pipeline de limpeza e derivação de
// features de campanhas.
type Pipeliner interface {
	// Run executa o pipeline completo sobre um lote: alinha, acumula no
	// staging, limpa o histórico inteiro, deriva features e republica o
	// snapshot da tabela fato. Um lote vazio equivale a republicar o
	// estado atual do staging.
	Run(ctx context.Context, batch domain.Frame) (*domain.PipelineResult, error)

	// Snapshot retorna o conteúdo atualmente publicado na tabela fato
	Snapshot(ctx context.Context) (domain.Frame, error)
}
