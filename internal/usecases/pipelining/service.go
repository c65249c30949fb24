package pipelining

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-pipeline-api/infrastructure/repository"
	"github.com/vfg2006/campaign-pipeline-api/internal/config"
	"github.com/vfg2006/campaign-pipeline-api/internal/domain"
	"github.com/vfg2006/campaign-pipeline-api/pkg/log"
	"github.com/vfg2006/campaign-pipeline-api/pkg/utils"
)

type Service struct {
	stagingRepo repository.StagingRepository
	factRepo    repository.FactRepository
	cfg         *config.Config
}

func NewService(
	stagingRepo repository.StagingRepository,
	factRepo repository.FactRepository,
	cfg *config.Config,
) Pipeliner {
	return &Service{
		stagingRepo: stagingRepo,
		factRepo:    factRepo,
		cfg:         cfg,
	}
}

// Run executa os cinco estágios em sequência, cada um consumindo a saída
// completa do anterior. Problemas de linha são resolvidos por exclusão nos
// filtros; somente falhas de acesso aos recursos interrompem a execução.
// Uma falha após o append deixa o staging atualizado e o fato desatualizado;
// a recuperação é reexecutar o pipeline inteiro.
func (s *Service) Run(ctx context.Context, batch domain.Frame) (*domain.PipelineResult, error) {
	runID, err := utils.GenerateRunID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar identificador da execução")
	}

	logger := log.ForContext(ctx).WithField("run_id", runID)
	logger.WithField("rows_batch", batch.Len()).Info("pipeline: run started")

	stagingColumns, err := s.stagingRepo.ColumnNames(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao introspectar o schema do staging")
	}

	aligned := Align(batch, stagingColumns)
	if len(aligned.Columns) == 0 && !batch.IsEmpty() {
		logger.Warn("pipeline: batch has no columns in common with staging")
	}

	if err := s.stagingRepo.Append(ctx, aligned); err != nil {
		return nil, errors.Wrap(err, "erro ao acumular o lote no staging")
	}

	raw, err := s.stagingRepo.ReadAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler o staging acumulado")
	}

	clean, stats := Clean(raw)
	enriched := Enrich(clean)
	snapshot := enriched.Rename(domain.FactColumnRenames)

	if err := s.factRepo.Replace(ctx, snapshot); err != nil {
		return nil, errors.Wrap(err, "erro ao publicar o snapshot na tabela fato")
	}

	result := &domain.PipelineResult{
		RunID:         runID,
		BatchRows:     batch.Len(),
		AlignedRows:   aligned.Len(),
		StagingRows:   raw.Len(),
		CleanRows:     clean.Len(),
		PublishedRows: snapshot.Len(),
		Dropped:       stats,
		Preview:       snapshot.Head(s.previewRows()),
	}

	logger.WithFields(log.Fields{
		"rows_staging":   result.StagingRows,
		"rows_clean":     result.CleanRows,
		"rows_published": result.PublishedRows,
	}).Info("pipeline: run finished")

	return result, nil
}

// Snapshot retorna o conteúdo atual da tabela fato
func (s *Service) Snapshot(ctx context.Context) (domain.Frame, error) {
	return s.factRepo.ReadAll(ctx)
}

func (s *Service) previewRows() int {
	if s.cfg == nil || s.cfg.Pipeline.PreviewRows <= 0 {
		return 5
	}
	return s.cfg.Pipeline.PreviewRows
}
