package repository

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-pipeline-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-pipeline-api/internal/domain"
)

const stagingTable = "stg_campaigns_raw"

// StagingRepository é o recurso de staging: acumula todos os lotes crus já
// ingeridos. A inserção é sempre append; duplicatas são esperadas e
// resolvidas na limpeza, nunca aqui.
type StagingRepository interface {
	ColumnNames(ctx context.Context) ([]string, error)
	Append(ctx context.Context, batch domain.Frame) error
	ReadAll(ctx context.Context) (domain.Frame, error)
}

type stagingRepository struct {
	conn *postgres.Connection
}

func NewStagingRepository(conn *postgres.Connection) StagingRepository {
	return &stagingRepository{
		conn: conn,
	}
}

// ColumnNames retorna as colunas da tabela de staging na ordem de definição
func (r *stagingRepository) ColumnNames(ctx context.Context) ([]string, error) {
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = $1
		ORDER BY ordinal_position;
	`

	rows, err := r.conn.Query(ctx, query, stagingTable)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar colunas do staging: %w", err)
	}
	defer rows.Close()

	columns := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("erro ao escanear nome de coluna: %w", err)
		}
		columns = append(columns, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return columns, nil
}

// Append insere o lote alinhado no staging. Colunas ausentes do lote ficam
// como NULL por conta do próprio banco. Lote vazio é no-op.
func (r *stagingRepository) Append(ctx context.Context, batch domain.Frame) error {
	err := insertFrame(ctx, r.conn.DB, stagingTable, batch)
	if err != nil {
		if pqErr, ok := errors.Cause(err).(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return errors.Wrap(err, "erro ao inserir lote no staging")
	}

	return nil
}

// ReadAll lê todo o histórico acumulado do staging
func (r *stagingRepository) ReadAll(ctx context.Context) (domain.Frame, error) {
	rows, err := r.conn.Query(ctx, fmt.Sprintf("SELECT * FROM %s;", stagingTable))
	if err != nil {
		return domain.Frame{}, errors.Wrap(err, "erro ao ler o staging completo")
	}
	defer rows.Close()

	return scanFrame(rows)
}
