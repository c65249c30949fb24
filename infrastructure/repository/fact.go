package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-pipeline-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-pipeline-api/internal/domain"
)

const factTable = "fact_campaigns_clean"

// FactRepository é o recurso fato: guarda o único snapshot publicado do
// conjunto enriquecido. Cada publicação substitui o conteúdo inteiro.
type FactRepository interface {
	Replace(ctx context.Context, snapshot domain.Frame) error
	ReadAll(ctx context.Context) (domain.Frame, error)
}

type factRepository struct {
	conn *postgres.Connection
}

func NewFactRepository(conn *postgres.Connection) FactRepository {
	return &factRepository{
		conn: conn,
	}
}

// Replace troca o conteúdo da tabela fato pelo snapshot dentro de uma única
// transação: o delete e o insert são atômicos, sem janela de tabela vazia
// observável por leitores.
func (r *factRepository) Replace(ctx context.Context, snapshot domain.Frame) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s;", factTable)); err != nil {
			return fmt.Errorf("erro ao limpar a tabela fato: %w", err)
		}

		if err := insertFrame(ctx, tx, factTable, snapshot); err != nil {
			return fmt.Errorf("erro ao inserir snapshot na tabela fato: %w", err)
		}

		return nil
	})
}

// ReadAll lê o snapshot publicado por inteiro
func (r *factRepository) ReadAll(ctx context.Context) (domain.Frame, error) {
	rows, err := r.conn.Query(ctx, fmt.Sprintf("SELECT * FROM %s;", factTable))
	if err != nil {
		return domain.Frame{}, errors.Wrap(err, "erro ao ler a tabela fato")
	}
	defer rows.Close()

	return scanFrame(rows)
}
