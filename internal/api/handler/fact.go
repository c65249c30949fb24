package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vfg2006/campaign-pipeline-api/internal/usecases/pipelining"
	"github.com/vfg2006/campaign-pipeline-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-pipeline-api/pkg/log"
)

// PreviewFact retorna as primeiras linhas do snapshot publicado
func PreviewFact(service pipelining.Pipeliner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		limit := 5
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro 'limit' inválido", nil)
				return
			}
			limit = parsed
		}

		snapshot, err := service.Snapshot(r.Context())
		if err != nil {
			logger.WithError(err).Error("fact: failed to read published snapshot")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Falha ao ler o snapshot publicado", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snapshot.Head(limit)); err != nil {
			logger.WithError(err).Error("fact: failed to encode preview")
		}
	})
}

// ExportFact devolve o snapshot publicado completo como download CSV
func ExportFact(service pipelining.Pipeliner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		snapshot, err := service.Snapshot(r.Context())
		if err != nil {
			logger.WithError(err).Error("fact: failed to read published snapshot")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Falha ao ler o snapshot publicado", nil)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="fact_campaigns_clean.csv"`)

		if err := writeCSV(w, snapshot); err != nil {
			logger.WithError(err).Error("fact: failed to stream CSV export")
			return
		}

		logger.WithField("rows_exported", snapshot.Len()).Info("fact: snapshot exported")
	})
}
