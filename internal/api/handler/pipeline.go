package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/campaign-pipeline-api/internal/usecases/pipelining"
	"github.com/vfg2006/campaign-pipeline-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-pipeline-api/pkg/log"
)

const maxUploadBytes = 32 << 20 // 32 MiB por upload

// RunPipeline recebe um lote CSV via multipart e executa o pipeline
// completo: alinhar, acumular no staging, limpar, enriquecer e republicar
// o snapshot. Retorna o resumo da execução e uma prévia do resultado.
func RunPipeline(service pipelining.Pipeliner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			logger.WithError(err).Warn("pipeline: invalid multipart upload")
			apiErrors.WriteError(w, apiErrors.ErrMalformedBatch, "Upload inválido: esperado multipart com campo 'file'", nil)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			logger.WithError(err).Warn("pipeline: missing file field in upload")
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo 'file' é obrigatório", nil)
			return
		}
		defer file.Close()

		batch, err := parseCSVBatch(file)
		if err != nil {
			logger.WithFields(log.Fields{
				"filename": header.Filename,
				"error":    err.Error(),
			}).Warn("pipeline: failed to parse uploaded CSV")

			apiErrors.WriteError(w, apiErrors.ErrMalformedBatch, "Arquivo enviado não é um CSV tabular válido", nil)
			return
		}

		logger.WithFields(log.Fields{
			"filename":   header.Filename,
			"rows_batch": batch.Len(),
		}).Info("pipeline: received batch upload")

		result, err := service.Run(r.Context(), batch)
		if err != nil {
			logger.WithError(err).Error("pipeline: run failed")
			apiErrors.WriteError(w, apiErrors.ErrPipelineFailure, "Falha ao executar o pipeline", nil)
			return
		}

		logger.WithFields(log.Fields{
			"run_id":         result.RunID,
			"rows_published": result.PublishedRows,
		}).Info("pipeline: run completed")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithError(err).Error("pipeline: failed to encode response")
		}
	})
}
