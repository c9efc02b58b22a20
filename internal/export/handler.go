package export

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Barathraj2387/Survey-App/internal"

	handlerutil "github.com/NYCU-SDC/summer/pkg/handler"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/NYCU-SDC/summer/pkg/problem"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Store interface {
	Flatten(ctx context.Context, surveyID uuid.UUID) (Table, error)
}

type Handler struct {
	logger *zap.Logger
	tracer trace.Tracer

	validator     *validator.Validate
	problemWriter *problem.HttpWriter

	store Store
}

func NewHandler(logger *zap.Logger, validator *validator.Validate, problemWriter *problem.HttpWriter, store Store) *Handler {
	return &Handler{
		logger:        logger,
		tracer:        otel.Tracer("export/handler"),
		validator:     validator,
		problemWriter: problemWriter,
		store:         store,
	}
}

func (h *Handler) DownloadHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "DownloadHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	surveyID, err := handlerutil.ParseUUID(r.PathValue("surveyId"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	format := r.PathValue("format")
	encoder, ok := NewEncoder(format)
	if !ok {
		h.problemWriter.WriteError(traceCtx, w, internal.ErrUnsupportedExportFormat, logger)
		return
	}

	table, err := h.store.Flatten(traceCtx, surveyID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	filename := fmt.Sprintf("survey-%s-results.%s", surveyID.String(), encoder.Extension())
	w.Header().Set("Content-Type", encoder.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := encoder.Encode(w, table); err != nil {
		logger.Error("Failed to encode export",
			zap.String("survey_id", surveyID.String()),
			zap.String("format", format),
			zap.Error(err))
	}
}
