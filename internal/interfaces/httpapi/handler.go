package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/nfl-dfs-helper/internal/usecase"
)

type Handler struct {
	rosterService    *usecase.RosterService
	salaryService    *usecase.SalaryService
	admissionService *usecase.AdmissionService
	scheduler        *usecase.RefreshScheduler
	logger           *slog.Logger
	validator        *validator.Validate
}

func NewHandler(
	rosterService *usecase.RosterService,
	salaryService *usecase.SalaryService,
	admissionService *usecase.AdmissionService,
	scheduler *usecase.RefreshScheduler,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		rosterService:    rosterService,
		salaryService:    salaryService,
		admissionService: admissionService,
		scheduler:        scheduler,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
