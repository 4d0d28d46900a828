package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/nfl-dfs-helper/internal/usecase"
)

type jobRunDTO struct {
	Task   string `json:"task"`
	Joined bool   `json:"joined"`
	Result any    `json:"result,omitempty"`
}

// RunRefreshJob triggers one named refresh task. A trigger landing
// while the same task is already running joins that execution.
func (h *Handler) RunRefreshJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshJob")
	defer span.End()

	if h.scheduler == nil {
		writeError(ctx, w, fmt.Errorf("%w: scheduler is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	task := r.PathValue("task")
	result, joined, err := h.scheduler.Trigger(ctx, task)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh job failed", "task", task, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, jobRunDTO{
		Task:   task,
		Joined: joined,
		Result: result,
	})
}

// ListRefreshJobs names the registered refresh tasks.
func (h *Handler) ListRefreshJobs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRefreshJobs")
	defer span.End()

	if h.scheduler == nil {
		writeError(ctx, w, fmt.Errorf("%w: scheduler is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string][]string{"tasks": h.scheduler.TaskNames()})
}
