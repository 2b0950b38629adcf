package http

import (
	"net/http"

	"github.com/m-mizutani/prscout/pkg/domain/model"
	"github.com/m-mizutani/prscout/pkg/domain/types"
)

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	status := &model.HealthStatus{
		Status:  "healthy",
		Service: "prscout",
		Version: types.Version,
	}

	writeJSON(w, status, http.StatusOK)
}
