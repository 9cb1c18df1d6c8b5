package http

import "net/http"

func (a *API) handleMetrics(w http.ResponseWriter, r *http.Request) {
	report, err := a.metricsSvc.Report(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
