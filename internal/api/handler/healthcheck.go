package handler

import (
	"net/http"
)

type healthcheckResponse struct {
	Status string `json:"status"`
}

func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(healthcheckResponse{Status: "ok"})
	})
}
