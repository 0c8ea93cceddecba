package controllers

import (
	"net/http"
	"time"

	"github.com/surjohq/surjo-backend/api/responses"
	"github.com/surjohq/surjo-backend/pkg/logger"
	"github.com/surjohq/surjo-backend/pkg/sysinfo"
)

type helloResponse struct {
	Message    string           `json:"message"`
	ServerTime time.Time        `json:"server_time"`
	LoadData   sysinfo.LoadData `json:"load_data"`
}

// Hello answers the status endpoint with the server time and a host load
// snapshot. A failed load read degrades to zeroes instead of failing the
// request.
func Hello(sampler sysinfo.Sampler, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var load sysinfo.LoadData
		if sampler != nil {
			sampled, err := sampler.Sample(r.Context())
			if err != nil {
				if logg != nil {
					logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "load sample failed")
				}
			} else {
				load = sampled
			}
		}

		responses.WriteSuccess(w, helloResponse{
			Message:    "Hello World",
			ServerTime: time.Now().UTC(),
			LoadData:   load,
		})
	}
}
