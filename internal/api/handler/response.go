package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/scanning"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/tracking"
	"github.com/vfg2006/rank-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/rank-tracker-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBodyBytes = 1 << 20

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeServiceError traduz os erros tipados dos casos de uso para a resposta padronizada
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var (
		trackingErr *tracking.TrackingError
		scanErr     *scanning.ScanError
		authErr     *authenticating.AuthError
	)

	switch {
	case errors.As(err, &trackingErr):
		var details any
		if trackingErr.Quota != nil {
			details = trackingErr.Quota
		}
		logServiceError(r, trackingErr.Code, err)
		apiErrors.WriteError(w, trackingErr.Code, trackingErr.Error(), details)

	case errors.As(err, &scanErr):
		logServiceError(r, scanErr.Code, err)
		apiErrors.WriteError(w, scanErr.Code, scanErr.Error(), nil)

	case errors.As(err, &authErr):
		logServiceError(r, authErr.Code, err)
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)

	default:
		log.ForContext(r.Context()).WithError(err).Error(fallback)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}

func logServiceError(r *http.Request, code string, err error) {
	logger := log.ForContext(r.Context()).WithFields(log.Fields{
		"path":  r.URL.Path,
		"code":  code,
		"error": err.Error(),
	})

	if code == apiErrors.ErrDatabaseOperation || code == apiErrors.ErrExternalService || code == apiErrors.ErrInternalServer {
		logger.Error("Erro ao processar requisição")
		return
	}
	logger.Warn("Requisição rejeitada")
}
