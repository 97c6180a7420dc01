package handler

import (
	"net/http"

	"github.com/vfg2006/rank-tracker-api/internal/domain"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/tracking"
	"github.com/vfg2006/rank-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/rank-tracker-api/pkg/middleware"
)

// SearchKeywords resolve as posições das palavras-chave pedidas e grava as encontradas
func SearchKeywords(service tracking.TrackingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.SearchRequest
		if err := decodeBody(w, r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		response, err := service.Search(r.Context(), userClaims.UserID, req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar palavras-chave")
			return
		}

		respondJSON(w, r, http.StatusOK, response)
	}
}

func ListKeywords(service tracking.TrackingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		records, err := service.ListTracked(r.Context(), userClaims.UserID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar palavras-chave")
			return
		}

		respondJSON(w, r, http.StatusOK, records)
	}
}

func KeywordOptions(service tracking.TrackingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		options, err := service.HistoryOptions(r.Context(), userClaims.UserID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar opções do histórico")
			return
		}

		respondJSON(w, r, http.StatusOK, options)
	}
}

func KeywordQuota(service tracking.TrackingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		decision, err := service.KeywordQuota(r.Context(), userClaims.UserID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao consultar a cota")
			return
		}

		respondJSON(w, r, http.StatusOK, decision)
	}
}

// RankMap analisa a concorrência local no Google Maps
func RankMap(service tracking.TrackingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.RankMapRequest
		if err := decodeBody(w, r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		response, err := service.RankMap(r.Context(), userClaims.UserID, req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao analisar o mapa")
			return
		}

		respondJSON(w, r, http.StatusOK, response)
	}
}
