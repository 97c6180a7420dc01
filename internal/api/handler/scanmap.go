package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/rank-tracker-api/internal/domain"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/scanning"
	"github.com/vfg2006/rank-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/rank-tracker-api/pkg/log"
	"github.com/vfg2006/rank-tracker-api/pkg/middleware"
)

type GrantCreditsRequest struct {
	Amount int `json:"amount"`
}

func CreateScanCampaign(service scanning.ScanService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.CreateScanCampaignRequest
		if err := decodeBody(w, r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		campaign, err := service.CreateCampaign(r.Context(), userClaims.UserID, req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar campanha de scan")
			return
		}

		respondJSON(w, r, http.StatusCreated, campaign)
	}
}

func ScanUsage(service scanning.ScanService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		usage, err := service.Usage(r.Context(), userClaims.UserID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao consultar uso de scans")
			return
		}

		respondJSON(w, r, http.StatusOK, usage)
	}
}

// GrantScanCredits registra créditos comprados por um usuário
func GrantScanCredits(service scanning.ScanService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetUserID, err := strconv.Atoi(httprouter.ParamsFromContext(r.Context()).ByName("id"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do usuário inválido", nil)
			return
		}

		var req GrantCreditsRequest
		if err := decodeBody(w, r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		user, err := service.GrantCredits(r.Context(), targetUserID, req.Amount)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao conceder créditos")
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"user_id": targetUserID,
			"amount":  req.Amount,
		}).Info("Créditos de scan concedidos pelo administrador")

		respondJSON(w, r, http.StatusOK, user)
	}
}
