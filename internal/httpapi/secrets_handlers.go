package httpapi

import (
	"encoding/json"
	"net/http"

	"salesscout-engine/internal/secrets"
)

type SecretsHandler struct{}

type setSecretReq struct {
	Value string `json:"value"`
}

func (h SecretsHandler) setSecret(w http.ResponseWriter, r *http.Request, account string) {
	var req setSecretReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := secrets.Set(account, req.Value); err != nil {
		http.Error(w, "failed to store secret: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h SecretsHandler) SetRegistryToken(w http.ResponseWriter, r *http.Request) {
	h.setSecret(w, r, secrets.AccountRegistry)
}

func (h SecretsHandler) SetOpenRouterKey(w http.ResponseWriter, r *http.Request) {
	h.setSecret(w, r, secrets.AccountOpenRouter)
}

func (h SecretsHandler) SetGatewaySecret(w http.ResponseWriter, r *http.Request) {
	h.setSecret(w, r, secrets.AccountGateway)
}
