package twofa

import (
	"encoding/json"
	"net/http"
)

const (
	msgInvalidBody      = "Invalid request body"
	msgDecryptionFailed = "Decryption failed"
	msgSeedMissing      = "Seed not decrypted yet"
	msgGenerationFailed = "TOTP generation failed"
	msgVerifyFailed     = "Verification failed"
	msgMissingCode      = "Missing code"
)

type statusResponse struct {
	Status string `json:"status"`
}

type validResponse struct {
	Valid bool `json:"valid"`
}

type errorResponse struct {
	Error string `json:"error"`
	Msg   string `json:"msg,omitempty"`
}

// jsonResponse renders a body with a fixed status.
type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

func ok(body any) jsonResponse {
	return jsonResponse{status: http.StatusOK, body: body}
}

func fail(status int, message, diagnostic string) jsonResponse {
	return jsonResponse{status: status, body: errorResponse{Error: message, Msg: diagnostic}}
}
