package webhook

import (
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Handler ingests gateway webhook deliveries: verify -> parse -> resolve
// account -> classify -> dispatch. Requests are independent and may run
// concurrently; all cross-request consistency comes from the store's
// per-row constraints.
type Handler struct {
	store  Repository
	config *Config
	log    zerolog.Logger
}

// NewHandler creates a new webhook ingestion handler.
func NewHandler(store Repository, config *Config, log zerolog.Logger) *Handler {
	return &Handler{
		store:  store,
		config: config,
		log:    log.With().Str("component", "webhook").Logger(),
	}
}

// errorResponse writes a JSON error response.
func errorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func okResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		errorResponse(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Verification must see the exact transport bytes, before any decoding.
	body, err := io.ReadAll(r.Body)
	if err != nil {
		errorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if !VerifySignature(body, r.Header.Get(SignatureHeader), h.config.Secret) {
		h.log.Warn().Msg("rejected delivery with invalid signature")
		errorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	payload, err := ParsePayload(body)
	if err != nil {
		h.log.Warn().Err(err).Msg("rejected undecodable delivery")
		errorResponse(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	kind := Classify(payload)
	log := h.log.With().
		Str("event_id", uuid.New().String()).
		Str("event", kind.String()).
		Logger()

	// Unrecognized shapes are acknowledged without touching the store; a
	// non-2xx here would make the gateway redeliver them forever.
	if kind == EventUnknown {
		log.Debug().Msg("ignoring unknown event shape")
		okResponse(w)
		return
	}

	account, err := h.getOrCreateAccount(h.config.AccountNumber, h.config.AccountName)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve account")
		errorResponse(w, "Server error", http.StatusInternalServerError)
		return
	}

	now := time.Now()

	switch kind {
	case EventMessage:
		err = h.handleMessage(account, payload, now, log)
	case EventAck:
		err = h.handleAck(account, payload, now, log)
	case EventGroupParticipants:
		err = h.handleGroupParticipants(account, payload, now, log)
	case EventMessageRevoked:
		err = h.handleRevoke(account, payload, now, log)
	case EventMessageEdited:
		err = h.handleEdit(account, payload, now, log)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to process delivery")
		errorResponse(w, "Server error", http.StatusInternalServerError)
		return
	}

	okResponse(w)
}
