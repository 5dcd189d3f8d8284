package server

import (
	"errors"
	"net/http"

	"github.com/shoptext/shoptext/internal/httputil"
	"github.com/shoptext/shoptext/internal/sms"
)

const defaultTestMessage = "Test message from ShopText. Your SMS setup works!"

type testSendInput struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

type testSendOutput struct {
	To        string `json:"to"`
	MessageID string `json:"message_id"`
}

// handleTestSend is the manual test-send path for operators. Unlike the
// webhook pipeline it reports failures back to the caller with a descriptive
// message instead of swallowing them.
func (s *Server) handleTestSend(w http.ResponseWriter, r *http.Request) {
	var in testSendInput
	if !httputil.DecodeJSON(w, r, &in) {
		return
	}
	if in.Message == "" {
		in.Message = defaultTestMessage
	}
	if s.sender == nil || s.cfg.Termii.SenderID == "" {
		httputil.WriteError(w, http.StatusServiceUnavailable,
			"SMS gateway is not configured: set termii.api_key and termii.sender_id")
		return
	}

	to, err := sms.FormatPhone(in.To, s.cfg.Termii.DefaultCountryCode)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.sender.Send(r.Context(), to, in.Message, s.cfg.Termii.SenderID,
		sms.Channel(s.cfg.Termii.Channel), sms.TypePlain)
	if err != nil {
		s.logger.Error("test send failed", "to", to, "error", err)
		switch {
		case errors.Is(err, sms.ErrInvalidRequest):
			httputil.WriteError(w, http.StatusBadRequest, err.Error())
		default:
			// GatewayError and NetworkError both surface verbatim so the
			// operator sees what the provider said.
			httputil.WriteError(w, http.StatusBadGateway, err.Error())
		}
		return
	}

	s.logger.Info("test sms sent", "to", to, "message_id", result.MessageID)
	httputil.WriteJSON(w, http.StatusOK, testSendOutput{To: to, MessageID: result.MessageID})
}

// handleSenderIDs proxies the Termii sender-id listing so operators can check
// whether their sender identity is approved.
func (s *Server) handleSenderIDs(w http.ResponseWriter, r *http.Request) {
	if s.gateway == nil {
		httputil.WriteError(w, http.StatusServiceUnavailable,
			"SMS gateway is not configured: set termii.api_key")
		return
	}

	page, err := s.gateway.FetchSenderIDs(r.Context(),
		r.URL.Query().Get("sender_id"), r.URL.Query().Get("status"))
	if err != nil {
		s.logger.Error("fetching sender IDs failed", "error", err)
		httputil.WriteError(w, http.StatusBadGateway, err.Error())
		return
	}

	senderIDs := page.SenderIDs
	if senderIDs == nil {
		senderIDs = []sms.SenderID{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"sender_ids": senderIDs})
}
