package webhook

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/shoptext/shoptext/internal/sms"
	"github.com/shoptext/shoptext/internal/template"
)

// maxBodyBytes caps how much webhook body we read. Shopify order payloads are
// well under this; anything bigger fails signature verification anyway.
const maxBodyBytes = 1 << 20

type eventKind int

const (
	orderCreate eventKind = iota
	orderFulfilled
)

func (k eventKind) String() string {
	if k == orderFulfilled {
		return "orders/fulfilled"
	}
	return "orders/create"
}

// Config holds the settings the webhook pipeline needs per process.
type Config struct {
	// WebhookSecret signs inbound deliveries. Empty means every delivery is
	// rejected as unauthenticated.
	WebhookSecret string
	// SenderID is the alphanumeric identity shown to SMS recipients. Empty
	// means the gateway is unconfigured and events are acknowledged no-ops.
	SenderID string
	// Channel is the Termii route; defaults to generic.
	Channel sms.Channel
	// DefaultCountryCode is prepended to locally-formatted numbers, e.g. "234".
	DefaultCountryCode string
}

// Handler drives one webhook delivery through
// verify → parse → resolve → dispatch → acknowledge.
// Each invocation is one-shot and stateless; concurrent deliveries share
// nothing but the injected collaborators.
type Handler struct {
	cfg       Config
	templates template.Source
	sender    sms.Sender
	logger    *slog.Logger
}

// NewHandler creates a Handler. templates and sender are the pipeline's only
// collaborators; sender may be nil when the gateway is unconfigured.
func NewHandler(cfg Config, templates template.Source, sender sms.Sender, logger *slog.Logger) *Handler {
	if cfg.Channel == "" {
		cfg.Channel = sms.ChannelGeneric
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{cfg: cfg, templates: templates, sender: sender, logger: logger}
}

// OrderCreate handles the orders/create webhook and sends the order
// confirmation SMS.
func (h *Handler) OrderCreate(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, orderCreate)
}

// OrderFulfilled handles the orders/fulfilled webhook and sends the shipment
// notification SMS.
func (h *Handler) OrderFulfilled(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, orderFulfilled)
}

// handle acknowledges with 200 on every path except an invalid signature
// (401) or an unparseable body (400). Failures past the parse boundary are
// logged and swallowed: Shopify redelivers non-2xx responses, and redelivery
// cannot fix a missing phone number or a gateway outage.
func (h *Handler) handle(w http.ResponseWriter, r *http.Request, kind eventKind) {
	// The raw bytes are read once and reused for both verification and
	// parsing. Re-serializing would invalidate the signature.
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Warn("webhook body read failed", "topic", kind.String(), "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if !VerifySignature(h.cfg.WebhookSecret, raw, r.Header.Get(HeaderSignature)) {
		h.logger.Warn("webhook signature verification failed",
			"topic", kind.String(), "body_bytes", len(raw))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var event OrderEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		h.logger.Warn("webhook payload is not valid JSON", "topic", kind.String(), "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	shop := r.Header.Get(HeaderShopDomain)
	if shop == "" {
		shop = event.ShopDomain
	}
	if shop == "" {
		h.logger.Warn("webhook missing shop domain", "topic", kind.String(), "order_id", event.ID.String())
	} else {
		h.process(r, kind, shop, &event)
	}

	w.WriteHeader(http.StatusOK)
}

// process runs the resolved → dispatched leg. Every return is a logged,
// silently-acknowledged outcome.
func (h *Handler) process(r *http.Request, kind eventKind, shop string, event *OrderEvent) {
	ctx := r.Context()
	log := h.logger.With("topic", kind.String(), "shop", shop, "order_id", event.ID.String())

	phone := event.ResolvePhone()
	if phone == "" {
		log.Info("no phone number on order, skipping")
		return
	}

	if h.sender == nil || h.cfg.SenderID == "" {
		log.Error("sms gateway not configured, skipping send")
		return
	}

	tpls, err := h.templates.Get(ctx, shop)
	if err != nil {
		log.Error("loading shop templates failed, using defaults", "error", err)
		tpls = template.Defaults()
	}

	to, err := sms.FormatPhone(phone, h.cfg.DefaultCountryCode)
	if err != nil {
		log.Warn("phone number unusable", "error", err)
		return
	}

	var tpl string
	renderCtx := map[string]string{
		"customer_name": event.CustomerName(),
		"order_number":  event.OrderLabel(),
	}
	switch kind {
	case orderFulfilled:
		tpl = tpls.Fulfillment
		number, url := event.Tracking()
		renderCtx["tracking_number"] = number
		renderCtx["tracking_url"] = url
	default:
		tpl = tpls.OrderConfirmation
		renderCtx["total_price"] = event.Total()
	}
	message := template.Render(tpl, renderCtx)

	result, err := h.sender.Send(ctx, to, message, h.cfg.SenderID, h.cfg.Channel, sms.TypePlain)
	if err != nil {
		var nerr *sms.NetworkError
		cause := "gateway"
		if errors.As(err, &nerr) {
			cause = "network"
		}
		log.Error("sms send failed", "to", to, "cause", cause, "error", err)
		return
	}
	log.Info("sms sent", "to", to, "region", sms.PhoneCountry(to), "message_id", result.MessageID)
}
