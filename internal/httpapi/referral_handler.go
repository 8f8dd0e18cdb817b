package httpapi

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/anlev/shopfront/internal/referral"
)

// ClickRecorder mirrors the best-effort click reporter.
type ClickRecorder interface {
	RecordClick(ctx context.Context, agentID string) error
}

type ReferralHandler struct {
	store    referral.Store
	clicks   ClickRecorder
	timeout  time.Duration
	shopPath string
}

func NewReferralHandler(store referral.Store, clicks ClickRecorder, timeout time.Duration) *ReferralHandler {
	return &ReferralHandler{
		store:    store,
		clicks:   clicks,
		timeout:  timeout,
		shopPath: "/",
	}
}

// GET /referral/{agentID}
//
// Records last-touch attribution for the session, reports the click to the
// backend without waiting for it, and sends the visitor on to the shop.
func (h *ReferralHandler) Visit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, h.timeout)
	defer cancel()

	agentID := chi.URLParam(r, "agentID")
	sessionID := sessionFromContext(r.Context())

	if err := h.store.Record(ctx, sessionID, agentID); err != nil {
		handleServiceError(w, err)
		return
	}

	// Click reporting must never delay the redirect; it runs detached with
	// its own deadline and failures are only logged.
	go func() {
		clickCtx, clickCancel := context.WithTimeout(context.Background(), h.timeout)
		defer clickCancel()
		if err := h.clicks.RecordClick(clickCtx, agentID); err != nil {
			log.Printf("referral: click recording failed for agent %s: %v", agentID, err)
		}
	}()

	http.Redirect(w, r, h.shopPath, http.StatusFound)
}
