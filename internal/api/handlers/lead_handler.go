package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/zatekoja/goparaty/internal/domain/entities"
	"github.com/zatekoja/goparaty/internal/domain/providers"
	"github.com/zatekoja/goparaty/internal/infrastructure/observability"
	"github.com/zatekoja/goparaty/pkg/textnorm"
)

const (
	leadRateLimit   = 5
	leadRateWindow  = time.Hour
	leadDedupWindow = 24 * time.Hour
)

// LeadService defines the lead operations used by the handler.
type LeadService interface {
	Create(ctx context.Context, lead *entities.Lead) error
}

// LeadHandler handles "advertise with us" submissions.
type LeadHandler struct {
	service LeadService
	cache   providers.CacheProvider
	metrics *observability.Metrics
	local   *localRateLimiter
	deduper *localDeduper
}

// NewLeadHandler creates a new lead handler. Without a cache, rate limits
// and duplicate detection are tracked in process.
func NewLeadHandler(service LeadService, cache providers.CacheProvider, metrics *observability.Metrics) *LeadHandler {
	return &LeadHandler{
		service: service,
		cache:   cache,
		metrics: metrics,
		local:   newLocalRateLimiter(),
		deduper: newLocalDeduper(),
	}
}

type leadRequest struct {
	Name         string `json:"name"`
	BusinessName string `json:"business_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Message      string `json:"message"`
}

// SubmitLead handles POST /api/leads
func (h *LeadHandler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	var payload leadRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	ip := clientIP(r)

	allowed, retryAfter := h.allowRequest(r.Context(), "lead:rate:"+ip)
	if !allowed {
		observability.RecordLeadRejected(r.Context(), h.metrics, "rate_limited")
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	dupKey := "lead:dup:" + leadFingerprint(payload, ip)
	if h.isDuplicate(r.Context(), dupKey) {
		observability.RecordLeadRejected(r.Context(), h.metrics, "duplicate")
		respondWithJSON(w, http.StatusAccepted, map[string]string{
			"status": "duplicate_ignored",
		})
		return
	}

	lead := &entities.Lead{
		Name:         payload.Name,
		BusinessName: payload.BusinessName,
		Email:        payload.Email,
		Phone:        payload.Phone,
		Message:      payload.Message,
	}

	if err := h.service.Create(r.Context(), lead); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	// Only stored leads count as seen; a failed attempt can be retried as is.
	h.markSubmitted(r.Context(), dupKey)

	respondWithJSON(w, http.StatusCreated, map[string]string{
		"status": "received",
		"id":     lead.ID,
	})
}

func (h *LeadHandler) allowRequest(ctx context.Context, key string) (bool, time.Duration) {
	if h.cache == nil {
		return h.local.allow(key, leadRateLimit, leadRateWindow)
	}

	count, err := h.cache.Increment(ctx, key, leadRateWindow)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("lead rate limit cache unavailable, using local limiter")
		return h.local.allow(key, leadRateLimit, leadRateWindow)
	}

	if count <= leadRateLimit {
		return true, leadRateWindow
	}

	// Retry-After is whatever is left of the counter's window
	remaining, err := h.cache.TTL(ctx, key)
	if err != nil || remaining <= 0 {
		remaining = leadRateWindow
	}
	return false, remaining
}

func (h *LeadHandler) isDuplicate(ctx context.Context, key string) bool {
	if h.cache == nil {
		return h.deduper.contains(key)
	}

	exists, err := h.cache.Exists(ctx, key)
	if err != nil {
		return h.deduper.contains(key)
	}
	return exists
}

func (h *LeadHandler) markSubmitted(ctx context.Context, key string) {
	if h.cache == nil {
		h.deduper.mark(key, leadDedupWindow)
		return
	}

	if err := h.cache.Set(ctx, key, []byte("1"), leadDedupWindow); err != nil {
		h.deduper.mark(key, leadDedupWindow)
	}
}

type localRateLimiter struct {
	mu     sync.Mutex
	states map[string]*localRateState
}

type localRateState struct {
	count   int
	resetAt time.Time
}

func newLocalRateLimiter() *localRateLimiter {
	return &localRateLimiter{
		states: make(map[string]*localRateState),
	}
}

func (l *localRateLimiter) allow(key string, limit int, window time.Duration) (bool, time.Duration) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.states[key]
	if !ok || now.After(state.resetAt) {
		state = &localRateState{resetAt: now.Add(window)}
		l.states[key] = state
	}

	if state.count >= limit {
		retryAfter := state.resetAt.Sub(now)
		if retryAfter <= 0 {
			retryAfter = window
		}
		return false, retryAfter
	}

	state.count++
	return true, window
}

type localDeduper struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func newLocalDeduper() *localDeduper {
	return &localDeduper{
		entries: make(map[string]time.Time),
	}
}

func (d *localDeduper) contains(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	expiresAt, ok := d.entries[key]
	return ok && time.Now().Before(expiresAt)
}

func (d *localDeduper) mark(key string, window time.Duration) {
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	// prune expired entries
	for k, expiresAt := range d.entries {
		if !now.Before(expiresAt) {
			delete(d.entries, k)
		}
	}

	d.entries[key] = now.Add(window)
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

// leadFingerprint identifies a submission by its normalized content and origin.
func leadFingerprint(payload leadRequest, ip string) string {
	normalized := []string{
		normalizeText(payload.Name),
		normalizeText(payload.BusinessName),
		strings.ToLower(strings.TrimSpace(payload.Email)),
		strings.Join(strings.Fields(payload.Phone), ""),
		normalizeText(payload.Message),
		ip,
	}

	hash := sha256.Sum256([]byte(strings.Join(normalized, "|")))
	return hex.EncodeToString(hash[:])
}

func normalizeText(value string) string {
	return strings.Join(strings.Fields(textnorm.Fold(value)), " ")
}
