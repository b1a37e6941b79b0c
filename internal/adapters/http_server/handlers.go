// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"worldacross/internal/app"
	"worldacross/internal/catalog"
	"worldacross/internal/domain"
)

type Handlers struct {
	API *app.API
	// Contact throttles POST /api/contact per client IP; nil disables it.
	Contact *IPLimiter
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

const maxBody = 1 << 20

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/api", func(r chi.Router) {
		r.Get("/destinations", h.listDestinations)
		r.Get("/destinations/{id}", h.getDestination)

		r.Get("/packages", h.listPackages)
		r.Get("/packages/search", h.searchPackages)
		r.Get("/packages/{id}", h.getPackage)

		r.Get("/memberships", h.listMemberships)
		r.Get("/memberships/{id}", h.getMembership)

		r.Post("/auth/login", h.login)
		r.Post("/auth/register", h.register)
		r.Get("/auth/me", h.me)

		r.With(h.Contact.Middleware).Post("/contact", h.sendContact)

		r.Get("/dashboard/overview", h.dashboardOverview)
		r.Get("/dashboard/purchases", h.dashboardPurchases)
		r.Get("/dashboard/services", h.dashboardServices)
		r.Get("/dashboard/balance", h.dashboardBalance)

		r.Get("/content/testimonials", h.contentTestimonials)
		r.Get("/content/team", h.contentTeam)
		r.Get("/content/stats", h.contentStats)
		r.Get("/content/contact-info", h.contentContactInfo)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps façade errors onto HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidToken):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeProblem(w, http.StatusGatewayTimeout, "Timeout", "request took too long")
	case errors.Is(err, context.Canceled):
		// client went away; nobody reads this
		w.WriteHeader(http.StatusServiceUnavailable)
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached writes a GET response with a weak ETag and answers
// If-None-Match with 304.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "encode failed")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	writeBody(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal response")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "encode failed")
		return
	}
	writeBody(w, status, body)
}

func writeBody(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return 0, false
	}
	return id, true
}

func criteriaFrom(r *http.Request) catalog.Criteria {
	q := r.URL.Query()
	return catalog.Criteria{
		Category:   q.Get("category"),
		Type:       q.Get("type"),
		PriceRange: q.Get("price"),
		Query:      q.Get("q"),
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be a JSON object")
		return false
	}
	return true
}

/********** catalog **********/

func (h *Handlers) listDestinations(w http.ResponseWriter, r *http.Request) {
	env, err := h.API.Destinations.GetAll(r.Context(), criteriaFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, env)
}

func (h *Handlers) getDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	env, err := h.API.Destinations.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, env)
}

func (h *Handlers) listPackages(w http.ResponseWriter, r *http.Request) {
	pq := app.PackageQuery{Criteria: criteriaFrom(r)}
	if fs := r.URL.Query().Get("featured"); fs != "" {
		f, err := strconv.ParseBool(fs)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid featured", "featured must be true or false")
			return
		}
		pq.Featured = f
	}
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		pq.Limit = l
	}
	env, err := h.API.Packages.GetAll(r.Context(), pq)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, env)
}

func (h *Handlers) searchPackages(w http.ResponseWriter, r *http.Request) {
	env, err := h.API.Packages.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, env)
}

func (h *Handlers) getPackage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	env, err := h.API.Packages.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, env)
}

func (h *Handlers) listMemberships(w http.ResponseWriter, r *http.Request) {
	c := criteriaFrom(r)
	if t := r.URL.Query().Get("tenure"); t != "" {
		c.Category = t
	}
	env, err := h.API.Memberships.GetAll(r.Context(), c)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, env)
}

func (h *Handlers) getMembership(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	env, err := h.API.Memberships.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, env)
}

/********** auth **********/

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var c app.Credentials
	if !decodeBody(w, r, &c) {
		return
	}
	if strings.TrimSpace(c.Email) == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid credentials", "email is required")
		return
	}
	env, err := h.API.Auth.Login(r.Context(), c)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, env)
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var reg app.Registration
	if !decodeBody(w, r, &reg) {
		return
	}
	if strings.TrimSpace(reg.Name) == "" || strings.TrimSpace(reg.Email) == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid registration", "name and email are required")
		return
	}
	env, err := h.API.Auth.Register(r.Context(), reg)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, env)
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	authz := r.Header.Get("Authorization")
	tok, found := strings.CutPrefix(authz, "Bearer ")
	if !found || strings.TrimSpace(tok) == "" {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "bearer token required")
		return
	}
	env, err := h.API.Auth.Profile(r.Context(), strings.TrimSpace(tok))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, env)
}

/********** contact **********/

func (h *Handlers) sendContact(w http.ResponseWriter, r *http.Request) {
	var m domain.ContactMessage
	if !decodeBody(w, r, &m) {
		return
	}
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Email) == "" || strings.TrimSpace(m.Message) == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid message", "name, email and message are required")
		return
	}
	env, err := h.API.Contact.SendMessage(r.Context(), m)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, env)
}

/********** dashboard & content **********/

// serve adapts a no-argument façade call into a cached GET handler.
func serve[T any](call func(ctx context.Context) (app.Envelope[T], error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		env, err := call(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeCached(w, r, env)
	}
}

func (h *Handlers) dashboardOverview(w http.ResponseWriter, r *http.Request) {
	serve(h.API.Dashboard.GetOverview)(w, r)
}

func (h *Handlers) dashboardPurchases(w http.ResponseWriter, r *http.Request) {
	serve(h.API.Dashboard.GetPurchaseHistory)(w, r)
}

func (h *Handlers) dashboardServices(w http.ResponseWriter, r *http.Request) {
	serve(h.API.Dashboard.GetAvailedServices)(w, r)
}

func (h *Handlers) dashboardBalance(w http.ResponseWriter, r *http.Request) {
	serve(h.API.Dashboard.GetBalanceData)(w, r)
}

func (h *Handlers) contentTestimonials(w http.ResponseWriter, r *http.Request) {
	serve(h.API.Content.Testimonials)(w, r)
}

func (h *Handlers) contentTeam(w http.ResponseWriter, r *http.Request) {
	serve(h.API.Content.Team)(w, r)
}

func (h *Handlers) contentStats(w http.ResponseWriter, r *http.Request) {
	serve(h.API.Content.Stats)(w, r)
}

func (h *Handlers) contentContactInfo(w http.ResponseWriter, r *http.Request) {
	serve(h.API.Content.ContactInfo)(w, r)
}
