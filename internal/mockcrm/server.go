package mockcrm

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
)

// Server is an in-memory CRM look-alike for demos and tests. The dataset is
// generated once from the seed, so every run with the same seed serves
// identical records and pagination is stable between requests.
type Server struct {
	token string
	data  *dataset
}

// New builds a server with count records per collection.
func New(token string, count int, seed int64) *Server {
	return &Server{token: token, data: buildDataset(seed, count)}
}

// Handler returns the route table. Paths mirror the real API the sync
// client talks to.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/filters", s.withAuth(s.handleFilters))
	mux.HandleFunc("GET /api/v1/{kind}", s.withAuth(s.handleList))
	mux.HandleFunc("GET /api/v1/{kind}/fields", s.withAuth(s.handleFields))
	mux.HandleFunc("GET /api/v1/{kind}/fields/custom", s.withAuth(s.handleCustomFields))
	return mux
}

func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Token") != s.token {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"error":   "invalid api token",
			})
			return
		}
		next(w, r)
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")
	records, ok := s.data.records[kind]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"error":   "unknown collection " + kind,
		})
		return
	}

	if filter := intParam(r, "filter_id", 0); filter > 0 {
		records = applyFilter(records, filter)
	}

	start := intParam(r, "start", 0)
	limit := intParam(r, "limit", 100)
	page := paginate(records, start, limit)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    nullable(page),
		"additional_data": map[string]interface{}{
			"pagination": map[string]interface{}{
				"start":                    start,
				"limit":                    limit,
				"more_items_in_collection": start+len(page) < len(records),
				"next_start":               start + len(page),
			},
		},
	})
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    nullable(standardFieldCatalog(r.PathValue("kind"))),
	})
}

func (s *Server) handleCustomFields(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    nullable(customFieldCatalog(r.PathValue("kind"))),
	})
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    savedFilters,
	})
}

// applyFilter keeps the records whose id divides by the filter number. Leads
// have string ids, so their position stands in for the id.
func applyFilter(records []map[string]interface{}, filter int) []map[string]interface{} {
	var kept []map[string]interface{}
	for i, rec := range records {
		id, ok := rec["id"].(int)
		if !ok {
			id = i + 1
		}
		if id%filter == 0 {
			kept = append(kept, rec)
		}
	}
	return kept
}

func paginate(records []map[string]interface{}, start, limit int) []map[string]interface{} {
	if start < 0 || start >= len(records) {
		return nil
	}
	end := start + limit
	if limit <= 0 || end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

func intParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// nullable turns an empty page into JSON null, the way the real API reports
// an empty set.
func nullable(records []map[string]interface{}) interface{} {
	if len(records) == 0 {
		return nil
	}
	return records
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Warning: write mock response: %v", err)
	}
}
