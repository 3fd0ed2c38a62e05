// Package main implements a mock Avito API server for local development.
// It serves canned listings, categories, and locations plus a token endpoint
// so the full client stack runs without real marketplace credentials. An
// optional price drift randomly nudges listing prices between requests to
// exercise the poll loop end to end.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

type listing struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Location string  `json:"location"`
	Category string  `json:"category"`
	Status   string  `json:"status"`
}

type catalog struct {
	mu       sync.Mutex
	listings []listing
	drift    float64
	rng      *rand.Rand
}

var categories = []map[string]any{
	{"id": 24, "name": "Электроника"},
	{"id": 9, "name": "Недвижимость"},
	{"id": 1, "name": "Транспорт"},
}

var locations = []map[string]any{
	{"id": 637640, "name": "Москва"},
	{"id": 653240, "name": "Санкт-Петербург"},
	{"id": 660870, "name": "Казань"},
}

func defaultListings() []listing {
	return []listing{
		{ID: "183716401", Title: "iPhone 13 128GB", Price: 45000, Location: "Москва", Category: "Электроника", Status: "active"},
		{ID: "183716402", Title: "iPhone 12 64GB", Price: 30000, Location: "Москва", Category: "Электроника", Status: "active"},
		{ID: "183716403", Title: "RTX 3080 10GB", Price: 55000, Location: "Санкт-Петербург", Category: "Электроника", Status: "active"},
		{ID: "183716404", Title: "Samsung SSD 1TB", Price: 7500, Location: "Казань", Category: "Электроника", Status: "active"},
		{ID: "183716405", Title: "ThinkPad X1 Carbon", Price: 85000, Location: "Москва", Category: "Электроника", Status: "active"},
	}
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	drift := flag.Float64("drift", 0, "max random price drift per request, as a fraction (0.1 = ±10%)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cat := &catalog{
		listings: defaultListings(),
		drift:    *drift,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // mock data only
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", tokenHandler(logger))
	mux.HandleFunc("GET /items", searchHandler(logger, cat))
	mux.HandleFunc("GET /items/{id}", itemHandler(logger, cat))
	mux.HandleFunc("GET /items/{id}/stats", statsHandler(cat))
	mux.HandleFunc("GET /categories", listHandler(categories))
	mux.HandleFunc("GET /locations", listHandler(locations))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock Avito server", "addr", addr, "drift", *drift)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func tokenHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			ClientID     string `json:"client_id"`
			ClientSecret string `json:"client_secret"`
			GrantType    string `json:"grant_type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil ||
			creds.ClientID == "" || creds.ClientSecret == "" {
			logger.Warn("token request missing credentials")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]string{
				"error":             "invalid_client",
				"error_description": "client authentication failed",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "mock-token-" + strconv.FormatInt(time.Now().UnixNano(), 16),
			"expires_in":   3600,
			"token_type":   "Bearer",
		})
		logger.Info("issued mock token", "client_id", creds.ClientID)
	}
}

// snapshot applies the configured drift and returns a copy of the listings.
func (c *catalog) snapshot() []listing {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.drift > 0 {
		for i := range c.listings {
			factor := 1 + (c.rng.Float64()*2-1)*c.drift
			c.listings[i].Price = float64(int(c.listings[i].Price * factor))
		}
	}

	out := make([]listing, len(c.listings))
	copy(out, c.listings)
	return out
}

func searchHandler(logger *slog.Logger, cat *catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.ToLower(r.URL.Query().Get("query"))
		priceFrom, _ := strconv.ParseFloat(r.URL.Query().Get("price_from"), 64) //nolint:errcheck // empty means unset
		priceTo, _ := strconv.ParseFloat(r.URL.Query().Get("price_to"), 64)    //nolint:errcheck // empty means unset

		page := 1
		if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
			page = v
		}
		perPage := 50
		if v, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && v > 0 {
			perPage = v
		}

		matched := make([]listing, 0)
		for _, l := range cat.snapshot() {
			if q != "" && !strings.Contains(strings.ToLower(l.Title), q) {
				continue
			}
			if priceFrom > 0 && l.Price < priceFrom {
				continue
			}
			if priceTo > 0 && l.Price > priceTo {
				continue
			}
			matched = append(matched, l)
		}

		total := len(matched)

		start := (page - 1) * perPage
		if start >= len(matched) {
			matched = []listing{}
		} else {
			end := min(start+perPage, len(matched))
			matched = matched[start:end]
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{
			"items": matched,
			"total": total,
		})
		logger.Info("search", "query", q, "matched", total, "returned", len(matched), "page", page)
	}
}

func itemHandler(logger *slog.Logger, cat *catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		w.Header().Set("Content-Type", "application/json")
		for _, l := range cat.snapshot() {
			if l.ID == id {
				//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
				json.NewEncoder(w).Encode(l)
				return
			}
		}

		// Unknown ids report unavailable the way the real API does: an empty
		// 2xx body, which the client maps to "listing vanished".
		logger.Info("unknown item requested", "id", id)
		_, _ = w.Write([]byte("{}"))
	}
}

func statsHandler(cat *catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		seed := int64(0)
		for _, c := range id {
			seed = seed*31 + int64(c)
		}
		rng := rand.New(rand.NewSource(seed)) //nolint:gosec // mock data only

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]int{
			"views":     rng.Intn(500),
			"uniqViews": rng.Intn(400),
			"contacts":  rng.Intn(30),
			"favorites": rng.Intn(50),
		})
	}
}

func listHandler(data []map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(data)
	}
}
