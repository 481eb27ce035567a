package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adsdash/adsdash/internal/ingest"
	"github.com/adsdash/adsdash/internal/models"
	"github.com/adsdash/adsdash/internal/pipeline"
	"github.com/adsdash/adsdash/internal/query"
	"github.com/adsdash/adsdash/internal/store"
	"github.com/adsdash/adsdash/internal/utils"
)

// NewRouter wires the API surface over the session, the query service and the
// ingestor. Reads recompute from current inputs; writes replace inputs.
func NewRouter(log *slog.Logger, st *store.Session, qry *query.Service, ing *ingest.Ingestor, maxUploadBytes int64) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Method(http.MethodGet, "/metrics", promhttp.Handler())

	mux.Post("/upload", func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		file, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file field required", 400)
			return
		}
		defer file.Close()
		info, err := ing.Upload(r.Context(), hdr.Filename, file, hdr.Size)
		if err != nil {
			if errors.Is(err, store.ErrSuperseded) {
				http.Error(w, err.Error(), 409)
				return
			}
			http.Error(w, err.Error(), 400)
			return
		}
		writeJSON(w, info)
	})

	mux.Get("/session", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, st.Info())
	})

	mux.Get("/summary", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, qry.Summary(r.URL.Query()))
	})

	mux.Get("/rows", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, qry.Rows(r.URL.Query()))
	})

	mux.Get("/rows/preview", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, qry.Preview(r.URL.Query()))
	})

	mux.Get("/groups", func(w http.ResponseWriter, r *http.Request) {
		rows, err := qry.Groups(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		writeJSON(w, rows)
	})

	mux.Get("/timeseries", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("efficiency") == "1" {
			writeJSON(w, qry.Efficiency(q))
			return
		}
		writeJSON(w, qry.Timeseries(q))
	})

	mux.Get("/dimensions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, qry.Dimensions())
	})

	mux.Get("/export/csv", func(w http.ResponseWriter, r *http.Request) {
		b, err := qry.ExportCSV(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="filtered_rows.csv"`)
		w.Write(b)
	})

	mux.Get("/state", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, st.ExportState())
	})

	mux.Post("/state", func(w http.ResponseWriter, r *http.Request) {
		var state models.SessionState
		if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
			// current state stays untouched
			http.Error(w, "invalid state json", 400)
			return
		}
		st.ImportState(state, "imported state")
		writeJSON(w, st.Info())
	})

	mux.Put("/mapping/{field}", func(w http.ResponseWriter, r *http.Request) {
		f, ok := pipeline.ValidField(chi.URLParam(r, "field"))
		if !ok {
			http.Error(w, "unknown field", 400)
			return
		}
		var body struct {
			Column string `json:"column"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", 400)
			return
		}
		if err := st.SetMappingField(f, body.Column); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		writeJSON(w, st.Snapshot().Mapping)
	})

	mux.Put("/filters", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Campaign string `json:"campaign"`
			Adset    string `json:"adset"`
			Ad       string `json:"ad"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", 400)
			return
		}
		st.SetFilters(body.Campaign, body.Adset, body.Ad)
		w.WriteHeader(204)
	})

	mux.Put("/daterange", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			DateFrom string `json:"dateFrom"`
			DateTo   string `json:"dateTo"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", 400)
			return
		}
		st.SetDateRange(body.DateFrom, body.DateTo)
		w.WriteHeader(204)
	})

	mux.Put("/groupby", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			By string `json:"by"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", 400)
			return
		}
		f, ok := pipeline.ValidField(body.By)
		if !ok || !pipeline.Dimension(f) {
			http.Error(w, "not a grouping dimension", 400)
			return
		}
		st.SetGroupBy(f)
		w.WriteHeader(204)
	})

	mux.Post("/reset", func(w http.ResponseWriter, r *http.Request) {
		st.Reset()
		w.WriteHeader(204)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}
