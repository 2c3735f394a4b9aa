package preview

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kinetic-motion/director/direrr"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "preview_requests_total",
		Help: "Total preview HTTP requests by endpoint and status.",
	}, []string{"endpoint", "status"})
	renderSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "preview_render_seconds",
		Help:    "Wall-clock time to serve /api/render.",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(requestsTotal, renderSeconds)
}

// Server wires the Actor to an HTTP mux per spec §6's endpoint table.
type Server struct {
	actor      *Actor
	allowOrigin string
	mux        *http.ServeMux
}

// NewServer builds a Server around a fresh Actor rooted at cwd.
func NewServer(cwd string) *Server {
	allowOrigin := os.Getenv("DIRECTOR_VIEW_ALLOW_ORIGIN")
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	s := &Server{actor: NewActor(cwd), allowOrigin: allowOrigin, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/init", s.handleInit)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/file", s.handleFile)
	s.mux.HandleFunc("/api/export", s.handleExport)
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.Handle("/api/metrics", promhttp.Handler())
}

// ServeHTTP implements http.Handler, applying CORS before dispatch.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", s.allowOrigin)
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	var duration float64
	var err error
	switch r.Method {
	case http.MethodGet:
		path := r.URL.Query().Get("script_path")
		if path == "" {
			writeError(w, "init", http.StatusBadRequest, direrr.NewScript("init", errors.New("script_path is required")))
			return
		}
		duration, err = s.actor.InitFromPath(path)
	case http.MethodPost:
		body, readErr := io.ReadAll(r.Body)
		if readErr != nil {
			writeError(w, "init", http.StatusBadRequest, direrr.NewScript("init", readErr))
			return
		}
		duration, err = s.actor.InitFromContent(body)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err != nil {
		writeError(w, "init", http.StatusBadRequest, err)
		return
	}
	writeJSON(w, "init", http.StatusOK, map[string]any{"status": "ok", "duration": duration})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(renderSeconds)
	defer timer.ObserveDuration()

	t, err := strconv.ParseFloat(r.URL.Query().Get("time"), 64)
	if err != nil {
		writeError(w, "render", http.StatusBadRequest, direrr.NewScript("render", errors.New("time query param must be numeric")))
		return
	}
	data, err := s.actor.RenderFrame(t)
	if err != nil {
		writeError(w, "render", http.StatusInternalServerError, err)
		return
	}
	requestsTotal.WithLabelValues("render", "200").Inc()
	w.Header().Set("Content-Type", "image/jpeg")
	w.Write(data)
}

func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := s.actor.GetScenes()
	if err != nil {
		writeError(w, "scenes", http.StatusBadRequest, err)
		return
	}
	writeJSON(w, "scenes", http.StatusOK, scenes)
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		path := r.URL.Query().Get("path")
		data, err := ReadFile(s.actor.cwd, path)
		if err != nil {
			writeError(w, "file", statusFor(err), err)
			return
		}
		requestsTotal.WithLabelValues("file", "200").Inc()
		w.Write(data)
	case http.MethodPost:
		var body struct {
			Path    string `json:"path"`
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, "file", http.StatusBadRequest, direrr.NewScript("file", err))
			return
		}
		if err := WriteFile(s.actor.cwd, body.Path, []byte(body.Content)); err != nil {
			writeError(w, "file", statusFor(err), err)
			return
		}
		writeJSON(w, "file", http.StatusOK, map[string]string{"status": "ok"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Output string `json:"output"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "export", http.StatusBadRequest, direrr.NewScript("export", err))
		return
	}
	output, err := s.actor.ExportVideo(body.Output)
	if err != nil {
		writeError(w, "export", http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, "export", http.StatusOK, map[string]string{"status": "ok", "output": output})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, "health", http.StatusOK, map[string]string{"status": "ok"})
}

func statusFor(err error) int {
	var pathErr *direrr.PathEscapeError
	if errors.As(err, &pathErr) {
		return http.StatusBadRequest
	}
	var assetErr *direrr.AssetError
	if errors.As(err, &assetErr) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, endpoint string, status int, v any) {
	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, endpoint string, status int, err error) {
	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	log.WithError(err).WithField("endpoint", endpoint).Warn("preview request failed")
	writeJSON(w, endpoint, status, map[string]string{"error": classifyError(err), "message": err.Error()})
}

func classifyError(err error) string {
	switch {
	case errors.As(err, new(*direrr.PathEscapeError)):
		return "path_escape"
	case errors.As(err, new(*direrr.AssetError)):
		return "asset_error"
	case errors.As(err, new(*direrr.ScriptError)):
		return "script_error"
	case errors.As(err, new(*direrr.EncoderError)):
		return "encoder_error"
	default:
		return "internal_error"
	}
}
