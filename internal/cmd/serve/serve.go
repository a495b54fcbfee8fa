// Package serve provides the serve command: an HTTP search API over a
// scanned chart library.
package serve

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/Choimoe/MaidataStatistic/api"
	"github.com/Choimoe/MaidataStatistic/internal/config"
	"github.com/Choimoe/MaidataStatistic/internal/library"
	"github.com/Choimoe/MaidataStatistic/pkg/simai"
)

// reloadWindow collapses bursts of /reload requests into one rescan.
const reloadWindow = 2 * time.Second

type serveOptions struct {
	addr     string
	root     string
	fileName string

	configPath string
}

// NewCmdServe creates the serve command.
func NewCmdServe() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve pattern searches over a chart library",
		Long: `Index a chart library once and answer pattern searches over HTTP.

Endpoints:
  GET  /songs    list the indexed chart files
  POST /search   find charts playing a lane pattern
  POST /reload   schedule a rescan of the library root

Search requests take a JSON body like {"pattern": ["1", "8", "1", "8"]}
and answer with the matching files and chart numbers. The analyze
command can query a running instance with --server.`,
		Example: `  # Serve the configured library on the default port
  maistat serve

  # Serve a specific root on another port
  maistat serve --root ~/charts --addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			return runServe(opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "Address to listen on")
	cmd.Flags().StringVar(&opts.root, "root", "", "Library root to index (default from config)")
	cmd.Flags().StringVar(&opts.fileName, "file-name", "", "Chart file name to scan for (default maidata.txt)")

	return cmd
}

func runServe(opts *serveOptions) error {
	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	root := opts.root
	if root == "" {
		root = cfg.LibraryRoot
	}
	if root == "" {
		return fmt.Errorf("no library root given (--root or library_root in config)")
	}
	fileName := opts.fileName
	if fileName == "" {
		fileName = cfg.FileName
	}

	srv := NewServer(root, fileName)
	if err := srv.Rescan(); err != nil {
		return err
	}

	log.Printf("maistat serve listening on %s", opts.addr)
	return http.ListenAndServe(opts.addr, newRouter(srv))
}

// Server holds the indexed library and answers search queries. The
// index is replaced wholesale by Rescan, guarded by mu.
type Server struct {
	root     string
	fileName string

	mu    sync.RWMutex
	songs []library.Result

	scheduleReload func(f func())
}

// NewServer creates a server for the library under root. The index is
// empty until Rescan runs.
func NewServer(root, fileName string) *Server {
	return &Server{
		root:           root,
		fileName:       fileName,
		scheduleReload: debounce.New(reloadWindow),
	}
}

// Rescan walks the library root and swaps in the fresh index.
func (s *Server) Rescan() error {
	results, err := library.Scanner{Root: s.root, FileName: s.fileName}.Scan()
	if err != nil {
		return err
	}

	indexed := 0
	for _, res := range results {
		if res.Err != nil {
			log.Printf("skipping %s: %v", res.Path, res.Err)
			continue
		}
		indexed++
	}

	s.mu.Lock()
	s.songs = results
	s.mu.Unlock()

	log.Printf("indexed %d chart files under %s", indexed, s.root)
	return nil
}

// newRouter wires the HTTP routes around a server.
func newRouter(s *Server) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/songs", s.handleSongs).Methods("GET")
	router.HandleFunc("/search", s.handleSearch).Methods("POST")
	router.HandleFunc("/reload", s.handleReload).Methods("POST")
	return cors.Default().Handler(router)
}

func (s *Server) handleSongs(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	songs := make([]api.SongSummary, 0, len(s.songs))
	for _, res := range s.songs {
		if res.Err != nil {
			continue
		}
		songs = append(songs, api.SongSummary{
			Path:       res.Path,
			Title:      res.File.Title(),
			ChartCount: len(res.File.Charts),
		})
	}
	writeJSON(w, http.StatusOK, songs)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req api.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Pattern) == 0 {
		writeError(w, http.StatusBadRequest, "search requires a pattern")
		return
	}

	pred := simai.HasPattern(req.Pattern)

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]api.SearchResult, 0)
	for _, res := range s.songs {
		if res.Err != nil {
			continue
		}
		charts := simai.FindCharts(res.File.Charts, pred)
		if len(charts) == 0 {
			continue
		}
		results = append(results, api.SearchResult{
			Path:   res.Path,
			Title:  res.File.Title(),
			Charts: charts,
		})
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	s.scheduleReload(func() {
		if err := s.Rescan(); err != nil {
			log.Printf("reload failed: %v", err)
		}
	})
	writeJSON(w, http.StatusAccepted, api.ReloadResponse{Status: "scheduled"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.ErrorResponse{Message: msg})
}
