package main

import (
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"timepro-engine/internal/api"
	"timepro-engine/internal/apply"
	"timepro-engine/internal/browse"
	"timepro-engine/internal/config"
	"timepro-engine/internal/events"
	"timepro-engine/internal/httpapi"
	"timepro-engine/internal/session"
	"timepro-engine/internal/storage"
	"timepro-engine/internal/track"
)

func main() {
	// Engine data dir: use env if provided (the UI shell can pass one), else
	// local folder.
	dataDir := os.Getenv("TIMEPRO_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine instance per data dir; two writers would trample the
	// session state.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock data dir: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance already owns %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		raw, err := config.Load(userCfgPath)
		if err != nil {
			return raw, err
		}
		normalized, vr := config.NormalizeAndValidate(raw)
		for _, warn := range vr.Warnings {
			log.Printf("level=warn msg=\"config\" warn=%q", warn)
		}
		if !vr.OK() {
			log.Printf("level=error msg=\"config invalid\" errors=%v", vr.Errors)
		}
		return normalized, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	kv, err := storage.Open(filepath.Join(dataDir, "state.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer kv.Close()

	sess := session.NewStore(kv)

	limiter := api.NewHostLimiter(cfg.Backend.ReqPerSec, cfg.Backend.Burst)
	backend := api.New(cfg.Backend.BaseURL, sess,
		api.WithLimiter(limiter),
		api.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Backend.TimeoutSeconds) * time.Second}),
	)

	hub := events.NewHub()

	deps := httpapi.Deps{
		Backend:     backend,
		Session:     sess,
		Browser:     browse.New(backend, cfg.Listing.PageSize),
		Submitter:   apply.New(backend),
		Tracker:     track.New(backend),
		Hub:         hub,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
	}

	mux := httpapi.NewMux(deps)
	handler := httpapi.Chain(mux,
		httpapi.Cors,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
	)

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (backend=%s)", addr, cfg.Backend.BaseURL)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}
