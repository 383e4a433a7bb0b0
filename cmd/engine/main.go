package main

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"salesscout-engine/internal/config"
	"salesscout-engine/internal/dossier"
	"salesscout-engine/internal/events"
	"salesscout-engine/internal/httpapi"
	"salesscout-engine/internal/identity"
	"salesscout-engine/internal/messenger"
	"salesscout-engine/internal/registry"
	"salesscout-engine/internal/research"
	"salesscout-engine/internal/secrets"
	"salesscout-engine/internal/sitescrape"
	"salesscout-engine/internal/store"
	"salesscout-engine/internal/websearch"
	"salesscout-engine/internal/webutil"
)

func main() {
	// Engine data dir: env override for packaged installs, else local folder.
	dataDir := os.Getenv("SALESSCOUT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; a second instance would fight over sqlite
	// and double-deliver dossiers.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("data dir lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance already holds %s", lock.Path())
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		normalized, vr := config.NormalizeAndValidate(cfg)
		for _, wmsg := range vr.Warnings {
			log.Printf("[config] warning: %s", wmsg)
		}
		if !vr.OK() {
			return cfg, fmt.Errorf("invalid config: %v", vr.Errors)
		}
		return normalized, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	db, err := store.Open(filepath.Join(dataDir, "salesscout.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db); err != nil {
		log.Fatal(err)
	}

	hub := events.NewHub()

	registryToken, err := secrets.RegistryToken()
	if err != nil {
		log.Printf("[secrets] %v; registry lookups disabled", err)
	}
	openrouterKey, err := secrets.OpenRouterKey()
	if err != nil {
		log.Printf("[secrets] %v; web search disabled", err)
	}

	reg := registry.New(registry.Config{
		BaseURL: cfg.Registry.BaseURL,
		Token:   registryToken,
	})
	search := websearch.New(websearch.Config{
		BaseURL: cfg.Search.BaseURL,
		APIKey:  openrouterKey,
		Model:   cfg.Search.Model,
		Timeout: time.Duration(cfg.Search.TimeoutSeconds) * time.Second,
	})
	scraper := sitescrape.New(webutil.NewHostLimiter(2, 1))
	msgr := messenger.New(messenger.Config{
		WebhookURL: cfg.Messenger.WebhookURL,
		BotID:      cfg.Messenger.BotID,
		ClientID:   cfg.Messenger.ClientID,
		MaxPartLen: cfg.Messenger.MaxPartLen,
	})

	runner := &research.Runner{
		Resolver: &identity.Resolver{
			Registry: reg,
			Search:   search,
			Scraper:  scraper,
		},
		Synthesizer: &dossier.Synthesizer{
			Search:  search,
			Scraper: scraper,
			Renderer: &dossier.LLMRenderer{
				Client:  search,
				Model:   cfg.Search.RenderModel,
				Product: cfg.Product.Description,
			},
		},
		Messenger: msgr,
		DB:        db,
		Hub:       hub,
	}

	gatewaySecret := func() string {
		s, err := secrets.GatewaySecret()
		if err != nil {
			return ""
		}
		return s
	}

	mux := httpapi.NewMux(httpapi.Deps{
		DB:            db,
		Hub:           hub,
		Runner:        runner,
		Messenger:     msgr,
		CfgVal:        &cfgVal,
		UserCfgPath:   userCfgPath,
		LoadCfg:       loadCfg,
		GatewaySecret: gatewaySecret,
	})

	handler := httpapi.Chain(mux,
		httpapi.Cors,
		httpapi.RequestID,
		httpapi.AccessLog,
		httpapi.Recover,
	)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (data=%s)", addr, dataDir)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}
