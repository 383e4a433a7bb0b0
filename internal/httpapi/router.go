package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Gateway webhook
	wh := WebhookHandler{
		Runner:    d.Runner,
		Messenger: d.Messenger,
		DB:        d.DB,
		Hub:       d.Hub,
		Secret:    d.GatewaySecret,
	}
	mux.HandleFunc("/webhook/bot", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: wh.Handle,
	}))

	// Research runs
	rh := ResearchHandler{Runner: d.Runner, DB: d.DB}
	mux.HandleFunc("/research", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.Start,
	}))
	mux.HandleFunc("/research/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Status,
	}))
	mux.HandleFunc("/research/runs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Runs,
	}))

	// Feedback log
	fh := FeedbackHandler{DB: d.DB}
	mux.HandleFunc("/feedback", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: fh.List,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets
	sh := SecretsHandler{}
	mux.HandleFunc("/api/secrets/registry", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetRegistryToken,
	}))
	mux.HandleFunc("/api/secrets/openrouter", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetOpenRouterKey,
	}))
	mux.HandleFunc("/api/secrets/gateway", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetGatewaySecret,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health + maintenance
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))
	dbh := DBHandler{DB: d.DB}
	mux.HandleFunc("/db/checkpoint", dbh.Checkpoint)

	return mux
}
