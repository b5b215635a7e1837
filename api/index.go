package handler

import (
	"context"
	"net/http"

	"github.com/wadjakorntonsri/fanlink/pkg/app"
	"github.com/wadjakorntonsri/fanlink/pkg/config"
	"github.com/wadjakorntonsri/fanlink/pkg/logging"
)

var mux http.Handler

func init() {
	cfg := config.Load()
	logger := logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	// Note: On Vercel, the sqlite file is ephemeral unless DATABASE_URL points at Turso
	a, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		panic(err)
	}

	mux = a.Router(cfg, logger)
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
