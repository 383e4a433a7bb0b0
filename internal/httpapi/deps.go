package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"salesscout-engine/internal/config"
	"salesscout-engine/internal/events"
	"salesscout-engine/internal/messenger"
	"salesscout-engine/internal/research"
)

// Messenger is the slice of the gateway client the handlers need:
// feedback acknowledgements go straight back to the dialog.
type Messenger interface {
	SendMessage(ctx context.Context, dialogID, text string, keyboard messenger.Keyboard) error
}

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	Runner    *research.Runner
	Messenger Messenger

	// Atomic stores
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Webhook auth; empty means accept everything (local dev)
	GatewaySecret func() string
}
