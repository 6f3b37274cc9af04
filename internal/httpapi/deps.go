package httpapi

import (
	"sync/atomic"

	"timepro-engine/internal/api"
	"timepro-engine/internal/apply"
	"timepro-engine/internal/browse"
	"timepro-engine/internal/config"
	"timepro-engine/internal/events"
	"timepro-engine/internal/session"
	"timepro-engine/internal/track"
)

type Deps struct {
	Backend   *api.Client
	Session   *session.Store
	Browser   *browse.Browser
	Submitter *apply.Submitter
	Tracker   *track.Tracker

	Hub *events.Hub

	// Atomic store, hot-swapped by PUT /config
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}
