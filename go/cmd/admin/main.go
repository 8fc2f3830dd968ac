package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/PankajNarwade28/BPL-Admin-Panel/go/clients/auctionapi"
	"github.com/PankajNarwade28/BPL-Admin-Panel/go/internal/config"
	"github.com/PankajNarwade28/BPL-Admin-Panel/go/internal/live"
	"github.com/PankajNarwade28/BPL-Admin-Panel/go/internal/session"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("could not load .env file")
	}

	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	sessionPath := cfg.SessionFile
	if sessionPath == "" {
		sessionPath, err = session.DefaultPath()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to resolve session path")
		}
	}
	sessions := session.NewFileStore(sessionPath)

	api := auctionapi.New(cfg.APIBaseURL)
	state := live.NewStateManager()

	repl := NewREPL(os.Stdin, os.Stdout)

	client := live.New(api, sessions, state, live.Options{
		SocketURL:         cfg.SocketURL,
		ReconnectDelay:    cfg.ReconnectDelay,
		ReconnectAttempts: cfg.ReconnectAttempts,
		ResyncInterval:    cfg.ResyncInterval,
		UndoRefetchDelay:  cfg.UndoRefetchDelay,
		Confirmer:         repl,
		Notifier:          repl,
	})

	log.Info().
		Str("api_url", cfg.APIBaseURL).
		Str("socket_url", cfg.SocketURL).
		Msg("starting admin panel")

	// Non-interactive login: seed the stored session before the client dials
	// so the credential is replayed on connect. Commands are fire-and-forget,
	// so a Login issued before the transport is up would be dropped.
	if cfg.AdminPassword != "" {
		if err := seedSession(sessions, cfg.AdminPassword); err != nil {
			log.Warn().Err(err).Msg("failed to seed session from environment")
		}
	}

	client.Start()
	defer client.Close()

	repl.Run(client, api, state)
}

// seedSession stores the environment-supplied credential unless a valid
// session is already persisted.
func seedSession(store session.Store, password string) error {
	sess, err := store.Load()
	if err != nil {
		return err
	}
	if sess.Valid() {
		return nil
	}
	return store.Save(session.Session{Authenticated: true, Password: password})
}
