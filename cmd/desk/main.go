package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"ScoringDesk/internal/config"
	"ScoringDesk/internal/endpoint"
	"ScoringDesk/internal/gateway"
	"ScoringDesk/internal/recorder"
	"ScoringDesk/internal/session"
	"ScoringDesk/internal/views"
)

const usage = `usage: desk <command> [args]

commands:
  list                      list all clients
  show <id>                 show one client
  metrics <id>              show a client's scoring metrics
  search [--first_name=..] [--last_name=..] [--middle_name=..]
         [--birth_date=DD-MM-YYYY] [--income_from=..] [--income_to=..]
  watch <id>                keep a client's metrics open, refreshing on schedule
  serve-fixtures            run the fixture backend

With no command the last session is restored.`

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	_ = godotenv.Load()

	cfgPath := "configs/desk.yaml"
	if v := os.Getenv("DESK_CONFIG"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	args := os.Args[1:]
	if len(args) > 0 && (args[0] == "-h" || args[0] == "--help" || args[0] == "help") {
		fmt.Println(usage)
		return
	}
	if len(args) > 0 && args[0] == "serve-fixtures" {
		if err := serveFixtures(cfg); err != nil {
			log.Fatalf("[FATAL] devserver: %v", err)
		}
		return
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	sess, err := session.NewStore(cfg.Session.StateFile)
	if err != nil {
		log.Printf("[WARN] load session failed, starting fresh: %v", err)
		sess, _ = session.NewStore("")
	}

	execCtx := cfg.ExecutionContext()
	base := endpoint.NewResolver(cfg.Backend.ServerURL).Resolve(execCtx)
	gw := gateway.WithObserver(gateway.NewHTTPGateway(cfg.Timeout(), cfg.Proxy), recorder.FetchObserver(rec))
	log.Printf("[INFO] backend %s (%s context, %s gateway)", base, execCtx, gw.Name())

	d := &desk{
		cfg:     cfg,
		session: sess,
		deps:    views.Deps{Gateway: gw, Base: base, Observe: recorder.TransitionObserver(rec)},
	}
	if err := d.run(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
		}
		rec.Close()
		os.Exit(1)
	}
}
