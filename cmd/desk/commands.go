package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"ScoringDesk/internal/config"
	"ScoringDesk/internal/devserver"
	"ScoringDesk/internal/model"
	"ScoringDesk/internal/query"
	"ScoringDesk/internal/render"
	"ScoringDesk/internal/scheduler"
	"ScoringDesk/internal/session"
	"ScoringDesk/internal/view"
	"ScoringDesk/internal/views"
)

var (
	errUsage  = errors.New("invalid arguments")
	errFailed = errors.New("view ended in error")
)

type desk struct {
	cfg     *config.Config
	session *session.Store
	deps    views.Deps
}

func (d *desk) run(args []string) error {
	if len(args) == 0 {
		return d.restore()
	}
	switch args[0] {
	case "list":
		return d.clients(views.ClientsRoute{All: true})
	case "show":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		return d.client(id)
	case "metrics":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		return d.metrics(id)
	case "search":
		c, err := parseSearch(args[1:])
		if err != nil {
			return err
		}
		d.session.RememberSearch(c)
		return d.clients(views.ClientsRoute{Criteria: c})
	case "watch":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		return d.watch(id)
	default:
		return errUsage
	}
}

// restore reopens whatever the last run showed, or the full list.
func (d *desk) restore() error {
	st := d.session.Get()
	switch st.LastView {
	case "search":
		c, err := d.session.LastSearch()
		if err != nil {
			log.Printf("[WARN] stored search unreadable: %v", err)
			break
		}
		log.Printf("[INFO] restoring search %q", st.LastSearch)
		return d.clients(views.ClientsRoute{Criteria: c})
	case views.NameClient:
		log.Printf("[INFO] restoring client %d", st.LastClientID)
		return d.client(st.LastClientID)
	case views.NameMetrics:
		log.Printf("[INFO] restoring metrics %d", st.LastClientID)
		return d.metrics(st.LastClientID)
	}
	return d.clients(views.ClientsRoute{All: true})
}

func (d *desk) clients(r views.ClientsRoute) error {
	v := views.NewClientsView(d.deps)
	defer v.Close()
	v.Navigate(r)
	v.Wait()
	st := v.State()
	fmt.Print(render.Clients(st))
	return result(st.Status)
}

func (d *desk) client(id int64) error {
	d.session.RememberClient(views.NameClient, id)
	v := views.NewClientView(d.deps)
	defer v.Close()
	v.Navigate(id)
	v.Wait()
	st := v.State()
	fmt.Print(render.Client(st))
	return result(st.Status)
}

func (d *desk) metrics(id int64) error {
	d.session.RememberClient(views.NameMetrics, id)
	v := views.NewMetricsView(d.deps)
	defer v.Close()
	v.Navigate(id)
	v.Wait()
	st := v.State()
	fmt.Print(render.Metrics(st))
	return result(st.Status)
}

// printingView refreshes a metrics view and prints the outcome.
type printingView struct {
	v *views.MetricsView
}

func (p printingView) Name() string { return p.v.Name() }

func (p printingView) Refresh() {
	p.v.Refresh()
	p.v.Wait()
	fmt.Print(render.Metrics(p.v.State()))
}

func (d *desk) watch(id int64) error {
	d.session.RememberClient(views.NameMetrics, id)
	v := views.NewMetricsView(d.deps)
	defer v.Close()
	v.Navigate(id)
	v.Wait()
	fmt.Print(render.Metrics(v.State()))

	sched := scheduler.NewScheduler()
	if err := sched.Register(d.cfg.Schedule.RefreshCron, printingView{v: v}); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	log.Printf("[INFO] watching client %d (%s). Press Ctrl+C to stop.", id, d.cfg.Schedule.RefreshCron)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("[INFO] shutdown signal received, stopping...")
	return nil
}

func serveFixtures(cfg *config.Config) error {
	var fx *devserver.Fixtures
	if cfg.DevServer.Fixtures != "" {
		var err error
		if fx, err = devserver.LoadFixtures(cfg.DevServer.Fixtures); err != nil {
			return err
		}
	}
	srv := devserver.New(fx)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe(cfg.DevServer.Addr) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping devserver...")
		return srv.Shutdown()
	}
}

func result(s view.Status) error {
	if s == view.StatusError {
		return errFailed
	}
	return nil
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid client id %q: %w", args[0], errUsage)
	}
	return id, nil
}

// parseSearch reads search flags. Only flags given on the command line become criteria.
func parseSearch(args []string) (model.SearchCriteria, error) {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	names := []string{model.FieldFirstName, model.FieldLastName, model.FieldMiddleName,
		model.FieldBirthDate, model.FieldIncomeFrom, model.FieldIncomeTo}
	vals := make(map[string]*string, len(names))
	for _, n := range names {
		vals[n] = fs.String(n, "", "")
	}
	if err := fs.Parse(args); err != nil {
		return model.SearchCriteria{}, fmt.Errorf("%v: %w", err, errUsage)
	}
	if fs.NArg() > 0 {
		return model.SearchCriteria{}, errUsage
	}
	set := make(map[string][]string)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = []string{*vals[f.Name]} })
	return query.Parse(set)
}
