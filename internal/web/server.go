// Package web serves the ladder UI: rounds, schedules, standings,
// presence, and players. Every mutation is a plain HTML form POST.
package web

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/jillest/goladder/internal/announce"
	"github.com/jillest/goladder/internal/back"
	"github.com/jillest/goladder/internal/rating"
	"github.com/jillest/goladder/internal/util"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"golang.org/x/time/rate"
)

type Server struct {
	http      *http.Server
	back      *back.Back
	announcer *announce.Announcer
	tpl       map[string]*template.Template
}

func NewServer(
	b *back.Back,
	announcer *announce.Announcer,
	addr, baseDir string,
) (*Server, error) {
	s := &Server{
		back:      b,
		announcer: announcer,
	}

	var err error
	s.tpl, err = s.loadTemplates(baseDir)
	if err != nil {
		return nil, err
	}

	s.http = &http.Server{
		Addr:         addr,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  10 * time.Second,
		Handler:      s.setupRouter(),
	}

	return s, nil
}

func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(throttleWrites)

	r.Get("/", s.index)
	r.Post("/rounds", s.createRound)

	r.Get("/round/{id}", s.getSchedule)
	r.Post("/round/{id}", s.postSchedule)
	r.Post("/round/{id}/extra", s.patchRoundExtra)

	r.Get("/standings", s.standings)

	r.Get("/presence", s.getPresence)
	r.Post("/presence", s.postPresence)

	r.Get("/players", s.getPlayers)
	r.Post("/players", s.createPlayer)

	return r
}

// throttleWrites rate-limits form submissions, reads go through
// untouched.
func throttleWrites(next http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Every(time.Second), 10)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && !limiter.Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) Serve(wg *sync.WaitGroup, done <-chan struct{}) {
	log.Println("info: starting HTTP server")
	wg.Add(1)
	defer wg.Done()

	go func() {
		err := s.http.ListenAndServe()
		if err == http.ErrServerClosed {
			log.Println("info: HTTP server closed")
			return
		}

		log.Fatalf("webserver crashed: %s", err)
	}()

	<-done
	if err := s.http.Close(); err != nil {
		log.Printf("warning: unable to close webserver: %s", err)
	}
}

func (s *Server) response(w http.ResponseWriter, code int, name string, data interface{}) {
	tpl, ok := s.tpl[name]
	if !ok {
		log.Printf("error: template not found: %s", name)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)

	if err := tpl.ExecuteTemplate(w, "base", data); err != nil {
		log.Printf("error: unable to render template: %s", err)
	}
}

// error renders domain errors with their own message, anything else is
// logged and hidden behind a generic 500.
func (s *Server) error(w http.ResponseWriter, err error, code int) {
	log.Printf("error: %s", err)

	if msg, ok := publicMessage(err); ok {
		http.Error(w, msg, code)
		return
	}

	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func publicMessage(err error) (string, bool) {
	var (
		pub        util.ErrPublic
		odd        back.OddCountError
		paired     back.AlreadyPairedError
		self       back.SelfPairingError
		unknownRes back.UnknownResultError
		parse      rating.ParseError
	)

	switch {
	case errors.As(err, &pub):
		return pub.Error(), true
	case errors.As(err, &odd):
		return odd.Error(), true
	case errors.As(err, &paired):
		return paired.Error(), true
	case errors.As(err, &self):
		return self.Error(), true
	case errors.As(err, &unknownRes):
		return unknownRes.Error(), true
	case errors.As(err, &parse):
		return parse.Error(), true
	}

	return "", false
}
