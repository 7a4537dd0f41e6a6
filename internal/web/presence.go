package web

import (
	"net/http"
	"time"

	"github.com/jillest/goladder/internal/util"
)

func (s *Server) getPresence(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	if from == "" {
		from = util.NewDateAsString(time.Now()).String()
	}

	overview, err := s.back.GetPresenceOverview(from)
	if err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	s.response(w, http.StatusOK, "presence.html", overview)
}

func (s *Server) postPresence(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	playerID, err := parseUUID(r.PostForm.Get("PlayerID"))
	if err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}
	roundID, err := parseUUID(r.PostForm.Get("RoundID"))
	if err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	scheduled := r.PostForm.Get("Scheduled") == "1"
	if err := s.back.SetPresence(playerID, roundID, scheduled); err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/presence", http.StatusFound)
}
