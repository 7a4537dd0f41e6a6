package web

import (
	"fmt"
	"net/http"
	"strconv"
)

func (s *Server) getPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.back.GetPlayers()
	if err != nil {
		s.error(w, err, http.StatusInternalServerError)
		return
	}

	s.response(w, http.StatusOK, "players.html", players)
}

func (s *Server) createPlayer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	var err error
	switch action := r.PostForm.Get("Action"); action {
	case "create":
		var initialRating float64
		initialRating, err = strconv.ParseFloat(r.PostForm.Get("InitialRating"), 64)
		if err != nil {
			s.error(w, err, http.StatusBadRequest)
			return
		}

		_, err = s.back.CreatePlayer(r.PostForm.Get("Name"), initialRating)
	case "default-schedule":
		playerID, parseErr := parseUUID(r.PostForm.Get("PlayerID"))
		if parseErr != nil {
			s.error(w, parseErr, http.StatusBadRequest)
			return
		}

		err = s.back.SetDefaultSchedule(playerID, r.PostForm.Get("Scheduled") == "1")
	default:
		err = fmt.Errorf("unknown action %q", action)
	}

	if err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/players", http.StatusFound)
}
