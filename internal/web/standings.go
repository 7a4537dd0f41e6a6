package web

import (
	"net/http"
)

func (s *Server) standings(w http.ResponseWriter, r *http.Request) {
	standings, err := s.back.GetStandings()
	if err != nil {
		s.error(w, err, http.StatusInternalServerError)
		return
	}

	s.response(w, http.StatusOK, "standings.html", standings)
}
