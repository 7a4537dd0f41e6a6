package web

import (
	"net/http"

	"github.com/jillest/goladder/internal/back"
	"github.com/jillest/goladder/internal/util"

	"github.com/google/uuid"
)

type indexTemplateData struct {
	Rounds   []back.Round
	NextDate string
}

// index lists the rounds and offers a form to plan the next one.
func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	rounds, err := s.back.GetRounds()
	if err != nil {
		s.error(w, err, http.StatusInternalServerError)
		return
	}

	visible := make([]back.Round, 0, len(rounds))
	for _, v := range rounds {
		if v.ParseExtra().Hidden {
			continue
		}
		visible = append(visible, v)
	}

	next, err := s.back.NextRoundDate()
	if err != nil {
		s.error(w, err, http.StatusInternalServerError)
		return
	}

	s.response(w, http.StatusOK, "index.html", indexTemplateData{
		Rounds:   visible,
		NextDate: next,
	})
}

func (s *Server) createRound(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	round, err := s.back.CreateRound(r.PostForm.Get("Date"))
	if err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/round/"+round.ID.String(), http.StatusFound)
}

func parseUUID(str string) (util.UUIDAsBlob, error) {
	id, err := uuid.Parse(str)
	if err != nil {
		return util.UUIDAsBlob{}, err
	}

	return util.UUIDAsBlob(id), nil
}
