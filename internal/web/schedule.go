package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jillest/goladder/internal/back"

	"github.com/go-chi/chi"
)

func (s *Server) getSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(chi.URLParam(r, "id"))
	if err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	schedule, err := s.back.GetRoundSchedule(id)
	if err != nil {
		s.error(w, err, http.StatusNotFound)
		return
	}

	s.response(w, http.StatusOK, "schedule.html", schedule)
}

// postSchedule turns one schedule form submission into a RoundUpdate:
// per-game actions, an optional custom game, and the checked players to
// auto-pair.
func (s *Server) postSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(chi.URLParam(r, "id"))
	if err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	update := back.RoundUpdate{RoundID: id}

	for key, values := range r.PostForm {
		if !strings.HasPrefix(key, "game-") || len(values) == 0 {
			continue
		}

		gameID, err := parseUUID(strings.TrimPrefix(key, "game-"))
		if err != nil {
			s.error(w, err, http.StatusBadRequest)
			return
		}

		action, result, err := back.ParseGameAction(values[0])
		if err != nil {
			s.error(w, err, http.StatusBadRequest)
			return
		}
		if action == back.GameActionNone {
			continue
		}

		update.Edits = append(update.Edits, back.GameEdit{
			GameID: gameID,
			Action: action,
			Result: result,
		})
	}

	if white, black := r.PostForm.Get("CustomWhiteID"), r.PostForm.Get("CustomBlackID"); white != "" && black != "" {
		whiteID, err := parseUUID(white)
		if err != nil {
			s.error(w, err, http.StatusBadRequest)
			return
		}
		blackID, err := parseUUID(black)
		if err != nil {
			s.error(w, err, http.StatusBadRequest)
			return
		}

		update.Custom = &back.CustomGame{
			WhiteID:  whiteID,
			BlackID:  blackID,
			Handicap: r.PostForm.Get("CustomHandicap"),
			Result:   r.PostForm.Get("CustomResult"),
		}
	}

	for _, str := range r.PostForm["PairPlayerIDs"] {
		playerID, err := parseUUID(str)
		if err != nil {
			s.error(w, err, http.StatusBadRequest)
			return
		}
		update.PairPlayerIDs = append(update.PairPlayerIDs, playerID)
	}

	pairings, err := s.back.ScheduleRound(update)
	if err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	if len(pairings) > 0 {
		if schedule, err := s.back.GetRoundSchedule(id); err == nil {
			s.announcer.AnnouncePairings(schedule.Round, pairings)
		}
	}

	http.Redirect(w, r, "/round/"+id.String(), http.StatusFound)
}

func (s *Server) patchRoundExtra(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(chi.URLParam(r, "id"))
	if err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	patch, err := json.Marshal(map[string]interface{}{
		"description": r.PostForm.Get("Description"),
		"hidden":      r.PostForm.Get("Hidden") == "1",
	})
	if err != nil {
		s.error(w, err, http.StatusInternalServerError)
		return
	}

	if err := s.back.PatchRoundExtra(id, patch); err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/round/"+id.String(), http.StatusFound)
}
