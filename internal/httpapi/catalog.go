package httpapi

import (
	"net/http"
	"strings"

	"arionfm/internal/queue"
	"arionfm/internal/theme"
	"arionfm/shared/go/models"
)

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess, r := s.session(r)
	snap, err := sess.Snapshot(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Albums []models.Album `json:"albums"`
	}{Albums: s.sessions.Catalog().Albums})
}

// handleLibrary filters by the session's search and mood, or by the q and
// mood query parameters when given.
func (s *Server) handleLibrary(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.session(r)
	st := sess.State()

	query, mood := st.SearchQuery, st.ActiveMood
	params := r.URL.Query()
	if params.Has("q") {
		query = strings.TrimSpace(params.Get("q"))
	}
	if params.Has("mood") {
		mood = params.Get("mood")
	}

	writeJSON(w, http.StatusOK, struct {
		Songs []models.Song `json:"songs"`
	}{Songs: queue.Filter(queue.AllSongs(st.Albums), query, mood)})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, _ := s.session(r)
	writeJSON(w, http.StatusOK, sess.SetSearch(req.Query))
}

func (s *Server) handleToggleMood(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mood string `json:"mood"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, _ := s.session(r)
	writeJSON(w, http.StatusOK, sess.ToggleMood(req.Mood))
}

func (s *Server) handleMoods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Moods []string `json:"moods"`
	}{Moods: queue.Moods(queue.AllSongs(s.sessions.Catalog().Albums))})
}

func (s *Server) handleQueue(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.session(r)
	writeJSON(w, http.StatusOK, struct {
		Songs []models.Song `json:"songs"`
	}{Songs: sess.State().Queue()})
}

func (s *Server) handleSetView(w http.ResponseWriter, r *http.Request) {
	var req struct {
		View string `json:"view"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	view, err := models.ParseViewState(req.View)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sess, r := s.session(r)
	st, err := sess.SetView(view)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleOpenAlbum(w http.ResponseWriter, r *http.Request) {
	sess, r := s.session(r)
	st, err := sess.OpenAlbum(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleOpenPlaylist(w http.ResponseWriter, r *http.Request) {
	sess, r := s.session(r)
	st, err := sess.OpenPlaylist(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Themes []models.Theme `json:"themes"`
	}{Themes: theme.All()})
}

func (s *Server) handleSelectTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ThemeID string `json:"themeId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, r := s.session(r)
	st, err := sess.SelectTheme(req.ThemeID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
