package httpapi

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"arionfm/internal/app/studio"
	"arionfm/internal/playback"
	"arionfm/internal/state"
	"arionfm/shared/go/models"
)

type dragRequest struct {
	SongID string `json:"songId"`
}

type createPlaylistRequest struct {
	Title string `json:"title"`
}

type dropFileResponse struct {
	Song   models.Song     `json:"song"`
	State  state.State     `json:"state"`
	Player playback.Status `json:"player"`
}

func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.session(r)
	writeJSON(w, http.StatusOK, struct {
		Playlists []models.Playlist `json:"playlists"`
	}{Playlists: sess.State().Playlists})
}

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req createPlaylistRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, r := s.session(r)
	playlist, err := sess.CreatePlaylist(r.Context(), req.Title)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, playlist)
}

func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	sess, r := s.session(r)
	if err := sess.DeletePlaylist(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBeginDrag(w http.ResponseWriter, r *http.Request) {
	var req dragRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, r := s.session(r)
	if err := sess.BeginDrag(req.SongID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCancelDrag(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.session(r)
	sess.CancelDrag()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	sess, r := s.session(r)
	added, err := sess.DropOnPlaylist(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Added bool `json:"added"`
	}{Added: added})
}

// handleDropFile accepts a dropped audio file in the "file" form field and
// starts playing it.
func (s *Server) handleDropFile(w http.ResponseWriter, r *http.Request) {
	if !parseMultipart(w, r) {
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, studio.ErrFileRequired)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "read upload"})
		return
	}

	sess, r := s.session(r)
	song, err := sess.DropFile(header.Filename, contentType(header), data)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dropFileResponse{
		Song:   song,
		State:  sess.State(),
		Player: sess.Player().Status(),
	})
}

func (s *Server) handleLocalMedia(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.session(r)
	f, ok := sess.LocalFile(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", f.ContentType)
	http.ServeContent(w, r, f.Song.Title, time.Time{}, bytes.NewReader(f.Data))
}

func (s *Server) handleLikes(w http.ResponseWriter, r *http.Request) {
	sess, r := s.session(r)
	liked, err := sess.Liked(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Liked []string `json:"liked"`
	}{Liked: liked})
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	songID := r.PathValue("songId")
	sess, r := s.session(r)
	liked, err := sess.ToggleLike(r.Context(), songID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		SongID string `json:"songId"`
		Liked  bool   `json:"liked"`
	}{SongID: songID, Liked: liked})
}
