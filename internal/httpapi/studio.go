package httpapi

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"arionfm/internal/app/studio"
	"arionfm/internal/imageedit"
	"arionfm/internal/session"
	"arionfm/internal/state"
	"arionfm/internal/store"
	"arionfm/shared/go/models"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.profile.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ArtistProfile
	if !decodeJSON(w, r, &req) {
		return
	}
	profile, err := s.profile.Update(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// handleEditProfileImage takes the source photo in "image" and the editor
// controls as JSON in "adjustments". Missing controls keep their defaults.
func (s *Server) handleEditProfileImage(w http.ResponseWriter, r *http.Request) {
	if !parseMultipart(w, r) {
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "image file is required"})
		return
	}
	defer file.Close()

	adj := imageedit.DefaultAdjustments()
	if raw := r.FormValue("adjustments"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &adj); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid adjustments"})
			return
		}
	}

	profile, err := s.profile.EditImage(r.Context(), file, adj)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleCreateAlbum(w http.ResponseWriter, r *http.Request) {
	if !parseMultipart(w, r) {
		return
	}
	cover, closeCover := formFile(r, "cover")
	defer closeCover()

	album, err := s.studio.CreateAlbum(r.Context(), studio.AlbumInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Cover:       cover,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.sessions.Broadcast(state.AlbumAdded{Album: album})
	writeJSON(w, http.StatusCreated, album)
}

func (s *Server) handleEditAlbum(w http.ResponseWriter, r *http.Request) {
	if !parseMultipart(w, r) {
		return
	}
	cover, closeCover := formFile(r, "cover")
	defer closeCover()

	album, err := s.studio.EditAlbum(r.Context(), studio.AlbumEdit{
		ID:          r.PathValue("id"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		CoverArt:    strings.TrimSpace(r.FormValue("coverArt")),
		Cover:       cover,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.sessions.Broadcast(state.AlbumEdited{Album: album})
	writeJSON(w, http.StatusOK, album)
}

func (s *Server) handleUploadSong(w http.ResponseWriter, r *http.Request) {
	if !parseMultipart(w, r) {
		return
	}
	file, closeFile := formFile(r, "file")
	defer closeFile()

	song, err := s.studio.UploadSong(r.Context(), studio.SongInput{
		Title:   r.FormValue("title"),
		AlbumID: r.FormValue("albumId"),
		Lyrics:  r.FormValue("lyrics"),
		File:    file,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.sessions.Broadcast(state.SongAdded{AlbumID: song.AlbumID, Song: song})
	writeJSON(w, http.StatusCreated, song)
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.studio.DeleteSong(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	s.sessions.Broadcast(state.SongRemoved{SongID: id})
	w.WriteHeader(http.StatusNoContent)
}

// handleDownload names the file after the song. Songs outside the database,
// such as a dropped local file, are resolved from the caller's session.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	dl, err := s.studio.Download(r.Context(), id)
	if errors.Is(err, store.ErrSongNotFound) {
		sess, _ := s.session(r)
		song, ok := sess.State().FindSong(id)
		if !ok {
			if local, found := sess.LocalFile(id); found {
				song, ok = local.Song, true
			}
		}
		if !ok {
			writeError(w, r, session.ErrSongNotFound)
			return
		}
		dl, err = studio.Download{Filename: studio.DownloadName(song), URL: song.AudioSrc}, nil
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dl)
}

func parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart payload"})
		return false
	}
	return true
}

// formFile returns the named upload, or nil when the field is absent. The
// returned func closes it.
func formFile(r *http.Request, field string) (*studio.File, func()) {
	f, header, err := r.FormFile(field)
	if err != nil {
		return nil, func() {}
	}
	return &studio.File{
		Name:        header.Filename,
		ContentType: contentType(header),
		Body:        f,
	}, func() { f.Close() }
}

func contentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
