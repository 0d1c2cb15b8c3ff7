package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"arionfm/internal/playback"
	"arionfm/internal/state"
	"arionfm/shared/go/logging"
)

type playerResponse struct {
	State  state.State     `json:"state"`
	Player playback.Status `json:"player"`
}

type playRequest struct {
	SongID  string `json:"songId"`
	AlbumID string `json:"albumId"`
}

type seekRequest struct {
	Percent float64 `json:"percent"`
}

type progressRequest struct {
	CurrentTime float64 `json:"currentTime"`
	Duration    float64 `json:"duration"`
}

type volumeRequest struct {
	Volume float64 `json:"volume"`
}

func (s *Server) handlePlayerStatus(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.session(r)
	writeJSON(w, http.StatusOK, sess.Player().Status())
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, r := s.session(r)
	st, err := sess.PlaySong(req.SongID, req.AlbumID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playerResponse{State: st, Player: sess.Player().Status()})
}

func (s *Server) handlePlayPause(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.session(r)
	st := sess.PlayPause()
	writeJSON(w, http.StatusOK, playerResponse{State: st, Player: sess.Player().Status()})
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.session(r)
	st := sess.Next()
	writeJSON(w, http.StatusOK, playerResponse{State: st, Player: sess.Player().Status()})
}

func (s *Server) handlePrev(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.session(r)
	st := sess.Prev()
	writeJSON(w, http.StatusOK, playerResponse{State: st, Player: sess.Player().Status()})
}

func (s *Server) handleEnded(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.session(r)
	st := sess.TrackEnded()
	writeJSON(w, http.StatusOK, playerResponse{State: st, Player: sess.Player().Status()})
}

func (s *Server) handleSeek(w http.ResponseWriter, r *http.Request) {
	var req seekRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, r := s.session(r)
	if _, err := sess.Player().Seek(req.Percent); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Player().Status())
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, _ := s.session(r)
	sess.Player().Report(req.CurrentTime, req.Duration)
	writeJSON(w, http.StatusOK, sess.Player().Status())
}

func (s *Server) handleVolume(w http.ResponseWriter, r *http.Request) {
	var req volumeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, r := s.session(r)
	if err := sess.Player().SetVolume(req.Volume); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Player().Status())
}

// handleVisualizer streams bar heights as server-sent events until the
// client goes away.
func (s *Server) handleVisualizer(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming unsupported"})
		return
	}
	sess, r := s.session(r)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	emit := func(bars []float64) error {
		payload, err := json.Marshal(bars)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	err := s.newVisualizer().Run(r.Context(), s.frameInterval, sess.Player().IsPlaying, emit)
	if err != nil && !errors.Is(err, r.Context().Err()) {
		logging.WithContext(r.Context()).Debug().Err(err).Msg("visualizer stream closed")
	}
}
