package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"arionfm/shared/go/models"
)

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func songRowColumns() []string {
	return []string{"id", "title", "artist", "duration", "audio_src", "cover_art", "album_id",
		"lyrics", "plays", "likes", "moods", "is_premium"}
}

func TestListAlbums(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM albums`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "artist", "release_year", "cover_art", "description"}).
			AddRow("a1", "Neon Horizon", "Arion Solivion", 2024, "cover-a1", "Synthwave").
			AddRow("a2", "Echoes of the Void", "Arion Solivion", 2025, "cover-a2", "Ambient"))

	albums, err := s.ListAlbums(context.Background())
	if err != nil {
		t.Fatalf("ListAlbums: %v", err)
	}
	if len(albums) != 2 || albums[1].ReleaseYear != 2025 {
		t.Fatalf("unexpected albums: %+v", albums)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateAlbumNotFound(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE albums`)).
		WithArgs("New Title", "Arion Solivion", 2026, "cover", "desc", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateAlbum(context.Background(), models.Album{
		ID: "missing", Title: "New Title", Artist: "Arion Solivion", ReleaseYear: 2026,
		CoverArt: "cover", Description: "desc",
	})
	if !errors.Is(err, ErrAlbumNotFound) {
		t.Fatalf("expected ErrAlbumNotFound, got %v", err)
	}
}

func TestListSongsScansMoods(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM songs s`)).
		WillReturnRows(sqlmock.NewRows(songRowColumns()).
			AddRow("s2", "Circuit Dreams", "Arion Solivion", "4:15", "demo.mp3", "cover-a1", "a1",
				"", 8900, 2100, "{Dreamy,Chill}", false))

	songs, err := s.ListSongs(context.Background())
	if err != nil {
		t.Fatalf("ListSongs: %v", err)
	}
	if len(songs) != 1 {
		t.Fatalf("expected 1 song, got %d", len(songs))
	}
	if !songs[0].HasMood("Chill") || songs[0].AlbumID != "a1" {
		t.Fatalf("unexpected song: %+v", songs[0])
	}
}

func TestGetSongNotFound(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE s.id = $1`)).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(songRowColumns()))

	if _, err := s.GetSong(context.Background(), "nope"); !errors.Is(err, ErrSongNotFound) {
		t.Fatalf("expected ErrSongNotFound, got %v", err)
	}
}

func TestCreateSongUnknownAlbum(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO songs`)).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := s.CreateSong(context.Background(), models.Song{
		ID: "s10", Title: "Track", Artist: "Arion Solivion", AlbumID: "gone", AudioSrc: "x.mp3",
	})
	if !errors.Is(err, ErrAlbumNotFound) {
		t.Fatalf("expected ErrAlbumNotFound, got %v", err)
	}
}

func TestAssignSong(t *testing.T) {
	tests := []struct {
		name      string
		exists    bool
		insertErr error
		wantAdded bool
		wantErr   error
	}{
		{name: "appends and backfills cover", exists: true, wantAdded: true},
		{name: "duplicate ignored", exists: true, insertErr: &pgconn.PgError{Code: "23505"}},
		{name: "unknown song", exists: true, insertErr: &pgconn.PgError{Code: "23503"}, wantErr: ErrSongNotFound},
		{name: "unknown playlist", exists: false, wantErr: ErrPlaylistNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			s, mock := newMock(t)

			mock.ExpectBegin()
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM playlists WHERE id = $1)`)).
				WithArgs("p1").
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tc.exists))

			if tc.exists {
				insert := mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO playlist_songs`)).WithArgs("p1", "s2")
				if tc.insertErr != nil {
					insert.WillReturnError(tc.insertErr)
				} else {
					insert.WillReturnResult(sqlmock.NewResult(0, 1))
					mock.ExpectExec(regexp.QuoteMeta(`UPDATE playlists`)).
						WithArgs("p1", "cover-a1").
						WillReturnResult(sqlmock.NewResult(0, 1))
				}
			}
			if tc.wantAdded {
				mock.ExpectCommit()
			} else {
				mock.ExpectRollback()
			}

			added, err := s.AssignSong(context.Background(), "p1", "s2", "cover-a1")
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if added != tc.wantAdded {
				t.Fatalf("added = %v, want %v", added, tc.wantAdded)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestListPlaylistsLoadsSongs(t *testing.T) {
	s, mock := newMock(t)
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM playlists`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "cover_art", "created_at"}).
			AddRow("p1", "My Island Vibes", "", created))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM playlist_songs ps`)).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(songRowColumns()).
			AddRow("s8", "Hello World", "Arion Solivion", "3:10", "demo.mp3", "cover-a3", "a3",
				"", 25000, 8000, "{Upbeat,Pop}", false))

	playlists, err := s.ListPlaylists(context.Background())
	if err != nil {
		t.Fatalf("ListPlaylists: %v", err)
	}
	if len(playlists) != 1 || len(playlists[0].Songs) != 1 || playlists[0].Songs[0].ID != "s8" {
		t.Fatalf("unexpected playlists: %+v", playlists)
	}
	if !playlists[0].CreatedAt.Equal(created) {
		t.Fatalf("created_at = %v", playlists[0].CreatedAt)
	}
}

func TestDeletePlaylistNotFound(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM playlists WHERE id = $1`)).
		WithArgs("p9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.DeletePlaylist(context.Background(), "p9"); !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}
}

func TestGetProfile(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM artist_profile`)).
		WithArgs(models.ProfileRowID).
		WillReturnRows(sqlmock.NewRows([]string{"name", "tagline", "bio", "stats", "image_url", "updated_at"}).
			AddRow("ARION", "The Architect of Sound", "bio", []byte(`[{"value":"1.2M","label":"Monthly Guests"}]`),
				"img", time.Now()))

	profile, err := s.GetProfile(context.Background())
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if len(profile.Stats) != 1 || profile.Stats[0].Label != "Monthly Guests" {
		t.Fatalf("unexpected stats: %+v", profile.Stats)
	}
}

func TestGetProfileMissing(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM artist_profile`)).
		WithArgs(models.ProfileRowID).
		WillReturnRows(sqlmock.NewRows([]string{"name", "tagline", "bio", "stats", "image_url", "updated_at"}))

	if _, err := s.GetProfile(context.Background()); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestGetAlbumNotFound(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1`)).
		WithArgs("a404").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "artist", "release_year", "cover_art", "description"}))

	if _, err := s.GetAlbum(context.Background(), "a404"); !errors.Is(err, ErrAlbumNotFound) {
		t.Fatalf("expected ErrAlbumNotFound, got %v", err)
	}
}

func TestSeedCatalogRunsInOneTransaction(t *testing.T) {
	s, mock := newMock(t)

	albums := []models.Album{{ID: "a1", Title: "Neon Horizon", Artist: "Arion Solivion", ReleaseYear: 2024,
		Songs: []models.Song{{ID: "s1", Title: "Digital Heartbeat", Artist: "Arion Solivion", Moods: []string{"Energetic"}}}}}
	playlists := []models.Playlist{{ID: "p1", Title: "My Island Vibes"}}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO albums`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO songs`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO playlists`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := s.SeedCatalog(context.Background(), albums, playlists); err != nil {
		t.Fatalf("SeedCatalog: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
