package studio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"arionfm/internal/app/library"
	"arionfm/internal/cdn"
	"arionfm/shared/go/models"
)

const (
	defaultAlbumCover       = "https://images.unsplash.com/photo-1596323083648-523c52405d1b?q=80&w=800&auto=format&fit=crop"
	defaultAlbumDescription = "A new collection of sounds."
	defaultLyrics           = "Lyrics not provided."
	unknownDuration         = "--:--"
	newReleaseMood          = "New Release"
)

var (
	// ErrAlbumTitleRequired is returned when creating an album without a title.
	ErrAlbumTitleRequired = errors.New("please enter an album title")
	// ErrFileRequired is returned when uploading a song without a file.
	ErrFileRequired = errors.New("please select an audio file")
	// ErrAlbumRequired is returned when uploading a song without a target album.
	ErrAlbumRequired = errors.New("please select a target album")
	// ErrNotAudio rejects uploads that are not audio/*.
	ErrNotAudio = errors.New("please drop a valid audio file")
	// ErrNotImage rejects cover uploads that are not image/*.
	ErrNotImage = errors.New("cover must be an image")
)

// Store captures the persistence needs for studio workflows.
type Store interface {
	GetAlbum(ctx context.Context, id string) (models.Album, error)
	CreateAlbum(ctx context.Context, album models.Album) error
	UpdateAlbum(ctx context.Context, album models.Album) error
	GetSong(ctx context.Context, id string) (models.Song, error)
	CreateSong(ctx context.Context, song models.Song) error
	DeleteSong(ctx context.Context, id string) error
}

// Uploader stores media and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, filename string, rt cdn.ResourceType) (string, error)
}

// File is an uploaded form file.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// AlbumInput is the new-album form.
type AlbumInput struct {
	Title       string
	Description string
	Cover       *File
}

// AlbumEdit is the edit-album form. Empty fields keep their current value.
type AlbumEdit struct {
	ID          string
	Title       string
	Description string
	CoverArt    string
	Cover       *File
}

// SongInput is the upload-song form.
type SongInput struct {
	Title   string
	AlbumID string
	Lyrics  string
	File    *File
}

// Download names the file a song is saved as.
type Download struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// Service manages catalogue content for the admin.
type Service interface {
	CreateAlbum(ctx context.Context, in AlbumInput) (models.Album, error)
	EditAlbum(ctx context.Context, in AlbumEdit) (models.Album, error)
	UploadSong(ctx context.Context, in SongInput) (models.Song, error)
	DeleteSong(ctx context.Context, id string) error
	Download(ctx context.Context, songID string) (Download, error)
}

type service struct {
	store    Store
	uploader Uploader
	now      func() time.Time
}

// New constructs a Service.
func New(store Store, uploader Uploader) Service {
	return &service{store: store, uploader: uploader, now: time.Now}
}

func (s *service) CreateAlbum(ctx context.Context, in AlbumInput) (models.Album, error) {
	if err := ctx.Err(); err != nil {
		return models.Album{}, err
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return models.Album{}, ErrAlbumTitleRequired
	}
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Length(1, 200)),
		validation.Field(&in.Description, validation.Length(0, 2000)),
	); err != nil {
		return models.Album{}, err
	}

	album := models.Album{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Artist:      library.DefaultArtist,
		ReleaseYear: s.now().Year(),
		CoverArt:    defaultAlbumCover,
		Description: strings.TrimSpace(in.Description),
		Songs:       []models.Song{},
	}
	if album.Description == "" {
		album.Description = defaultAlbumDescription
	}
	if in.Cover != nil {
		url, err := s.uploadImage(ctx, in.Cover)
		if err != nil {
			return models.Album{}, err
		}
		album.CoverArt = url
	}

	if err := s.store.CreateAlbum(ctx, album); err != nil {
		return models.Album{}, err
	}
	return album, nil
}

func (s *service) EditAlbum(ctx context.Context, in AlbumEdit) (models.Album, error) {
	if err := ctx.Err(); err != nil {
		return models.Album{}, err
	}
	album, err := s.store.GetAlbum(ctx, in.ID)
	if err != nil {
		return models.Album{}, err
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		album.Title = title
	}
	if desc := strings.TrimSpace(in.Description); desc != "" {
		album.Description = desc
	}
	if in.CoverArt != "" {
		if err := validation.Validate(in.CoverArt, validation.Length(1, 2048)); err != nil {
			return models.Album{}, err
		}
		album.CoverArt = in.CoverArt
	}
	if in.Cover != nil {
		url, err := s.uploadImage(ctx, in.Cover)
		if err != nil {
			return models.Album{}, err
		}
		album.CoverArt = url
	}

	if err := s.store.UpdateAlbum(ctx, album); err != nil {
		return models.Album{}, err
	}
	return album, nil
}

func (s *service) UploadSong(ctx context.Context, in SongInput) (models.Song, error) {
	if err := ctx.Err(); err != nil {
		return models.Song{}, err
	}
	if in.File == nil {
		return models.Song{}, ErrFileRequired
	}
	if strings.TrimSpace(in.AlbumID) == "" {
		return models.Song{}, ErrAlbumRequired
	}
	if !IsAudio(in.File.ContentType) {
		return models.Song{}, ErrNotAudio
	}

	album, err := s.store.GetAlbum(ctx, in.AlbumID)
	if err != nil {
		return models.Song{}, err
	}

	audioURL, err := s.uploader.Upload(ctx, in.File.Body, in.File.Name, cdn.ResourceVideo)
	if err != nil {
		return models.Song{}, fmt.Errorf("upload audio: %w", err)
	}

	song := models.Song{
		ID:       uuid.NewString(),
		Title:    strings.TrimSpace(in.Title),
		Artist:   library.DefaultArtist,
		Duration: unknownDuration,
		AudioSrc: audioURL,
		CoverArt: album.CoverArt,
		AlbumID:  album.ID,
		Lyrics:   strings.TrimSpace(in.Lyrics),
		Moods:    []string{newReleaseMood},
	}
	if song.Title == "" {
		song.Title = TitleFromFilename(in.File.Name)
	}
	if song.Lyrics == "" {
		song.Lyrics = defaultLyrics
	}

	if err := s.store.CreateSong(ctx, song); err != nil {
		return models.Song{}, err
	}
	return song, nil
}

func (s *service) DeleteSong(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteSong(ctx, id)
}

func (s *service) Download(ctx context.Context, songID string) (Download, error) {
	if err := ctx.Err(); err != nil {
		return Download{}, err
	}
	song, err := s.store.GetSong(ctx, songID)
	if err != nil {
		return Download{}, err
	}
	return Download{Filename: DownloadName(song), URL: song.AudioSrc}, nil
}

func (s *service) uploadImage(ctx context.Context, f *File) (string, error) {
	if !strings.HasPrefix(f.ContentType, "image/") {
		return "", fmt.Errorf("%w: got %q", ErrNotImage, f.ContentType)
	}
	url, err := s.uploader.Upload(ctx, f.Body, f.Name, cdn.ResourceImage)
	if err != nil {
		return "", fmt.Errorf("upload cover: %w", err)
	}
	return url, nil
}

// IsAudio reports whether a MIME type is audio/*.
func IsAudio(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "audio/")
}

// TitleFromFilename strips the directory and final extension. A name that
// is only an extension, such as ".mp3", yields an empty title.
func TitleFromFilename(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if ext := path.Ext(base); len(ext) > 1 {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

// DownloadName is the file name offered when saving a song.
func DownloadName(song models.Song) string {
	return song.Title + ".mp3"
}
