// Package storage is the media gateway: uploaded images live under a
// server-controlled root, partitioned by purpose, and are served in fixed
// size chunks.
package storage

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/hercules-fit/hercules-api/internal/apperr"
)

// Kind selects the partition an image belongs to.
type Kind string

const (
	KindProfile Kind = "profile"
	KindPosts   Kind = "posts"
)

// StreamChunkSize bounds memory per streamed file.
const StreamChunkSize = 4096

// allowedExtensions is the fixed allow-list, matched case-insensitively.
var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
}

// AllowedExtension reports whether filename carries an accepted image
// extension.
func AllowedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := allowedExtensions[ext]
	return ok
}

// MediaStore persists images under root/<kind>/ with generated names.
type MediaStore struct {
	root string
}

func NewMediaStore(root string) (*MediaStore, error) {
	for _, kind := range []Kind{KindProfile, KindPosts} {
		if err := os.MkdirAll(filepath.Join(root, string(kind)), 0o755); err != nil {
			return nil, err
		}
	}
	return &MediaStore{root: root}, nil
}

func (s *MediaStore) SaveProfilePhoto(fh *multipart.FileHeader) (string, error) {
	return s.save(KindProfile, fh)
}

func (s *MediaStore) SavePostImage(fh *multipart.FileHeader) (string, error) {
	return s.save(KindPosts, fh)
}

// save validates the extension before anything touches the disk, then writes
// the upload under a generated collision-resistant name. The client-supplied
// name only contributes its extension.
func (s *MediaStore) save(kind Kind, fh *multipart.FileHeader) (string, error) {
	if !AllowedExtension(fh.Filename) {
		return "", apperr.InvalidInput("file extension not allowed")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	filename := strings.ReplaceAll(uuid.New().String(), "-", "") + ext

	src, err := fh.Open()
	if err != nil {
		return "", apperr.Internal(err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.root, string(kind), filename))
	if err != nil {
		return "", apperr.Internal(err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(dst.Name())
		return "", apperr.Internal(err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dst.Name())
		return "", apperr.Internal(err)
	}
	return filename, nil
}

// Open returns the stored file for streaming. The caller must close it on
// every exit path. filepath.Base strips any traversal attempt.
func (s *MediaStore) Open(kind Kind, filename string) (*os.File, error) {
	f, err := os.Open(filepath.Join(s.root, string(kind), filepath.Base(filename)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.NotFound("file not found")
		}
		return nil, apperr.Internal(err)
	}
	return f, nil
}

func (s *MediaStore) RemovePostImage(filename string) error {
	return s.remove(KindPosts, filename)
}

func (s *MediaStore) remove(kind Kind, filename string) error {
	err := os.Remove(filepath.Join(s.root, string(kind), filepath.Base(filename)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Stream copies the file to w in fixed-size chunks so large files never load
// wholesale. The file handle is closed before returning regardless of copy
// outcome; a write error usually means the client disconnected.
func (s *MediaStore) Stream(w io.Writer, kind Kind, filename string) error {
	f, err := s.Open(kind, filename)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, StreamChunkSize)
	if _, err := io.CopyBuffer(w, f, buf); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
