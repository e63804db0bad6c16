package storage

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/unicode/norm"
)

// ErrUnsupportedImage means the upload is not a png, jpeg or gif.
var ErrUnsupportedImage = errors.New("unsupported image type")

var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

var allowedContentTypes = []string{"image/png", "image/jpeg", "image/gif"}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// AllowedImageName reports whether the file name carries an allowed image extension.
func AllowedImageName(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	return allowedExtensions[ext]
}

// DetectImage checks the name and the sniffed content and returns the content type to store.
func DetectImage(filename string, data []byte) (string, error) {
	if !AllowedImageName(filename) {
		return "", ErrUnsupportedImage
	}

	detected := mimetype.Detect(data)
	for _, allowed := range allowedContentTypes {
		if detected.Is(allowed) {
			return allowed, nil
		}
	}
	return "", ErrUnsupportedImage
}

// SecureFilename reduces a client supplied name to a flat ASCII file name.
// It returns "" when nothing usable is left.
func SecureFilename(filename string) string {
	decomposed := norm.NFKD.String(filename)

	ascii := strings.Builder{}
	ascii.Grow(len(decomposed))
	for _, r := range decomposed {
		if r < 0x80 {
			ascii.WriteRune(r)
		}
	}

	flat := strings.NewReplacer("/", " ", "\\", " ").Replace(ascii.String())
	joined := strings.Join(strings.Fields(flat), "_")
	return strings.Trim(unsafeFilenameChars.ReplaceAllString(joined, ""), "._")
}
