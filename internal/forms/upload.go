package forms

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Upload is an accepted image file held in memory.
type Upload struct {
	Filename    string
	ContentType string
	Extension   string
	Data        []byte
}

func (u *Upload) Size() int64 {
	return int64(len(u.Data))
}

func (u *Upload) Reader() io.Reader {
	return bytes.NewReader(u.Data)
}

var errNotImage = errors.New("Upload a valid image. The file you uploaded was either not an image or a corrupted image.")

// readImage returns the uploaded image in field, nil when nothing was sent.
func readImage(r *http.Request, field string, maxSize int64) (*Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	if header.Size == 0 {
		return nil, nil
	}

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("Ensure the file is at most %d bytes.", maxSize)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, errNotImage
	}

	return &Upload{
		Filename:    header.Filename,
		ContentType: mt.String(),
		Extension:   mt.Extension(),
		Data:        data,
	}, nil
}
