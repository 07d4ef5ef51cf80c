package docs

import (
	"docserver/internal/models"
	"errors"
	"net/http"
	"strconv"
)

const maxUploadSize = 50 << 20

// parseForm accepts both multipart and urlencoded bodies, so metadata-only
// updates do not have to fake a file part.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxUploadSize)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

func formString(r *http.Request, field string) *string {
	values, ok := r.Form[field]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func formInt64(r *http.Request, field string) (*int64, error) {
	raw := formString(r, field)
	if raw == nil || *raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(*raw, 10, 64)
	if err != nil {
		return nil, err
	}

	return &id, nil
}

// formFile returns nil without error when no file part was sent.
func formFile(r *http.Request) (*models.FilePayload, func(), error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, nil, err
	}

	return &models.FilePayload{Name: header.Filename, Content: file}, func() { file.Close() }, nil
}

func parseDocID(rawID string) (int64, error) {
	return strconv.ParseInt(rawID, 10, 64)
}
