// Package bind decodes request bodies into structs.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/mayorista/config"
	"github.com/shashiranjanraj/mayorista/pkg/validate"
)

var (
	ErrBodyTooLarge = errors.New("request body too large")
	ErrMissingFile  = errors.New("missing file")
)

// maxBodyBytes returns MAX_BODY_BYTES (default 4 MB).
func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "4194304"), 10, 64)
	if err != nil || n <= 0 {
		return 4 << 20
	}
	return n
}

// JSON decodes r.Body into dest and runs validate.Struct on it.
// Returns (errs, nil) on validation failures and (nil, err) when the body
// is malformed or too large.
func JSON(r *http.Request, dest any) (errs map[string]string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	if err = json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w (max %d bytes)", ErrBodyTooLarge, maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if errs = validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}

// FormFile reads one multipart file field. The whole body is capped at
// limit plus 64 KB for the multipart envelope. The caller closes the file.
func FormFile(w http.ResponseWriter, r *http.Request, field string, limit int64) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, limit+64<<10)
	if err := r.ParseMultipartForm(limit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, nil, ErrBodyTooLarge
		}
		return nil, nil, fmt.Errorf("invalid multipart body: %w", err)
	}
	f, hdr, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, ErrMissingFile
		}
		return nil, nil, err
	}
	return f, hdr, nil
}
