package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/pvn-digital/initiative-catalog/errs"
	"github.com/pvn-digital/initiative-catalog/models"
	"github.com/pvn-digital/initiative-catalog/services"
)

const (
	defaultMaxUploadBytes = 50 << 20
	multipartMemory       = 32 << 20
	payloadField          = "payload"
	filesField            = "files"
)

// pathParam returns the decoded URL parameter. Initiative names carry
// spaces and Vietnamese letters, so the raw path may still be escaped.
func pathParam(r *http.Request, key string) string {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value
	}
	if decoded, err := url.PathUnescape(value); err == nil {
		return decoded
	}
	return value
}

func decodeJSON(r *http.Request, payloadName string, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewMaxBodySizeExceededError(maxErr.Limit)
		}
		return errs.NewMalformedPayloadError(payloadName, err)
	}
	return nil
}

// readInitiativeRequest accepts either a JSON body or a multipart form with
// the JSON in the payload field and attachments under files.
func readInitiativeRequest(w http.ResponseWriter, r *http.Request, maxBytes int64) (models.InitiativeInput, []services.File, error) {
	var input models.InitiativeInput
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = "application/json"
	}

	switch mediaType {
	case "application/json":
		if err := decodeJSON(r, "initiative", &input); err != nil {
			return input, nil, err
		}
		return input, nil, nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return input, nil, errs.NewMaxBodySizeExceededError(maxBytes)
			}
			return input, nil, errs.NewMalformedPayloadError("multipart", err)
		}
		payload := r.FormValue(payloadField)
		if payload == "" {
			return input, nil, errs.NewMissingRequiredFieldError(payloadField)
		}
		if err := json.Unmarshal([]byte(payload), &input); err != nil {
			return input, nil, errs.NewMalformedPayloadError("initiative", err)
		}
		files, err := readFiles(r)
		return input, files, err

	default:
		return input, nil, errs.NewUnsupportedMediaTypeError(mediaType, []string{"application/json", "multipart/form-data"})
	}
}

func readFiles(r *http.Request) ([]services.File, error) {
	headers := r.MultipartForm.File[filesField]
	files := make([]services.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, errs.NewMalformedPayloadError("file "+fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, errs.NewMalformedPayloadError("file "+fh.Filename, err)
		}
		files = append(files, services.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return files, nil
}
