package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pvn-digital/initiative-catalog/errs"
)

// File is one attachment received with an add or edit form.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Uploader stores a file and returns the URL it can be fetched from.
type Uploader interface {
	Upload(ctx context.Context, file File) (string, error)
}

// UploadAll uploads files one at a time, waiting delay between consecutive
// uploads. Every failure is collected; if any file failed the returned error
// lists all of them and no URLs are returned.
func UploadAll(ctx context.Context, uploader Uploader, files []File, delay time.Duration) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}

	urls := make([]string, 0, len(files))
	var failures []errs.FileFailure

	for i, file := range files {
		if i > 0 && delay > 0 {
			if err := wait(ctx, delay); err != nil {
				for _, rest := range files[i:] {
					failures = append(failures, errs.FileFailure{FileName: rest.Name, Reason: err})
				}
				break
			}
		}

		log.Info().Str("file", file.Name).Int("index", i+1).Int("total", len(files)).Msg("Uploading attachment...")
		url, err := uploader.Upload(ctx, file)
		if err != nil {
			log.Error().Err(err).Str("file", file.Name).Msg("Failed to upload attachment")
			failures = append(failures, errs.FileFailure{FileName: file.Name, Reason: err})
			continue
		}
		urls = append(urls, url)
	}

	if len(failures) > 0 {
		return nil, errs.NewCompositeUploadError(failures)
	}

	log.Info().Int("count", len(urls)).Msg("Successfully uploaded all attachments")
	return urls, nil
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// safeName keeps the base name of an uploaded file and drops path separators.
func safeName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "file"
	}
	return name
}
