package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pvn-digital/initiative-catalog/errs"
)

// webhookFileField is the multipart field the webhook reads the file from.
const webhookFileField = "data"

// webhookItem is one element of the webhook's JSON array response.
type webhookItem struct {
	WebURL string `json:"webUrl"`
}

// WebhookUploader posts files to an automation webhook that stores them in
// the document library.
type WebhookUploader struct {
	url    string
	client *http.Client
}

func NewWebhookUploader(url string, client *http.Client) *WebhookUploader {
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}
	return &WebhookUploader{url: url, client: client}
}

// Upload requires a 2xx response whose body is a JSON array with a webUrl
// on its first element; any other shape fails.
func (u *WebhookUploader) Upload(ctx context.Context, file File) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, webhookFileField, safeName(file.Name)))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return "", errs.NewUploadError(file.Name, err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return "", errs.NewUploadError(file.Name, err)
	}
	if err := writer.Close(); err != nil {
		return "", errs.NewUploadError(file.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.url, &body)
	if err != nil {
		return "", errs.NewUploadError(file.Name, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", errs.NewUploadError(file.Name, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errs.NewUploadError(file.Name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errs.NewUploadError(file.Name, fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(bodyBytes)))
	}

	var items []webhookItem
	if err := json.Unmarshal(bodyBytes, &items); err != nil {
		return "", errs.NewInvalidUploadResponseError(fmt.Sprintf("response for %q is not a JSON array: %v", file.Name, err))
	}
	if len(items) == 0 || items[0].WebURL == "" {
		return "", errs.NewInvalidUploadResponseError(fmt.Sprintf("response for %q carries no webUrl", file.Name))
	}

	log.Debug().Str("file", file.Name).Str("webUrl", items[0].WebURL).Msg("Webhook upload complete")
	return items[0].WebURL, nil
}
