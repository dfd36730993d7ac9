package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvn-digital/initiative-catalog/errs"
)

func files(names ...string) []File {
	out := make([]File, len(names))
	for i, n := range names {
		out[i] = File{Name: n, ContentType: "application/pdf", Data: []byte("content of " + n)}
	}
	return out
}

func TestUploadAllSequentialWithDelay(t *testing.T) {
	up := &fakeUploader{}
	start := time.Now()

	urls, err := UploadAll(context.Background(), up, files("a.pdf", "b.pdf", "c.pdf"), 20*time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://files.test/a.pdf", "https://files.test/b.pdf", "https://files.test/c.pdf"}, urls)
	assert.Equal(t, []string{"a.pdf", "b.pdf", "c.pdf"}, up.uploaded)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestUploadAllNoFiles(t *testing.T) {
	urls, err := UploadAll(context.Background(), &fakeUploader{}, nil, time.Hour)
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestUploadAllCollectsEveryFailure(t *testing.T) {
	up := &fakeUploader{fail: map[string]bool{"a.pdf": true, "c.pdf": true}}

	urls, err := UploadAll(context.Background(), up, files("a.pdf", "b.pdf", "c.pdf"), 0)

	require.Error(t, err)
	assert.Nil(t, urls)
	assert.True(t, errs.IsUploadError(err))
	assert.Contains(t, err.Error(), "2 file(s) failed")
	assert.Contains(t, err.Error(), "a.pdf: quota exceeded")
	assert.Contains(t, err.Error(), "c.pdf: quota exceeded")
	assert.Equal(t, []string{"b.pdf"}, up.uploaded)
}

func TestUploadAllStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	up := &fakeUploader{}

	done := make(chan error, 1)
	go func() {
		_, err := UploadAll(ctx, up, files("a.pdf", "b.pdf"), time.Hour)
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "b.pdf: context canceled")
	case <-time.After(time.Second):
		t.Fatal("UploadAll did not return after cancel")
	}
}

func newTestClient() *http.Client {
	return &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
}

func TestWebhookUploader(t *testing.T) {
	var gotName, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		file, header, err := r.FormFile("data")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		body, _ := io.ReadAll(file)
		gotName, gotBody = header.Filename, string(body)
		json.NewEncoder(w).Encode([]map[string]string{{"webUrl": "https://sharepoint.test/doc.pdf"}})
	}))
	defer server.Close()

	url, err := NewWebhookUploader(server.URL, newTestClient()).Upload(context.Background(), File{Name: "dir/doc.pdf", Data: []byte("pdf")})

	require.NoError(t, err)
	assert.Equal(t, "https://sharepoint.test/doc.pdf", url)
	assert.Equal(t, "doc.pdf", gotName)
	assert.Equal(t, "pdf", gotBody)
}

func TestWebhookUploaderRejectsBadResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		invalid bool
	}{
		{"server error", http.StatusInternalServerError, "boom", false},
		{"object instead of array", http.StatusOK, `{"webUrl":"https://x.test"}`, true},
		{"empty array", http.StatusOK, `[]`, true},
		{"missing webUrl", http.StatusOK, `[{"url":"https://x.test"}]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer server.Close()

			_, err := NewWebhookUploader(server.URL, newTestClient()).Upload(context.Background(), File{Name: "a.pdf"})

			require.Error(t, err)
			assert.True(t, errs.IsUploadError(err) || tt.invalid)
			if tt.invalid {
				assert.ErrorIs(t, err, errs.ErrInvalidUploadResponse)
			}
		})
	}
}

type fakePutter struct {
	input *s3.PutObjectInput
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Uploader(t *testing.T) {
	putter := &fakePutter{}
	up := NewS3Uploader(putter, "catalog-files", "ap-southeast-1", "/attachments/", "")
	up.newID = func() string { return "id-1" }

	url, err := up.Upload(context.Background(), File{Name: "Báo cáo.pdf", ContentType: "application/pdf", Data: []byte("x")})

	require.NoError(t, err)
	assert.Equal(t, "attachments/id-1/Báo cáo.pdf", *putter.input.Key)
	assert.Equal(t, "catalog-files", *putter.input.Bucket)
	assert.Equal(t, "application/pdf", *putter.input.ContentType)
	assert.Equal(t, int64(1), *putter.input.ContentLength)
	assert.Equal(t, "https://catalog-files.s3.ap-southeast-1.amazonaws.com/attachments/id-1/B%C3%A1o%20c%C3%A1o.pdf", url)

	up = NewS3Uploader(putter, "b", "r", "", "https://cdn.test/")
	up.newID = func() string { return "id-2" }
	url, err = up.Upload(context.Background(), File{Name: "a.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/id-2/a.pdf", url)
	assert.Nil(t, putter.input.ContentType)

	putter.err = assert.AnError
	_, err = up.Upload(context.Background(), File{Name: "a.pdf"})
	assert.True(t, errs.IsUploadError(err))
}
