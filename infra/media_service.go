package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/qbnguyen/cloudlet-service/config"
)

// MediaService talks to the external media CDN that holds the actual file
// bytes. All requests are authenticated with the account private key.
type MediaService struct {
	ServiceURL string `json:"service_url"`
	CDNURL     string `json:"cdn_url"`
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key,omitempty"`

	client *http.Client
}

func InitMediaService(config *config.EnvConfig) *MediaService {
	if config.Media.ServiceURL == "" {
		panic("Media service URL is not configured")
	}

	if config.Media.PrivateKey == "" {
		panic("Media private key is not configured")
	}

	return &MediaService{
		ServiceURL: config.Media.ServiceURL,
		CDNURL:     config.Media.CDNURL,
		PublicKey:  config.Media.PublicKey,
		PrivateKey: config.Media.PrivateKey,
		client:     &http.Client{},
	}
}

// mediaUploadResponse is the CDN's upload response envelope.
type mediaUploadResponse struct {
	Name         string `json:"name"`
	FilePath     string `json:"file_path"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	FileType     string `json:"file_type"`
	Size         int64  `json:"size"`
	Message      string `json:"message"`
}

// GetCDNURL returns the public retrieval URL for a stored file path.
func (m *MediaService) GetCDNURL(filePath string) string {
	return fmt.Sprintf("%s/%s", m.CDNURL, filePath)
}

// Upload streams file data to the CDN as multipart form data. io.Pipe keeps
// memory flat regardless of file size.
func (m *MediaService) Upload(ctx context.Context, data io.Reader, size int64, filename, contentType, folder string) (*UploadResult, error) {
	uploadURL := fmt.Sprintf("%s/api/v1/media/upload", m.ServiceURL)

	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)

	errChan := make(chan error, 1)

	go func() {
		defer pw.Close()
		defer w.Close()

		if err := w.WriteField("folder", folder); err != nil {
			errChan <- fmt.Errorf("failed to write folder field: %w", err)
			return
		}

		h := make(map[string][]string)
		h["Content-Disposition"] = []string{
			fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename),
		}
		h["Content-Type"] = []string{contentType}

		fw, err := w.CreatePart(h)
		if err != nil {
			errChan <- fmt.Errorf("failed to create form file: %w", err)
			return
		}

		if _, err := io.Copy(fw, data); err != nil {
			errChan <- fmt.Errorf("failed to stream file data: %w", err)
			return
		}

		errChan <- nil
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, pr)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Private-Key", m.PrivateKey)

	resp, err := m.client.Do(req)

	writeErr := <-errChan
	if writeErr != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, writeErr
	}

	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("media service returned %d: %s", resp.StatusCode, raw)
	}

	var response mediaUploadResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}

	return &UploadResult{
		Name:         response.Name,
		FilePath:     response.FilePath,
		URL:          response.URL,
		ThumbnailURL: response.ThumbnailURL,
		FileType:     response.FileType,
		Size:         response.Size,
		Raw:          raw,
	}, nil
}

// Search looks up stored files by name. The CDN may have renamed the file on
// ingest, so callers should prefer the returned Name over their query.
func (m *MediaService) Search(ctx context.Context, name string, limit int) ([]StoredObject, error) {
	searchURL := fmt.Sprintf("%s/api/v1/media/search?name=%s&limit=%s",
		m.ServiceURL, url.QueryEscape(name), strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Private-Key", m.PrivateKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search media service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("media service search returned %d: %s", resp.StatusCode, raw)
	}

	var matches []StoredObject
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return matches, nil
}

// DeleteByName removes a stored file by its store-side name.
func (m *MediaService) DeleteByName(ctx context.Context, name string) error {
	deleteURL := fmt.Sprintf("%s/api/v1/media/%s", m.ServiceURL, url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, deleteURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Private-Key", m.PrivateKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete from media service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("media service delete returned %d: %s", resp.StatusCode, raw)
	}

	return nil
}
