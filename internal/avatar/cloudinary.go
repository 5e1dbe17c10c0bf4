// Package avatar stores profile images in Cloudinary via its signed-upload
// HTTP API. Uploads replace the user's previous avatar: the handler uploads
// the new object first, then deletes the old one best-effort.
package avatar

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotConfigured is returned when the Cloudinary credentials are absent.
// Handlers map this to HTTP 500 configuration-missing.
var ErrNotConfigured = errors.New("avatar: cloudinary credentials not configured")

// Config carries the Cloudinary account credentials.
// Folder optionally namespaces uploaded objects ("avatars" by convention).
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Configured reports whether all required credentials are present.
func (c Config) Configured() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// Store uploads and deletes avatar objects.
type Store struct {
	cfg        Config
	httpClient *http.Client
	baseURL    string
	now        func() time.Time
}

// NewStore constructs a Store. A nil httpClient falls back to
// http.DefaultClient; an empty baseURL falls back to the Cloudinary API
// host. Tests override both, plus the clock.
func NewStore(cfg Config, httpClient *http.Client, baseURL string) *Store {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = "https://api.cloudinary.com"
	}
	return &Store{cfg: cfg, httpClient: httpClient, baseURL: baseURL, now: time.Now}
}

// Upload sends image bytes as a signed upload under publicID and returns
// the public HTTPS URL of the stored object.
func (s *Store) Upload(ctx context.Context, image []byte, contentType, publicID string) (string, error) {
	if !s.cfg.Configured() {
		return "", ErrNotConfigured
	}

	if s.cfg.Folder != "" {
		publicID = s.cfg.Folder + "/" + publicID
	}
	timestamp := fmt.Sprintf("%d", s.now().Unix())

	// Cloudinary's signature is SHA1 over the sorted signed params
	// concatenated with the API secret.
	toSign := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, s.cfg.APISecret)
	signature := fmt.Sprintf("%x", sha1.Sum([]byte(toSign)))

	form := url.Values{
		"file":      {"data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(image)},
		"api_key":   {s.cfg.APIKey},
		"public_id": {publicID},
		"timestamp": {timestamp},
		"signature": {signature},
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/upload", s.baseURL, s.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("avatar: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("avatar: upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("avatar: upload HTTP %d", resp.StatusCode)
	}

	var body struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("avatar: decode response: %w", err)
	}
	if body.Error.Message != "" {
		return "", fmt.Errorf("avatar: upload rejected: %s", body.Error.Message)
	}

	publicURL := body.SecureURL
	if publicURL == "" {
		publicURL = body.URL
	}
	if publicURL == "" {
		return "", errors.New("avatar: upload returned no URL")
	}
	return publicURL, nil
}

// Delete removes a previously uploaded object by its public URL.
// Deletion is best-effort cleanup of replaced avatars; callers log the
// error and move on.
func (s *Store) Delete(ctx context.Context, publicURL string) error {
	if !s.cfg.Configured() {
		return ErrNotConfigured
	}

	publicID, ok := publicIDFromURL(publicURL)
	if !ok {
		return fmt.Errorf("avatar: not a cloudinary URL: %s", publicURL)
	}

	timestamp := fmt.Sprintf("%d", s.now().Unix())
	toSign := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, s.cfg.APISecret)
	signature := fmt.Sprintf("%x", sha1.Sum([]byte(toSign)))

	form := url.Values{
		"public_id": {publicID},
		"api_key":   {s.cfg.APIKey},
		"timestamp": {timestamp},
		"signature": {signature},
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/destroy", s.baseURL, s.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("avatar: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("avatar: delete request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("avatar: delete HTTP %d", resp.StatusCode)
	}
	return nil
}

// publicIDFromURL extracts the public ID from a Cloudinary delivery URL:
// https://res.cloudinary.com/{cloud}/image/upload/v{version}/{public_id}.{ext}
func publicIDFromURL(u string) (string, bool) {
	if !strings.Contains(u, "res.cloudinary.com") {
		return "", false
	}
	_, after, ok := strings.Cut(u, "/upload/")
	if !ok {
		return "", false
	}
	parts := strings.SplitN(after, "/", 2)
	if len(parts) == 2 && strings.HasPrefix(parts[0], "v") {
		after = parts[1] // drop the version segment
	}
	if i := strings.LastIndex(after, "."); i > 0 {
		after = after[:i]
	}
	if after == "" {
		return "", false
	}
	return after, true
}
