// Package media implements the media-host port against the Cloudinary REST
// API. Uploads are signed with the account secret; assets are addressed by
// public ID, which can be recovered from a delivery URL.
package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/opencampus/campus-cms/internal/core/ports"
)

const baseURL = "https://api.cloudinary.com/v1_1"

// Config holds the Cloudinary account credentials.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	// Folder is prepended to every uploaded asset's public ID.
	Folder string
}

// CloudinaryStore talks to the Cloudinary upload and admin endpoints.
type CloudinaryStore struct {
	cfg    Config
	client *http.Client
	now    func() time.Time
}

func NewCloudinaryStore(cfg Config) *CloudinaryStore {
	return &CloudinaryStore{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		now:    time.Now,
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the file to Cloudinary and returns its delivery URL and
// public ID.
func (s *CloudinaryStore) Upload(ctx context.Context, file *ports.MediaFile) (*ports.MediaUpload, error) {
	params := map[string]string{
		"timestamp": strconv.FormatInt(s.now().Unix(), 10),
	}
	if s.cfg.Folder != "" {
		params["folder"] = s.cfg.Folder
	}

	body := &strings.Builder{}
	writer := multipart.NewWriter(body)
	for k, v := range params {
		if err := writer.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write upload field: %w", err)
		}
	}
	if err := writer.WriteField("api_key", s.cfg.APIKey); err != nil {
		return nil, fmt.Errorf("write upload field: %w", err)
	}
	if err := writer.WriteField("signature", s.sign(params)); err != nil {
		return nil, fmt.Errorf("write upload field: %w", err)
	}

	part, err := writer.CreateFormFile("file", file.Filename)
	if err != nil {
		return nil, fmt.Errorf("create upload part: %w", err)
	}
	if _, err := io.Copy(part, file.Reader); err != nil {
		return nil, fmt.Errorf("copy upload body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close upload body: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", baseURL, s.cfg.CloudName)
	resp, err := s.post(ctx, endpoint, writer.FormDataContentType(), strings.NewReader(body.String()))
	if err != nil {
		return nil, err
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return nil, fmt.Errorf("cloudinary upload: empty response")
	}
	return &ports.MediaUpload{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

// Delete destroys the asset identified by publicID. Deleting an asset that is
// already gone is not an error.
func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	params := map[string]string{
		"public_id": publicID,
		"timestamp": strconv.FormatInt(s.now().Unix(), 10),
	}

	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}
	form.Set("api_key", s.cfg.APIKey)
	form.Set("signature", s.sign(params))

	endpoint := fmt.Sprintf("%s/%s/image/destroy", baseURL, s.cfg.CloudName)
	resp, err := s.post(ctx, endpoint, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", resp.Error.Message)
	}
	return nil
}

func (s *CloudinaryStore) post(ctx context.Context, endpoint, contentType string, body io.Reader) (*uploadResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build cloudinary request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	httpResp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloudinary request: %w", err)
	}
	defer httpResp.Body.Close()

	var resp uploadResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode cloudinary response: %w", err)
	}
	return &resp, nil
}

// sign produces the request signature Cloudinary expects: the SHA-1 hex
// digest of the sorted query-encoded params followed by the API secret.
func (s *CloudinaryStore) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + s.cfg.APISecret))
	return hex.EncodeToString(sum[:])
}

var versionSegment = regexp.MustCompile(`^v\d+$`)

// PublicIDFromURL recovers the public ID embedded in a Cloudinary delivery
// URL, e.g. .../image/upload/v17123/campus/banner.png -> campus/banner.
func PublicIDFromURL(mediaURL string) (string, error) {
	u, err := url.Parse(mediaURL)
	if err != nil {
		return "", fmt.Errorf("parse media url: %w", err)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	uploadIdx := -1
	for i, seg := range segments {
		if seg == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx < 0 || uploadIdx == len(segments)-1 {
		return "", fmt.Errorf("no public id in media url %q", mediaURL)
	}

	rest := segments[uploadIdx+1:]
	if versionSegment.MatchString(rest[0]) {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return "", fmt.Errorf("no public id in media url %q", mediaURL)
	}

	publicID := strings.Join(rest, "/")
	publicID = strings.TrimSuffix(publicID, path.Ext(publicID))
	return publicID, nil
}
