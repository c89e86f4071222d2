package service

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"boutique-backoffice/models"
	"boutique-backoffice/utils"
)

const (
	defaultPlaceholderURL = "/images/placeholder.png"
	defaultFetchTimeout   = 5 * time.Second
	placeholderSizePx     = 256
)

// ImageService copies remote backend images into the public directory on first use
type ImageService struct {
	publicDir   string
	backendURL  string
	placeholder string
	client      *http.Client
	group       singleflight.Group
}

// NewImageService creates a new ImageService.
// backendURL is the origin used when a request does not name one.
func NewImageService(publicDir, backendURL, placeholderURL string, fetchTimeout time.Duration) *ImageService {
	if placeholderURL == "" {
		placeholderURL = defaultPlaceholderURL
	}
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &ImageService{
		publicDir:   publicDir,
		backendURL:  strings.TrimRight(backendURL, "/"),
		placeholder: placeholderURL,
		client:      &http.Client{Timeout: fetchTimeout},
	}
}

// PlaceholderURL returns the terminal fallback URL
func (s *ImageService) PlaceholderURL() string {
	return s.placeholder
}

// Materialize makes imagePath available under the public directory.
// Relative paths are fetched from backendOrigin; absolute URLs are fetched as is
// and stored under their URL path. It never fails: errors are logged and
// reported as the placeholder URL.
func (s *ImageService) Materialize(ctx context.Context, imagePath, backendOrigin string) models.MaterializeResult {
	normalized, sourceURL, ok := s.source(imagePath, backendOrigin)
	if !ok {
		log.Printf("⚠️  Materialize: Rejected image path=%q", imagePath)
		return s.failed()
	}

	target := s.localPath(normalized)
	if fileExists(target) {
		return models.MaterializeResult{Success: true, URL: "/" + normalized}
	}
	if sourceURL == "" {
		log.Printf("❌ Materialize: No backend origin for path=%s", normalized)
		return s.failed()
	}

	// one fetch per source; callers arriving mid-flight share its result
	v, _, _ := s.group.Do(sourceURL, func() (any, error) {
		return s.fetch(context.WithoutCancel(ctx), normalized, sourceURL, target), nil
	})
	return v.(models.MaterializeResult)
}

// source returns the local relative path of imagePath and the URL it is fetched from.
// sourceURL is empty when a relative path has no origin to come from.
func (s *ImageService) source(imagePath, backendOrigin string) (normalized, sourceURL string, ok bool) {
	if utils.ClassifyImagePath(imagePath) == utils.ImagePathAbsolute {
		u, err := url.Parse(strings.TrimSpace(imagePath))
		if err != nil {
			return "", "", false
		}
		switch u.Scheme {
		case "":
			u.Scheme = "https"
		case "http", "https":
		default:
			return "", "", false
		}
		if u.Host == "" {
			return "", "", false
		}
		normalized, ok = utils.NormalizeImagePath(u.Path)
		return normalized, u.String(), ok
	}

	normalized, ok = utils.NormalizeImagePath(imagePath)
	if !ok {
		return "", "", false
	}
	origin := strings.TrimRight(strings.TrimSpace(backendOrigin), "/")
	if origin == "" {
		origin = s.backendURL
	}
	if origin == "" {
		return normalized, "", true
	}
	return normalized, origin + "/" + normalized, true
}

func (s *ImageService) fetch(ctx context.Context, normalized, sourceURL, target string) models.MaterializeResult {
	// a previous flight may have written it since the caller checked
	if fileExists(target) {
		return models.MaterializeResult{Success: true, URL: "/" + normalized}
	}

	status, err := s.download(ctx, sourceURL, target)
	if err != nil {
		log.Printf("❌ Materialize: Failed path=%s source=%s status=%d: %v", normalized, sourceURL, status, err)
		return s.failed()
	}

	log.Printf("✅ Materialize: Stored path=%s source=%s", normalized, sourceURL)
	return models.MaterializeResult{Success: true, URL: "/" + normalized}
}

// download streams sourceURL into target through a temp file renamed into place.
// The returned status is 0 when no response was received.
func (s *ImageService) download(ctx context.Context, sourceURL, target string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, fmt.Errorf("origin returned status %d", resp.StatusCode)
	}
	// backends answer missing assets with an HTML page and a 200
	if mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type")); mediaType == "text/html" {
		return resp.StatusCode, fmt.Errorf("origin returned %s instead of an image", mediaType)
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to create directory: %w", err)
	}

	tmpPath := filepath.Join(dir, "."+uuid.NewString()+".tmp")
	tmp, err := os.Create(tmpPath)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to create temp file: %w", err)
	}

	written, copyErr := io.Copy(tmp, resp.Body)
	closeErr := tmp.Close()
	if copyErr == nil && written == 0 {
		copyErr = fmt.Errorf("origin returned an empty body")
	}
	if copyErr != nil || closeErr != nil {
		os.Remove(tmpPath)
		if copyErr == nil {
			copyErr = closeErr
		}
		return resp.StatusCode, fmt.Errorf("failed to write image: %w", copyErr)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return resp.StatusCode, fmt.Errorf("failed to move image into place: %w", err)
	}
	return resp.StatusCode, nil
}

// EnsurePlaceholder writes a neutral grey placeholder image when none is published
func (s *ImageService) EnsurePlaceholder() error {
	normalized, ok := utils.NormalizeImagePath(s.placeholder)
	if !ok {
		return fmt.Errorf("invalid placeholder url %q", s.placeholder)
	}
	target := s.localPath(normalized)
	if fileExists(target) {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create placeholder directory: %w", err)
	}
	img := imaging.New(placeholderSizePx, placeholderSizePx, color.NRGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF})
	if err := imaging.Save(img, target); err != nil {
		return fmt.Errorf("failed to save placeholder: %w", err)
	}

	log.Printf("✓ EnsurePlaceholder: Created %s", target)
	return nil
}

func (s *ImageService) localPath(normalized string) string {
	return filepath.Join(s.publicDir, filepath.FromSlash(normalized))
}

func (s *ImageService) failed() models.MaterializeResult {
	return models.MaterializeResult{Success: false, URL: s.placeholder}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
