package infra

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

// defaultIconURL serves per-symbol logos; %s is the short code.
const defaultIconURL = "https://ssl.pstatic.net/imgstock/logo/%s.png"

// IconDownloader handles downloading and caching symbol logos for the
// dashboard's detail panel.
type IconDownloader struct {
	basePath string
	urlTmpl  string
	client   *http.Client
}

// NewIconDownloader creates a new IconDownloader
func NewIconDownloader() (*IconDownloader, error) {
	path, err := getAssetsPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve assets path: %w", err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create assets directory: %w", err)
	}

	// Optimize HTTP Transport to prevent connection leaks
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = 100
	transport.MaxConnsPerHost = 10
	transport.IdleConnTimeout = 30 * time.Second

	return &IconDownloader{
		basePath: path,
		urlTmpl:  defaultIconURL,
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}, nil
}

// DownloadIcon downloads the logo for a symbol code if it doesn't exist.
// Returns the local file path on success.
// Images are resized to 24x24 pixels for consistent display.
func (d *IconDownloader) DownloadIcon(code string) (string, error) {
	// Security: Sanitize the code to prevent path traversal
	safeCode := sanitizeCode(code)
	if safeCode == "" {
		return "", fmt.Errorf("invalid symbol code: %s", code)
	}

	fileName := strings.ToLower(safeCode) + ".png"
	filePath := filepath.Join(d.basePath, fileName)

	// Check if exists
	if _, err := os.Stat(filePath); err == nil {
		return filePath, nil // Already exists (Cache Hit)
	}

	url := fmt.Sprintf(d.urlTmpl, safeCode)

	resp, err := d.client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	// Decode the image
	srcImg, err := imaging.Decode(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	// Resize to 24x24 with high-quality Lanczos filter
	resizedImg := imaging.Resize(srcImg, 24, 24, imaging.Lanczos)

	// Save the resized image
	if err := imaging.Save(resizedImg, filePath); err != nil {
		return "", fmt.Errorf("failed to save resized image: %w", err)
	}

	return filePath, nil
}

// GetIconPath returns the local path for a symbol's logo
func (d *IconDownloader) GetIconPath(code string) string {
	return filepath.Join(d.basePath, strings.ToLower(sanitizeCode(code))+".png")
}

func getAssetsPath() (string, error) {
	var configDir string
	var err error

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("LOCALAPPDATA")
		if configDir == "" {
			configDir, err = os.UserConfigDir()
		}
	} else {
		configDir, err = os.UserConfigDir()
	}

	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "StockDash", "assets", "icons"), nil
}

func sanitizeCode(code string) string {
	res := make([]rune, 0, len(code))
	for _, r := range code {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			res = append(res, r)
		}
	}
	return string(res)
}
