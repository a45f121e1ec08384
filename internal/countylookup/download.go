package countylookup

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Fetch downloads the county shapefile zip from url into dir, extracts it
// and returns the path of the .shp file.
func Fetch(ctx context.Context, url, dir string, logger logrus.FieldLogger) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}

	zipPath := filepath.Join(dir, "counties.zip")
	logger.WithField("url", url).Info("downloading county shapefile")
	if err := downloadFile(ctx, zipPath, url); err != nil {
		return "", fmt.Errorf("downloading shapefile: %w", err)
	}
	defer os.Remove(zipPath)

	files, err := unzipFile(zipPath, dir)
	if err != nil {
		return "", fmt.Errorf("extracting shapefile: %w", err)
	}
	for _, f := range files {
		if strings.EqualFold(filepath.Ext(f), ".shp") {
			return f, nil
		}
	}
	return "", fmt.Errorf("no .shp file in %s", url)
}

func downloadFile(ctx context.Context, path, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

// unzipFile extracts src into dest and returns the extracted file paths
func unzipFile(src, dest string) ([]string, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var extracted []string
	for _, f := range r.File {
		fpath := filepath.Join(dest, f.Name)

		// ZipSlip
		if !strings.HasPrefix(fpath, filepath.Clean(dest)+string(os.PathSeparator)) {
			return nil, fmt.Errorf("illegal file path: %s", fpath)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(fpath, 0755); err != nil {
				return nil, err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(fpath), 0755); err != nil {
			return nil, err
		}
		if err := extractOne(f, fpath); err != nil {
			return nil, err
		}
		extracted = append(extracted, fpath)
	}
	return extracted, nil
}

func extractOne(f *zip.File, fpath string) error {
	out, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer out.Close()

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	_, err = io.Copy(out, rc)
	return err
}
