package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"fieldscope/internal/logging"
)

// UploadRequest describes one image submitted for analysis. Image is read in
// full while assembling the multipart body; Filename is what the service
// sees as the original name.
type UploadRequest struct {
	Image     io.Reader
	Filename  string
	FieldID   int
	Latitude  float64
	Longitude float64
}

// Upload submits an image for analysis via multipart POST /upload.
func (c *Client) Upload(ctx context.Context, req UploadRequest) (AnalysisResult, error) {
	var result AnalysisResult

	body, contentType, err := buildUploadBody(req)
	if err != nil {
		return result, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", body)
	if err != nil {
		return result, fmt.Errorf("create request: %w", err)
	}
	c.prepare(httpReq, contentType)

	if err := c.send(httpReq, &result); err != nil {
		return result, err
	}
	logging.Upload("uploaded %s for field %d: stress=%s", req.Filename, req.FieldID, result.StressLevel)
	return result, nil
}

// UploadFile is Upload with the image read from disk.
func (c *Client) UploadFile(ctx context.Context, path string, fieldID int, lat, lon float64) (AnalysisResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return AnalysisResult{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	return c.Upload(ctx, UploadRequest{
		Image:     f,
		Filename:  filepath.Base(path),
		FieldID:   fieldID,
		Latitude:  lat,
		Longitude: lon,
	})
}

// buildUploadBody assembles the multipart form the service expects:
// image_file plus field_id, latitude, longitude as plain fields.
func buildUploadBody(req UploadRequest) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	part, err := w.CreateFormFile("image_file", req.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, req.Image); err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}

	fields := map[string]string{
		"field_id":  strconv.Itoa(req.FieldID),
		"latitude":  strconv.FormatFloat(req.Latitude, 'f', -1, 64),
		"longitude": strconv.FormatFloat(req.Longitude, 'f', -1, 64),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
