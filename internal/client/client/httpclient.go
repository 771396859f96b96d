package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/tripkeeper/internal/client/models"
	"github.com/dmitrijs2005/tripkeeper/internal/common"
	"github.com/dmitrijs2005/tripkeeper/internal/logging"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

// NewHTTPClient returns a client for the backend at baseURL. A nil httpClient
// means http.DefaultClient; a nil logger discards request logs.
func NewHTTPClient(baseURL string, httpClient *http.Client, logger logging.Logger) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	upload      bool
}

func jsonRequest(method, path string, in any) (request, error) {
	r := request{method: method, path: path}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return r, fmt.Errorf("encode request: %w", err)
		}
		r.body = bytes.NewReader(b)
		r.contentType = common.ContentTypeJSON
	}
	return r, nil
}

func (c *HTTPClient) do(ctx context.Context, r request, out any) error {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", common.ContentTypeJSON)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", r.method, r.path, ctxErr)
		}
		c.logger.Debug(ctx, "request failed", "method", r.method, "path", r.path, "error", err)
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "request done",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &APIError{Status: resp.StatusCode, StatusText: statusText(resp), upload: r.upload}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%s %s: empty response body", r.method, r.path)
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusText extracts the reason phrase from "404 Not Found".
func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	text = strings.TrimSpace(text)
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func tripPath(id string) string {
	return common.TripsEndpoint + "/" + url.PathEscape(id)
}

func photoPath(id string) string {
	return common.PhotosEndpoint + "/" + url.PathEscape(id)
}

func (c *HTTPClient) ListTrips(ctx context.Context) ([]models.Trip, error) {
	r, _ := jsonRequest(http.MethodGet, common.TripsEndpoint, nil)

	var trips []models.Trip
	if err := c.do(ctx, r, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// GetTrip fails with an error matching ErrNotFound for any non-2xx answer.
func (c *HTTPClient) GetTrip(ctx context.Context, id string) (*models.Trip, error) {
	r, _ := jsonRequest(http.MethodGet, tripPath(id), nil)

	var trip models.Trip
	if err := c.do(ctx, r, &trip); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("trip %s: %w: %w", id, ErrNotFound, apiErr)
		}
		return nil, err
	}
	return &trip, nil
}

func (c *HTTPClient) CreateTrip(ctx context.Context, form models.TripFormData) (*models.Trip, error) {
	r, err := jsonRequest(http.MethodPost, common.TripsEndpoint, form)
	if err != nil {
		return nil, err
	}

	var trip models.Trip
	if err := c.do(ctx, r, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (c *HTTPClient) UpdateTrip(ctx context.Context, id string, patch models.TripPatch) (*models.Trip, error) {
	r, err := jsonRequest(http.MethodPut, tripPath(id), patch)
	if err != nil {
		return nil, err
	}

	var trip models.Trip
	if err := c.do(ctx, r, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (c *HTTPClient) DeleteTrip(ctx context.Context, id string) error {
	r, _ := jsonRequest(http.MethodDelete, tripPath(id), nil)
	return c.do(ctx, r, nil)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// UploadPhoto posts file as multipart form data. Non-image files are
// rejected with ErrNotImage before anything is sent.
func (c *HTTPClient) UploadPhoto(ctx context.Context, tripID string, file models.PhotoFile) (*models.Photo, error) {
	if !file.IsImage() {
		return nil, fmt.Errorf("%s: %w", file.Name, ErrNotImage)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(file.Name)))
	h.Set("Content-Type", file.ContentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, fmt.Errorf("write file part: %w", err)
	}
	if err := mw.WriteField("tripId", tripID); err != nil {
		return nil, fmt.Errorf("write tripId field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	r := request{
		method:      http.MethodPost,
		path:        common.PhotosEndpoint + "/upload",
		body:        &buf,
		contentType: mw.FormDataContentType(),
		upload:      true,
	}

	var photo models.Photo
	if err := c.do(ctx, r, &photo); err != nil {
		return nil, err
	}
	return &photo, nil
}

func (c *HTTPClient) UpdatePhotoDescription(ctx context.Context, photoID string, description string) (*models.Photo, error) {
	body := struct {
		Description string `json:"description"`
	}{Description: description}

	r, err := jsonRequest(http.MethodPut, photoPath(photoID)+"/patch-detail", body)
	if err != nil {
		return nil, err
	}

	var photo models.Photo
	if err := c.do(ctx, r, &photo); err != nil {
		return nil, err
	}
	return &photo, nil
}

func (c *HTTPClient) DeletePhoto(ctx context.Context, photoID string) error {
	r, _ := jsonRequest(http.MethodDelete, photoPath(photoID), nil)
	return c.do(ctx, r, nil)
}

func (c *HTTPClient) ListPhotos(ctx context.Context, page, size int) (*models.PhotoPage, error) {
	r, _ := jsonRequest(http.MethodGet, common.PhotosEndpoint, nil)
	r.query = url.Values{
		"page": {strconv.Itoa(page)},
		"size": {strconv.Itoa(size)},
	}

	var p models.PhotoPage
	if err := c.do(ctx, r, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
