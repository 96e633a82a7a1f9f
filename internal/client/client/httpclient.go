package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/filebox/internal/client/models"
	"github.com/dmitrijs2005/filebox/internal/common"
	"github.com/dmitrijs2005/filebox/internal/logging"
	"github.com/google/uuid"
)

// RequestOptions describes one backend call. JSON, when set, is encoded as
// the request body with Content-Type application/json; otherwise Body is
// sent as is with whatever Content-Type Header carries.
type RequestOptions struct {
	Method string
	Header http.Header
	JSON   any
	Body   io.Reader
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
	creds   CredentialSource
	metrics *Metrics
	log     logging.Logger
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithMetrics(m *Metrics) Option {
	return func(c *HTTPClient) { c.metrics = m }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient returns a client of the backend at baseURL
// (e.g. "http://127.0.0.1:8000"). creds is read on every request.
func NewHTTPClient(baseURL string, creds CredentialSource, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		creds:   creds,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Request performs a call and returns the classified body: the decoded value
// for application/json responses, the text otherwise, nil when the body could
// not be parsed.
func (c *HTTPClient) Request(ctx context.Context, path string, opts RequestOptions) (any, error) {
	resp, raw, err := c.send(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	body := parseBody(resp.Header.Get("Content-Type"), raw)
	if !isSuccess(resp) {
		return nil, newAPIError(resp, body)
	}
	return body, nil
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) (string, error) {
	var out models.Token
	err := c.requestJSON(ctx, "/auth/register", RequestOptions{
		Method: http.MethodPost,
		JSON:   models.Credentials{Email: email, Password: password},
	}, &out)
	return out.Token, err
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var out models.Token
	err := c.requestJSON(ctx, "/auth/login", RequestOptions{
		Method: http.MethodPost,
		JSON:   models.Credentials{Email: email, Password: password},
	}, &out)
	return out.Token, err
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.requestJSON(ctx, "/me", RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListFiles(ctx context.Context, filter models.ListFilter) (*models.FileList, error) {
	filter = filter.Normalized()

	params := url.Values{}
	if filter.Query != "" {
		params.Set("q", filter.Query)
	}
	if filter.Tag != "" {
		params.Set("tag", filter.Tag)
	}
	params.Set("state", string(filter.State))
	if filter.Page > 0 {
		params.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(filter.PageSize))
	}

	var out models.FileList
	if err := c.requestJSON(ctx, "/files?"+params.Encode(), RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Upload streams one multipart upload. The form is written on a separate
// goroutine through a pipe so large files are never buffered whole.
func (c *HTTPClient) Upload(ctx context.Context, up models.Upload) error {
	pr, pw := io.Pipe()
	defer pr.Close()

	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeUploadForm(mw, up))
	}()

	header := http.Header{}
	header.Set("Content-Type", mw.FormDataContentType())

	_, err := c.Request(ctx, "/files/upload", RequestOptions{
		Method: http.MethodPost,
		Header: header,
		Body:   pr,
	})
	return err
}

func (c *HTTPClient) Thumbnail(ctx context.Context, id int64) (*models.Blob, error) {
	return c.blob(ctx, fmt.Sprintf("/files/%d/thumb", id))
}

func (c *HTTPClient) Preview(ctx context.Context, id int64) (*models.Blob, error) {
	return c.blob(ctx, fmt.Sprintf("/files/%d/preview", id))
}

func (c *HTTPClient) Download(ctx context.Context, id int64) (*models.Blob, error) {
	return c.blob(ctx, fmt.Sprintf("/files/%d/download", id))
}

func (c *HTTPClient) Delete(ctx context.Context, id int64) error {
	_, err := c.Request(ctx, fmt.Sprintf("/files/%d", id), RequestOptions{Method: http.MethodDelete})
	return err
}

func (c *HTTPClient) Restore(ctx context.Context, id int64) error {
	_, err := c.Request(ctx, fmt.Sprintf("/files/%d/restore", id), RequestOptions{Method: http.MethodPost})
	return err
}

func (c *HTTPClient) UpdateMeta(ctx context.Context, id int64, patch models.MetaPatch) (*models.FileItem, error) {
	var out struct {
		File models.FileItem `json:"file"`
	}
	err := c.requestJSON(ctx, fmt.Sprintf("/files/%d", id), RequestOptions{
		Method: http.MethodPatch,
		JSON:   patch,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.File, nil
}

// requestJSON is Request followed by decoding the raw success body into out.
func (c *HTTPClient) requestJSON(ctx context.Context, path string, opts RequestOptions, out any) error {
	resp, raw, err := c.send(ctx, path, opts)
	if err != nil {
		return err
	}
	if !isSuccess(resp) {
		return newAPIError(resp, parseBody(resp.Header.Get("Content-Type"), raw))
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", routeOf(path), err)
	}
	return nil
}

// blob fetches a binary endpoint without any body classification on success.
func (c *HTTPClient) blob(ctx context.Context, path string) (*models.Blob, error) {
	resp, raw, err := c.send(ctx, path, RequestOptions{})
	if err != nil {
		return nil, err
	}
	if !isSuccess(resp) {
		return nil, newAPIError(resp, parseBody(resp.Header.Get("Content-Type"), raw))
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: %s: body could not be read", ErrUnavailable, routeOf(path))
	}
	return &models.Blob{
		Data:        raw,
		ContentType: resp.Header.Get("Content-Type"),
		FileName:    fileNameOf(resp.Header.Get("Content-Disposition")),
	}, nil
}

// send executes the request and reads the whole body. A body read failure
// leaves raw nil; only transport errors are returned as err.
func (c *HTTPClient) send(ctx context.Context, path string, opts RequestOptions) (*http.Response, []byte, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	body := opts.Body
	header := opts.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	if opts.JSON != nil {
		b, err := json.Marshal(opts.JSON)
		if err != nil {
			return nil, nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
		header.Set("Content-Type", "application/json")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header = header
	if token := c.creds.Credential(); token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeader, requestID)

	route := routeOf(path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(method, route, "error", time.Since(start))
		c.log.Warn(ctx, "request failed", "method", method, "route", route, "request_id", requestID, "error", err)
		return nil, nil, fmt.Errorf("%w: %s %s: %w", ErrUnavailable, method, route, err)
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		raw = nil
	}
	c.metrics.observe(method, route, strconv.Itoa(resp.StatusCode), time.Since(start))
	c.log.Debug(ctx, "request done",
		"method", method, "route", route, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(start))

	return resp, raw, nil
}

func isSuccess(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// parseBody classifies raw by content type. JSON that fails to decode and
// unreadable bodies yield nil.
func parseBody(contentType string, raw []byte) any {
	if raw == nil {
		return nil
	}
	if strings.Contains(contentType, "application/json") {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil
		}
		return v
	}
	return string(raw)
}

func fileNameOf(contentDisposition string) string {
	if contentDisposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentDisposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeUploadForm(mw *multipart.Writer, up models.Upload) error {
	contentType := up.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(up.FileName)))
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, up.Content); err != nil {
		return fmt.Errorf("copy %s: %w", up.FileName, err)
	}

	if len(up.Tags) > 0 {
		tags, err := json.Marshal(up.Tags)
		if err != nil {
			return err
		}
		if err := mw.WriteField("tags", string(tags)); err != nil {
			return err
		}
	}
	if folder := strings.TrimSpace(up.Folder); folder != "" {
		if err := mw.WriteField("folder", folder); err != nil {
			return err
		}
	}
	return mw.Close()
}
