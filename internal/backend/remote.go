package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Remote is the HTTP transport. It speaks the reference-data API:
//
//	GET    /api/{collection}
//	GET    /api/{collection}/{id}
//	POST   /api/{collection}
//	PUT    /api/{collection}/{id}
//	DELETE /api/{collection}/{id}
//	POST   /api/{collection}/positions
type Remote struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewRemote builds a Remote against the given base URL.
func NewRemote(baseURL string, logger zerolog.Logger) *Remote {
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger.With().Str("component", "remote-backend").Logger(),
	}
}

// Close is a no-op; the HTTP client holds no per-call state.
func (r *Remote) Close() error {
	return nil
}

func (r *Remote) FetchCollection(ctx context.Context, collection string) ([]Record, error) {
	body, status, err := r.do(ctx, http.MethodGet, r.collectionURL(collection), nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("fetch collection %s: status %d", collection, status)
	}
	return decodeCollection(body)
}

func (r *Remote) FetchItem(ctx context.Context, collection, id string) (*Record, error) {
	body, status, err := r.do(ctx, http.MethodGet, r.itemURL(collection, id), nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("fetch %s/%s: status %d", collection, id, status)
	}

	data := map[string]any{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	return &Record{ID: id, Data: data}, nil
}

func (r *Remote) CreateItem(ctx context.Context, collection string, rec Record) error {
	payload, err := encodeRecord(rec)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, rec.ID, err)
	}
	_, status, err := r.do(ctx, http.MethodPost, r.collectionURL(collection), payload)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return fmt.Errorf("create %s/%s: status %d", collection, rec.ID, status)
	}
	return nil
}

func (r *Remote) UpdateItem(ctx context.Context, collection string, rec Record) error {
	payload, err := encodeRecord(rec)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, rec.ID, err)
	}
	_, status, err := r.do(ctx, http.MethodPut, r.itemURL(collection, rec.ID), payload)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("update %s/%s: status %d", collection, rec.ID, status)
	}
	return nil
}

func (r *Remote) DeleteItem(ctx context.Context, collection, id string) error {
	_, status, err := r.do(ctx, http.MethodDelete, r.itemURL(collection, id), nil)
	if err != nil {
		return err
	}
	// A 404 means the record is already gone; deletes are no-op-safe.
	switch status {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
		return nil
	}
	return fmt.Errorf("delete %s/%s: status %d", collection, id, status)
}

// BulkReorder sends the whole ordered list in one request; atomicity is the
// service's concern, not the transport's.
func (r *Remote) BulkReorder(ctx context.Context, collection string, ordered []Record) error {
	items := make([]map[string]any, 0, len(ordered))
	for _, rec := range ordered {
		items = append(items, recordBody(rec))
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode reorder %s: %w", collection, err)
	}

	_, status, err := r.do(ctx, http.MethodPost, r.collectionURL(collection)+"/positions", payload)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return fmt.Errorf("reorder %s: status %d", collection, status)
	}
	return nil
}

func (r *Remote) collectionURL(collection string) string {
	return r.baseURL + "/api/" + url.PathEscape(collection)
}

func (r *Remote) itemURL(collection, id string) string {
	return r.collectionURL(collection) + "/" + url.PathEscape(id)
}

func (r *Remote) do(ctx context.Context, method, rawURL string, payload []byte) ([]byte, int, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response %s %s: %w", method, rawURL, err)
	}
	r.logger.Debug().Str("method", method).Str("url", rawURL).Int("status", resp.StatusCode).Msg("request")
	return data, resp.StatusCode, nil
}

// decodeCollection accepts both collection wire shapes: a JSON array of
// records carrying their own id field, or an object mapping id to record.
func decodeCollection(body []byte) ([]Record, error) {
	var asList []map[string]any
	if err := json.Unmarshal(body, &asList); err == nil {
		result := make([]Record, 0, len(asList))
		for _, data := range asList {
			id, _ := data["id"].(string)
			result = append(result, Record{ID: id, Data: data})
		}
		return result, nil
	}

	var asMap map[string]map[string]any
	if err := json.Unmarshal(body, &asMap); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	// Map order is unspecified; sort by id so the tie-break order is
	// deterministic across calls.
	ids := make([]string, 0, len(asMap))
	for id := range asMap {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]Record, 0, len(asMap))
	for _, id := range ids {
		data := asMap[id]
		if data == nil {
			data = map[string]any{}
		}
		if _, ok := data["id"]; !ok {
			data["id"] = id
		}
		result = append(result, Record{ID: id, Data: data})
	}
	return result, nil
}

func encodeRecord(rec Record) ([]byte, error) {
	return json.Marshal(recordBody(rec))
}

func recordBody(rec Record) map[string]any {
	body := make(map[string]any, len(rec.Data)+1)
	for k, v := range rec.Data {
		body[k] = v
	}
	body["id"] = rec.ID
	return body
}
