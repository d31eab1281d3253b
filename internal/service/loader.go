package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/jsonc"

	"github.com/jask/memberadmin/internal/member"
)

var (
	// ErrPayloadShape is returned when the payload is not a JSON array.
	ErrPayloadShape = errors.New("members payload is not a JSON array")
	// ErrUnexpectedStatus is returned for a non-2xx fetch response.
	ErrUnexpectedStatus = errors.New("unexpected status")
)

const maxPayloadBytes = 16 << 20

// Loader fetches the member list once at startup from an http(s) URL or a
// local JSON/JSONC file.
type Loader struct {
	Client    *http.Client
	Logger    *slog.Logger
	UserAgent string
	Timeout   time.Duration
}

// LoadResult carries the decoded records plus the rows that were rejected.
type LoadResult struct {
	Records []member.Record
	Skipped int
	Errors  []error
}

// Load reads source and decodes it. Malformed rows are reported in the
// result; only transport failures and a non-array payload are errors.
func (l *Loader) Load(ctx context.Context, source string) (LoadResult, error) {
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}
	data, err := l.read(ctx, source)
	if err != nil {
		return LoadResult{}, err
	}
	res, err := Decode(data)
	if err != nil {
		return LoadResult{}, fmt.Errorf("decode %s: %w", source, err)
	}
	for _, e := range res.Errors {
		l.logger().Warn("member row skipped", "source", source, "err", e)
	}
	l.logger().Info("members fetched", "source", source, "loaded", len(res.Records), "skipped", res.Skipped)
	return res, nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	u, err := url.Parse(strings.TrimSpace(source))
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}
	switch u.Scheme {
	case "http", "https":
		return l.fetch(ctx, u.String())
	case "file":
		return readFile(u.Path)
	case "":
		return readFile(strings.TrimSpace(source))
	default:
		return nil, fmt.Errorf("unsupported source scheme %q", u.Scheme)
	}
}

func (l *Loader) fetch(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if l.UserAgent != "" {
		req.Header.Set("User-Agent", l.UserAgent)
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	l.logger().Debug("fetching members", "url", target, "request_id", reqID)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: %w: %s", target, ErrUnexpectedStatus, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}
	return data, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return jsonc.ToJSON(data), nil
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.Logger
}

type payloadRow struct {
	ID    json.RawMessage `json:"id"`
	Name  *string         `json:"name"`
	Email *string         `json:"email"`
	Role  *string         `json:"role"`
}

// Decode turns a JSON array of {id, name, email, role} objects into records.
// Ids may be numbers or strings. Rows with a missing, empty or repeated id,
// or with non-string text fields, are skipped and reported.
func Decode(data []byte) (LoadResult, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return LoadResult{}, fmt.Errorf("%w: %v", ErrPayloadShape, err)
	}
	res := LoadResult{Records: make([]member.Record, 0, len(raw))}
	seen := make(map[member.ID]struct{}, len(raw))
	skip := func(i int, err error) {
		res.Skipped++
		res.Errors = append(res.Errors, fmt.Errorf("row %d: %w", i, err))
	}
	for i, elem := range raw {
		var row payloadRow
		if err := json.Unmarshal(elem, &row); err != nil {
			skip(i, err)
			continue
		}
		id, err := decodeID(row.ID)
		if err != nil {
			skip(i, err)
			continue
		}
		if _, dup := seen[id]; dup {
			skip(i, fmt.Errorf("duplicate id %q", id))
			continue
		}
		seen[id] = struct{}{}
		res.Records = append(res.Records, member.Record{
			ID:    id,
			Name:  deref(row.Name),
			Email: deref(row.Email),
			Role:  deref(row.Role),
		})
	}
	return res, nil
}

func decodeID(raw json.RawMessage) (member.ID, error) {
	if len(raw) == 0 {
		return "", errors.New("missing id")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", fmt.Errorf("id: %w", err)
	}
	var id string
	switch t := v.(type) {
	case string:
		id = strings.TrimSpace(t)
	case json.Number:
		id = t.String()
	case nil:
		return "", errors.New("missing id")
	default:
		return "", fmt.Errorf("id has unsupported type %T", v)
	}
	if id == "" {
		return "", errors.New("empty id")
	}
	return member.ID(id), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
