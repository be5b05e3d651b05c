package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmin006/fintrack/internal/core"
)

// maxBodySize caps request bodies. Receipt uploads carry base64 image
// data and need headroom; everything else is tiny.
const maxBodySize = 4 << 20

// decodeJSON reads and decodes a JSON body into dst, rejecting unknown
// fields and oversized payloads.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	defer func() {
		_, _ = io.Copy(io.Discard, body)
	}()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		// An absent body decodes to the zero value.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// parseMonthKey reads the month query parameter, defaulting to the
// current month. The accepted form is YYYY-MM.
func parseMonthKey(query url.Values, now time.Time) (string, error) {
	raw := strings.TrimSpace(query.Get("month"))
	if raw == "" {
		return now.Format("2006-01"), nil
	}
	if _, err := time.Parse("2006-01", raw); err != nil {
		return "", fmt.Errorf("invalid month %q, want YYYY-MM", raw)
	}
	return raw, nil
}

// parseDateParam reads a named date query parameter, defaulting to
// today when absent.
func parseDateParam(query url.Values, name string, now time.Time) (core.Date, error) {
	raw := strings.TrimSpace(query.Get(name))
	if raw == "" {
		return core.DateOf(now), nil
	}
	d, err := core.ParseDate(raw)
	if err != nil {
		return core.Date{}, fmt.Errorf("invalid %s %q, want YYYY-MM-DD", name, raw)
	}
	return d, nil
}

// parseCountParam reads a positive integer query parameter with a
// default and an upper bound.
func parseCountParam(query url.Values, name string, def, max int) (int, error) {
	raw := strings.TrimSpace(query.Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s %q, want a positive integer", name, raw)
	}
	if n > max {
		n = max
	}
	return n, nil
}
