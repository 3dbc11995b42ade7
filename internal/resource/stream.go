package resource

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode"
)

const (
	contentTypeJSON   = "application/json"
	contentTypeNDJSON = "application/x-ndjson"
)

// decodeStream reads entities from body while it is still arriving. The body
// may hold a JSON array, a single object or a sequence of objects (NDJSON).
// Every decoded entity goes through prepare before it is sent on items. A
// decode failure is reported on the returned error channel before items is
// closed.
func decodeStream[T any](ctx context.Context, body io.Reader, prepare func(T) T) (<-chan T, <-chan error) {
	items := make(chan T)
	errc := make(chan error, 1)
	go func() {
		defer close(items)

		br := bufio.NewReader(body)
		first, err := peekNonSpace(br)
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			errc <- err
			return
		}

		dec := json.NewDecoder(br)
		array := first == '['
		if array {
			if _, err := dec.Token(); err != nil {
				errc <- err
				return
			}
		}
		for !array || dec.More() {
			var item T
			if err := dec.Decode(&item); err != nil {
				if !array && errors.Is(err, io.EOF) {
					return
				}
				errc <- err
				return
			}
			select {
			case items <- prepare(item):
			case <-ctx.Done():
				return
			}
		}
		if _, err := dec.Token(); err != nil {
			errc <- err
		}
	}()
	return items, errc
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		if unicode.IsSpace(rune(b)) {
			continue
		}
		return b, br.UnreadByte()
	}
}

func wantsNDJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), contentTypeNDJSON)
}

// streamEncoder writes a response body item by item, flushing after each so
// clients see stored entities as soon as they are persisted.
type streamEncoder struct {
	w      http.ResponseWriter
	rc     *http.ResponseController
	ndjson bool
	count  int
}

func newStreamEncoder(w http.ResponseWriter, ndjson bool) *streamEncoder {
	return &streamEncoder{w: w, rc: http.NewResponseController(w), ndjson: ndjson}
}

func (e *streamEncoder) begin(status int) error {
	contentType := contentTypeJSON
	if e.ndjson {
		contentType = contentTypeNDJSON
	}
	e.w.Header().Set("Content-Type", contentType)
	e.w.WriteHeader(status)
	if !e.ndjson {
		if _, err := io.WriteString(e.w, "["); err != nil {
			return err
		}
	}
	return e.flush()
}

func (e *streamEncoder) write(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if !e.ndjson && e.count > 0 {
		if _, err := io.WriteString(e.w, ","); err != nil {
			return err
		}
	}
	if e.ndjson {
		data = append(data, '\n')
	}
	if _, err := e.w.Write(data); err != nil {
		return err
	}
	e.count++
	return e.flush()
}

func (e *streamEncoder) end() error {
	if !e.ndjson {
		if _, err := io.WriteString(e.w, "]"); err != nil {
			return err
		}
	}
	return e.flush()
}

func (e *streamEncoder) flush() error {
	if err := e.rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return err
	}
	return nil
}
