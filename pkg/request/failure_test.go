package request

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type recorderLogger struct {
	mu    sync.Mutex
	warns map[string]interface{}
}

func (l *recorderLogger) record(key string, obj interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.warns == nil {
		l.warns = make(map[string]interface{})
	}
	l.warns[key] = obj
}

func (l *recorderLogger) InfoObj(_, key string, obj interface{})  { l.record(key, obj) }
func (l *recorderLogger) DebugObj(_, key string, obj interface{}) { l.record(key, obj) }
func (l *recorderLogger) WarnObj(_, key string, obj interface{})  { l.record(key, obj) }
func (l *recorderLogger) ErrorObj(_, key string, obj interface{}) { l.record(key, obj) }

func (l *recorderLogger) logged(key string) (interface{}, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	obj, ok := l.warns[key]
	return obj, ok
}

func TestHTMLErrorPageTitleLogged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html><head><title>502 Bad Gateway - nginx</title></head><body>boom</body></html>`))
	}))
	defer srv.Close()

	log := &recorderLogger{}
	c, err := New(Options{BaseURL: srv.URL, Logger: log})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, callErr := Get[any](context.Background(), c, "/upstream")
	st, ok := callErr.(*Status)
	if !ok {
		t.Fatalf("error is %T, want *Status", callErr)
	}
	if st.Message != "Gateway error" {
		t.Fatalf("message = %q", st.Message)
	}
	title, ok := log.logged("error_page_title")
	if !ok {
		t.Fatalf("error page title was not logged")
	}
	if title != "502 Bad Gateway - nginx" {
		t.Fatalf("title = %v", title)
	}
}

func TestNonEnvelopeJSONErrorBodyUsesStatusTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"maintenance"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, &recorderNotifier{}, nil)

	_, err := Get[any](context.Background(), c, "/health")
	st, ok := err.(*Status)
	if !ok {
		t.Fatalf("error is %T, want *Status", err)
	}
	if st.Message != "Service unavailable" {
		t.Fatalf("message = %q, non-envelope body must fall through to the status table", st.Message)
	}
}

func TestStatusErrorStringAndUnwrap(t *testing.T) {
	st := &Status{HTTPStatus: 500, Code: 7, Message: "Server error"}
	if st.Error() != "Server error" {
		t.Fatalf("Error() = %q", st.Error())
	}
	if st.Notice() != "Server error (7)" {
		t.Fatalf("Notice() = %q", st.Notice())
	}
}

func TestDefaultMessagesCoverage(t *testing.T) {
	m := DefaultMessages()
	for _, status := range []int{400, 401, 403, 404, 405, 408, 500, 501, 502, 503, 504, 505} {
		if _, ok := m.Status[status]; !ok {
			t.Fatalf("status %d missing from default table", status)
		}
	}
	if got := m.StatusText(599, "Weird"); got != "Weird(599)" {
		t.Fatalf("fallback = %q", got)
	}
	if got := m.CodeText(99999, "wire text"); got != "wire text" {
		t.Fatalf("unmapped code should keep the wire message, got %q", got)
	}
}
