package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// sequence answers each request with the next status in codes; the last one repeats.
func sequence(t *testing.T, contentType string, codes ...int) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(atomic.AddInt32(&calls, 1)) - 1
		if n >= len(codes) {
			n = len(codes) - 1
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(codes[n])
		w.Write([]byte(`{"message":"status"}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func fakeClock() (*Client, *[]time.Duration) {
	var slept []time.Duration
	c := NewClient()
	c.Sleep = func(d time.Duration) { slept = append(slept, d) }
	return c, &slept
}

func TestRetryThenSuccess(t *testing.T) {
	srv, calls := sequence(t, "application/json", 500, 500, 200)
	c, slept := fakeClock()

	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	resp, err := c.Do(context.Background(), req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if *calls != 3 {
		t.Errorf("calls = %d, want 3", *calls)
	}
	want := []time.Duration{time.Second, 2 * time.Second}
	if len(*slept) != len(want) || (*slept)[0] != want[0] || (*slept)[1] != want[1] {
		t.Errorf("delays = %v, want %v", *slept, want)
	}
}

func TestRetriesExhausted(t *testing.T) {
	srv, calls := sequence(t, "application/json", 530)
	c, slept := fakeClock()

	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	_, err := c.Do(context.Background(), req)
	if !errors.Is(err, ErrServer) {
		t.Fatalf("err = %v, want ErrServer", err)
	}
	var se *ServerError
	if !errors.As(err, &se) || se.StatusCode != 530 {
		t.Errorf("err = %#v", err)
	}
	if *calls != 4 {
		t.Errorf("calls = %d, want 4 (1 + 3 retries)", *calls)
	}
	if got := len(*slept); got != 3 || (*slept)[2] != 4*time.Second {
		t.Errorf("delays = %v", *slept)
	}
}

func TestClientErrorIsNotRetried(t *testing.T) {
	srv, calls := sequence(t, "application/json", 404)
	c, slept := fakeClock()

	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	resp, err := c.Do(context.Background(), req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != 404 || *calls != 1 || len(*slept) != 0 {
		t.Errorf("status=%d calls=%d sleeps=%d", resp.StatusCode, *calls, len(*slept))
	}
}

func TestHTMLErrorPageIsRetried(t *testing.T) {
	srv, calls := sequence(t, "text/html; charset=utf-8", 404, 200)
	c, _ := fakeClock()

	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	resp, err := c.Do(context.Background(), req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()
	if *calls != 2 {
		t.Errorf("calls = %d, want 2", *calls)
	}
}

func TestBodyReplayedOnRetry(t *testing.T) {
	var bodies []string
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b := make([]byte, r.ContentLength)
		r.Body.Read(b)
		bodies = append(bodies, string(b))
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(502)
			return
		}
		w.WriteHeader(201)
	}))
	defer srv.Close()

	c, _ := fakeClock()
	req, _ := http.NewRequest(http.MethodPost, srv.URL, strings.NewReader(`{"a":1}`))
	resp, err := c.Do(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if len(bodies) != 2 || bodies[0] != bodies[1] {
		t.Errorf("bodies = %q", bodies)
	}
}

func TestAPIClientErrors(t *testing.T) {
	api := NewAPIClient("", "")
	if err := api.Get(context.Background(), "/trucks", nil); !errors.Is(err, ErrNoBaseURL) {
		t.Errorf("err = %v, want ErrNoBaseURL", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(404)
			w.Write([]byte(`{"message":"Truck not found"}`))
		case "/text":
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(400)
			w.Write([]byte("bad input"))
		case "/plain-ok":
			w.Header().Set("Content-Type", "text/plain")
			w.Write([]byte("ok"))
		default:
			if r.Header.Get("Authorization") != "Bearer tok" {
				w.WriteHeader(401)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"truck_number":"T-001"}]`))
		}
	}))
	defer srv.Close()

	api = NewAPIClient(srv.URL+"/", "tok")
	api.Fetch.Sleep = func(time.Duration) {}

	err := api.Get(context.Background(), "/missing", nil)
	if !NotFound(err) || err.Error() != "Truck not found" {
		t.Errorf("missing: %v", err)
	}

	err = api.Get(context.Background(), "/text", nil)
	var he *HTTPError
	if !errors.As(err, &he) || he.Message != "bad input" {
		t.Errorf("text: %v", err)
	}

	if err := api.Get(context.Background(), "/plain-ok", nil); !errors.Is(err, ErrNotJSON) {
		t.Errorf("plain-ok: %v", err)
	}

	var rows []map[string]string
	if err := api.Get(context.Background(), "/trucks", &rows); err != nil {
		t.Fatalf("trucks: %v", err)
	}
	if len(rows) != 1 || rows[0]["truck_number"] != "T-001" {
		t.Errorf("rows = %v", rows)
	}
}
