package storage

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type recordedPut struct {
	Path        string
	ContentType string
	Body        []byte
}

// fakeBucketServer answers just enough of the S3 API for bucket checks and single-part uploads.
type fakeBucketServer struct {
	*httptest.Server

	mu           sync.Mutex
	puts         []recordedPut
	bucketExists bool
	madeBucket   bool
	failPuts     bool
}

func newFakeBucketServer(t *testing.T, bucket string) *fakeBucketServer {
	t.Helper()
	f := &fakeBucketServer{bucketExists: true}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		isBucket := strings.Trim(r.URL.Path, "/") == bucket

		f.mu.Lock()
		defer f.mu.Unlock()

		switch {
		case r.Method == http.MethodHead && isBucket:
			if !f.bucketExists {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodPut && isBucket:
			f.madeBucket = true
			f.bucketExists = true
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodPut:
			if f.failPuts {
				w.Header().Set("Content-Type", "application/xml")
				w.WriteHeader(http.StatusForbidden)
				_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`)
				return
			}
			f.puts = append(f.puts, recordedPut{
				Path:        r.URL.Path,
				ContentType: r.Header.Get("Content-Type"),
				Body:        body,
			})
			w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeBucketServer) Puts() []recordedPut {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedPut(nil), f.puts...)
}

func (f *fakeBucketServer) host() string {
	return strings.TrimPrefix(f.URL, "http://")
}

func (f *fakeBucketServer) MadeBucket() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.madeBucket
}

func (f *fakeBucketServer) SetBucketExists(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bucketExists = v
}

func (f *fakeBucketServer) SetFailPuts(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failPuts = v
}
