package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
)

// compressWriter wraps http.ResponseWriter and starts compressing on the
// first write, so responses without a body never advertise an encoding.
type compressWriter struct {
	http.ResponseWriter
	encoding    string
	writer      io.WriteCloser
	wroteHeader bool
}

func (w *compressWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	if status == http.StatusNoContent || status == http.StatusNotModified {
		w.ResponseWriter.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Encoding", w.encoding)
	w.Header().Del("Content-Length") // length changes under compression
	if w.encoding == "br" {
		w.writer = brotli.NewWriterLevel(w.ResponseWriter, brotli.DefaultCompression)
	} else {
		w.writer = gzip.NewWriter(w.ResponseWriter)
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *compressWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if w.writer == nil {
		return w.ResponseWriter.Write(b)
	}
	return w.writer.Write(b)
}

func (w *compressWriter) close() {
	if w.writer != nil {
		_ = w.writer.Close()
	}
}

// Compress negotiates brotli or gzip response compression from the
// Accept-Encoding header, preferring brotli. It is applied to bounded JSON
// routes only; binary media relays stream upstream bytes untouched.
func Compress(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Encoding")

		accept := r.Header.Get("Accept-Encoding")
		var encoding string
		switch {
		case strings.Contains(accept, "br"):
			encoding = "br"
		case strings.Contains(accept, "gzip"):
			encoding = "gzip"
		default:
			next.ServeHTTP(w, r)
			return
		}

		cw := &compressWriter{ResponseWriter: w, encoding: encoding}
		defer cw.close()
		next.ServeHTTP(cw, r)
	})
}
