package server

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/shapestone/shape-serve/pkg/http"
)

// mimeTypes maps file extensions to Content-Type values. Unlisted
// extensions fall back to application/octet-stream.
var mimeTypes = map[string]string{
	".html":  "text/html; charset=utf-8",
	".htm":   "text/html; charset=utf-8",
	".css":   "text/css; charset=utf-8",
	".js":    "text/javascript; charset=utf-8",
	".json":  "application/json",
	".txt":   "text/plain; charset=utf-8",
	".xml":   "application/xml",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".ico":   "image/x-icon",
	".pdf":   "application/pdf",
	".wasm":  "application/wasm",
	".woff2": "font/woff2",
}

var notFoundPage = []byte(`<!DOCTYPE html>
<html>
<head><title>404 Not Found</title></head>
<body>
<h1>404 - Not Found</h1>
<p>The requested resource does not exist on this server.</p>
</body>
</html>
`)

// serveFile maps the request target to a file under the document root.
func (s *Server) serveFile(req *http.Request) *http.Response {
	target := s.resolve(req.URL)
	if target == "" {
		return s.notFound()
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return s.notFound()
	}

	resp := http.NewResponse(protocolVersion, http.StatusOK, data)
	resp.AddHeader(http.HeaderServer(serverSoftware))
	resp.AddHeader(http.HeaderDate(http.FormatDate(s.now())))
	resp.AddHeader(http.HeaderContentType(contentType(target)))
	resp.AddHeader(http.HeaderContentLength(len(data)))
	resp.AddHeader(http.HeaderAcceptRanges("none"))
	return resp
}

// resolve turns a request target into a filesystem path under the
// document root, or "" when no file may be served. Directory targets
// resolve to the configured index file. The cleaned path must stay
// inside the root.
func (s *Server) resolve(target string) string {
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		target = target[:i]
	}
	if target == "" || target[0] != '/' {
		return ""
	}

	clean := path.Clean(target)
	full := filepath.Join(s.cfg.Root, filepath.FromSlash(clean))

	root := filepath.Clean(s.cfg.Root)
	if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return ""
	}

	info, err := os.Stat(full)
	if err != nil {
		return ""
	}
	if info.IsDir() {
		full = filepath.Join(full, s.cfg.Index)
		info, err = os.Stat(full)
		if err != nil || info.IsDir() {
			return ""
		}
	}
	return full
}

func (s *Server) notFound() *http.Response {
	resp := http.NewResponse(protocolVersion, http.StatusNotFound, notFoundPage)
	resp.AddHeader(http.HeaderServer(serverSoftware))
	resp.AddHeader(http.HeaderDate(http.FormatDate(s.now())))
	resp.AddHeader(http.HeaderContentType("text/html; charset=utf-8"))
	resp.AddHeader(http.HeaderContentLength(len(notFoundPage)))
	return resp
}

func contentType(p string) string {
	if ct, ok := mimeTypes[strings.ToLower(filepath.Ext(p))]; ok {
		return ct
	}
	return "application/octet-stream"
}
