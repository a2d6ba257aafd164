package server

import "github.com/shapestone/shape-serve/pkg/http"

// route maps a parsed request to its response. HEAD runs the same
// resolution as GET and drops the body after Content-Length is set.
func (s *Server) route(req *http.Request) *http.Response {
	var resp *http.Response
	if methodAllowed(req.Method) {
		resp = s.serveFile(req)
	} else {
		resp = http.NewResponse(protocolVersion, http.StatusMethodNotAllowed, []byte("This is not allowed!"))
		resp.AddHeader(http.HeaderAllow(allowedMethods))
	}
	if req.Method == "HEAD" {
		resp.Body = nil
	}
	return resp
}

func methodAllowed(method string) bool {
	switch method {
	case "GET", "POST", "HEAD":
		return true
	}
	return false
}
