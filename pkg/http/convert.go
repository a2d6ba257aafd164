package http

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

var zeroPos = ast.Position{}

// RequestNode converts req to a shape-core AST node:
//
//	{ "type": "request", "method": "GET", "url": "/foo", "version": "1.1",
//	  "headers": {"Host": "localhost:8080", ...} }
//
// Header fields use their wire names as keys; absent fields are omitted.
func RequestNode(req *Request) ast.SchemaNode {
	props := map[string]ast.SchemaNode{
		"type":    ast.NewLiteralNode("request", zeroPos),
		"method":  ast.NewLiteralNode(req.Method, zeroPos),
		"url":     ast.NewLiteralNode(req.URL, zeroPos),
		"version": ast.NewLiteralNode(req.Version, zeroPos),
		"headers": requestHeadersNode(req),
	}
	return ast.NewObjectNode(props, zeroPos)
}

func requestHeadersNode(req *Request) ast.SchemaNode {
	props := map[string]ast.SchemaNode{}
	add := func(name, value string) {
		if value != "" {
			props[name] = ast.NewLiteralNode(value, zeroPos)
		}
	}
	add("Host", req.Host)
	add("User-Agent", req.UserAgent)
	add("Accept", req.Accept)
	add("Accept-Language", req.AcceptLanguage)
	add("Accept-Encoding", req.AcceptEncoding)
	add("Cookie", req.Cookie)
	add("Connection", req.Connection)
	add("Upgrade-Insecure-Requests", req.UpgradeInsecureRequests)
	add("Referer", req.Referer)
	add("Cache-Control", req.CacheControl)
	return ast.NewObjectNode(props, zeroPos)
}

// ResponseNode converts resp to a shape-core AST node:
//
//	{ "type": "response", "version": "1.1", "status": "200 OK",
//	  "headers": [{"key": "Allow", "value": "GET, POST, HEAD"}, ...],
//	  "body": "..." }
//
// Headers stay an ordered array because duplicates are allowed.
func ResponseNode(resp *Response) ast.SchemaNode {
	headers := make([]ast.SchemaNode, len(resp.Headers))
	for i, h := range resp.Headers {
		headers[i] = ast.NewObjectNode(map[string]ast.SchemaNode{
			"key":   ast.NewLiteralNode(h.name, zeroPos),
			"value": ast.NewLiteralNode(h.value, zeroPos),
		}, zeroPos)
	}

	props := map[string]ast.SchemaNode{
		"type":    ast.NewLiteralNode("response", zeroPos),
		"version": ast.NewLiteralNode(resp.Version, zeroPos),
		"status":  ast.NewLiteralNode(resp.Status.text, zeroPos),
		"headers": ast.NewArrayDataNode(headers, zeroPos),
	}
	if resp.Body != nil {
		props["body"] = ast.NewLiteralNode(string(resp.Body), zeroPos)
	}
	return ast.NewObjectNode(props, zeroPos)
}

// ResponseFromNode rebuilds a Response from its node form. The status
// text must resolve in the status vocabulary and every header key in
// the response-header vocabulary; anything else is an error, never a
// new wire value.
func ResponseFromNode(node ast.SchemaNode) (*Response, error) {
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return nil, fmt.Errorf("http: expected ObjectNode, got %T", node)
	}
	props := obj.Properties()

	resp := &Response{Version: stringProp(props, "version")}

	statusText := stringProp(props, "status")
	status, ok := statusFromText(statusText)
	if !ok {
		return nil, fmt.Errorf("http: unknown status %q", statusText)
	}
	resp.Status = status

	if v, ok := props["headers"]; ok {
		arr, ok := v.(*ast.ArrayDataNode)
		if !ok {
			return nil, fmt.Errorf("http: expected ArrayDataNode for headers, got %T", v)
		}
		for _, elem := range arr.Elements() {
			hdr, ok := elem.(*ast.ObjectNode)
			if !ok {
				continue
			}
			hp := hdr.Properties()
			name := stringProp(hp, "key")
			h, ok := responseHeaderFromWire(name, stringProp(hp, "value"))
			if !ok {
				return nil, fmt.Errorf("http: unsupported response header %q", name)
			}
			resp.Headers = append(resp.Headers, h)
		}
	}

	if v, ok := props["body"]; ok {
		if lit, ok := v.(*ast.LiteralNode); ok {
			if s, ok := lit.Value().(string); ok {
				resp.Body = []byte(s)
			}
		}
	}
	return resp, nil
}

func stringProp(props map[string]ast.SchemaNode, key string) string {
	if v, ok := props[key]; ok {
		if lit, ok := v.(*ast.LiteralNode); ok {
			s, _ := lit.Value().(string)
			return s
		}
	}
	return ""
}

// ParseNode parses request text and returns its AST form.
func ParseNode(text string) (ast.SchemaNode, error) {
	req, err := ParseRequest(text)
	if err != nil {
		return nil, err
	}
	return RequestNode(req), nil
}

// RenderNode renders a response node (as produced by ResponseNode) to
// wire bytes. Request nodes are rejected: requests are parse input here,
// never render output.
func RenderNode(node ast.SchemaNode) ([]byte, error) {
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return nil, fmt.Errorf("http: expected ObjectNode, got %T", node)
	}
	if kind := stringProp(obj.Properties(), "type"); kind != "response" {
		return nil, fmt.Errorf("http: cannot render %q node", kind)
	}
	resp, err := ResponseFromNode(node)
	if err != nil {
		return nil, err
	}
	return resp.Render(), nil
}
