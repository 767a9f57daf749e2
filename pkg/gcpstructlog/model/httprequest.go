package model

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

// HttpRequest according to https://cloud.google.com/logging/docs/reference/v2/rest/v2/LogEntry#HttpRequest
type HttpRequest struct {
	RequestMethod                  string `json:"requestMethod,omitempty"`
	RequestUrl                     string `json:"requestUrl,omitempty"`
	RequestSize                    string `json:"requestSize,omitempty"`
	Status                         int    `json:"status,omitempty"`
	ResponseSize                   string `json:"responseSize,omitempty"`
	UserAgent                      string `json:"userAgent,omitempty"`
	RemoteIp                       string `json:"remoteIp,omitempty"`
	ServerIp                       string `json:"serverIp,omitempty"`
	Referer                        string `json:"referer,omitempty"`
	Latency                        string `json:"latency,omitempty"` // A duration in seconds with up to nine fractional digits, terminated by 's'. Example: "3.5s".
	CacheLookup                    bool   `json:"cacheLookup,omitempty"`
	CacheHit                       bool   `json:"cacheHit,omitempty"`
	CacheValidatedWithOriginServer bool   `json:"cacheValidatedWithOriginServer,omitempty"`
	CacheFillBytes                 string `json:"cacheFillBytes,omitempty"`
	Protocol                       string `json:"protocol,omitempty"`
}

// NewHTTPRequest maps req and an optional resp onto the entry's httpRequest
// field. Sizes cover the start line, headers and body; bodies are re-buffered
// after measuring so the caller can still read them. A nil req yields nil.
func NewHTTPRequest(req *http.Request, resp *http.Response) *HttpRequest {
	if req == nil {
		return nil
	}

	result := &HttpRequest{
		RequestMethod: req.Method,
		RequestUrl:    requestURL(req),
		RequestSize:   requestSize(req),
		UserAgent:     req.UserAgent(),
		RemoteIp:      req.RemoteAddr,
		Referer:       req.Referer(),
		Protocol:      req.Proto,
	}

	if resp == nil {
		return result
	}

	result.Status = resp.StatusCode
	result.ResponseSize = responseSize(resp)

	return result
}

// requestURL prefers the server-side RequestURI; client requests only carry URL.
func requestURL(req *http.Request) string {
	if req.RequestURI != "" {
		return req.RequestURI
	}
	if req.URL != nil {
		return req.URL.String()
	}
	return ""
}

func requestSize(req *http.Request) string {
	requestLineSize := int64(len(req.Method) + len(requestURL(req)) + len(req.Proto) + 4) // 2 spaces + CRLF (2 bytes)

	var headersSize int64
	for k, v := range req.Header {
		for _, value := range v {
			headersSize += int64(len(k) + len(value) + 4) // ": " (2 bytes) + CRLF (2 bytes)
		}
	}
	headersSize += 2 // Final CRLF after headers (2 bytes)

	bodySize := int64(0)
	if req.Body != nil {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, req.Body)
		if err != nil {
			return ""
		}
		bodySize = int64(buf.Len())

		// Reset the request body to its original state
		req.Body = io.NopCloser(bytes.NewReader(buf.Bytes()))
	}

	return fmt.Sprintf(`%d`, requestLineSize+headersSize+bodySize)
}

func responseSize(resp *http.Response) string {
	statusLineSize := int64(len(resp.Proto) + len(resp.Status) + 5) // space + status code (3 bytes) + CRLF (2 bytes)

	var headersSize int64
	for k, v := range resp.Header {
		for _, value := range v {
			headersSize += int64(len(k) + len(value) + 4) // ": " (2 bytes) + CRLF (2 bytes)
		}
	}
	headersSize += 2 // Final CRLF after headers (2 bytes)

	bodySize := int64(0)
	if resp.Body != nil {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, resp.Body)
		if err != nil {
			return ""
		}
		bodySize = int64(buf.Len())

		// Reset the response body to its original state
		resp.Body = io.NopCloser(bytes.NewReader(buf.Bytes()))
	}

	return fmt.Sprintf(`%d`, statusLineSize+headersSize+bodySize)
}
