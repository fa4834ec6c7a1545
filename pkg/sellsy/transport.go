package sellsy

import (
	"context"
	"net/http"
)

// FormField is one multipart/form-data part of a request body.
type FormField struct {
	Name     string
	Contents string
}

// Request is an outbound API request handed to a Transport.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Fields []FormField
	// VerifyPeer asks the transport to verify the server's TLS certificate.
	VerifyPeer bool
}

// Field returns the contents of the named form field.
func (r *Request) Field(name string) (string, bool) {
	for _, field := range r.Fields {
		if field.Name == name {
			return field.Contents, true
		}
	}

	return "", false
}

// Response is the raw answer returned by a Transport.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport sends a request and returns the raw response. Non-2xx statuses
// are not errors: the body is interpreted by the caller.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

// Send implements Transport.
func (f TransportFunc) Send(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}
