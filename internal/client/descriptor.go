package client

import (
	"net/http"
	"strings"
)

// Descriptor describes one call. It is built per call and never persisted.
type Descriptor struct {
	Endpoint     string
	Method       string
	RequiresAuth bool
	Data         any
	Headers      map[string]string
}

// Option customises a Descriptor.
type Option func(*Descriptor)

// NewDescriptor returns an authenticated descriptor for method and endpoint.
func NewDescriptor(method, endpoint string, opts ...Option) Descriptor {
	d := Descriptor{Endpoint: endpoint, Method: method, RequiresAuth: true}
	for _, opt := range opts {
		opt(&d)
	}
	if d.Method == "" {
		d.Method = http.MethodGet
	}
	return d
}

// WithBody sets the value serialised as the JSON request body.
func WithBody(data any) Option {
	return func(d *Descriptor) { d.Data = data }
}

// WithoutAuth marks the call as public: no token is read and no Authorization header is sent.
func WithoutAuth() Option {
	return func(d *Descriptor) { d.RequiresAuth = false }
}

// WithHeader adds a caller supplied header.
func WithHeader(key, value string) Option {
	return func(d *Descriptor) {
		if d.Headers == nil {
			d.Headers = make(map[string]string)
		}
		d.Headers[key] = value
	}
}

func (d Descriptor) method() string {
	if d.Method == "" {
		return http.MethodGet
	}
	return d.Method
}

// path is the endpoint without its query string, used as a metric label.
func (d Descriptor) path() string {
	if i := strings.IndexByte(d.Endpoint, '?'); i >= 0 {
		return d.Endpoint[:i]
	}
	return d.Endpoint
}
