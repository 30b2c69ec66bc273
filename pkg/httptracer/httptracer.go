/*
 * Minio Go Library for Amazon S3 Compatible Cloud Storage (C) 2016 Minio, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package httptracer wraps an http.RoundTripper with request and response
// hooks for wire level debugging.
package httptracer

import (
	"errors"
	"net/http"
)

// HTTPTracer provides callback hook mechanism for HTTP transport.
type HTTPTracer interface {
	Request(req *http.Request) error
	Response(res *http.Response) error
}

// RoundTripTrace interposes HTTP transport requests and responses using
// HTTPTracer hooks.
type RoundTripTrace struct {
	Trace     HTTPTracer        // User provides callback methods
	Transport http.RoundTripper // HTTP transport that needs to be intercepted
}

// RoundTrip executes user provided request and response hooks for each HTTP
// call.
func (t RoundTripTrace) RoundTrip(req *http.Request) (res *http.Response, err error) {
	if t.Transport == nil {
		return nil, errors.New("transport cannot be nil")
	}

	res, err = t.Transport.RoundTrip(req)
	if err != nil {
		return res, err
	}

	if t.Trace != nil {
		if err = t.Trace.Request(req); err != nil {
			return nil, err
		}
		if err = t.Trace.Response(res); err != nil {
			return nil, err
		}
	}
	return res, err
}

// GetNewTraceTransport returns a traceable transport.
//
// Takes first argument a custom tracer which implements Request(), Response()
// conforming to HTTPTracer interface. Another argument can be a default
// transport or a custom http.RoundTripper implementation.
func GetNewTraceTransport(trace HTTPTracer, transport http.RoundTripper) RoundTripTrace {
	return RoundTripTrace{Trace: trace, Transport: transport}
}
