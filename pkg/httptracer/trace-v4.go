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

package httptracer

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httputil"
	"regexp"
	"strings"
)

// TraceV4 dumps signature version '4' requests and responses to an
// io.Writer, with credentials and signatures redacted.
type TraceV4 struct {
	Output io.Writer
}

// NewTraceV4 initializes a redacting tracer writing to output.
func NewTraceV4(output io.Writer) HTTPTracer {
	return TraceV4{Output: output}
}

var (
	regCred = regexp.MustCompile("Credential=([A-Z0-9]+)/")
	regSign = regexp.MustCompile("Signature=([0-9a-f]+)")
)

// Request traces an HTTP request with the Authorization header redacted.
//
// Authorization (S3 v4 signature) format:
// Authorization: AWS4-HMAC-SHA256 Credential=<access-key-id>/<date>/<region>/s3/aws4_request, SignedHeaders=..., Signature=<hex>
func (t TraceV4) Request(req *http.Request) (err error) {
	origAuth := req.Header.Get("Authorization")
	if strings.TrimSpace(origAuth) == "" {
		return nil
	}

	newAuth := regCred.ReplaceAllString(origAuth, "Credential=**REDACTED**/")
	newAuth = regSign.ReplaceAllString(newAuth, "Signature=**REDACTED**")

	// Set a temporary redacted auth
	req.Header.Set("Authorization", newAuth)

	reqTrace, err := httputil.DumpRequestOut(req, false) // Only display header
	if err == nil {
		_, err = t.Output.Write(reqTrace)
	}

	// Undo
	req.Header.Set("Authorization", origAuth)
	return err
}

// Response traces an HTTP response, dumping the body too when the status
// indicates an error.
func (t TraceV4) Response(resp *http.Response) (err error) {
	var respTrace []byte
	if resp.StatusCode != http.StatusOK &&
		resp.StatusCode != http.StatusPartialContent &&
		resp.StatusCode != http.StatusNoContent {
		respTrace, err = httputil.DumpResponse(resp, true)
	} else {
		// WORKAROUND for https://github.com/golang/go/issues/13942.
		// httputil.DumpResponse does not print response headers for
		// all successful calls which have response ContentLength set
		// to zero. Keep this workaround until the above bug is fixed.
		if resp.ContentLength == 0 {
			var buffer bytes.Buffer
			if err = resp.Header.Write(&buffer); err != nil {
				return err
			}
			respTrace = buffer.Bytes()
			respTrace = append(respTrace, []byte("\r\n")...)
		} else {
			respTrace, err = httputil.DumpResponse(resp, false)
		}
	}
	if err != nil {
		return err
	}
	_, err = t.Output.Write(respTrace)
	return err
}
