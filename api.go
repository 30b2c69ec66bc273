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

// Package objstore implements a client for the Amazon S3 HTTP API and
// S3 compatible object storage servers.
package objstore

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"runtime"

	"github.com/minio/objstore-go/pkg/httptracer"
	"github.com/minio/objstore-go/pkg/s3utils"
	"github.com/minio/objstore-go/pkg/signer"
)

// Client implements Amazon S3 compatible methods.
type Client struct {
	// Parsed endpoint url provided by the user.
	endpointURL *url.URL

	// AccessKeyID required for authorized requests.
	accessKeyID string
	// SecretAccessKey required for authorized requests.
	secretAccessKey string

	// Buckets on Amazon S3 proper are addressed through the bucket
	// subdomain, everywhere else through the path.
	virtualHostStyle bool

	// User supplied.
	appInfo struct {
		appName    string
		appVersion string
	}

	// Needs allocated transport.
	transport http.RoundTripper

	// Advanced functionality.
	isTraceEnabled bool
	traceOutput    io.Writer

	// Region per bucket, discovered once and reused for signing.
	bucketLocCache *bucketLocationCache
}

// New returns a client for the given endpoint and credentials. The endpoint
// carries the scheme, http or https. Empty credentials yield an anonymous
// client.
func New(endpoint, accessKeyID, secretAccessKey string) (*Client, error) {
	endpointURL, err := getEndpointURL(endpoint)
	if err != nil {
		return nil, err
	}
	return &Client{
		endpointURL:      endpointURL,
		accessKeyID:      accessKeyID,
		secretAccessKey:  secretAccessKey,
		virtualHostStyle: s3utils.IsAmazonEndpoint(endpointURL.Hostname()),
		bucketLocCache:   newBucketLocationCache(),
	}, nil
}

// getEndpointURL parses and validates an endpoint.
func getEndpointURL(endpoint string) (*url.URL, error) {
	endpointURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, errInvalidArgument("Endpoint url cannot be parsed: " + endpoint)
	}
	switch endpointURL.Scheme {
	case "http", "https":
	default:
		return nil, errInvalidArgument("Endpoint protocol must be http or https: " + endpoint)
	}
	if endpointURL.Host == "" {
		return nil, errInvalidArgument("Endpoint url must carry a host: " + endpoint)
	}
	if endpointURL.Path != "" && endpointURL.Path != "/" {
		return nil, errInvalidArgument("Endpoint url cannot carry a path: " + endpoint)
	}
	// All of Amazon's S3 endpoints are served through the one canonical
	// host, regional routing happens through signing, not addressing.
	if s3utils.IsAmazonEndpoint(endpointURL.Hostname()) && endpointURL.Host != "s3.amazonaws.com" {
		return nil, errInvalidArgument("Amazon S3 endpoint should be s3.amazonaws.com: " + endpoint)
	}
	return endpointURL, nil
}

// SetAppInfo adds custom application details to the User-Agent. The first
// call wins, later calls are ignored.
func (c *Client) SetAppInfo(appName, appVersion string) {
	if appName == "" || appVersion == "" {
		return
	}
	if c.appInfo.appName != "" {
		return
	}
	c.appInfo.appName = appName
	c.appInfo.appVersion = appVersion
}

// SetCustomTransport replaces the default transport, useful for self signed
// certificates and mock testing.
func (c *Client) SetCustomTransport(customHTTPTransport http.RoundTripper) {
	c.transport = customHTTPTransport
}

// TraceOn enables wire tracing to the given output, os.Stdout when nil.
// Credentials and signatures are redacted.
func (c *Client) TraceOn(outputStream io.Writer) {
	if outputStream == nil {
		outputStream = os.Stdout
	}
	c.traceOutput = outputStream
	c.isTraceEnabled = true
}

// TraceOff disables wire tracing.
func (c *Client) TraceOff() {
	c.isTraceEnabled = false
}

// userAgent is of the style
//
//	Minio (OS; ARCH) LIB/VER APP/VER
func (c *Client) userAgent() string {
	userAgent := "Minio (" + runtime.GOOS + "; " + runtime.GOARCH + ") " + libraryName + "/" + libraryVersion
	if c.appInfo.appName != "" {
		userAgent += " " + c.appInfo.appName + "/" + c.appInfo.appVersion
	}
	return userAgent
}

// requestMetadata is the input to newRequest.
type requestMetadata struct {
	// Resource being addressed.
	bucketName  string
	objectName  string
	queryValues url.Values

	// Extra headers merged into the request.
	customHeader http.Header

	// Pre-sign the request into its query string instead of the
	// Authorization header, valid for this many seconds.
	expires int64

	// Region the request is signed against when already known, bypasses
	// the location cache.
	bucketLocation string

	// Request body and its metadata.
	contentBody      io.Reader
	contentLength    int64
	contentType      string
	contentSHA256Hex string
	contentMD5Base64 string
}

// newRequest builds a fully addressed and signed *http.Request.
func (c *Client) newRequest(ctx context.Context, method string, metadata requestMetadata) (*http.Request, error) {
	if method == "" {
		method = http.MethodPost
	}

	location := metadata.bucketLocation
	if location == "" {
		location = defaultRegion
		if metadata.bucketName != "" {
			var err error
			location, err = c.getBucketLocation(ctx, metadata.bucketName)
			if err != nil {
				return nil, err
			}
		}
	}

	targetURL, err := c.makeTargetURL(metadata.bucketName, metadata.objectName, metadata.queryValues)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, targetURL.String(), metadata.contentBody)
	if err != nil {
		return nil, err
	}
	if metadata.contentLength > 0 {
		req.ContentLength = metadata.contentLength
	}

	for k, v := range metadata.customHeader {
		req.Header[k] = v
	}
	if metadata.contentType != "" {
		req.Header.Set("Content-Type", metadata.contentType)
	}
	req.Header.Set("User-Agent", c.userAgent())
	if metadata.contentMD5Base64 != "" {
		req.Header.Set("Content-MD5", metadata.contentMD5Base64)
	}

	if !c.isAuthorized() {
		return req, nil
	}

	if metadata.expires > 0 {
		presigned := signer.PreSignV4(*req, c.accessKeyID, c.secretAccessKey, location, metadata.expires)
		if presigned == nil {
			return nil, errInvalidArgument("Unable to pre-sign request.")
		}
		return presigned, nil
	}

	// Declare the payload hash covered by the signature.
	shaHeader := metadata.contentSHA256Hex
	if shaHeader == "" {
		shaHeader = emptySHA256Hex
	}
	req.Header.Set("X-Amz-Content-Sha256", shaHeader)

	return signer.SignV4(*req, c.accessKeyID, c.secretAccessKey, location), nil
}

// isAuthorized returns false for anonymous clients.
func (c *Client) isAuthorized() bool {
	return c.accessKeyID != "" && c.secretAccessKey != ""
}

// makeTargetURL assembles the url for a bucket and object, virtual host
// style on Amazon, path style everywhere else.
func (c *Client) makeTargetURL(bucketName, objectName string, queryValues url.Values) (*url.URL, error) {
	scheme := c.endpointURL.Scheme
	host := c.endpointURL.Host

	urlStr := scheme + "://" + host + "/"
	if bucketName != "" {
		if c.virtualHostStyle {
			urlStr = scheme + "://" + bucketName + "." + host + "/"
		} else {
			urlStr = scheme + "://" + host + "/" + bucketName + "/"
		}
		if objectName != "" {
			urlStr += s3utils.EncodePath(objectName)
		}
	}
	if len(queryValues) > 0 {
		urlStr += "?" + s3utils.QueryEncode(queryValues)
	}
	return url.Parse(urlStr)
}

// do executes the request over the configured transport. The transport is
// used directly so that server redirects surface to callers instead of
// being silently followed with a stale signature.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	transport := c.transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if c.isTraceEnabled {
		transport = httptracer.GetNewTraceTransport(httptracer.NewTraceV4(c.traceOutput), transport)
	}
	resp, err := transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errInvalidArgument("Response is empty, please report this issue to your server administrator.")
	}
	return resp, nil
}

// isValidBucketName wraps validation into a typed error.
func isValidBucketName(bucketName string) error {
	if !s3utils.IsValidBucketName(bucketName) {
		return errInvalidBucketName(bucketName)
	}
	return nil
}

// isValidObjectName wraps validation into a typed error.
func isValidObjectName(bucketName, objectName string) error {
	if !s3utils.IsValidObjectName(objectName) {
		return errInvalidObjectName(bucketName, objectName)
	}
	return nil
}

// isValidObjectPrefix wraps validation into a typed error.
func isValidObjectPrefix(bucketName, objectPrefix string) error {
	if !s3utils.IsValidObjectPrefix(objectPrefix) {
		return errInvalidObjectName(bucketName, objectPrefix)
	}
	return nil
}

// isValidExpiry validates the pre-signed url expiry window.
func isValidExpiry(expires int64) error {
	if expires < minExpirySeconds || expires > maxExpirySeconds {
		return errInvalidArgument("Expires value must be between 1 second and 7 days.")
	}
	return nil
}
