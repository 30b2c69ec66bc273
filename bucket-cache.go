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

package objstore

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/minio/objstore-go/pkg/signer"
)

// bucketLocationCache provides a concurrency safe bucket to region map.
// Only successful lookups are cached, errors are retried on the next call.
type bucketLocationCache struct {
	items *xsync.MapOf[string, string]
}

// newBucketLocationCache provides a new bucket location cache.
func newBucketLocationCache() *bucketLocationCache {
	return &bucketLocationCache{items: xsync.NewMapOf[string, string]()}
}

// Get returns a cached region for the bucket.
func (r *bucketLocationCache) Get(bucketName string) (string, bool) {
	return r.items.Load(bucketName)
}

// Set caches the region for the bucket.
func (r *bucketLocationCache) Set(bucketName, location string) {
	r.items.Store(bucketName, location)
}

// Delete drops the cached region for the bucket.
func (r *bucketLocationCache) Delete(bucketName string) {
	r.items.Delete(bucketName)
}

// getBucketLocation returns the region the bucket lives in, discovering it
// through the GetBucketLocation API on first use.
func (c *Client) getBucketLocation(ctx context.Context, bucketName string) (string, error) {
	if err := isValidBucketName(bucketName); err != nil {
		return "", err
	}

	// Path style deployments serve a single region, nothing to discover.
	if !c.virtualHostStyle {
		return defaultRegion, nil
	}

	if location, ok := c.bucketLocCache.Get(bucketName); ok {
		return location, nil
	}

	req, err := c.getBucketLocationRequest(ctx, bucketName)
	if err != nil {
		return "", err
	}

	resp, err := c.do(req)
	defer closeResponse(resp)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", httpRespToErrorResponse(resp, bucketName, "")
	}

	// An empty LocationConstraint means the default region. Some servers
	// send no body at all, which surfaces from the decoder as io.EOF.
	var locationConstraint string
	if err = xmlDecoder(resp.Body, &locationConstraint); err != nil && err != io.EOF {
		return "", err
	}
	location := locationConstraint
	if location == "" {
		location = defaultRegion
	}

	c.bucketLocCache.Set(bucketName, location)
	return location, nil
}

// getBucketLocationRequest builds the location request. The bucket region
// is exactly what is unknown here, so the request is always path style
// against the endpoint and signed for the default region, which the API
// accepts for GetBucketLocation.
func (c *Client) getBucketLocationRequest(ctx context.Context, bucketName string) (*http.Request, error) {
	urlValues := make(url.Values)
	urlValues.Set("location", "")

	targetURL := *c.endpointURL
	targetURL.Path = "/" + bucketName + "/"
	targetURL.RawQuery = urlValues.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent())

	if !c.isAuthorized() {
		return req, nil
	}
	req.Header.Set("X-Amz-Content-Sha256", emptySHA256Hex)
	return signer.SignV4(*req, c.accessKeyID, c.secretAccessKey, defaultRegion), nil
}
