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
	"fmt"
	"io"
	"net/http"
)

// GetObject fetches the whole object. The returned reader streams the body
// and must be closed by the caller.
func (c *Client) GetObject(ctx context.Context, bucketName, objectName string) (io.ReadCloser, ObjectInfo, error) {
	return c.getObject(ctx, bucketName, objectName, 0, 0)
}

// GetPartialObject fetches a byte range of the object. A length of zero
// reads from offset to the end.
func (c *Client) GetPartialObject(ctx context.Context, bucketName, objectName string, offset, length int64) (io.ReadCloser, ObjectInfo, error) {
	if offset < 0 {
		return nil, ObjectInfo{}, errInvalidArgument("Offset cannot be negative.")
	}
	if length < 0 {
		return nil, ObjectInfo{}, errInvalidArgument("Length cannot be negative.")
	}
	return c.getObject(ctx, bucketName, objectName, offset, length)
}

// getObject issues the GET, with a Range header when a partial read was
// requested. Both 200 and 206 are success here, servers answer full reads
// of small objects with 200 even under a Range header.
func (c *Client) getObject(ctx context.Context, bucketName, objectName string, offset, length int64) (io.ReadCloser, ObjectInfo, error) {
	if err := isValidBucketName(bucketName); err != nil {
		return nil, ObjectInfo{}, err
	}
	if err := isValidObjectName(bucketName, objectName); err != nil {
		return nil, ObjectInfo{}, err
	}

	customHeader := make(http.Header)
	switch {
	case offset > 0 && length > 0:
		customHeader.Set("Range", fmt.Sprintf("bytes=%d-%d", offset, offset+length-1))
	case offset > 0 && length == 0:
		customHeader.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	case length > 0 && offset == 0:
		customHeader.Set("Range", fmt.Sprintf("bytes=0-%d", length-1))
	}

	req, err := c.newRequest(ctx, http.MethodGet, requestMetadata{
		bucketName:   bucketName,
		objectName:   objectName,
		customHeader: customHeader,
	})
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		defer closeResponse(resp)
		return nil, ObjectInfo{}, httpRespToErrorResponse(resp, bucketName, objectName)
	}

	objectStat, err := objectInfoFromHeaders(resp, bucketName, objectName)
	if err != nil {
		closeResponse(resp)
		return nil, ObjectInfo{}, err
	}
	// Body ownership moves to the caller.
	return resp.Body, objectStat, nil
}
