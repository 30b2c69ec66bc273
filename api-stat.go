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
	"net/http"
	"strconv"
	"time"
)

// BucketExists verifies the bucket exists and is reachable with the current
// credentials.
func (c *Client) BucketExists(ctx context.Context, bucketName string) error {
	if err := isValidBucketName(bucketName); err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodHead, requestMetadata{
		bucketName: bucketName,
	})
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	defer closeResponse(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return httpRespToErrorResponse(resp, bucketName, "")
	}
	return nil
}

// StatObject returns metadata of the object without fetching its contents.
func (c *Client) StatObject(ctx context.Context, bucketName, objectName string) (ObjectInfo, error) {
	if err := isValidBucketName(bucketName); err != nil {
		return ObjectInfo{}, err
	}
	if err := isValidObjectName(bucketName, objectName); err != nil {
		return ObjectInfo{}, err
	}
	req, err := c.newRequest(ctx, http.MethodHead, requestMetadata{
		bucketName: bucketName,
		objectName: objectName,
	})
	if err != nil {
		return ObjectInfo{}, err
	}
	resp, err := c.do(req)
	defer closeResponse(resp)
	if err != nil {
		return ObjectInfo{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return ObjectInfo{}, httpRespToErrorResponse(resp, bucketName, objectName)
	}
	return objectInfoFromHeaders(resp, bucketName, objectName)
}

// objectInfoFromHeaders builds ObjectInfo from HEAD and GET response
// headers.
func objectInfoFromHeaders(resp *http.Response, bucketName, objectName string) (ObjectInfo, error) {
	size, err := strconv.ParseInt(resp.Header.Get("Content-Length"), 10, 64)
	if err != nil {
		return ObjectInfo{}, ErrorResponse{
			StatusCode: resp.StatusCode,
			Code:       "InternalError",
			Message:    "Content-Length not recognized, please report this issue to your server administrator.",
			BucketName: bucketName,
			Key:        objectName,
			RequestID:  resp.Header.Get("x-amz-request-id"),
			HostID:     resp.Header.Get("x-amz-id-2"),
		}
	}
	lastModified, err := time.Parse(http.TimeFormat, resp.Header.Get("Last-Modified"))
	if err != nil {
		return ObjectInfo{}, ErrorResponse{
			StatusCode: resp.StatusCode,
			Code:       "InternalError",
			Message:    "Last-Modified not recognized, please report this issue to your server administrator.",
			BucketName: bucketName,
			Key:        objectName,
			RequestID:  resp.Header.Get("x-amz-request-id"),
			HostID:     resp.Header.Get("x-amz-id-2"),
		}
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return ObjectInfo{
		ETag:         trimEtag(resp.Header.Get("ETag")),
		Key:          objectName,
		LastModified: lastModified,
		Size:         size,
		ContentType:  contentType,
	}, nil
}
