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
	"net/url"
)

// RemoveBucket deletes the bucket. The bucket must be empty.
func (c *Client) RemoveBucket(ctx context.Context, bucketName string) error {
	if err := isValidBucketName(bucketName); err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodDelete, requestMetadata{
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
	if resp.StatusCode != http.StatusNoContent {
		return httpRespToErrorResponse(resp, bucketName, "")
	}

	c.bucketLocCache.Delete(bucketName)
	return nil
}

// RemoveObject deletes the object. Deleting a nonexistent object succeeds.
func (c *Client) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	if err := isValidBucketName(bucketName); err != nil {
		return err
	}
	if err := isValidObjectName(bucketName, objectName); err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodDelete, requestMetadata{
		bucketName: bucketName,
		objectName: objectName,
	})
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	defer closeResponse(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusNoContent {
		return httpRespToErrorResponse(resp, bucketName, objectName)
	}
	return nil
}

// RemoveIncompleteUpload aborts an ongoing multipart upload for the object.
// Success when no such upload exists.
func (c *Client) RemoveIncompleteUpload(ctx context.Context, bucketName, objectName string) error {
	if err := isValidBucketName(bucketName); err != nil {
		return err
	}
	if err := isValidObjectName(bucketName, objectName); err != nil {
		return err
	}
	uploadID, _, err := c.findUploadID(ctx, bucketName, objectName)
	if err != nil {
		return err
	}
	if uploadID == "" {
		return nil
	}
	return c.abortMultipartUpload(ctx, bucketName, objectName, uploadID)
}

// abortMultipartUpload aborts a multipart upload by id.
func (c *Client) abortMultipartUpload(ctx context.Context, bucketName, objectName, uploadID string) error {
	urlValues := make(url.Values)
	urlValues.Set("uploadId", uploadID)

	req, err := c.newRequest(ctx, http.MethodDelete, requestMetadata{
		bucketName:  bucketName,
		objectName:  objectName,
		queryValues: urlValues,
	})
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	defer closeResponse(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusNoContent {
		// Abort has no error body on 404, synthesize a precise error.
		if resp.StatusCode == http.StatusNotFound {
			return ErrorResponse{
				StatusCode: resp.StatusCode,
				Code:       "NoSuchUpload",
				Message:    "The specified multipart upload does not exist.",
				BucketName: bucketName,
				Key:        objectName,
				RequestID:  resp.Header.Get("x-amz-request-id"),
				HostID:     resp.Header.Get("x-amz-id-2"),
			}
		}
		return httpRespToErrorResponse(resp, bucketName, objectName)
	}
	return nil
}
