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
	"bytes"
	"context"
	"encoding/base64"
	"encoding/xml"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// initiateMultipartUpload begins a new multipart upload and returns its id.
func (c *Client) initiateMultipartUpload(ctx context.Context, bucketName, objectName, contentType string) (initiateMultipartUploadResult, error) {
	urlValues := make(url.Values)
	urlValues.Set("uploads", "")

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	req, err := c.newRequest(ctx, http.MethodPost, requestMetadata{
		bucketName:  bucketName,
		objectName:  objectName,
		queryValues: urlValues,
		contentType: contentType,
	})
	if err != nil {
		return initiateMultipartUploadResult{}, err
	}
	resp, err := c.do(req)
	defer closeResponse(resp)
	if err != nil {
		return initiateMultipartUploadResult{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return initiateMultipartUploadResult{}, httpRespToErrorResponse(resp, bucketName, objectName)
	}
	initiateMultipartUploadResult := initiateMultipartUploadResult{}
	if err = xmlDecoder(resp.Body, &initiateMultipartUploadResult); err != nil {
		return initiateMultipartUploadResult, err
	}
	return initiateMultipartUploadResult, nil
}

// uploadPart uploads one part of a multipart upload from an in-memory
// buffer and returns its server side metadata.
func (c *Client) uploadPart(ctx context.Context, bucketName, objectName, uploadID string, partNumber int, partBuffer []byte) (objectPart, error) {
	if partNumber < 1 || partNumber > maxPartsCount {
		return objectPart{}, errInvalidArgument("Part number must be between 1 and 10000.")
	}

	urlValues := make(url.Values)
	urlValues.Set("partNumber", strconv.Itoa(partNumber))
	urlValues.Set("uploadId", uploadID)

	req, err := c.newRequest(ctx, http.MethodPut, requestMetadata{
		bucketName:       bucketName,
		objectName:       objectName,
		queryValues:      urlValues,
		contentBody:      bytes.NewReader(partBuffer),
		contentLength:    int64(len(partBuffer)),
		contentMD5Base64: base64.StdEncoding.EncodeToString(sumMD5(partBuffer)),
		contentSHA256Hex: sum256Hex(partBuffer),
	})
	if err != nil {
		return objectPart{}, err
	}
	resp, err := c.do(req)
	defer closeResponse(resp)
	if err != nil {
		return objectPart{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return objectPart{}, httpRespToErrorResponse(resp, bucketName, objectName)
	}
	return objectPart{
		PartNumber: partNumber,
		ETag:       trimEtag(resp.Header.Get("ETag")),
		Size:       int64(len(partBuffer)),
	}, nil
}

// completeMultipartUpload stitches the uploaded parts into the final
// object.
func (c *Client) completeMultipartUpload(ctx context.Context, bucketName, objectName, uploadID string, complete completeMultipartUpload) (completeMultipartUploadResult, error) {
	urlValues := make(url.Values)
	urlValues.Set("uploadId", uploadID)

	completeMultipartUploadBytes, err := xml.Marshal(complete)
	if err != nil {
		return completeMultipartUploadResult{}, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, requestMetadata{
		bucketName:       bucketName,
		objectName:       objectName,
		queryValues:      urlValues,
		contentBody:      bytes.NewReader(completeMultipartUploadBytes),
		contentLength:    int64(len(completeMultipartUploadBytes)),
		contentSHA256Hex: sum256Hex(completeMultipartUploadBytes),
	})
	if err != nil {
		return completeMultipartUploadResult{}, err
	}
	resp, err := c.do(req)
	defer closeResponse(resp)
	if err != nil {
		return completeMultipartUploadResult{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return completeMultipartUploadResult{}, httpRespToErrorResponse(resp, bucketName, objectName)
	}
	completeMultipartUploadResult := completeMultipartUploadResult{}
	if err = xmlDecoder(resp.Body, &completeMultipartUploadResult); err != nil {
		return completeMultipartUploadResult, err
	}
	return completeMultipartUploadResult, nil
}

// findUploadID looks for an incomplete upload of the object and returns the
// most recently initiated one, empty when none exists.
func (c *Client) findUploadID(ctx context.Context, bucketName, objectName string) (string, time.Time, error) {
	var uploadID string
	var initiated time.Time
	var keyMarker, uploadIDMarker string
	for {
		result, err := c.listMultipartUploadsQuery(ctx, bucketName, keyMarker, uploadIDMarker, objectName, "", 1000)
		if err != nil {
			return "", time.Time{}, err
		}
		for _, upload := range result.Uploads {
			if upload.Key != objectName {
				continue
			}
			if upload.Initiated.After(initiated) || uploadID == "" {
				uploadID = upload.UploadID
				initiated = upload.Initiated
			}
		}
		keyMarker = result.NextKeyMarker
		uploadIDMarker = result.NextUploadIDMarker
		if !result.IsTruncated {
			break
		}
	}
	return uploadID, initiated, nil
}

// listObjectParts lists all uploaded parts of an upload, keyed by part
// number.
func (c *Client) listObjectParts(ctx context.Context, bucketName, objectName, uploadID string) (map[int]objectPart, error) {
	partsInfo := make(map[int]objectPart)
	var nextPartNumberMarker int
	for {
		result, err := c.listObjectPartsQuery(ctx, bucketName, objectName, uploadID, nextPartNumberMarker, 1000)
		if err != nil {
			return nil, err
		}
		for _, part := range result.ObjectParts {
			part.ETag = trimEtag(part.ETag)
			partsInfo[part.PartNumber] = part
		}
		nextPartNumberMarker = result.NextPartNumberMarker
		if !result.IsTruncated {
			break
		}
	}
	return partsInfo, nil
}

// listObjectPartsQuery fetches one page of List Parts.
func (c *Client) listObjectPartsQuery(ctx context.Context, bucketName, objectName, uploadID string, partNumberMarker, maxParts int) (listObjectPartsResult, error) {
	urlValues := make(url.Values)
	urlValues.Set("uploadId", uploadID)
	if partNumberMarker > 0 {
		urlValues.Set("part-number-marker", strconv.Itoa(partNumberMarker))
	}
	if maxParts > 0 {
		urlValues.Set("max-parts", strconv.Itoa(maxParts))
	}

	req, err := c.newRequest(ctx, http.MethodGet, requestMetadata{
		bucketName:  bucketName,
		objectName:  objectName,
		queryValues: urlValues,
	})
	if err != nil {
		return listObjectPartsResult{}, err
	}
	resp, err := c.do(req)
	defer closeResponse(resp)
	if err != nil {
		return listObjectPartsResult{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return listObjectPartsResult{}, httpRespToErrorResponse(resp, bucketName, objectName)
	}

	listObjectPartsResult := listObjectPartsResult{}
	if err = xmlDecoder(resp.Body, &listObjectPartsResult); err != nil {
		return listObjectPartsResult, err
	}
	return listObjectPartsResult, nil
}

// getTotalMultipartSize sums the sizes of all uploaded parts.
func (c *Client) getTotalMultipartSize(ctx context.Context, bucketName, objectName, uploadID string) (int64, error) {
	partsInfo, err := c.listObjectParts(ctx, bucketName, objectName, uploadID)
	if err != nil {
		return 0, err
	}
	var size int64
	for _, part := range partsInfo {
		size += part.Size
	}
	return size, nil
}
