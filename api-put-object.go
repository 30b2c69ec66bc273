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
	"encoding/hex"
	"io"
	"net/http"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// PutObject uploads size bytes from data as objectName. Objects up to the
// part size threshold go up in a single PUT, larger objects through a
// multipart upload that resumes an earlier interrupted upload of the same
// object when one exists.
func (c *Client) PutObject(ctx context.Context, bucketName, objectName, contentType string, size int64, data io.Reader) (ObjectInfo, error) {
	if err := isValidBucketName(bucketName); err != nil {
		return ObjectInfo{}, err
	}
	if err := isValidObjectName(bucketName, objectName); err != nil {
		return ObjectInfo{}, err
	}
	if size < 0 {
		return ObjectInfo{}, errInvalidArgument("Size cannot be negative.")
	}
	if size > maxMultipartPutObjectSize {
		return ObjectInfo{}, errEntityTooLarge(size, bucketName, objectName)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if size <= minPartSize {
		return c.putObjectSingle(ctx, bucketName, objectName, contentType, size, data)
	}
	return c.putObjectMultipart(ctx, bucketName, objectName, contentType, size, data)
}

// putObjectSingle uploads the object in one PUT, with Content-MD5 so the
// server verifies the payload in transit.
func (c *Client) putObjectSingle(ctx context.Context, bucketName, objectName, contentType string, size int64, data io.Reader) (ObjectInfo, error) {
	// Read one byte past the declared size so a longer source raises a
	// mismatch instead of being silently truncated.
	buf := make([]byte, size+1)
	n, err := io.ReadFull(data, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return ObjectInfo{}, err
	}
	if int64(n) != size {
		return ObjectInfo{}, errSizeMismatch(int64(n), size, bucketName, objectName)
	}
	buf = buf[:n]

	req, err := c.newRequest(ctx, http.MethodPut, requestMetadata{
		bucketName:       bucketName,
		objectName:       objectName,
		contentType:      contentType,
		contentBody:      bytes.NewReader(buf),
		contentLength:    size,
		contentMD5Base64: base64.StdEncoding.EncodeToString(sumMD5(buf)),
		contentSHA256Hex: sum256Hex(buf),
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
	return ObjectInfo{
		ETag:        trimEtag(resp.Header.Get("ETag")),
		Key:         objectName,
		Size:        size,
		ContentType: contentType,
	}, nil
}

// putObjectMultipart streams the object as parts, reusing parts the server
// already holds from an earlier interrupted upload when their size and
// md5sum still match the data.
func (c *Client) putObjectMultipart(ctx context.Context, bucketName, objectName, contentType string, size int64, data io.Reader) (ObjectInfo, error) {
	// Resume the most recently initiated upload of this object.
	uploadID, _, err := c.findUploadID(ctx, bucketName, objectName)
	if err != nil {
		return ObjectInfo{}, err
	}
	if uploadID == "" {
		initMultipartResult, err := c.initiateMultipartUpload(ctx, bucketName, objectName, contentType)
		if err != nil {
			return ObjectInfo{}, err
		}
		uploadID = initMultipartResult.UploadID
	}

	// Parts the server already holds for this upload.
	partsInfo, err := c.listObjectParts(ctx, bucketName, objectName, uploadID)
	if err != nil {
		return ObjectInfo{}, err
	}

	partSize := calculatePartSize(size)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPartUploads)

	var mu sync.Mutex
	var completedParts []completePart
	var totalUploaded int64
	appendPart := func(part completePart, n int64) {
		mu.Lock()
		completedParts = append(completedParts, part)
		totalUploaded += n
		mu.Unlock()
	}

	var readErr error
	for partNumber := 1; gctx.Err() == nil; partNumber++ {
		buf := make([]byte, partSize)
		n, rerr := io.ReadFull(data, buf)
		if rerr == io.EOF {
			break
		}
		if rerr != nil && rerr != io.ErrUnexpectedEOF {
			readErr = rerr
			break
		}
		chunk := buf[:n]

		if part, ok := partsInfo[partNumber]; ok &&
			part.Size == int64(n) &&
			part.ETag == hex.EncodeToString(sumMD5(chunk)) {
			// verified on the server already, skip the upload
			appendPart(completePart{PartNumber: partNumber, ETag: part.ETag}, int64(n))
		} else {
			partNumber := partNumber
			g.Go(func() error {
				objPart, err := c.uploadPart(gctx, bucketName, objectName, uploadID, partNumber, chunk)
				if err != nil {
					return err
				}
				appendPart(completePart{PartNumber: objPart.PartNumber, ETag: objPart.ETag}, objPart.Size)
				return nil
			})
		}
		if rerr == io.ErrUnexpectedEOF {
			// short read means the source is drained
			break
		}
	}
	if err := g.Wait(); err != nil {
		return ObjectInfo{}, err
	}
	if readErr != nil {
		return ObjectInfo{}, readErr
	}
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}

	// Never complete an upload whose byte count does not add up, the
	// incomplete upload stays behind for a later resume.
	if totalUploaded != size {
		return ObjectInfo{}, errSizeMismatch(totalUploaded, size, bucketName, objectName)
	}

	sort.Slice(completedParts, func(i, j int) bool {
		return completedParts[i].PartNumber < completedParts[j].PartNumber
	})
	for i, part := range completedParts {
		if part.PartNumber != i+1 {
			return ObjectInfo{}, errInvalidArgument("Uploaded parts are not contiguous.")
		}
	}

	result, err := c.completeMultipartUpload(ctx, bucketName, objectName, uploadID, completeMultipartUpload{Parts: completedParts})
	if err != nil {
		return ObjectInfo{}, err
	}
	return ObjectInfo{
		ETag:        trimEtag(result.ETag),
		Key:         objectName,
		Size:        size,
		ContentType: contentType,
	}, nil
}

// calculatePartSize returns the part size for an object of the given size,
// aiming for just under the part count limit and clamped to the protocol
// bounds.
func calculatePartSize(objectSize int64) int64 {
	partSize := objectSize / optimalPartTarget
	if partSize < minPartSize {
		partSize = minPartSize
	}
	if partSize > maxPartSize {
		partSize = maxPartSize
	}
	return partSize
}
