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
	"strconv"
)

// ListBuckets lists all buckets owned by the authenticated caller. Results
// stream over the returned channel, a failure arrives as the final record
// with Err set.
//
//	for bucket := range client.ListBuckets(ctx) {
//	    if bucket.Err != nil {
//	        return bucket.Err
//	    }
//	    fmt.Println(bucket.Name)
//	}
func (c *Client) ListBuckets(ctx context.Context) <-chan BucketInfo {
	bucketCh := make(chan BucketInfo, 100)
	go func() {
		defer close(bucketCh)
		buckets, err := c.listBuckets(ctx)
		if err != nil {
			bucketCh <- BucketInfo{Err: err}
			return
		}
		for _, bucket := range buckets {
			select {
			case bucketCh <- bucket:
			case <-ctx.Done():
				return
			}
		}
	}()
	return bucketCh
}

// listBuckets issues the GET Service call.
func (c *Client) listBuckets(ctx context.Context) ([]BucketInfo, error) {
	req, err := c.newRequest(ctx, http.MethodGet, requestMetadata{
		bucketLocation: defaultRegion,
	})
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	defer closeResponse(resp)
	if err != nil {
		return nil, err
	}
	// Some servers answer unauthenticated service listings with a
	// redirect. Following it would just loop, report it as denied access.
	if resp.StatusCode == http.StatusTemporaryRedirect {
		return nil, errTemporaryRedirect(resp)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, httpRespToErrorResponse(resp, "", "")
	}
	listAllMyBucketsResult := listAllMyBucketsResult{}
	if err = xmlDecoder(resp.Body, &listAllMyBucketsResult); err != nil {
		return nil, err
	}
	return listAllMyBucketsResult.Buckets.Bucket, nil
}

// ListObjects lists objects under the prefix, streaming records over the
// returned channel. Non recursive listings group keys under the first "/"
// past the prefix into records with a trailing "/" and zero size.
func (c *Client) ListObjects(ctx context.Context, bucketName, objectPrefix string, recursive bool) <-chan ObjectInfo {
	objectCh := make(chan ObjectInfo, 1000)
	// a delimiter folds everything below one level into common prefixes
	delimiter := "/"
	if recursive {
		delimiter = ""
	}
	if err := isValidBucketName(bucketName); err != nil {
		defer close(objectCh)
		objectCh <- ObjectInfo{Err: err}
		return objectCh
	}
	if err := isValidObjectPrefix(bucketName, objectPrefix); err != nil {
		defer close(objectCh)
		objectCh <- ObjectInfo{Err: err}
		return objectCh
	}

	go func() {
		defer close(objectCh)
		var marker string
		for {
			result, err := c.listObjectsQuery(ctx, bucketName, objectPrefix, marker, delimiter, 1000)
			if err != nil {
				objectCh <- ObjectInfo{Err: err}
				return
			}

			for _, object := range result.Contents {
				object.ETag = trimEtag(object.ETag)
				marker = object.Key
				select {
				case objectCh <- object:
				case <-ctx.Done():
					return
				}
			}
			for _, obj := range result.CommonPrefixes {
				select {
				case objectCh <- ObjectInfo{Key: obj.Prefix}:
				case <-ctx.Done():
					return
				}
			}

			if result.NextMarker != "" {
				marker = result.NextMarker
			}
			if !result.IsTruncated {
				return
			}
		}
	}()
	return objectCh
}

// listObjectsQuery fetches one page of GET Bucket (List Objects).
func (c *Client) listObjectsQuery(ctx context.Context, bucketName, objectPrefix, objectMarker, delimiter string, maxkeys int) (listBucketResult, error) {
	urlValues := make(url.Values)
	if objectPrefix != "" {
		urlValues.Set("prefix", objectPrefix)
	}
	if objectMarker != "" {
		urlValues.Set("marker", objectMarker)
	}
	if delimiter != "" {
		urlValues.Set("delimiter", delimiter)
	}
	if maxkeys > 0 {
		urlValues.Set("max-keys", strconv.Itoa(maxkeys))
	}

	req, err := c.newRequest(ctx, http.MethodGet, requestMetadata{
		bucketName:  bucketName,
		queryValues: urlValues,
	})
	if err != nil {
		return listBucketResult{}, err
	}
	resp, err := c.do(req)
	defer closeResponse(resp)
	if err != nil {
		return listBucketResult{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return listBucketResult{}, httpRespToErrorResponse(resp, bucketName, "")
	}

	listBucketResult := listBucketResult{}
	if err = xmlDecoder(resp.Body, &listBucketResult); err != nil {
		return listBucketResult, err
	}
	return listBucketResult, nil
}

// ListIncompleteUploads lists multipart uploads that were begun but never
// completed or aborted. Sizes are aggregated from the parts uploaded so
// far.
func (c *Client) ListIncompleteUploads(ctx context.Context, bucketName, objectPrefix string, recursive bool) <-chan ObjectMultipartInfo {
	return c.listIncompleteUploads(ctx, bucketName, objectPrefix, recursive, true)
}

// listIncompleteUploads lists all incomplete uploads, optionally
// aggregating the bytes uploaded so far.
func (c *Client) listIncompleteUploads(ctx context.Context, bucketName, objectPrefix string, recursive, aggregateSize bool) <-chan ObjectMultipartInfo {
	objectMultipartCh := make(chan ObjectMultipartInfo, 1000)
	delimiter := "/"
	if recursive {
		delimiter = ""
	}
	if err := isValidBucketName(bucketName); err != nil {
		defer close(objectMultipartCh)
		objectMultipartCh <- ObjectMultipartInfo{Err: err}
		return objectMultipartCh
	}
	if err := isValidObjectPrefix(bucketName, objectPrefix); err != nil {
		defer close(objectMultipartCh)
		objectMultipartCh <- ObjectMultipartInfo{Err: err}
		return objectMultipartCh
	}

	go func() {
		defer close(objectMultipartCh)
		var keyMarker, uploadIDMarker string
		for {
			result, err := c.listMultipartUploadsQuery(ctx, bucketName, keyMarker, uploadIDMarker, objectPrefix, delimiter, 1000)
			if err != nil {
				objectMultipartCh <- ObjectMultipartInfo{Err: err}
				return
			}

			for _, obj := range result.Uploads {
				if aggregateSize {
					obj.Size, err = c.getTotalMultipartSize(ctx, bucketName, obj.Key, obj.UploadID)
					if err != nil {
						objectMultipartCh <- ObjectMultipartInfo{Err: err}
						return
					}
				}
				select {
				case objectMultipartCh <- obj:
				case <-ctx.Done():
					return
				}
			}
			for _, obj := range result.CommonPrefixes {
				select {
				case objectMultipartCh <- ObjectMultipartInfo{Key: obj.Prefix}:
				case <-ctx.Done():
					return
				}
			}

			keyMarker = result.NextKeyMarker
			uploadIDMarker = result.NextUploadIDMarker
			if !result.IsTruncated {
				return
			}
		}
	}()
	return objectMultipartCh
}

// listMultipartUploadsQuery fetches one page of List Multipart Uploads.
func (c *Client) listMultipartUploadsQuery(ctx context.Context, bucketName, keyMarker, uploadIDMarker, prefix, delimiter string, maxUploads int) (listMultipartUploadsResult, error) {
	urlValues := make(url.Values)
	urlValues.Set("uploads", "")
	if keyMarker != "" {
		urlValues.Set("key-marker", keyMarker)
	}
	if uploadIDMarker != "" {
		urlValues.Set("upload-id-marker", uploadIDMarker)
	}
	if prefix != "" {
		urlValues.Set("prefix", prefix)
	}
	if delimiter != "" {
		urlValues.Set("delimiter", delimiter)
	}
	if maxUploads > 0 {
		urlValues.Set("max-uploads", strconv.Itoa(maxUploads))
	}

	req, err := c.newRequest(ctx, http.MethodGet, requestMetadata{
		bucketName:  bucketName,
		queryValues: urlValues,
	})
	if err != nil {
		return listMultipartUploadsResult{}, err
	}
	resp, err := c.do(req)
	defer closeResponse(resp)
	if err != nil {
		return listMultipartUploadsResult{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return listMultipartUploadsResult{}, httpRespToErrorResponse(resp, bucketName, "")
	}

	listMultipartUploadsResult := listMultipartUploadsResult{}
	if err = xmlDecoder(resp.Body, &listMultipartUploadsResult); err != nil {
		return listMultipartUploadsResult, err
	}
	return listMultipartUploadsResult, nil
}
