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
	"io"
	"net/http"
	"net/url"
)

// MakeBucket creates a new bucket with the given canned ACL in the given
// region. An empty location creates the bucket in the default region.
func (c *Client) MakeBucket(ctx context.Context, bucketName string, acl BucketACL, location string) error {
	if err := isValidBucketName(bucketName); err != nil {
		return err
	}
	if !acl.isValidBucketACL() {
		return errInvalidArgument("Unrecognized ACL " + acl.String())
	}
	if location == "" {
		location = defaultRegion
	}

	var reader io.Reader
	var length int64
	var md5Base64, sha256Hex string
	if location != defaultRegion {
		config := createBucketConfiguration{Location: location}
		buf, err := xml.Marshal(config)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
		length = int64(len(buf))
		md5Base64 = base64.StdEncoding.EncodeToString(sumMD5(buf))
		sha256Hex = sum256Hex(buf)
	}

	customHeader := make(http.Header)
	customHeader.Set("x-amz-acl", acl.String())

	req, err := c.newRequest(ctx, http.MethodPut, requestMetadata{
		bucketName:       bucketName,
		bucketLocation:   location,
		customHeader:     customHeader,
		contentBody:      reader,
		contentLength:    length,
		contentMD5Base64: md5Base64,
		contentSHA256Hex: sha256Hex,
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

	// The region is known, no need to discover it later.
	c.bucketLocCache.Set(bucketName, location)
	return nil
}

// SetBucketACL applies a canned ACL to an existing bucket.
func (c *Client) SetBucketACL(ctx context.Context, bucketName string, acl BucketACL) error {
	if err := isValidBucketName(bucketName); err != nil {
		return err
	}
	if !acl.isValidBucketACL() {
		return errInvalidArgument("Unrecognized ACL " + acl.String())
	}

	urlValues := make(url.Values)
	urlValues.Set("acl", "")

	customHeader := make(http.Header)
	customHeader.Set("x-amz-acl", acl.String())

	req, err := c.newRequest(ctx, http.MethodPut, requestMetadata{
		bucketName:   bucketName,
		queryValues:  urlValues,
		customHeader: customHeader,
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

// GetBucketACL maps the bucket's access control grants back to the canned
// ACL they came from.
func (c *Client) GetBucketACL(ctx context.Context, bucketName string) (BucketACL, error) {
	if err := isValidBucketName(bucketName); err != nil {
		return "", err
	}

	urlValues := make(url.Values)
	urlValues.Set("acl", "")

	req, err := c.newRequest(ctx, http.MethodGet, requestMetadata{
		bucketName:  bucketName,
		queryValues: urlValues,
	})
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

	policy := accessControlPolicy{}
	if err := xmlDecoder(resp.Body, &policy); err != nil {
		return "", err
	}

	grants := policy.AccessControlList.Grant
	var publicRead, publicWrite, authenticatedRead bool
	for _, g := range grants {
		switch {
		case g.Grantee.URI == allUsersURI && g.Permission == "READ":
			publicRead = true
		case g.Grantee.URI == allUsersURI && g.Permission == "WRITE":
			publicWrite = true
		case g.Grantee.URI == authenticatedUsersURI && g.Permission == "READ":
			authenticatedRead = true
		}
	}

	switch {
	case publicRead && publicWrite:
		return PublicReadWrite, nil
	case publicWrite:
		// write without read does not come from any canned ACL
		return "", errUnsupportedACL(bucketName, grants)
	case publicRead:
		return PublicRead, nil
	case authenticatedRead:
		return AuthenticatedRead, nil
	}
	return Private, nil
}
