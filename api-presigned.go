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
	"time"

	"github.com/minio/objstore-go/pkg/signer"
)

// PresignedGetObject returns a URL that fetches the object without further
// credentials, valid for the given duration.
func (c *Client) PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration) (string, error) {
	return c.presignURL(ctx, http.MethodGet, bucketName, objectName, expires)
}

// PresignedPutObject returns a URL that uploads an object without further
// credentials, valid for the given duration.
func (c *Client) PresignedPutObject(ctx context.Context, bucketName, objectName string, expires time.Duration) (string, error) {
	return c.presignURL(ctx, http.MethodPut, bucketName, objectName, expires)
}

// presignURL builds and pre-signs the bare request for the object.
func (c *Client) presignURL(ctx context.Context, method, bucketName, objectName string, expires time.Duration) (string, error) {
	if !c.isAuthorized() {
		return "", errInvalidArgument("Pre-signing requires credentials.")
	}
	if err := isValidBucketName(bucketName); err != nil {
		return "", err
	}
	if err := isValidObjectName(bucketName, objectName); err != nil {
		return "", err
	}
	expireSeconds := int64(expires / time.Second)
	if err := isValidExpiry(expireSeconds); err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, method, requestMetadata{
		bucketName: bucketName,
		objectName: objectName,
		expires:    expireSeconds,
	})
	if err != nil {
		return "", err
	}
	return req.URL.String(), nil
}

// PresignedPostPolicy signs a POST policy and returns the upload URL along
// with the form fields, policy and signature included, for browser based
// uploads.
func (c *Client) PresignedPostPolicy(ctx context.Context, p *PostPolicy) (*url.URL, map[string]string, error) {
	if !c.isAuthorized() {
		return nil, nil, errInvalidArgument("Pre-signing requires credentials.")
	}
	if p.expiration.IsZero() {
		return nil, nil, errInvalidArgument("Expiration time must be specified.")
	}
	if p.expiration.Before(time.Now()) {
		return nil, nil, errInvalidArgument("Expiration time is in the past.")
	}
	bucketName := p.formData["bucket"]
	if bucketName == "" {
		return nil, nil, errInvalidArgument("Bucket name must be specified.")
	}
	if _, ok := p.formData["key"]; !ok {
		return nil, nil, errInvalidArgument("Object key must be specified.")
	}

	location, err := c.getBucketLocation(ctx, bucketName)
	if err != nil {
		return nil, nil, err
	}

	t := time.Now().UTC()
	credential := signer.GetCredential(c.accessKeyID, location, t)
	if err = p.addNewPolicy(policyCondition{
		matchType: "eq",
		condition: "$x-amz-date",
		value:     t.Format(iso8601DateFormat),
	}); err != nil {
		return nil, nil, err
	}
	if err = p.addNewPolicy(policyCondition{
		matchType: "eq",
		condition: "$x-amz-algorithm",
		value:     signV4Algorithm,
	}); err != nil {
		return nil, nil, err
	}
	if err = p.addNewPolicy(policyCondition{
		matchType: "eq",
		condition: "$x-amz-credential",
		value:     credential,
	}); err != nil {
		return nil, nil, err
	}

	policyBase64 := p.base64()
	p.formData["policy"] = policyBase64
	p.formData["x-amz-algorithm"] = signV4Algorithm
	p.formData["x-amz-credential"] = credential
	p.formData["x-amz-date"] = t.Format(iso8601DateFormat)
	p.formData["x-amz-signature"] = signer.PostPresignSignatureV4(policyBase64, t, c.secretAccessKey, location)

	u, err := c.makeTargetURL(bucketName, "", nil)
	if err != nil {
		return nil, nil, err
	}
	return u, p.formData, nil
}
