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
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
)

/* **** SAMPLE ERROR RESPONSE ****
<?xml version="1.0" encoding="UTF-8"?>
<Error>
   <Code>AccessDenied</Code>
   <Message>Access Denied</Message>
   <BucketName>bucketName</BucketName>
   <Key>objectName</Key>
   <RequestId>F19772218238A85A</RequestId>
   <HostId>GuWkjyviSiGHizehqpmsD1ndz5NClSP19DOT+s2mv7gXGQ8/X1lhbDGiIJEXpGFD</HostId>
</Error>
*/

// ErrorResponse is the typed error returned by all API operations.
type ErrorResponse struct {
	XMLName    xml.Name `xml:"Error" json:"-"`
	Code       string
	Message    string
	BucketName string
	Key        string
	Resource   string
	RequestID  string `xml:"RequestId"`
	HostID     string `xml:"HostId"`

	// Region where the bucket is located, from the x-amz-bucket-region
	// response header.
	AmzBucketRegion string `xml:"-"`

	// Original HTTP status, retained for callers that branch on status.
	StatusCode int `xml:"-" json:"-"`
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	if e.Message == "" {
		return "Error response code " + e.Code + "."
	}
	return e.Message
}

// ToErrorResponse converts a generic error to its underlying ErrorResponse,
// returning the zero value when the error is not one.
//
//	import objstore "github.com/minio/objstore-go"
//	...
//	reader, _, err := client.GetObject(ctx, "mybucket", "myobject")
//	if err != nil {
//	    resp := objstore.ToErrorResponse(err)
//	}
//	...
func ToErrorResponse(err error) ErrorResponse {
	switch err := err.(type) {
	case ErrorResponse:
		return err
	default:
		return ErrorResponse{}
	}
}

// httpRespToErrorResponse decodes an S3 error response. Responses without a
// parseable <Error> body, HEAD responses in particular, get an error
// synthesized from the status code.
func httpRespToErrorResponse(resp *http.Response, bucketName, objectName string) error {
	if resp == nil {
		return errInvalidArgument("Response cannot be nil.")
	}
	var errResp ErrorResponse
	err := xmlDecoder(resp.Body, &errResp)
	if err != nil || errResp.Code == "" {
		switch resp.StatusCode {
		case http.StatusNotFound:
			if objectName == "" {
				errResp = ErrorResponse{
					Code:       "NoSuchBucket",
					Message:    "The specified bucket does not exist.",
					BucketName: bucketName,
				}
			} else {
				errResp = ErrorResponse{
					Code:       "NoSuchKey",
					Message:    "The specified key does not exist.",
					BucketName: bucketName,
					Key:        objectName,
				}
			}
		case http.StatusForbidden:
			errResp = ErrorResponse{
				Code:       "AccessDenied",
				Message:    "Access Denied.",
				BucketName: bucketName,
				Key:        objectName,
			}
		case http.StatusConflict:
			errResp = ErrorResponse{
				Code:       "Conflict",
				Message:    "Bucket not empty.",
				BucketName: bucketName,
			}
		default:
			errResp = ErrorResponse{
				Code:       resp.Status,
				Message:    resp.Status,
				BucketName: bucketName,
			}
		}
	}
	if errResp.BucketName == "" {
		errResp.BucketName = bucketName
	}
	if errResp.Key == "" {
		errResp.Key = objectName
	}
	errResp.StatusCode = resp.StatusCode
	errResp.AmzBucketRegion = resp.Header.Get("x-amz-bucket-region")
	if errResp.RequestID == "" {
		errResp.RequestID = resp.Header.Get("x-amz-request-id")
	}
	if errResp.HostID == "" {
		errResp.HostID = resp.Header.Get("x-amz-id-2")
	}
	return errResp
}

// errTemporaryRedirect rewrites a 307 on ListBuckets, servers redirect
// unauthenticated listings and following the redirect would leak the loop.
func errTemporaryRedirect(resp *http.Response) error {
	return ErrorResponse{
		StatusCode: resp.StatusCode,
		Code:       "AccessDenied",
		Message:    "Temporary redirect, please report this issue to your server administrator.",
		RequestID:  resp.Header.Get("x-amz-request-id"),
		HostID:     resp.Header.Get("x-amz-id-2"),
	}
}

// errEntityTooLarge input size is larger than what is supported.
func errEntityTooLarge(totalSize int64, bucketName, objectName string) error {
	return ErrorResponse{
		Code: "EntityTooLarge",
		Message: fmt.Sprintf("Your proposed upload size %s exceeds the maximum allowed object size %s for single PUT operation.",
			humanize.IBytes(uint64(totalSize)), humanize.IBytes(uint64(maxMultipartPutObjectSize))),
		BucketName: bucketName,
		Key:        objectName,
	}
}

// errSizeMismatch bytes read from the data source do not add up to the
// declared object size.
func errSizeMismatch(totalRead, totalSize int64, bucketName, objectName string) error {
	return ErrorResponse{
		Code: "SizeMismatch",
		Message: fmt.Sprintf("Data read %s is not equal to the declared size %s.",
			humanize.Comma(totalRead), humanize.Comma(totalSize)),
		BucketName: bucketName,
		Key:        objectName,
	}
}

// errInvalidBucketName invalid bucket name.
func errInvalidBucketName(bucketName string) error {
	return ErrorResponse{
		Code:       "InvalidBucketName",
		Message:    "The specified bucket is not valid.",
		BucketName: bucketName,
	}
}

// errInvalidObjectName invalid object key.
func errInvalidObjectName(bucketName, objectName string) error {
	return ErrorResponse{
		Code:       "InvalidObjectName",
		Message:    "The specified object name is not valid.",
		BucketName: bucketName,
		Key:        objectName,
	}
}

// errInvalidArgument any other invalid input.
func errInvalidArgument(message string) error {
	return ErrorResponse{
		Code:    "InvalidArgument",
		Message: message,
	}
}

// errUnsupportedACL the server reported a grant combination this library
// does not map to a canned ACL.
func errUnsupportedACL(bucketName string, grants []grant) error {
	perms := make([]string, 0, len(grants))
	for _, g := range grants {
		perms = append(perms, g.Permission)
	}
	return ErrorResponse{
		Code:       "UnsupportedACL",
		Message:    "The bucket grants [" + strings.Join(perms, ", ") + "] do not map to a supported canned ACL.",
		BucketName: bucketName,
	}
}
