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
	"time"
)

// owner container for bucket owner information.
type owner struct {
	DisplayName string
	ID          string
}

// listAllMyBucketsResult container for ListBuckets response.
type listAllMyBucketsResult struct {
	Buckets struct {
		Bucket []BucketInfo
	}
	Owner owner
}

// commonPrefix container for prefix response.
type commonPrefix struct {
	Prefix string
}

// listBucketResult container for ListObjects response.
type listBucketResult struct {
	CommonPrefixes []commonPrefix
	Contents       []ObjectInfo

	Delimiter string

	// Encoding type used to encode object keys in the response.
	EncodingType string

	IsTruncated bool
	Marker      string
	MaxKeys     int64
	Name        string

	// When response is truncated (the IsTruncated element value in the
	// response is true), you can use the key name in this field as marker
	// in the subsequent request to get next set of objects.
	NextMarker string
	Prefix     string
}

// listMultipartUploadsResult container for ListMultipartUploads response.
type listMultipartUploadsResult struct {
	Bucket             string
	KeyMarker          string
	UploadIDMarker     string `xml:"UploadIdMarker"`
	NextKeyMarker      string
	NextUploadIDMarker string `xml:"NextUploadIdMarker"`
	EncodingType       string
	MaxUploads         int64
	IsTruncated        bool
	Uploads            []ObjectMultipartInfo `xml:"Upload"`
	Prefix             string
	Delimiter          string
	CommonPrefixes     []commonPrefix
}

// objectPart container for particular part of an upload.
type objectPart struct {
	PartNumber   int
	LastModified time.Time

	// Entity tag returned when the part was uploaded, usually md5sum of the
	// part.
	ETag string

	Size int64
}

// listObjectPartsResult container for ListObjectParts response.
type listObjectPartsResult struct {
	Bucket   string
	Key      string
	UploadID string `xml:"UploadId"`

	Initiator initiator
	Owner     owner

	StorageClass         string
	PartNumberMarker     int
	NextPartNumberMarker int
	MaxParts             int

	IsTruncated bool
	ObjectParts []objectPart `xml:"Part"`
}

// initiator container for who initiated multipart upload.
type initiator struct {
	ID          string
	DisplayName string
}

// initiateMultipartUploadResult container for InitiateMultipartUpload
// response.
type initiateMultipartUploadResult struct {
	Bucket   string
	Key      string
	UploadID string `xml:"UploadId"`
}

// completeMultipartUploadResult container for CompleteMultipartUpload
// response.
type completeMultipartUploadResult struct {
	Location string
	Bucket   string
	Key      string
	ETag     string
}

// completePart sub container lists individual part numbers and their md5sum,
// part of completeMultipartUpload.
type completePart struct {
	PartNumber int
	ETag       string
}

// completeMultipartUpload container for completing multipart upload.
type completeMultipartUpload struct {
	XMLName xml.Name       `xml:"http://s3.amazonaws.com/doc/2006-03-01/ CompleteMultipartUpload"`
	Parts   []completePart `xml:"Part"`
}

// createBucketConfiguration container for bucket configuration request XML.
type createBucketConfiguration struct {
	XMLName  xml.Name `xml:"http://s3.amazonaws.com/doc/2006-03-01/ CreateBucketConfiguration"`
	Location string   `xml:"LocationConstraint"`
}

// grantee container for whom the ACL grant applies.
type grantee struct {
	ID          string
	DisplayName string
	URI         string
}

// grant container for an individual ACL grant.
type grant struct {
	Grantee    grantee
	Permission string
}

// accessControlPolicy container for GetBucketACL response.
type accessControlPolicy struct {
	Owner             owner
	AccessControlList struct {
		Grant []grant
	}
}
