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

import "time"

// BucketInfo container for bucket metadata.
type BucketInfo struct {
	// The name of the bucket.
	Name string
	// Date the bucket was created.
	CreationDate time.Time

	// Error carried by the listing channel, valid only when set.
	Err error
}

// ObjectInfo container for object metadata.
type ObjectInfo struct {
	// An ETag is optionally set to md5sum of an object. In case of
	// multipart objects, ETag is of the form MD5SUM-N where MD5SUM is
	// md5sum of all individual md5sums of each parts concatenated into one
	// string.
	ETag string

	Key          string
	LastModified time.Time
	Size         int64
	ContentType  string

	// Error carried by the listing channel, valid only when set.
	Err error
}

// ObjectMultipartInfo container for multipart object metadata.
type ObjectMultipartInfo struct {
	// Date and time at which the multipart upload was initiated.
	Initiated time.Time

	// Aggregate size of all uploaded parts so far.
	Size int64

	Key      string
	UploadID string `xml:"UploadId"`

	// Error carried by the listing channel, valid only when set.
	Err error
}
