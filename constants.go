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

import "github.com/dustin/go-humanize"

// Library identification, reported through the User-Agent header.
const (
	libraryName    = "objstore-go"
	libraryVersion = "1.0.0"
)

// Multipart operation constants.
const (
	// minPartSize - minimum part size 5MiB per object after which PutObject
	// switches to multipart uploads.
	minPartSize int64 = humanize.MiByte * 5

	// maxPartSize - maximum size of a single uploaded part.
	maxPartSize int64 = humanize.GiByte * 5

	// maxPartsCount - maximum number of parts per upload.
	maxPartsCount = 10000

	// optimalPartTarget - part count the part size calculation aims for,
	// leaving headroom below maxPartsCount.
	optimalPartTarget = 9999

	// maxMultipartPutObjectSize - maximum size of an object uploadable via
	// multipart.
	maxMultipartPutObjectSize int64 = humanize.TiByte * 5

	// maxConcurrentPartUploads - parts uploaded in parallel per PutObject.
	maxConcurrentPartUploads = 4
)

// Pre-signed URL expiry bounds in seconds.
const (
	minExpirySeconds int64 = 1
	maxExpirySeconds int64 = 7 * 24 * 3600
)

// defaultRegion assumed when a bucket's region cannot be or need not be
// discovered.
const defaultRegion = "us-east-1"

// Signature related constants used when assembling POST policies.
const (
	signV4Algorithm      = "AWS4-HMAC-SHA256"
	iso8601DateFormat    = "20060102T150405Z"
	expirationDateFormat = "2006-01-02T15:04:05.999Z"
)
