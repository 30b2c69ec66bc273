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

// BucketACL is a canned bucket access control.
type BucketACL string

// Canned ACL types currently supported.
const (
	Private           BucketACL = "private"
	PublicRead        BucketACL = "public-read"
	PublicReadWrite   BucketACL = "public-read-write"
	AuthenticatedRead BucketACL = "authenticated-read"
)

// String returns the canned ACL name, "private" when unset.
func (b BucketACL) String() string {
	if string(b) == "" {
		return "private"
	}
	return string(b)
}

// isValidBucketACL returns true if the ACL is one of the supported canned
// types.
func (b BucketACL) isValidBucketACL() bool {
	switch b {
	case Private, PublicRead, PublicReadWrite, AuthenticatedRead:
		return true
	case BucketACL(""):
		// the zero value means private
		return true
	default:
		return false
	}
}

// Grantee URIs used in access control policies.
const (
	allUsersURI           = "http://acs.amazonaws.com/groups/global/AllUsers"
	authenticatedUsersURI = "http://acs.amazonaws.com/groups/global/AuthenticatedUsers"
)
