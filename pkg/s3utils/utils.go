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

// Package s3utils provides S3 specific helpers shared by the client and the
// signer. It covers bucket and object name validation, endpoint
// classification and the percent encoding required by signature version '4'.
package s3utils

import (
	"bytes"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"
)

// IsValidBucketName verifies a bucket name in accordance with Amazon's
// requirements. Bucket names must be between 3 and 63 characters, must not
// begin or end with a dash and may contain only lowercase letters, digits,
// dashes and dots.
func IsValidBucketName(bucketName string) bool {
	if len(bucketName) < 3 || len(bucketName) > 63 {
		return false
	}
	if bucketName[0] == '-' || bucketName[len(bucketName)-1] == '-' {
		return false
	}
	if bucketName[0] == '.' || bucketName[len(bucketName)-1] == '.' {
		return false
	}
	if strings.Contains(bucketName, "..") {
		return false
	}
	for _, ch := range bucketName {
		switch {
		case ch >= 'a' && ch <= 'z':
		case ch >= '0' && ch <= '9':
		case ch == '-' || ch == '.':
		default:
			return false
		}
	}
	return true
}

// IsValidObjectName verifies an object key. Keys must be non-empty, valid
// UTF-8 and at most 1024 bytes.
func IsValidObjectName(objectName string) bool {
	if strings.TrimSpace(objectName) == "" {
		return false
	}
	if len(objectName) > 1024 {
		return false
	}
	return utf8.ValidString(objectName)
}

// IsValidObjectPrefix verifies an object prefix. Prefixes may be empty,
// otherwise the object name rules apply.
func IsValidObjectPrefix(objectPrefix string) bool {
	if objectPrefix == "" {
		return true
	}
	return IsValidObjectName(objectPrefix)
}

// IsAmazonEndpoint returns true if the host belongs to Amazon S3.
func IsAmazonEndpoint(host string) bool {
	return host == "amazonaws.com" || strings.HasSuffix(host, ".amazonaws.com")
}

// EncodePath percent encodes an object path the way signature version '4'
// canonicalization expects. Unreserved characters and the path separator are
// written through, everything else is emitted as uppercase hex encoded UTF-8
// bytes. Notably ' ' encodes to "%20", never to '+'.
func EncodePath(pathName string) string {
	var encodedPathname bytes.Buffer
	for _, s := range pathName {
		if 'A' <= s && s <= 'Z' || 'a' <= s && s <= 'z' || '0' <= s && s <= '9' {
			encodedPathname.WriteRune(s)
			continue
		}
		switch s {
		case '-', '_', '.', '~', '/':
			encodedPathname.WriteRune(s)
		default:
			l := utf8.RuneLen(s)
			if l < 0 {
				// invalid utf-8 sequence, keep it verbatim
				encodedPathname.WriteRune(s)
				continue
			}
			u := make([]byte, l)
			utf8.EncodeRune(u, s)
			for _, r := range u {
				encodedPathname.WriteString("%" + strings.ToUpper(hex.EncodeToString([]byte{r})))
			}
		}
	}
	return encodedPathname.String()
}

// percentEncodeSlash encodes '/' characters, they are path separators in
// EncodePath but plain data inside query components.
func percentEncodeSlash(s string) string {
	return strings.ReplaceAll(s, "/", "%2F")
}

// QueryEncode encodes query values in their canonical form, keys sorted and
// every key and value percent encoded the same way object paths are.
func QueryEncode(v url.Values) string {
	if v == nil {
		return ""
	}
	var buf bytes.Buffer
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		vs := v[k]
		prefix := percentEncodeSlash(EncodePath(k)) + "="
		for _, v := range vs {
			if buf.Len() > 0 {
				buf.WriteByte('&')
			}
			buf.WriteString(prefix)
			buf.WriteString(percentEncodeSlash(EncodePath(v)))
		}
	}
	return buf.String()
}
