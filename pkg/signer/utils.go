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

package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"net/http"
	"strings"
)

// unsignedPayload sent for requests whose payload is not covered by the
// signature, notably pre-signed requests.
const unsignedPayload = "UNSIGNED-PAYLOAD"

// sumHMAC calculates hmac-sha256 of data under key.
func sumHMAC(key, data []byte) []byte {
	hash := hmac.New(sha256.New, key)
	hash.Write(data)
	return hash.Sum(nil)
}

// getHostAddr returns the host the request is addressed to, honoring an
// explicit req.Host override.
func getHostAddr(req *http.Request) string {
	if req.Host != "" {
		return req.Host
	}
	return req.URL.Host
}

// signV4TrimAll trims leading and trailing spaces and replaces sequential
// spaces with a single space, per the signature version '4' header
// canonicalization rules.
func signV4TrimAll(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
