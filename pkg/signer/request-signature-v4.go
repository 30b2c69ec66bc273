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

// Package signer implements AWS signature version '4' request signing in its
// three modes, Authorization header signing, pre-signed query strings and
// POST policy form signatures.
package signer

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/minio/objstore-go/pkg/s3utils"
)

// Signature and API related constants.
const (
	signV4Algorithm   = "AWS4-HMAC-SHA256"
	iso8601DateFormat = "20060102T150405Z"
	yyyymmdd          = "20060102"
)

// v4IgnoredHeaders are excluded from signing. Proxies commonly rewrite
// these, signing them would break verification downstream.
var v4IgnoredHeaders = map[string]bool{
	"Authorization":  true,
	"Content-Type":   true,
	"Content-Length": true,
	"User-Agent":     true,
}

// getSigningKey derives the signing key through the hmac chain
// date -> location -> service -> "aws4_request".
func getSigningKey(secretKey, location string, t time.Time) []byte {
	date := sumHMAC([]byte("AWS4"+secretKey), []byte(t.Format(yyyymmdd)))
	region := sumHMAC(date, []byte(location))
	service := sumHMAC(region, []byte("s3"))
	return sumHMAC(service, []byte("aws4_request"))
}

// getSignature computes the final hex signature of stringToSign.
func getSignature(signingKey []byte, stringToSign string) string {
	return hex.EncodeToString(sumHMAC(signingKey, []byte(stringToSign)))
}

// getScope returns the credential scope, <date>/<location>/s3/aws4_request.
func getScope(location string, t time.Time) string {
	return strings.Join([]string{
		t.Format(yyyymmdd),
		location,
		"s3",
		"aws4_request",
	}, "/")
}

// GetCredential returns accessKeyID joined with its scope.
func GetCredential(accessKeyID, location string, t time.Time) string {
	return accessKeyID + "/" + getScope(location, t)
}

// getHashedPayload returns the payload hash the caller declared through the
// X-Amz-Content-Sha256 header, defaulting to the unsigned payload marker.
func getHashedPayload(req http.Request) string {
	hashedPayload := req.Header.Get("X-Amz-Content-Sha256")
	if hashedPayload == "" {
		hashedPayload = unsignedPayload
	}
	return hashedPayload
}

// getCanonicalHeaders returns the canonical header block, lowercased keys
// sorted, values trimmed, host always included.
func getCanonicalHeaders(req http.Request, ignoredHeaders map[string]bool) string {
	var headers []string
	vals := make(map[string][]string)
	for k, vv := range req.Header {
		if _, ok := ignoredHeaders[http.CanonicalHeaderKey(k)]; ok {
			continue
		}
		headers = append(headers, strings.ToLower(k))
		vals[strings.ToLower(k)] = vv
	}
	headers = append(headers, "host")
	sort.Strings(headers)

	var buf bytes.Buffer
	for _, k := range headers {
		buf.WriteString(k)
		buf.WriteByte(':')
		switch k {
		case "host":
			buf.WriteString(getHostAddr(&req))
		default:
			for idx, v := range vals[k] {
				if idx > 0 {
					buf.WriteByte(',')
				}
				buf.WriteString(signV4TrimAll(v))
			}
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

// getSignedHeaders returns the semicolon separated, sorted list of header
// names covered by the signature.
func getSignedHeaders(req http.Request, ignoredHeaders map[string]bool) string {
	var headers []string
	for k := range req.Header {
		if _, ok := ignoredHeaders[http.CanonicalHeaderKey(k)]; ok {
			continue
		}
		headers = append(headers, strings.ToLower(k))
	}
	headers = append(headers, "host")
	sort.Strings(headers)
	return strings.Join(headers, ";")
}

// getCanonicalRequest assembles the six line canonical request. The query
// string is re-encoded so that keys sort and spaces encode as "%20".
func getCanonicalRequest(req http.Request, ignoredHeaders map[string]bool, hashedPayload string) string {
	req.URL.RawQuery = strings.ReplaceAll(req.URL.Query().Encode(), "+", "%20")
	return strings.Join([]string{
		req.Method,
		s3utils.EncodePath(req.URL.Path),
		req.URL.RawQuery,
		getCanonicalHeaders(req, ignoredHeaders),
		getSignedHeaders(req, ignoredHeaders),
		hashedPayload,
	}, "\n")
}

// getStringToSign builds the final string to sign from the canonical
// request.
func getStringToSign(canonicalRequest string, t time.Time, location string) string {
	stringToSign := signV4Algorithm + "\n" + t.Format(iso8601DateFormat) + "\n"
	stringToSign += getScope(location, t) + "\n"
	stringToSign += hex.EncodeToString(sum256([]byte(canonicalRequest)))
	return stringToSign
}

func sum256(data []byte) []byte {
	hash := sha256.Sum256(data)
	return hash[:]
}

// SignV4 signs the request with an Authorization header and returns it.
// Requests without credentials pass through unsigned.
func SignV4(req http.Request, accessKeyID, secretAccessKey, location string) *http.Request {
	return signV4(req, accessKeyID, secretAccessKey, location, time.Now().UTC())
}

func signV4(req http.Request, accessKeyID, secretAccessKey, location string, t time.Time) *http.Request {
	if accessKeyID == "" || secretAccessKey == "" {
		return &req
	}

	req.Header.Set("X-Amz-Date", t.Format(iso8601DateFormat))

	hashedPayload := getHashedPayload(req)
	canonicalRequest := getCanonicalRequest(req, v4IgnoredHeaders, hashedPayload)
	stringToSign := getStringToSign(canonicalRequest, t, location)
	signingKey := getSigningKey(secretAccessKey, location, t)

	credential := GetCredential(accessKeyID, location, t)
	signedHeaders := getSignedHeaders(req, v4IgnoredHeaders)
	signature := getSignature(signingKey, stringToSign)

	auth := strings.Join([]string{
		signV4Algorithm + " Credential=" + credential,
		"SignedHeaders=" + signedHeaders,
		"Signature=" + signature,
	}, ", ")
	req.Header.Set("Authorization", auth)
	return &req
}

// PreSignV4 signs the request into its query string, valid for expires
// seconds. Requests without credentials cannot be pre-signed.
func PreSignV4(req http.Request, accessKeyID, secretAccessKey, location string, expires int64) *http.Request {
	return preSignV4(req, accessKeyID, secretAccessKey, location, expires, time.Now().UTC())
}

func preSignV4(req http.Request, accessKeyID, secretAccessKey, location string, expires int64, t time.Time) *http.Request {
	if accessKeyID == "" || secretAccessKey == "" {
		return nil
	}

	credential := GetCredential(accessKeyID, location, t)
	signedHeaders := getSignedHeaders(req, v4IgnoredHeaders)

	query := req.URL.Query()
	query.Set("X-Amz-Algorithm", signV4Algorithm)
	query.Set("X-Amz-Date", t.Format(iso8601DateFormat))
	query.Set("X-Amz-Expires", strconv.FormatInt(expires, 10))
	query.Set("X-Amz-SignedHeaders", signedHeaders)
	query.Set("X-Amz-Credential", credential)
	req.URL.RawQuery = query.Encode()

	canonicalRequest := getCanonicalRequest(req, v4IgnoredHeaders, getHashedPayload(req))
	stringToSign := getStringToSign(canonicalRequest, t, location)
	signingKey := getSigningKey(secretAccessKey, location, t)
	signature := getSignature(signingKey, stringToSign)

	req.URL.RawQuery += "&X-Amz-Signature=" + signature
	return &req
}

// PostPresignSignatureV4 signs a base64 encoded POST policy document.
func PostPresignSignatureV4(policyBase64 string, t time.Time, secretAccessKey, location string) string {
	signingKey := getSigningKey(secretAccessKey, location, t)
	return getSignature(signingKey, policyBase64)
}
