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
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	. "gopkg.in/check.v1"
)

// roundTripFunc lets a function stand in for a transport.
type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// mockResponse builds an http.Response with the given body and headers.
func mockResponse(statusCode int, headers map[string]string, body string) *http.Response {
	header := make(http.Header)
	for k, v := range headers {
		header.Set(k, v)
	}
	return &http.Response{
		StatusCode:    statusCode,
		Status:        fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		Header:        header,
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: int64(len(body)),
	}
}

// testPattern generates deterministic object data.
func testPattern(size int64) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	return data
}

func (s *MySuite) TestPutObjectSinglePut(c *C) {
	data := testPattern(humanize.MiByte)

	var requests []*http.Request
	var mu sync.Mutex
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		mu.Lock()
		requests = append(requests, req)
		mu.Unlock()
		return mockResponse(http.StatusOK, map[string]string{"ETag": `"fba9dede5f27731c9771645a39863328"`}, ""), nil
	})

	client, err := New("http://play.example.com:9000", "accesskey", "secretkey")
	c.Assert(err, IsNil)
	client.SetCustomTransport(transport)

	objInfo, err := client.PutObject(context.Background(), "mybucket", "myobject", "application/octet-stream",
		int64(len(data)), bytes.NewReader(data))
	c.Assert(err, IsNil)
	c.Assert(objInfo.ETag, Equals, "fba9dede5f27731c9771645a39863328")
	c.Assert(objInfo.Size, Equals, int64(len(data)))

	// small objects go up in exactly one PUT
	c.Assert(len(requests), Equals, 1)
	req := requests[0]
	c.Assert(req.Method, Equals, http.MethodPut)
	c.Assert(req.URL.Path, Equals, "/mybucket/myobject")
	c.Assert(req.Header.Get("Content-MD5"), Not(Equals), "")
	c.Assert(req.Header.Get("X-Amz-Content-Sha256"), Equals, sum256Hex(data))
	c.Assert(strings.HasPrefix(req.Header.Get("Authorization"), "AWS4-HMAC-SHA256 Credential=accesskey/"), Equals, true)
}

func (s *MySuite) TestPutObjectOversizedSource(c *C) {
	data := testPattern(2 * humanize.KiByte)

	var mu sync.Mutex
	putCalled := false
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		mu.Lock()
		putCalled = true
		mu.Unlock()
		return mockResponse(http.StatusOK, nil, ""), nil
	})

	client, err := New("http://play.example.com:9000", "accesskey", "secretkey")
	c.Assert(err, IsNil)
	client.SetCustomTransport(transport)

	// a source longer than the declared size is a mismatch, not a
	// truncated upload
	_, err = client.PutObject(context.Background(), "mybucket", "myobject", "application/octet-stream",
		humanize.KiByte, bytes.NewReader(data))
	c.Assert(ToErrorResponse(err).Code, Equals, "SizeMismatch")
	c.Assert(putCalled, Equals, false)
}

func (s *MySuite) TestPutObjectMultipartResume(c *C) {
	size := int64(12 * humanize.MiByte)
	data := testPattern(size)
	partOneMD5 := hex.EncodeToString(sumMD5(data[:minPartSize]))

	var mu sync.Mutex
	var uploadedParts []int
	var completeBody string
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		query := req.URL.Query()
		switch {
		case req.Method == http.MethodGet && query.Has("uploads"):
			// the object has one interrupted upload behind it
			body := `<?xml version="1.0" encoding="UTF-8"?>
<ListMultipartUploadsResult>
  <Bucket>mybucket</Bucket>
  <IsTruncated>false</IsTruncated>
  <Upload>
    <Key>myobject</Key>
    <UploadId>existing-upload</UploadId>
    <Initiated>2016-01-01T12:00:00Z</Initiated>
  </Upload>
</ListMultipartUploadsResult>`
			return mockResponse(http.StatusOK, nil, body), nil
		case req.Method == http.MethodGet && query.Get("uploadId") != "":
			// part 1 survived with a matching md5sum
			body := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<ListPartsResult>
  <Bucket>mybucket</Bucket>
  <Key>myobject</Key>
  <UploadId>existing-upload</UploadId>
  <IsTruncated>false</IsTruncated>
  <Part>
    <PartNumber>1</PartNumber>
    <ETag>"%s"</ETag>
    <Size>%d</Size>
  </Part>
</ListPartsResult>`, partOneMD5, minPartSize)
			return mockResponse(http.StatusOK, nil, body), nil
		case req.Method == http.MethodPut && query.Get("partNumber") != "":
			partNumber, err := strconv.Atoi(query.Get("partNumber"))
			if err != nil {
				return nil, err
			}
			mu.Lock()
			uploadedParts = append(uploadedParts, partNumber)
			mu.Unlock()
			etag := fmt.Sprintf(`"mockpart-%d"`, partNumber)
			return mockResponse(http.StatusOK, map[string]string{"ETag": etag}, ""), nil
		case req.Method == http.MethodPost && query.Get("uploadId") != "":
			body, err := io.ReadAll(req.Body)
			if err != nil {
				return nil, err
			}
			mu.Lock()
			completeBody = string(body)
			mu.Unlock()
			result := `<?xml version="1.0" encoding="UTF-8"?>
<CompleteMultipartUploadResult>
  <Bucket>mybucket</Bucket>
  <Key>myobject</Key>
  <ETag>"final-etag-3"</ETag>
</CompleteMultipartUploadResult>`
			return mockResponse(http.StatusOK, nil, result), nil
		}
		return nil, fmt.Errorf("unexpected request %s %s", req.Method, req.URL)
	})

	client, err := New("http://play.example.com:9000", "accesskey", "secretkey")
	c.Assert(err, IsNil)
	client.SetCustomTransport(transport)

	objInfo, err := client.PutObject(context.Background(), "mybucket", "myobject", "",
		size, bytes.NewReader(data))
	c.Assert(err, IsNil)
	c.Assert(objInfo.ETag, Equals, "final-etag-3")
	c.Assert(objInfo.Size, Equals, size)

	// part 1 matched by size and md5sum, only 2 and 3 went over the wire
	sort.Ints(uploadedParts)
	c.Assert(uploadedParts, DeepEquals, []int{2, 3})

	// completion lists all three parts in ascending order
	c.Assert(strings.Contains(completeBody, "<PartNumber>1</PartNumber>"), Equals, true)
	c.Assert(strings.Contains(completeBody, partOneMD5), Equals, true)
	c.Assert(strings.Contains(completeBody, "mockpart-2"), Equals, true)
	c.Assert(strings.Contains(completeBody, "mockpart-3"), Equals, true)
	c.Assert(strings.Index(completeBody, "<PartNumber>1</PartNumber>") <
		strings.Index(completeBody, "<PartNumber>2</PartNumber>"), Equals, true)
	c.Assert(strings.Index(completeBody, "<PartNumber>2</PartNumber>") <
		strings.Index(completeBody, "<PartNumber>3</PartNumber>"), Equals, true)
}

func (s *MySuite) TestPutObjectSizeMismatch(c *C) {
	// 12MiB declared, only 11MiB of data behind the reader
	declaredSize := int64(12 * humanize.MiByte)
	data := testPattern(11 * humanize.MiByte)

	var mu sync.Mutex
	completeCalled := false
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		query := req.URL.Query()
		switch {
		case req.Method == http.MethodGet && query.Has("uploads"):
			body := `<?xml version="1.0" encoding="UTF-8"?>
<ListMultipartUploadsResult>
  <Bucket>mybucket</Bucket>
  <IsTruncated>false</IsTruncated>
</ListMultipartUploadsResult>`
			return mockResponse(http.StatusOK, nil, body), nil
		case req.Method == http.MethodPost && query.Has("uploads"):
			body := `<?xml version="1.0" encoding="UTF-8"?>
<InitiateMultipartUploadResult>
  <Bucket>mybucket</Bucket>
  <Key>myobject</Key>
  <UploadId>new-upload</UploadId>
</InitiateMultipartUploadResult>`
			return mockResponse(http.StatusOK, nil, body), nil
		case req.Method == http.MethodGet && query.Get("uploadId") != "":
			body := `<?xml version="1.0" encoding="UTF-8"?>
<ListPartsResult>
  <Bucket>mybucket</Bucket>
  <Key>myobject</Key>
  <IsTruncated>false</IsTruncated>
</ListPartsResult>`
			return mockResponse(http.StatusOK, nil, body), nil
		case req.Method == http.MethodPut && query.Get("partNumber") != "":
			etag := fmt.Sprintf(`"mockpart-%s"`, query.Get("partNumber"))
			return mockResponse(http.StatusOK, map[string]string{"ETag": etag}, ""), nil
		case req.Method == http.MethodPost && query.Get("uploadId") != "":
			mu.Lock()
			completeCalled = true
			mu.Unlock()
			return mockResponse(http.StatusOK, nil, "<CompleteMultipartUploadResult></CompleteMultipartUploadResult>"), nil
		}
		return nil, fmt.Errorf("unexpected request %s %s", req.Method, req.URL)
	})

	client, err := New("http://play.example.com:9000", "accesskey", "secretkey")
	c.Assert(err, IsNil)
	client.SetCustomTransport(transport)

	_, err = client.PutObject(context.Background(), "mybucket", "myobject", "",
		declaredSize, bytes.NewReader(data))
	c.Assert(err, NotNil)
	c.Assert(ToErrorResponse(err).Code, Equals, "SizeMismatch")

	// a mismatched upload must never be completed
	c.Assert(completeCalled, Equals, false)
}

func (s *MySuite) TestPutObjectEntityTooLarge(c *C) {
	client, err := New("http://play.example.com:9000", "accesskey", "secretkey")
	c.Assert(err, IsNil)
	_, err = client.PutObject(context.Background(), "mybucket", "myobject", "",
		maxMultipartPutObjectSize+1, nil)
	c.Assert(ToErrorResponse(err).Code, Equals, "EntityTooLarge")
}
