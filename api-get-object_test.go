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
	"io"
	"net/http"

	. "gopkg.in/check.v1"
)

func (s *MySuite) TestGetPartialObjectRange(c *C) {
	var rangeHeader string
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		rangeHeader = req.Header.Get("Range")
		return mockResponse(http.StatusPartialContent, map[string]string{
			"Content-Length": "10",
			"Last-Modified":  "Fri, 01 Jan 2016 12:00:00 GMT",
			"ETag":           `"abcdef"`,
		}, "0123456789"), nil
	})

	client, err := New("http://play.example.com:9000", "accesskey", "secretkey")
	c.Assert(err, IsNil)
	client.SetCustomTransport(transport)
	ctx := context.Background()

	reader, objInfo, err := client.GetPartialObject(ctx, "mybucket", "myobject", 10, 10)
	c.Assert(err, IsNil)
	c.Assert(rangeHeader, Equals, "bytes=10-19")
	c.Assert(objInfo.Size, Equals, int64(10))
	body, err := io.ReadAll(reader)
	c.Assert(err, IsNil)
	c.Assert(string(body), Equals, "0123456789")
	c.Assert(reader.Close(), IsNil)

	// open ended read from an offset
	_, _, err = client.GetPartialObject(ctx, "mybucket", "myobject", 10, 0)
	c.Assert(err, IsNil)
	c.Assert(rangeHeader, Equals, "bytes=10-")

	// negative ranges are rejected before any request
	_, _, err = client.GetPartialObject(ctx, "mybucket", "myobject", -1, 0)
	c.Assert(err, NotNil)
	_, _, err = client.GetPartialObject(ctx, "mybucket", "myobject", 0, -1)
	c.Assert(err, NotNil)
}

func (s *MySuite) TestStatObjectNotFound(c *C) {
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		// HEAD errors carry no body, the status is all there is
		return mockResponse(http.StatusNotFound, nil, ""), nil
	})

	client, err := New("http://play.example.com:9000", "accesskey", "secretkey")
	c.Assert(err, IsNil)
	client.SetCustomTransport(transport)

	_, err = client.StatObject(context.Background(), "mybucket", "myobject")
	errResp := ToErrorResponse(err)
	c.Assert(errResp.Code, Equals, "NoSuchKey")
	c.Assert(errResp.Key, Equals, "myobject")

	err = client.BucketExists(context.Background(), "mybucket")
	c.Assert(ToErrorResponse(err).Code, Equals, "NoSuchBucket")
}
