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
	"fmt"
	"net/http"
	"strings"
	"sync"

	. "gopkg.in/check.v1"
)

func (s *MySuite) TestListBuckets(c *C) {
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		body := `<?xml version="1.0" encoding="UTF-8"?>
<ListAllMyBucketsResult>
  <Owner><ID>owner-id</ID><DisplayName>owner</DisplayName></Owner>
  <Buckets>
    <Bucket><Name>bucket-one</Name><CreationDate>2016-01-01T12:00:00Z</CreationDate></Bucket>
    <Bucket><Name>bucket-two</Name><CreationDate>2016-02-01T12:00:00Z</CreationDate></Bucket>
  </Buckets>
</ListAllMyBucketsResult>`
		return mockResponse(http.StatusOK, nil, body), nil
	})

	client, err := New("http://play.example.com:9000", "accesskey", "secretkey")
	c.Assert(err, IsNil)
	client.SetCustomTransport(transport)

	var names []string
	for bucket := range client.ListBuckets(context.Background()) {
		c.Assert(bucket.Err, IsNil)
		names = append(names, bucket.Name)
	}
	c.Assert(names, DeepEquals, []string{"bucket-one", "bucket-two"})
}

func (s *MySuite) TestListBucketsTemporaryRedirect(c *C) {
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return mockResponse(http.StatusTemporaryRedirect, map[string]string{
			"Location": "https://somewhere.else.example.com/",
		}, ""), nil
	})

	client, err := New("http://play.example.com:9000", "accesskey", "secretkey")
	c.Assert(err, IsNil)
	client.SetCustomTransport(transport)

	bucket := <-client.ListBuckets(context.Background())
	c.Assert(bucket.Err, NotNil)
	// redirects on service listing surface as denied access
	c.Assert(ToErrorResponse(bucket.Err).Code, Equals, "AccessDenied")
}

func (s *MySuite) TestListObjectsPagination(c *C) {
	var mu sync.Mutex
	var markers []string
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		marker := req.URL.Query().Get("marker")
		mu.Lock()
		markers = append(markers, marker)
		mu.Unlock()
		if marker == "" {
			body := `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult>
  <Name>mybucket</Name>
  <IsTruncated>true</IsTruncated>
  <Contents><Key>key1</Key><Size>10</Size><ETag>"e1"</ETag><LastModified>2016-01-01T12:00:00Z</LastModified></Contents>
  <Contents><Key>key2</Key><Size>20</Size><ETag>"e2"</ETag><LastModified>2016-01-01T12:00:00Z</LastModified></Contents>
</ListBucketResult>`
			return mockResponse(http.StatusOK, nil, body), nil
		}
		body := `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult>
  <Name>mybucket</Name>
  <IsTruncated>false</IsTruncated>
  <Contents><Key>key3</Key><Size>30</Size><ETag>"e3"</ETag><LastModified>2016-01-01T12:00:00Z</LastModified></Contents>
</ListBucketResult>`
		return mockResponse(http.StatusOK, nil, body), nil
	})

	client, err := New("http://play.example.com:9000", "accesskey", "secretkey")
	c.Assert(err, IsNil)
	client.SetCustomTransport(transport)

	var keys []string
	for object := range client.ListObjects(context.Background(), "mybucket", "", true) {
		c.Assert(object.Err, IsNil)
		keys = append(keys, object.Key)
	}
	c.Assert(keys, DeepEquals, []string{"key1", "key2", "key3"})

	// the second page resumes after the last key of the first
	c.Assert(markers, DeepEquals, []string{"", "key2"})
}

func (s *MySuite) TestListObjectsNonRecursive(c *C) {
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		// non recursive listings fold levels with a delimiter
		if req.URL.Query().Get("delimiter") != "/" {
			return nil, fmt.Errorf("expected delimiter query, got %s", req.URL.RawQuery)
		}
		body := `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult>
  <Name>mybucket</Name>
  <IsTruncated>false</IsTruncated>
  <Contents><Key>top.txt</Key><Size>10</Size><ETag>"e1"</ETag><LastModified>2016-01-01T12:00:00Z</LastModified></Contents>
  <CommonPrefixes><Prefix>photos/</Prefix></CommonPrefixes>
</ListBucketResult>`
		return mockResponse(http.StatusOK, nil, body), nil
	})

	client, err := New("http://play.example.com:9000", "accesskey", "secretkey")
	c.Assert(err, IsNil)
	client.SetCustomTransport(transport)

	var keys []string
	for object := range client.ListObjects(context.Background(), "mybucket", "", false) {
		c.Assert(object.Err, IsNil)
		keys = append(keys, object.Key)
	}
	c.Assert(keys, DeepEquals, []string{"top.txt", "photos/"})
}

func (s *MySuite) TestBucketRegionCache(c *C) {
	var mu sync.Mutex
	locationCalls := 0
	var headAuths []string
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Has("location") {
			mu.Lock()
			locationCalls++
			mu.Unlock()
			body := `<?xml version="1.0" encoding="UTF-8"?>
<LocationConstraint xmlns="http://s3.amazonaws.com/doc/2006-03-01/">eu-west-1</LocationConstraint>`
			return mockResponse(http.StatusOK, nil, body), nil
		}
		if req.Method == http.MethodHead {
			mu.Lock()
			headAuths = append(headAuths, req.Header.Get("Authorization"))
			mu.Unlock()
			return mockResponse(http.StatusOK, map[string]string{
				"Content-Length": "42",
				"Last-Modified":  "Fri, 01 Jan 2016 12:00:00 GMT",
				"ETag":           `"abcdef"`,
				"Content-Type":   "text/plain",
			}, ""), nil
		}
		return nil, fmt.Errorf("unexpected request %s %s", req.Method, req.URL)
	})

	client, err := New("https://s3.amazonaws.com", "accesskey", "secretkey")
	c.Assert(err, IsNil)
	client.SetCustomTransport(transport)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		objInfo, err := client.StatObject(ctx, "mybucket", "myobject")
		c.Assert(err, IsNil)
		c.Assert(objInfo.Size, Equals, int64(42))
		c.Assert(objInfo.ETag, Equals, "abcdef")
	}

	// the region is discovered once and cached
	c.Assert(locationCalls, Equals, 1)
	// subsequent requests sign against the discovered region
	for _, auth := range headAuths {
		c.Assert(strings.Contains(auth, "/eu-west-1/s3/aws4_request"), Equals, true)
	}
}

func (s *MySuite) TestBucketRegionEmptyLocationBody(c *C) {
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if !req.URL.Query().Has("location") {
			return nil, fmt.Errorf("unexpected request %s %s", req.Method, req.URL)
		}
		// some servers answer the location query with no body at all
		return mockResponse(http.StatusOK, nil, ""), nil
	})

	client, err := New("https://s3.amazonaws.com", "accesskey", "secretkey")
	c.Assert(err, IsNil)
	client.SetCustomTransport(transport)

	location, err := client.getBucketLocation(context.Background(), "mybucket")
	c.Assert(err, IsNil)
	c.Assert(location, Equals, "us-east-1")

	// the default still lands in the cache
	cached, ok := client.bucketLocCache.Get("mybucket")
	c.Assert(ok, Equals, true)
	c.Assert(cached, Equals, "us-east-1")
}

func (s *MySuite) TestGetBucketACLClassification(c *C) {
	aclBody := func(grantsXML string) string {
		return `<?xml version="1.0" encoding="UTF-8"?>
<AccessControlPolicy>
  <Owner><ID>owner-id</ID></Owner>
  <AccessControlList>` + grantsXML + `</AccessControlList>
</AccessControlPolicy>`
	}
	allUsersGrant := func(permission string) string {
		return `<Grant><Grantee><URI>http://acs.amazonaws.com/groups/global/AllUsers</URI></Grantee><Permission>` + permission + `</Permission></Grant>`
	}

	testCases := []struct {
		grants  string
		wantACL BucketACL
		wantErr string
	}{
		{"", Private, ""},
		{allUsersGrant("READ"), PublicRead, ""},
		{allUsersGrant("READ") + allUsersGrant("WRITE"), PublicReadWrite, ""},
		// write without read comes from no canned ACL
		{allUsersGrant("WRITE"), "", "UnsupportedACL"},
		{`<Grant><Grantee><URI>http://acs.amazonaws.com/groups/global/AuthenticatedUsers</URI></Grantee><Permission>READ</Permission></Grant>`, AuthenticatedRead, ""},
	}

	for _, testCase := range testCases {
		body := aclBody(testCase.grants)
		transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return mockResponse(http.StatusOK, nil, body), nil
		})
		client, err := New("http://play.example.com:9000", "accesskey", "secretkey")
		c.Assert(err, IsNil)
		client.SetCustomTransport(transport)

		acl, err := client.GetBucketACL(context.Background(), "mybucket")
		if testCase.wantErr != "" {
			c.Assert(ToErrorResponse(err).Code, Equals, testCase.wantErr)
			continue
		}
		c.Assert(err, IsNil)
		c.Assert(acl, Equals, testCase.wantACL)
	}
}

func (s *MySuite) TestRemoveIncompleteUploadNoop(c *C) {
	var mu sync.Mutex
	deleteCalled := false
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.Method == http.MethodDelete {
			mu.Lock()
			deleteCalled = true
			mu.Unlock()
			return mockResponse(http.StatusNoContent, nil, ""), nil
		}
		// no incomplete uploads for the object
		body := `<?xml version="1.0" encoding="UTF-8"?>
<ListMultipartUploadsResult>
  <Bucket>mybucket</Bucket>
  <IsTruncated>false</IsTruncated>
</ListMultipartUploadsResult>`
		return mockResponse(http.StatusOK, nil, body), nil
	})

	client, err := New("http://play.example.com:9000", "accesskey", "secretkey")
	c.Assert(err, IsNil)
	client.SetCustomTransport(transport)

	// removing a nonexistent incomplete upload succeeds without a DELETE
	err = client.RemoveIncompleteUpload(context.Background(), "mybucket", "myobject")
	c.Assert(err, IsNil)
	c.Assert(deleteCalled, Equals, false)
}
