// MIT License
//
// Copyright (c) 2025 André Jesus and vHive team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package storage

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

// ObjectStorage is where rendered images are published. Exists guards
// against overwriting a key and confirms that an upload landed.
type ObjectStorage interface {
	UploadObject(ctx context.Context, objectKey string, reader io.Reader, size int64) error
	Exists(ctx context.Context, objectKey string) (bool, error)
}

// MinioStorage publishes images to one bucket of an S3-compatible server
type MinioStorage struct {
	client     *minio.Client
	bucketName string
}

// NewMinioClient connects to an S3-compatible endpoint with static credentials
func NewMinioClient(endpoint, accessKey, secretKey string) (*minio.Client, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	return client, errors.Wrapf(err, "connecting to %s", endpoint)
}

// NewMinioStorage creates bucketName when it does not exist yet
func NewMinioStorage(ctx context.Context, client *minio.Client, bucketName string) (*MinioStorage, error) {
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, errors.Wrap(err, "checking bucket existence")
	}
	if !exists {
		err = client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return nil, errors.Wrap(err, "creating bucket")
		}
	}
	return &MinioStorage{client: client, bucketName: bucketName}, nil
}

// UploadObject stores size bytes of reader as a PNG under objectKey
func (m *MinioStorage) UploadObject(ctx context.Context, objectKey string, reader io.Reader, size int64) error {
	_, err := m.client.PutObject(
		ctx,
		m.bucketName,
		objectKey,
		reader,
		size,
		minio.PutObjectOptions{ContentType: pngContentType},
	)
	return errors.Wrapf(err, "uploading object %s", objectKey)
}

// Exists reports whether objectKey is present in the bucket
func (m *MinioStorage) Exists(ctx context.Context, objectKey string) (bool, error) {
	_, err := m.client.StatObject(
		ctx,
		m.bucketName,
		objectKey,
		minio.StatObjectOptions{},
	)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, errors.Wrapf(err, "checking if object %s exists", objectKey)
	}
	return true, nil
}
