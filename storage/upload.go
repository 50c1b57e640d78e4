// MIT License
//
// Copyright (c) 2026 vHive team
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
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const pngContentType = "image/png"

var (
	// ErrObjectExists the key is already taken in the bucket
	ErrObjectExists = errors.New("object already exists")
	// ErrUploadNotVisible the store accepted the upload but does not list it
	ErrUploadNotVisible = errors.New("uploaded object not found")
)

// ObjectKey returns a unique key for an image of process pid named name:
// <name>-<pid>/<uuid><ext of fileName>. A negative pid is left out.
func ObjectKey(name string, pid int, fileName string) string {
	prefix := name
	if pid >= 0 {
		prefix = fmt.Sprintf("%s-%d", name, pid)
	}
	return fmt.Sprintf("%s/%s%s", prefix, uuid.New(), filepath.Ext(fileName))
}

// UploadFile sends the file at path to st under objectKey. An existing object
// is never overwritten, and the upload is confirmed with Exists.
func UploadFile(ctx context.Context, st ObjectStorage, objectKey, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return errors.Wrapf(err, "stat %s", path)
	}

	exists, err := st.Exists(ctx, objectKey)
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrapf(ErrObjectExists, "key %s", objectKey)
	}

	if err := st.UploadObject(ctx, objectKey, f, info.Size()); err != nil {
		return err
	}

	exists, err = st.Exists(ctx, objectKey)
	if err != nil {
		return err
	}
	if !exists {
		return errors.Wrapf(ErrUploadNotVisible, "key %s", objectKey)
	}

	log.Infof("Uploaded %s (%d bytes) as %s", path, info.Size(), objectKey)
	return nil
}
