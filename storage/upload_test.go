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
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	objects map[string][]byte
	fail    bool
	// drop accepts uploads without storing them
	drop bool
}

func (m *memoryStorage) UploadObject(ctx context.Context, objectKey string, reader io.Reader, size int64) error {
	if m.fail {
		return errors.New("bucket is gone")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if int64(len(data)) != size {
		return errors.Errorf("short upload: %d of %d bytes", len(data), size)
	}
	if !m.drop {
		m.objects[objectKey] = data
	}
	return nil
}

func (m *memoryStorage) Exists(ctx context.Context, objectKey string) (bool, error) {
	_, ok := m.objects[objectKey]
	return ok, nil
}

func TestObjectKey(t *testing.T) {
	k1 := ObjectKey("nginx", 42, "out/memory_map.png")
	k2 := ObjectKey("nginx", 42, "out/memory_map.png")

	require.True(t, strings.HasPrefix(k1, "nginx-42/"), "Unexpected key %s", k1)
	require.True(t, strings.HasSuffix(k1, ".png"), "Unexpected key %s", k1)
	require.NotEqual(t, k1, k2, "Keys must be unique")

	k3 := ObjectKey("memmap", -1, "maps.png")
	require.True(t, strings.HasPrefix(k3, "memmap/"), "Unexpected key %s", k3)
}

func TestUploadFile(t *testing.T) {
	content := []byte("\x89PNG fake image")
	path := filepath.Join(t.TempDir(), "memory_map.png")
	require.NoError(t, os.WriteFile(path, content, 0644))

	st := &memoryStorage{objects: make(map[string][]byte)}
	require.NoError(t, UploadFile(context.Background(), st, "a/b.png", path))

	exists, err := st.Exists(context.Background(), "a/b.png")
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, content, st.objects["a/b.png"])
}

func TestUploadFileErrors(t *testing.T) {
	st := &memoryStorage{objects: make(map[string][]byte)}
	err := UploadFile(context.Background(), st, "a/b.png", filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "memory_map.png")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	st.fail = true
	err = UploadFile(context.Background(), st, "a/b.png", path)
	require.Error(t, err)
	require.Empty(t, st.objects)
}

func TestUploadFileKeyTaken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory_map.png")
	require.NoError(t, os.WriteFile(path, []byte("new"), 0644))

	st := &memoryStorage{objects: map[string][]byte{"a/b.png": []byte("old")}}
	err := UploadFile(context.Background(), st, "a/b.png", path)
	require.Equal(t, ErrObjectExists, errors.Cause(err))
	require.Equal(t, []byte("old"), st.objects["a/b.png"], "Existing object must not be overwritten")
}

func TestUploadFileNotVisible(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory_map.png")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	st := &memoryStorage{objects: make(map[string][]byte), drop: true}
	err := UploadFile(context.Background(), st, "a/b.png", path)
	require.Equal(t, ErrUploadNotVisible, errors.Cause(err))
}
