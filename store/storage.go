package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	storage_go "github.com/supabase-community/storage-go"
)

// Bucket wraps the storage bucket that holds uploaded project and slide
// images. Objects are write-once: uploads never overwrite an existing key.
type Bucket struct {
	log    *logrus.Logger
	client *storage_go.Client
	name   string
}

func NewBucket(log *logrus.Logger, client *storage_go.Client, name string) *Bucket {
	return &Bucket{log: log, client: client, name: name}
}

// Upload stores the file under {prefix}/{unixMillis}-{randomToken}{ext} and
// returns its public URL. A single attempt is made; failures carry the
// backend's message so the calling action can surface it.
func (b *Bucket) Upload(ctx context.Context, prefix, filename string, r io.Reader) (string, error) {
	key := objectKey(prefix, filename)

	cacheControl := "3600"
	upsert := false
	_, err := b.client.UploadFile(b.name, key, r, storage_go.FileOptions{
		CacheControl: &cacheControl,
		Upsert:       &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}

	resp := b.client.GetPublicUrl(b.name, key)
	b.log.Infof("Uploaded image %s to bucket %s", key, b.name)
	return resp.SignedURL, nil
}

// Remove deletes the objects referenced by the given public URLs. Callers
// treat this as best-effort cleanup: the database row is the success
// criterion, not the bucket.
func (b *Bucket) Remove(ctx context.Context, urls []string) error {
	keys := make([]string, 0, len(urls))
	for _, u := range urls {
		if key := b.keyFromURL(u); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil
	}

	if _, err := b.client.RemoveFile(b.name, keys); err != nil {
		return fmt.Errorf("removing %d objects: %w", len(keys), err)
	}
	return nil
}

// keyFromURL recovers the object key from a public URL by cutting at the
// bucket name. Falls back to the last two path segments, which matches the
// {prefix}/{file} layout every upload uses.
func (b *Bucket) keyFromURL(url string) string {
	marker := "/" + b.name + "/"
	if i := strings.Index(url, marker); i >= 0 {
		return url[i+len(marker):]
	}
	parts := strings.Split(strings.TrimSuffix(url, "/"), "/")
	if len(parts) >= 2 {
		return parts[len(parts)-2] + "/" + parts[len(parts)-1]
	}
	return ""
}

func objectKey(prefix, filename string) string {
	return fmt.Sprintf("%s/%d-%s%s", prefix, time.Now().UnixMilli(), randomToken(), filepath.Ext(filename))
}

func randomToken() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
