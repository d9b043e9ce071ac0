package services

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/yungbote/editais-backend/internal/data/repos"
	"github.com/yungbote/editais-backend/internal/data/repos/testutil"
)

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memStore) Upload(ctx context.Context, key, contentType string, file io.Reader) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = buf.Bytes()
	m.types[key] = contentType
	return nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memStore) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memStore) DeletePrefix(ctx context.Context, prefix string) error {
	keys, _ := m.ListKeys(ctx, prefix)
	for _, k := range keys {
		_ = m.Delete(ctx, k)
	}
	return nil
}

func (m *memStore) PublicURL(key string) string {
	return "https://files.test/" + key
}

type fixture struct {
	congressRepo repos.CongressRepo
	settingsRepo repos.GlobalSettingRepo
	store        *memStore
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return fixture{
		congressRepo: repos.NewCongressRepo(db, log),
		settingsRepo: repos.NewGlobalSettingRepo(db, log),
		store:        newMemStore(),
	}
}
