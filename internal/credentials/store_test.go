package credentials

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreSuite checks the Store contract against any backend.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key is absent without error", func(t *testing.T) {
		s := newStore(t)
		v, ok, err := s.Get(ctx, KeyToken)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, KeyToken, "first"))
		require.NoError(t, s.Set(ctx, KeyToken, "second"))

		v, ok, err := s.Get(ctx, KeyToken)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "second", v)
	})

	t.Run("set many writes every key", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.SetMany(ctx, map[Key]string{
			KeyToken:    "tok",
			KeyUserRole: "MEMBER",
		}))

		for key, want := range map[Key]string{KeyToken: "tok", KeyUserRole: "MEMBER"} {
			v, ok, err := s.Get(ctx, key)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, want, v)
		}
	})

	t.Run("remove drops only listed keys", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.SetMany(ctx, map[Key]string{
			KeyToken:             "tok",
			KeyAccessTokenMember: "member-tok",
		}))
		require.NoError(t, s.Remove(ctx, KeyAccessTokenMember))

		_, ok, err := s.Get(ctx, KeyAccessTokenMember)
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = s.Get(ctx, KeyToken)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("clear drops every session key", func(t *testing.T) {
		s := newStore(t)
		values := make(map[Key]string, len(SessionKeys))
		for _, k := range SessionKeys {
			values[k] = "v-" + string(k)
		}
		require.NoError(t, s.SetMany(ctx, values))
		require.NoError(t, s.Clear(ctx))

		for _, k := range SessionKeys {
			_, ok, err := s.Get(ctx, k)
			require.NoError(t, err)
			assert.False(t, ok, "key %s survived clear", k)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store { return NewMemoryStore() })
}

func TestMemoryStore_ClearKeepsForeignKeys(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, Key("onboardingSeen"), "true"))
	require.NoError(t, s.Set(ctx, KeyToken, "tok"))

	require.NoError(t, s.Clear(ctx))

	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.SetMany(ctx, map[Key]string{KeyToken: "tok", KeyUserRole: "MEMBER"})
		}()
		go func() {
			defer wg.Done()
			_, _, _ = s.Get(ctx, KeyToken)
			_ = s.Clear(ctx)
		}()
	}
	wg.Wait()
}

func TestFileStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		return NewFileStore(filepath.Join(t.TempDir(), "nested", "credentials.json"))
	})
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credentials.json")

	first := NewFileStore(path)
	require.NoError(t, first.SetMany(ctx, map[Key]string{KeyToken: "persisted", KeyUserRole: "CREATOR"}))

	second := NewFileStore(path)
	v, ok, err := second.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.SetMany(ctx, map[Key]string{KeyToken: "tok", KeyUserRole: "MEMBER"})
		}()
		go func() {
			defer wg.Done()
			_, _, _ = s.Get(ctx, KeyToken)
			_, _, _ = s.Get(ctx, KeyUserRole)
		}()
	}
	wg.Wait()

	v, ok, err := s.Get(ctx, KeyUserRole)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "MEMBER", v)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, _, err := NewFileStore(path).Get(context.Background(), KeyToken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode credential file")
}

// fakeDB interprets the handful of statements PostgresStore issues.
type fakeDB struct {
	mu   sync.Mutex
	rows map[string]string
}

func newFakeDB() *fakeDB {
	return &fakeDB{rows: make(map[string]string)}
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	namespace := args[0].(string)
	switch {
	case strings.Contains(sql, "INSERT INTO credentials"):
		for i := 1; i+1 < len(args); i += 2 {
			f.rows[namespace+"/"+args[i].(string)] = args[i+1].(string)
		}
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	case strings.Contains(sql, "DELETE FROM credentials"):
		for _, k := range args[1].([]string) {
			delete(f.rows, namespace+"/"+k)
		}
		return pgconn.NewCommandTag("DELETE 1"), nil
	}
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.rows[args[0].(string)+"/"+args[1].(string)]
	return fakeRow{value: v, found: ok}
}

type fakeRow struct {
	value string
	found bool
}

func (r fakeRow) Scan(dest ...any) error {
	if !r.found {
		return pgx.ErrNoRows
	}
	*dest[0].(*string) = r.value
	return nil
}

func TestPostgresStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store { return NewPostgresStore(newFakeDB(), "device-1") })
}

func TestPostgresStore_NamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	db := newFakeDB()
	a := NewPostgresStore(db, "a")
	b := NewPostgresStore(db, "b")

	require.NoError(t, a.Set(ctx, KeyToken, "tok-a"))

	_, ok, err := b.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_KeysShareHashSlot(t *testing.T) {
	s := NewRedisStore(nil, "alice")

	assert.Equal(t, "memberkit:{alice}:token", s.redisKey(KeyToken))
	for _, k := range s.redisKeys(SessionKeys) {
		assert.True(t, strings.HasPrefix(k, "memberkit:{alice}:"), k)
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	runStoreSuite(t, func(t *testing.T) Store {
		s := NewRedisStore(client, "test-"+strings.ReplaceAll(t.Name(), "/", "-"))
		t.Cleanup(func() { _ = s.Clear(context.Background()) })
		return s
	})
}
