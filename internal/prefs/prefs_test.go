package prefs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellerconsole/internal/pipeline"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStoreFromClient(client, "test:"), mr
}

func stores(t *testing.T) map[string]Store {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	rs, _ := newRedisStore(t)
	return map[string]Store{"file": fs, "redis": rs}
}

func TestLoadQuery_DefaultsWhenEmpty(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			q, err := LoadQuery(context.Background(), s)
			require.NoError(t, err)
			assert.Equal(t, pipeline.Default(), q)
		})
	}
}

func TestSaveLoadQuery_RoundTrip(t *testing.T) {
	want := pipeline.Query{Search: "acme", Status: "qualified", Field: pipeline.FieldName, Dir: pipeline.Asc}
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, SaveQuery(ctx, s, want))
			got, err := LoadQuery(ctx, s)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestSaveQuery_EncodesValuesAsJSON(t *testing.T) {
	rs, mr := newRedisStore(t)
	require.NoError(t, SaveQuery(context.Background(), rs, pipeline.Default()))

	v, err := mr.Get("test:" + KeySortField)
	require.NoError(t, err)
	assert.Equal(t, `"score"`, v)
	v, err = mr.Get("test:" + KeySearch)
	require.NoError(t, err)
	assert.Equal(t, `""`, v)
}

func TestLoadQuery_MalformedValuesFallBack(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, KeySearch, `"globex"`))
			require.NoError(t, s.Set(ctx, KeyStatus, `"archived"`))
			require.NoError(t, s.Set(ctx, KeySortField, `not json`))
			require.NoError(t, s.Set(ctx, KeySortDir, `42`))

			q, err := LoadQuery(ctx, s)
			require.NoError(t, err)
			assert.Equal(t, "globex", q.Search)
			assert.Equal(t, pipeline.StatusAll, q.Status)
			assert.Equal(t, pipeline.FieldScore, q.Field)
			assert.Equal(t, pipeline.Desc, q.Dir)
		})
	}
}

func TestFileStore_StateDirEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(StateDirEnv, dir)

	s, err := NewFileStore("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), s.Path())

	require.NoError(t, s.Set(context.Background(), "k", `"v"`))
	_, err = os.Stat(filepath.Join(dir, FileName))
	assert.NoError(t, err)
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("[unclosed"), 0o644))
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	q, err := LoadQuery(ctx, s)
	assert.Error(t, err)
	assert.Equal(t, pipeline.Default(), q)

	require.NoError(t, s.Set(ctx, KeySearch, `"x"`))
	v, err := s.Get(ctx, KeySearch)
	require.NoError(t, err)
	assert.Equal(t, `"x"`, v)
}

func TestRedisStore_MissingKey(t *testing.T) {
	rs, _ := newRedisStore(t)
	_, err := rs.Get(context.Background(), "absent")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRedisStore_ServerDown(t *testing.T) {
	rs, mr := newRedisStore(t)
	mr.Close()

	q, err := LoadQuery(context.Background(), rs)
	assert.Error(t, err)
	assert.Equal(t, pipeline.Default(), q)
}

func TestSaveQuery_ConcurrentSavesNeverMix(t *testing.T) {
	a := pipeline.Query{Search: "acme", Status: "new", Field: pipeline.FieldName, Dir: pipeline.Asc}
	b := pipeline.Query{Search: "globex", Status: "lost", Field: pipeline.FieldScore, Dir: pipeline.Desc}
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for i := 0; i < 100; i++ {
				var wg sync.WaitGroup
				errs := make([]error, 2)
				for j, q := range []pipeline.Query{a, b} {
					wg.Add(1)
					go func() {
						defer wg.Done()
						errs[j] = SaveQuery(ctx, s, q)
					}()
				}
				wg.Wait()
				require.NoError(t, errs[0])
				require.NoError(t, errs[1])

				got, err := LoadQuery(ctx, s)
				require.NoError(t, err)
				if got != a && got != b {
					t.Fatalf("run %d persisted %+v, want one of the saved queries", i, got)
				}
			}
		})
	}
}

func TestSetMany_WritesAllKeys(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, "kept", `"old"`))
			require.NoError(t, s.SetMany(ctx, map[string]string{"a": `"1"`, "b": `"2"`}))

			for k, want := range map[string]string{"kept": `"old"`, "a": `"1"`, "b": `"2"`} {
				v, err := s.Get(ctx, k)
				require.NoError(t, err)
				assert.Equal(t, want, v, k)
			}
		})
	}
}

func TestSaver_SkipsOlderGeneration(t *testing.T) {
	rs, _ := newRedisStore(t)
	saver := NewSaver(rs)
	ctx := context.Background()

	first := saver.Next()
	second := saver.Next()
	latest := pipeline.Query{Search: "globex", Status: "lost", Field: pipeline.FieldScore, Dir: pipeline.Desc}

	wrote, err := saver.Save(ctx, second, latest)
	require.NoError(t, err)
	assert.True(t, wrote)

	// the earlier save finishes last and must not win
	wrote, err = saver.Save(ctx, first, pipeline.Query{Search: "acme", Status: "new", Field: pipeline.FieldName, Dir: pipeline.Asc})
	require.NoError(t, err)
	assert.False(t, wrote)

	got, err := LoadQuery(ctx, rs)
	require.NoError(t, err)
	assert.Equal(t, latest, got)
}

func TestSaver_FailedSaveDoesNotAdvance(t *testing.T) {
	rs, mr := newRedisStore(t)
	saver := NewSaver(rs)
	ctx := context.Background()

	mr.SetError("READONLY")
	_, err := saver.Save(ctx, saver.Next(), pipeline.Default())
	require.Error(t, err)

	mr.SetError("")
	gen := saver.Next()
	wrote, err := saver.Save(ctx, gen, pipeline.Default())
	require.NoError(t, err)
	assert.True(t, wrote)
}
