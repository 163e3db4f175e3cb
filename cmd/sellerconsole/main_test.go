package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellerconsole/internal/config"
	"sellerconsole/internal/lead"
	"sellerconsole/internal/pipeline"
	"sellerconsole/internal/prefs"
)

func TestParseQuery(t *testing.T) {
	q, err := parseQuery("acme", "Qualified", "name", "ASC")
	require.NoError(t, err)
	assert.Equal(t, pipeline.Query{Search: "acme", Status: "qualified", Field: pipeline.FieldName, Dir: pipeline.Asc}, q)

	_, err = parseQuery("", "won", "name", "asc")
	assert.ErrorContains(t, err, "unknown status")
	_, err = parseQuery("", "all", "email", "asc")
	assert.ErrorContains(t, err, "unknown sort field")
	_, err = parseQuery("", "all", "score", "up")
	assert.ErrorContains(t, err, "unknown sort direction")
}

func TestWriteLeadTable(t *testing.T) {
	var buf bytes.Buffer
	err := writeLeadTable(&buf, []lead.Lead{
		{ID: "7", Name: "Grace Hopper", Company: "Cobol Corp", Email: "grace@cobol.example", Source: "Referral", Score: 75, Status: lead.StatusQualified},
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "COMPANY")
	assert.Contains(t, out, "Grace Hopper")
	assert.Contains(t, out, "Qualified")

	buf.Reset()
	require.NoError(t, writeLeadTable(&buf, nil))
	assert.Contains(t, buf.String(), "No leads found")
}

func TestOpenPrefs_File(t *testing.T) {
	dir := t.TempDir()
	store, closeStore, err := openPrefs(context.Background(), config.PrefsConfig{Backend: config.BackendFile, Dir: dir})
	require.NoError(t, err)
	defer closeStore()

	fs, ok := store.(*prefs.FileStore)
	require.True(t, ok, "expected *prefs.FileStore, got %T", store)
	assert.Contains(t, fs.Path(), dir)
}

func TestOpenPrefs_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	store, closeStore, err := openPrefs(context.Background(), config.PrefsConfig{
		Backend:     config.BackendRedis,
		RedisAddr:   mr.Addr(),
		RedisPrefix: "test:",
	})
	require.NoError(t, err)
	defer closeStore()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, prefs.KeySortField, `"name"`))
	got, err := mr.Get("test:" + prefs.KeySortField)
	require.NoError(t, err)
	assert.Equal(t, `"name"`, got)
}

func TestOpenPrefs_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, _, err := openPrefs(context.Background(), config.PrefsConfig{Backend: config.BackendRedis, RedisAddr: addr})
	assert.ErrorContains(t, err, "connecting to redis")
}
