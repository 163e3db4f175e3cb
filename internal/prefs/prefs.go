// Package prefs persists the table's filter and sort inputs between runs,
// keyed and encoded the way the browser console kept them in local storage.
package prefs

import (
	"context"
	"errors"

	"sellerconsole/internal/jsonutil"
	"sellerconsole/internal/pipeline"
)

// Storage keys. Values are JSON-encoded strings.
const (
	KeySearch    = "miniSellerConsoleFilterSearchTerms"
	KeyStatus    = "miniSellerConsoleFilterStatus"
	KeySortField = "miniSellerConsoleFilterFilter"
	KeySortDir   = "miniSellerConsoleFilterSortDirection"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("preference not found")

// Store is a flat string key/value store. SetMany writes every pair or
// none of them.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, values map[string]string) error
}

// LoadQuery reads the four persisted inputs. Missing or malformed values
// fall back to pipeline.Default field by field. The first backend failure is
// returned alongside the best-effort query.
func LoadQuery(ctx context.Context, s Store) (pipeline.Query, error) {
	q := pipeline.Default()
	var firstErr error
	keep := func(err error) {
		if firstErr == nil && !isSoft(err) {
			firstErr = err
		}
	}

	if v, err := get[string](ctx, s, KeySearch); err == nil {
		q.Search = v
	} else {
		keep(err)
	}
	if v, err := get[string](ctx, s, KeyStatus); err == nil {
		if st, ok := pipeline.ParseStatusFilter(v); ok {
			q.Status = st
		}
	} else {
		keep(err)
	}
	if v, err := get[string](ctx, s, KeySortField); err == nil {
		if f, ok := pipeline.ParseField(v); ok {
			q.Field = f
		}
	} else {
		keep(err)
	}
	if v, err := get[string](ctx, s, KeySortDir); err == nil {
		if d, ok := pipeline.ParseDirection(v); ok {
			q.Dir = d
		}
	} else {
		keep(err)
	}
	return q, firstErr
}

// SaveQuery writes all four inputs in one SetMany call, so a concurrent
// reader sees either the old query or the new one.
func SaveQuery(ctx context.Context, s Store, q pipeline.Query) error {
	values := map[string]string{
		KeySearch:    q.Search,
		KeyStatus:    q.Status,
		KeySortField: string(q.Field),
		KeySortDir:   string(q.Dir),
	}
	for k, v := range values {
		raw, err := jsonutil.EncodeString(v)
		if err != nil {
			return err
		}
		values[k] = raw
	}
	return s.SetMany(ctx, values)
}

type decodeError struct{ err error }

func (e decodeError) Error() string { return "malformed preference: " + e.err.Error() }
func (e decodeError) Unwrap() error { return e.err }

func isSoft(err error) bool {
	var de decodeError
	return errors.Is(err, ErrNotFound) || errors.As(err, &de)
}

func get[T any](ctx context.Context, s Store, key string) (T, error) {
	var zero T
	raw, err := s.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	v, err := jsonutil.DecodeString[T](raw)
	if err != nil {
		return zero, decodeError{err}
	}
	return v, nil
}
