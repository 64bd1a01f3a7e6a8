package crud

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
)

type call struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]any
}

// fakeBackend records every call and serves canned list responses.
type fakeBackend struct {
	mu    sync.Mutex
	calls []call
	lists map[string][]Record
	err   error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{lists: map[string][]Record{}}
}

func (f *fakeBackend) record(method, path string, query url.Values, body any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := call{Method: method, Path: path, Query: query}
	if m, ok := body.(map[string]any); ok {
		c.Body = m
	}
	f.calls = append(f.calls, c)
}

func (f *fakeBackend) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (f *fakeBackend) Get(_ context.Context, path string, query url.Values, out any) error {
	f.record("GET", path, query, nil)
	if f.err != nil {
		return f.err
	}
	raw, _ := json.Marshal(f.lists[path])
	return json.Unmarshal(raw, out)
}

func (f *fakeBackend) Post(_ context.Context, path string, body, out any) error {
	f.record("POST", path, nil, body)
	return f.err
}

func (f *fakeBackend) Put(_ context.Context, path string, body, out any) error {
	f.record("PUT", path, nil, body)
	return f.err
}

func (f *fakeBackend) Delete(_ context.Context, path string) error {
	f.record("DELETE", path, nil, nil)
	return f.err
}
