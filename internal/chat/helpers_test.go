package chat

import (
	"errors"
	"testing"

	"github.com/diogo/geminichat/internal/api"
	"github.com/diogo/geminichat/internal/config"
)

type fakeStore struct {
	saved []config.Settings
	err   error
}

func (f *fakeStore) Save(st config.Settings) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, st)
	return nil
}

type factoryRecorder struct {
	keys    []string
	clients []*api.MockGeminiClient
	next    func() *api.MockGeminiClient
	err     error
}

func (r *factoryRecorder) factory(apiKey string) (api.GeminiClientInterface, error) {
	r.keys = append(r.keys, apiKey)
	if r.err != nil {
		return nil, r.err
	}
	c := &api.MockGeminiClient{}
	if r.next != nil {
		c = r.next()
	}
	r.clients = append(r.clients, c)
	return c, nil
}

func (r *factoryRecorder) last() *api.MockGeminiClient {
	if len(r.clients) == 0 {
		return nil
	}
	return r.clients[len(r.clients)-1]
}

func newTestManager(t *testing.T, client *api.MockGeminiClient) (*Manager, *fakeStore, *factoryRecorder) {
	t.Helper()
	store := &fakeStore{}
	rec := &factoryRecorder{}
	if client != nil {
		rec.next = func() *api.MockGeminiClient { return client }
	}
	return NewManager(rec.factory, store, nil), store, rec
}

var errTransport = errors.New("connection reset by peer")
