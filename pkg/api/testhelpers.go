package api

import (
	"io"
	"net/http/httptest"

	"github.com/sirupsen/logrus"

	"github.com/mockaps/mockaps/pkg/config"
)

// TestServer wraps a Server on an httptest listener with logging silenced.
// Intended for tests and for embedding the mock in other test suites.
type TestServer struct {
	*Server
	HTTP *httptest.Server
	URL  string
}

// NewTestServer builds a server from the config and starts it on an
// ephemeral port. Callers must Close it.
func NewTestServer(cfg *config.Config) (*TestServer, error) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	srv, err := NewServer(cfg, log)
	if err != nil {
		return nil, err
	}

	httpSrv := httptest.NewServer(srv)
	return &TestServer{
		Server: srv,
		HTTP:   httpSrv,
		URL:    httpSrv.URL,
	}, nil
}

// Close shuts down the underlying listener.
func (t *TestServer) Close() {
	t.HTTP.Close()
}
