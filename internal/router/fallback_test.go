package router_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"cultivo-console/internal/platform/logger"
	"cultivo-console/internal/router"
)

type captureLogger struct {
	mu    sync.Mutex
	warns []string
}

func (c *captureLogger) With(map[string]any) logger.Logger { return c }
func (c *captureLogger) Debug(string, map[string]any)      {}
func (c *captureLogger) Info(string, map[string]any)       {}
func (c *captureLogger) Error(string, map[string]any)      {}

func (c *captureLogger) Warn(msg string, _ map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warns = append(c.warns, msg)
}

// Un DB_DSN roto no puede tirar el servicio, pero tampoco pasar en silencio:
// el router cae a storage en memoria y lo deja avisado.
func TestHTTP_BadDSN_FallsBackWithWarning(t *testing.T) {
	t.Setenv("DB_DSN", "esto no es un dsn")

	log := &captureLogger{}
	ts := httptest.NewServer(router.NewRouter(router.Options{Logger: log}))
	defer ts.Close()

	if len(log.warns) == 0 {
		t.Fatalf("expected a warning about the failed postgres open")
	}

	// El servicio sigue operativo sobre memoria.
	st, _ := doReq(t, ts.URL, "POST", "/beds", "grower-1", map[string]any{"name": "Cama 1"})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 creating bed on memory fallback, got %d", st)
	}
}
