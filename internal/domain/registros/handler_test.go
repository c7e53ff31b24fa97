package registros

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cultivo-console/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// newHandlerTestServer monta las rutas del historial con un CultivoChecker
// de prueba, sin cablear el módulo de cultivos.
func newHandlerTestServer(t *testing.T, known map[string]bool) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()
	r.Use(middleware.AuthContext(nil))
	RegisterRoutes(r, NewService(&testRepo{}), func(ctx context.Context, id string) error {
		if !known[id] {
			return ErrCultivoNotFound
		}
		return nil
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestHandler_Append_UnknownCultivo(t *testing.T) {
	srv := newHandlerTestServer(t, map[string]bool{"cultivo-1": true})

	body := `{"kind":"GENERAL","timestamp":"2026-03-05T08:00:00Z","notes":"hola"}`
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/cultivos/ghost/registros", strings.NewReader(body))
	req.Header.Set("X-Debug-User-ID", "user-1")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown cultivo, got %d", resp.StatusCode)
	}
}

func TestHandler_Append_KnownCultivo(t *testing.T) {
	srv := newHandlerTestServer(t, map[string]bool{"cultivo-1": true})

	body := `{"kind":"WATER_NUTRITION","timestamp":"2026-03-05T08:00:00Z","detail":{"fertilizer":"grow A+B"}}`
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/cultivos/cultivo-1/registros", strings.NewReader(body))
	req.Header.Set("X-Debug-User-ID", "user-1")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
}

func TestHandler_List_UnknownCultivo(t *testing.T) {
	srv := newHandlerTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/cultivos/ghost/registros")
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown cultivo, got %d", resp.StatusCode)
	}
}
