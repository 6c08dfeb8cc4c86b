package routes

import (
	"testing"

	"github.com/labstack/echo/v4"
)

// Handlers read the item id with c.Param("id"), so the content routes must
// register the parameter under that exact name or lookups by id always fail.
func TestContentRoutesUseIDParam(t *testing.T) {
	e := echo.New()
	RegisterRoutes(e)

	want := map[string]bool{
		"GET /content/:id":    false,
		"PUT /content/:id":    false,
		"DELETE /content/:id": false,
	}

	for _, r := range e.Routes() {
		key := r.Method + " " + r.Path
		if _, ok := want[key]; ok {
			want[key] = true
		}
		if r.Path == "/content/:content_id" {
			t.Errorf("route %s %s registered with mismatched param name", r.Method, r.Path)
		}
	}

	for key, found := range want {
		if !found {
			t.Errorf("route %s not registered", key)
		}
	}
}
