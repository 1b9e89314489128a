package middleware

import (
	"Pressroom/internal/pkg/consts"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func TestCORSAllowedOrigins(t *testing.T) {
	r := newEngine(CORSMiddleware([]string{"https://cms.example.com"}))

	for origin, want := range map[string]string{
		"https://cms.example.com": "https://cms.example.com",
		"https://evil.example":    "",
	} {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != want {
			t.Errorf("origin %s: allow-origin = %q, want %q", origin, got, want)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newEngine(CORSMiddleware(nil))
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://any.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
}

func TestCheckRoles(t *testing.T) {
	for name, tc := range map[string]struct {
		roles []string
		want  string
	}{
		"admin":  {[]string{"EDITOR", consts.RoleAdmin}, "ok"},
		"editor": {[]string{"EDITOR"}, `"code":403`},
		"none":   {nil, `"code":403`},
	} {
		t.Run(name, func(t *testing.T) {
			r := newEngine(func(c *gin.Context) {
				c.Set(consts.ContextRoles, tc.roles)
				c.Next()
			}, CheckRoles(consts.RoleAdmin))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			if !strings.Contains(w.Body.String(), tc.want) {
				t.Fatalf("body = %s, want %s", w.Body.String(), tc.want)
			}
		})
	}
}

func TestAuditKeepsRequestBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuditMiddleware("/metrics"))
	var got string
	r.POST("/x", func(c *gin.Context) {
		b, _ := c.GetRawData()
		got = string(b)
		c.Status(http.StatusOK)
	})

	body := strings.Repeat("a", 5000)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body)))

	if got != body {
		t.Fatalf("handler saw %d bytes, want %d", len(got), len(body))
	}
}
