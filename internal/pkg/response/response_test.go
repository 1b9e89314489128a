package response

import (
	"Pressroom/internal/service"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func render(t *testing.T, err error) envelope {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Error(c, err)

	if w.Code != http.StatusOK {
		t.Fatalf("http status = %d, want 200", w.Code)
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return env
}

func TestErrorMapsSentinels(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{service.ErrParamInvalid, BadRequest},
		{service.ErrArticleNotFound, NotFound},
		{fmt.Errorf("track action: %w", service.ErrDependencyUnavailable), 503},
		{service.UnauthorizedError, Unauthorized},
	}
	for _, c := range cases {
		env := render(t, c.err)
		if env.Code != c.code {
			t.Errorf("Error(%v) code = %d, want %d", c.err, env.Code, c.code)
		}
	}
}

func TestErrorHidesUnknownErrors(t *testing.T) {
	env := render(t, errors.New("dial tcp 10.0.0.1:3306: connection refused"))
	if env.Code != InternalServerError {
		t.Fatalf("code = %d, want 500", env.Code)
	}
	if env.Message != service.UnExpectedError.Error() {
		t.Fatalf("message leaks internals: %q", env.Message)
	}
}
