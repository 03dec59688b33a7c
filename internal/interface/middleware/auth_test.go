package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeVerifier struct {
	userID string
	err    error
}

func (f fakeVerifier) Verify(token string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.userID, nil
}

func newGateRouter(v TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(v), func(c *gin.Context) {
		uid, _ := UserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": uid})
	})
	return r
}

func getProtected(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMissingHeader(t *testing.T) {
	r := newGateRouter(fakeVerifier{userID: "u1"})

	for _, header := range []string{"", "Basic abc", "bearer lowercase", "Bearer ", "Bearer   "} {
		w := getProtected(r, header)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, w.Code)
		}
		if body := w.Body.String(); body != `{"message":"Authentication required"}` {
			t.Errorf("header %q: body = %s", header, body)
		}
	}
}

func TestAuthVerifierRejects(t *testing.T) {
	r := newGateRouter(fakeVerifier{err: errors.New("bad token")})

	w := getProtected(r, "Bearer some-token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if body := w.Body.String(); body != `{"message":"Invalid or expired token"}` {
		t.Errorf("body = %s", body)
	}
}

func TestAuthBindsUserID(t *testing.T) {
	r := newGateRouter(fakeVerifier{userID: "rider-42"})

	w := getProtected(r, "Bearer good-token")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); body != `{"userId":"rider-42"}` {
		t.Errorf("body = %s", body)
	}
}
