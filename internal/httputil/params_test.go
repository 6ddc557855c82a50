package httputil

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(req *http.Request) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestParseMemoID(t *testing.T) {
	tests := []struct {
		param   string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"9007199254740993", 9007199254740993, false},
		{"abc", 0, true},
		{"", 0, true},
		{"1.5", 0, true},
	}

	for _, tt := range tests {
		c := newContext(httptest.NewRequest(http.MethodGet, "/", nil))
		c.Params = gin.Params{{Key: "id", Value: tt.param}}

		got, err := ParseMemoID(c)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMemoID(%q) error = %v, wantErr %v", tt.param, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMemoID(%q) = %d, want %d", tt.param, got, tt.want)
		}
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"valid", "Bearer abc.def", "abc.def", true},
		{"empty token", "Bearer ", "", true},
		{"missing", "", "", false},
		{"lowercase scheme", "bearer abc", "", false},
		{"basic auth", "Basic dXNlcjpwYXNz", "", false},
		{"no space", "Bearerabc", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			got, ok := BearerToken(newContext(req))
			if ok != tt.ok || got != tt.want {
				t.Errorf("BearerToken() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestBaseHostURL(t *testing.T) {
	tests := []struct {
		name    string
		host    string
		headers map[string]string
		tls     bool
		want    string
	}{
		{name: "plain http", host: "localhost:8180", want: "http://localhost:8180/"},
		{name: "tls", host: "memo.example.com", tls: true, want: "https://memo.example.com/"},
		{
			name:    "forwarded",
			host:    "10.0.0.5:8180",
			headers: map[string]string{"X-Forwarded-Host": "memo.example.com", "X-Forwarded-Proto": "https"},
			want:    "https://memo.example.com/",
		},
		{
			name:    "forwarded host only",
			host:    "10.0.0.5:8180",
			headers: map[string]string{"X-Forwarded-Host": "memo.example.com"},
			want:    "http://memo.example.com/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/register", nil)
			req.Host = tt.host
			if tt.tls {
				req.TLS = &tls.ConnectionState{}
			}
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := BaseHostURL(newContext(req)); got != tt.want {
				t.Errorf("BaseHostURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
