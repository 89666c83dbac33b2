package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func TestRateLimit_BlocksAfterBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// 补充速率接近零，burst 用尽后立即限流
	r.Use(RateLimit(rate.Every(time.Hour), 2))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request #%d: expected 200, got %d", i, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", w.Code)
	}
}

func TestRateLimit_SeparateKeysPerPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(rate.Every(time.Hour), 1))
	r.GET("/a", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/b", func(c *gin.Context) { c.Status(http.StatusOK) })

	wa := httptest.NewRecorder()
	r.ServeHTTP(wa, httptest.NewRequest(http.MethodGet, "/a", nil))
	wb := httptest.NewRecorder()
	r.ServeHTTP(wb, httptest.NewRequest(http.MethodGet, "/b", nil))

	if wa.Code != http.StatusOK || wb.Code != http.StatusOK {
		t.Fatalf("different paths should not share a bucket: got %d, %d", wa.Code, wb.Code)
	}
}
