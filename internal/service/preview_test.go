package service

import (
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/editorial-cms-api/internal/config"
)

var previewURLPattern = regexp.MustCompile(`^/preview/([^/?]+)\?t=(\d+)&h=([0-9a-f]{64})$`)

func newTestPreviewService(secret string, maxAge time.Duration, now time.Time) *previewService {
	svc := newPreviewService(&config.PreviewConfig{Secret: secret, MaxAge: maxAge})
	svc.now = func() time.Time { return now }
	return svc
}

func parsePreviewURL(t *testing.T, raw string) (id string, ts int64, sig string) {
	t.Helper()
	m := previewURLPattern.FindStringSubmatch(raw)
	if m == nil {
		t.Fatalf("preview URL %q does not match expected pattern", raw)
	}
	ts, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		t.Fatal(err)
	}
	return m[1], ts, m[3]
}

func TestPreviewURLShape(t *testing.T) {
	svc := newTestPreviewService("secret", time.Hour, time.Now())

	raw := svc.PreviewURL("post-123")
	id, _, _ := parsePreviewURL(t, raw)
	if id != "post-123" {
		t.Errorf("expected post id in URL, got %q", id)
	}

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("preview URL does not parse: %v", err)
	}
	if !strings.HasPrefix(u.Path, "/preview/") {
		t.Errorf("unexpected path %q", u.Path)
	}
}

func TestPreviewSignatureChangesWithTime(t *testing.T) {
	base := time.Now()
	svc := newTestPreviewService("secret", time.Hour, base)
	first := svc.PreviewURL("post-123")

	svc.now = func() time.Time { return base.Add(time.Second) }
	second := svc.PreviewURL("post-123")

	_, _, sig1 := parsePreviewURL(t, first)
	_, _, sig2 := parsePreviewURL(t, second)
	if sig1 == sig2 {
		t.Error("signatures for different instants must differ")
	}
}

func TestPreviewVerifyRoundTrip(t *testing.T) {
	now := time.Now()
	svc := newTestPreviewService("secret", time.Hour, now)

	id, ts, sig := parsePreviewURL(t, svc.PreviewURL("post-123"))
	if err := svc.Verify(id, ts, sig); err != nil {
		t.Fatalf("verify failed on freshly issued link: %v", err)
	}
}

func TestPreviewVerifyRejectsTampering(t *testing.T) {
	now := time.Now()
	svc := newTestPreviewService("secret", time.Hour, now)
	id, ts, sig := parsePreviewURL(t, svc.PreviewURL("post-123"))

	tests := []struct {
		name string
		id   string
		ts   int64
		sig  string
	}{
		{"swapped post id", "post-456", ts, sig},
		{"shifted timestamp", id, ts + 1, sig},
		{"forged signature", id, ts, strings.Repeat("0", 64)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Verify(tt.id, tt.ts, tt.sig)
			assertServiceError(t, err, http.StatusUnauthorized, MsgInvalidPreviewToken)
		})
	}
}

func TestPreviewVerifyEnforcesMaxAge(t *testing.T) {
	issued := time.Now()
	svc := newTestPreviewService("secret", time.Hour, issued)
	id, ts, sig := parsePreviewURL(t, svc.PreviewURL("post-123"))

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	err := svc.Verify(id, ts, sig)
	assertServiceError(t, err, http.StatusUnauthorized, MsgExpiredPreviewToken)
}

func TestPreviewSecretsAreIndependent(t *testing.T) {
	now := time.Now()
	issuer := newTestPreviewService("secret-a", time.Hour, now)
	verifier := newTestPreviewService("secret-b", time.Hour, now)

	id, ts, sig := parsePreviewURL(t, issuer.PreviewURL("post-123"))
	err := verifier.Verify(id, ts, sig)
	assertServiceError(t, err, http.StatusUnauthorized, MsgInvalidPreviewToken)
}
