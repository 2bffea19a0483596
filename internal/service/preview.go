package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/editorial-cms-api/internal/config"
)

// Preview token messages
const (
	MsgInvalidPreviewToken = "Invalid preview token"
	MsgExpiredPreviewToken = "Preview link expired"
)

// previewService issues time-boxed, tamper-evident preview URLs for
// unpublished posts. The signature covers post id and issuance time, so
// two links for the same post at different instants never match.
type previewService struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

// newPreviewService creates a new PreviewService
func newPreviewService(cfg *config.PreviewConfig) *previewService {
	return &previewService{
		secret: []byte(cfg.Secret),
		maxAge: cfg.MaxAge,
		now:    time.Now,
	}
}

// PreviewURL builds a signed preview link for a post. The timestamp is
// taken fresh on every call; signatures are never cached.
func (s *previewService) PreviewURL(postID string) string {
	ts := s.now().Unix()
	return fmt.Sprintf("/preview/%s?t=%d&h=%s", postID, ts, s.sign(postID, ts))
}

// Verify re-derives the signature for (postID, timestamp) and checks it
// against the presented one, then enforces the configured max age.
func (s *previewService) Verify(postID string, timestamp int64, signature string) error {
	expected := s.sign(postID, timestamp)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return NewError(http.StatusUnauthorized, MsgInvalidPreviewToken)
	}
	issued := time.Unix(timestamp, 0)
	if s.maxAge > 0 && s.now().Sub(issued) > s.maxAge {
		return NewError(http.StatusUnauthorized, MsgExpiredPreviewToken)
	}
	return nil
}

func (s *previewService) sign(postID string, timestamp int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s:%d", postID, timestamp)
	return hex.EncodeToString(mac.Sum(nil))
}
