package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"testing"
	"time"

	"github.com/editorial-cms-api/internal/config"
	"github.com/editorial-cms-api/internal/mocks"
	"github.com/editorial-cms-api/internal/models"
	"github.com/rs/zerolog"
)

// stubNotifier records revalidation attempts and can be told to fail
type stubNotifier struct {
	Err   error
	Paths []string
}

func (n *stubNotifier) Notify(ctx context.Context, path string) error {
	n.Paths = append(n.Paths, path)
	return n.Err
}

func newTestContentPageService(repo *mocks.MockContentPageRepository, notifier *stubNotifier, now time.Time) *contentPageService {
	svc := newContentPageService(repo, notifier, &config.RevalidateConfig{DefaultPath: "/"}, zerolog.Nop())
	svc.now = func() time.Time { return now }
	return svc
}

func textSection(t *testing.T, markdown string) models.Section {
	t.Helper()
	raw, err := json.Marshal(models.TextProps{Markdown: markdown})
	if err != nil {
		t.Fatal(err)
	}
	return models.Section{Type: models.SectionText, Props: raw}
}

func emptyGallerySection(t *testing.T) models.Section {
	t.Helper()
	raw, err := json.Marshal(models.ImageGalleryProps{})
	if err != nil {
		t.Fatal(err)
	}
	return models.Section{Type: models.SectionImageGallery, Props: raw}
}

func sectionMarkdowns(t *testing.T, sections []models.Section) []string {
	t.Helper()
	var out []string
	for _, s := range sections {
		var props models.TextProps
		if err := json.Unmarshal(s.Props, &props); err != nil {
			t.Fatal(err)
		}
		out = append(out, props.Markdown)
	}
	return out
}

func TestSavePreservesSectionOrder(t *testing.T) {
	repo := mocks.NewMockContentPageRepository()
	svc := newTestContentPageService(repo, &stubNotifier{}, time.Now())

	input := &models.ContentPageInput{
		Sections: []models.Section{
			textSection(t, "first"),
			textSection(t, "second"),
			textSection(t, "third"),
		},
		SEO: &models.SEOMeta{Title: "Landing"},
	}

	page, err := svc.Save(context.Background(), input)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if page.Status != models.StatusDraft {
		t.Errorf("expected draft status, got %q", page.Status)
	}
	if page.Version != 1 {
		t.Errorf("expected version 1 before any publish, got %d", page.Version)
	}

	got := sectionMarkdowns(t, page.Sections)
	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("section order not preserved: got %v, want %v", got, want)
	}
}

func TestSaveRejectsInvalidSectionWithoutPartialWrite(t *testing.T) {
	repo := mocks.NewMockContentPageRepository()
	svc := newTestContentPageService(repo, &stubNotifier{}, time.Now())

	// Establish a valid prior draft
	if _, err := svc.Save(context.Background(), &models.ContentPageInput{
		Sections: []models.Section{textSection(t, "keep me")},
	}); err != nil {
		t.Fatalf("initial save failed: %v", err)
	}

	// A sequence with one invalid section aborts the whole save
	_, err := svc.Save(context.Background(), &models.ContentPageInput{
		Sections: []models.Section{
			textSection(t, "replacement"),
			emptyGallerySection(t),
		},
	})
	assertServiceError(t, err, http.StatusBadRequest, "Gallery must have at least one image")

	// The prior draft is unaffected
	draft, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	got := sectionMarkdowns(t, draft.Sections)
	if !reflect.DeepEqual(got, []string{"keep me"}) {
		t.Errorf("failed save partially overwrote the draft: %v", got)
	}
}

func TestGetWithNoDraft(t *testing.T) {
	svc := newTestContentPageService(mocks.NewMockContentPageRepository(), &stubNotifier{}, time.Now())
	_, err := svc.Get(context.Background())
	assertServiceError(t, err, http.StatusNotFound, MsgContentPageNotFound)
}

func TestPublishWithNoDraft(t *testing.T) {
	svc := newTestContentPageService(mocks.NewMockContentPageRepository(), &stubNotifier{}, time.Now())
	_, err := svc.Publish(context.Background())
	assertServiceError(t, err, http.StatusNotFound, MsgContentPageNotFound)
}

func TestPublishIncrementsVersion(t *testing.T) {
	publishTime := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
	repo := mocks.NewMockContentPageRepository()
	notifier := &stubNotifier{}
	svc := newTestContentPageService(repo, notifier, publishTime)

	if _, err := svc.Save(context.Background(), &models.ContentPageInput{
		Sections: []models.Section{textSection(t, "v1 content")},
	}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	page, err := svc.Publish(context.Background())
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if page.Version != 2 {
		t.Errorf("expected version 2, got %d", page.Version)
	}
	if page.Status != models.StatusPublished {
		t.Errorf("expected published status, got %q", page.Status)
	}
	if page.PublishedAt == nil || !page.PublishedAt.Equal(publishTime) {
		t.Errorf("expected publish time %v, got %v", publishTime, page.PublishedAt)
	}
	if len(notifier.Paths) != 1 || notifier.Paths[0] != "/" {
		t.Errorf("expected one revalidation for /, got %v", notifier.Paths)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	repo := mocks.NewMockContentPageRepository()
	svc := newTestContentPageService(repo, &stubNotifier{}, time.Now())

	if _, err := svc.Save(context.Background(), &models.ContentPageInput{
		Sections: []models.Section{textSection(t, "published content")},
	}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := svc.Publish(context.Background()); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	// Draft edits after publish must not leak into the snapshot
	if _, err := svc.Save(context.Background(), &models.ContentPageInput{
		Sections: []models.Section{textSection(t, "work in progress")},
	}); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	snap, err := svc.GetPublished(context.Background())
	if err != nil {
		t.Fatalf("get published failed: %v", err)
	}
	got := sectionMarkdowns(t, snap.Sections)
	if !reflect.DeepEqual(got, []string{"published content"}) {
		t.Errorf("snapshot leaked draft edits: %v", got)
	}

	// The draft path sees the new content and reverts to draft status
	draft, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if draft.Status != models.StatusDraft {
		t.Errorf("expected draft status after save, got %q", draft.Status)
	}
	if got := sectionMarkdowns(t, draft.Sections); !reflect.DeepEqual(got, []string{"work in progress"}) {
		t.Errorf("draft lost edits: %v", got)
	}
}

func TestDoublePublishIncrementsEachTime(t *testing.T) {
	repo := mocks.NewMockContentPageRepository()
	svc := newTestContentPageService(repo, &stubNotifier{}, time.Now())

	if _, err := svc.Save(context.Background(), &models.ContentPageInput{
		Sections: []models.Section{textSection(t, "content")},
	}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	first, err := svc.Publish(context.Background())
	if err != nil {
		t.Fatalf("first publish failed: %v", err)
	}
	second, err := svc.Publish(context.Background())
	if err != nil {
		t.Fatalf("second publish failed: %v", err)
	}
	if second.Version != first.Version+1 {
		t.Errorf("expected version %d, got %d", first.Version+1, second.Version)
	}
}

func TestPublishSucceedsWhenNotifierFails(t *testing.T) {
	repo := mocks.NewMockContentPageRepository()
	notifier := &stubNotifier{Err: errors.New("connection refused")}
	svc := newTestContentPageService(repo, notifier, time.Now())

	if _, err := svc.Save(context.Background(), &models.ContentPageInput{
		Sections: []models.Section{textSection(t, "content")},
	}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	page, err := svc.Publish(context.Background())
	if err != nil {
		t.Fatalf("publish must not fail on notifier error: %v", err)
	}
	if page.Version != 2 {
		t.Errorf("expected version 2, got %d", page.Version)
	}
	if len(notifier.Paths) != 1 {
		t.Errorf("expected exactly one notification attempt, got %d", len(notifier.Paths))
	}
}

func TestGetPublishedBeforeAnyPublish(t *testing.T) {
	repo := mocks.NewMockContentPageRepository()
	svc := newTestContentPageService(repo, &stubNotifier{}, time.Now())

	// A saved draft alone is not publicly visible
	if _, err := svc.Save(context.Background(), &models.ContentPageInput{
		Sections: []models.Section{textSection(t, "draft only")},
	}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	_, err := svc.GetPublished(context.Background())
	assertServiceError(t, err, http.StatusNotFound, MsgContentPageNotFound)
}
