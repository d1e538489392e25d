package service_test

import (
	"fmt"
	"testing"
	"time"

	"tubeshare-go/internal/api/dto"
	"tubeshare-go/internal/model"
	"tubeshare-go/internal/service"
)

func TestListCatalogPagination(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "auth0|alice", "Alice")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		env.createVideo(t, user.ID, fmt.Sprintf("Video %02d", i), base.Add(time.Duration(i)*time.Minute))
	}

	cases := []struct {
		page, pageSize int
		wantLen        int
		wantPages      int64
	}{
		{1, 10, 10, 3},
		{2, 10, 10, 3},
		{3, 10, 5, 3},
		{4, 10, 0, 3},
		{1, 25, 25, 1},
		{1, 7, 7, 4},
	}

	for _, tc := range cases {
		data, err := env.videoService.ListCatalog(tc.page, tc.pageSize, "", nil)
		if err != nil {
			t.Fatalf("ListCatalog(page=%d, size=%d) failed: %v", tc.page, tc.pageSize, err)
		}
		if data.Total != 25 {
			t.Errorf("page=%d size=%d: expected total 25, got %d", tc.page, tc.pageSize, data.Total)
		}
		if len(data.Videos) != tc.wantLen {
			t.Errorf("page=%d size=%d: expected %d rows, got %d", tc.page, tc.pageSize, tc.wantLen, len(data.Videos))
		}
		if data.Pages != tc.wantPages {
			t.Errorf("page=%d size=%d: expected %d pages, got %d", tc.page, tc.pageSize, tc.wantPages, data.Pages)
		}
		if data.Page != tc.page {
			t.Errorf("Expected echoed page %d, got %d", tc.page, data.Page)
		}
	}
}

func TestListCatalogNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "auth0|alice", "Alice")

	base := time.Now().Add(-time.Hour)
	oldest := env.createVideo(t, user.ID, "Oldest", base)
	middle := env.createVideo(t, user.ID, "Middle", base.Add(time.Minute))
	newest := env.createVideo(t, user.ID, "Newest", base.Add(2*time.Minute))

	data, err := env.videoService.ListCatalog(1, 10, "", nil)
	if err != nil {
		t.Fatalf("ListCatalog failed: %v", err)
	}

	wantOrder := []int64{newest.ID, middle.ID, oldest.ID}
	for i, want := range wantOrder {
		if data.Videos[i].ID != want {
			t.Errorf("Position %d: expected video %d, got %d", i, want, data.Videos[i].ID)
		}
	}
}

func TestListCatalogSearchIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "auth0|alice", "Alice")

	now := time.Now()
	env.createVideo(t, user.ID, "Ocean Documentary", now)
	env.createVideo(t, user.ID, "Deep OCEAN dive", now.Add(time.Minute))
	env.createVideo(t, user.ID, "Mountain hike", now.Add(2*time.Minute))

	for _, term := range []string{"ocean", "OCEAN", "Ocean"} {
		data, err := env.videoService.ListCatalog(1, 10, term, nil)
		if err != nil {
			t.Fatalf("ListCatalog(%q) failed: %v", term, err)
		}
		if data.Total != 2 {
			t.Errorf("Search %q: expected 2 matches, got %d", term, data.Total)
		}
	}

	data, err := env.videoService.ListCatalog(1, 10, "submarine", nil)
	if err != nil {
		t.Fatalf("ListCatalog failed: %v", err)
	}
	if data.Total != 0 {
		t.Errorf("Expected no matches for submarine, got %d", data.Total)
	}
}

func TestListCatalogAnnotatesFavorites(t *testing.T) {
	env := newTestEnv(t)
	viewer := env.createUser(t, "auth0|alice", "Alice")
	other := env.createUser(t, "auth0|bob", "Bob")

	now := time.Now()
	favorited := env.createVideo(t, other.ID, "Favorited", now)
	plain := env.createVideo(t, other.ID, "Plain", now.Add(time.Minute))

	if _, err := env.favoriteService.Toggle(viewer.ID, favorited.ID); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	// Anonymous listing: nothing is marked.
	data, err := env.videoService.ListCatalog(1, 10, "", nil)
	if err != nil {
		t.Fatalf("ListCatalog failed: %v", err)
	}
	for _, v := range data.Videos {
		if v.IsFavorite {
			t.Errorf("Anonymous viewer: video %d unexpectedly marked favorite", v.ID)
		}
	}

	// Authenticated listing: only the favorited row is marked.
	data, err = env.videoService.ListCatalog(1, 10, "", &viewer.ID)
	if err != nil {
		t.Fatalf("ListCatalog failed: %v", err)
	}
	marks := map[int64]bool{}
	for _, v := range data.Videos {
		marks[v.ID] = v.IsFavorite
	}
	if !marks[favorited.ID] {
		t.Errorf("Expected video %d marked favorite", favorited.ID)
	}
	if marks[plain.ID] {
		t.Errorf("Expected video %d not marked favorite", plain.ID)
	}
}

func TestGetDetailCountsEveryView(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "auth0|alice", "Alice")
	video := env.createVideo(t, user.ID, "Counted", time.Now())

	for want := int64(1); want <= 3; want++ {
		view, err := env.videoService.GetDetail(video.ID, nil)
		if err != nil {
			t.Fatalf("GetDetail failed: %v", err)
		}
		if view.Views != want {
			t.Errorf("Fetch %d: expected %d views, got %d", want, want, view.Views)
		}
	}

	var stored model.Video
	env.db.First(&stored, video.ID)
	if stored.ViewCount != 3 {
		t.Errorf("Expected persisted view count 3, got %d", stored.ViewCount)
	}
}

func TestGetDetailIncludesRankedCommentsAndUploader(t *testing.T) {
	env := newTestEnv(t)
	uploader := env.createUser(t, "auth0|alice", "Alice")
	video := env.createVideo(t, uploader.ID, "With comments", time.Now())

	worst := env.createComment(t, uploader.ID, video.ID, "worst", 0, 3)
	best := env.createComment(t, uploader.ID, video.ID, "best", 5, 0)

	view, err := env.videoService.GetDetail(video.ID, nil)
	if err != nil {
		t.Fatalf("GetDetail failed: %v", err)
	}

	if view.Uploader == nil || view.Uploader.DisplayName != "Alice" {
		t.Errorf("Expected uploader Alice embedded, got %+v", view.Uploader)
	}
	if len(view.Comments) != 2 {
		t.Fatalf("Expected 2 nested comments, got %d", len(view.Comments))
	}
	if view.Comments[0].ID != best.ID || view.Comments[1].ID != worst.ID {
		t.Errorf("Expected comments ranked best-first, got [%d %d]", view.Comments[0].ID, view.Comments[1].ID)
	}
}

func TestGetDetailUnknownVideo(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.videoService.GetDetail(9999, nil); err != service.ErrVideoNotFound {
		t.Errorf("Expected ErrVideoNotFound, got %v", err)
	}
}

func TestSearchVideosFallsBackToDatabase(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "auth0|alice", "Alice")
	env.createVideo(t, user.ID, "Ocean Documentary", time.Now())
	env.createVideo(t, user.ID, "Mountain hike", time.Now())

	// No Elasticsearch client in tests: the search degrades to the
	// relational title filter.
	data, err := env.searchService.SearchVideos(&dto.SearchVideosRequest{Query: "ocean"})
	if err != nil {
		t.Fatalf("SearchVideos failed: %v", err)
	}
	if data.Source != "database" {
		t.Errorf("Expected database fallback, got source %q", data.Source)
	}
	if data.Total != 1 {
		t.Errorf("Expected 1 match, got %d", data.Total)
	}
	if data.Page != 1 || data.PageSize != 20 {
		t.Errorf("Expected clamped defaults page=1 size=20, got %d/%d", data.Page, data.PageSize)
	}
}
