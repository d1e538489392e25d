package service_test

import (
	"testing"
	"time"

	"tubeshare-go/internal/model"
	"tubeshare-go/internal/service"
)

func TestCreateCommentCarriesDisplayName(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "auth0|alice", "Alice")
	video := env.createVideo(t, user.ID, "First video", time.Now())

	view, err := env.commentService.Create(user.ID, video.ID, "great video")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if view.Content != "great video" {
		t.Errorf("Expected content stored verbatim, got %q", view.Content)
	}
	if view.DisplayName != "Alice" {
		t.Errorf("Expected author display name Alice, got %q", view.DisplayName)
	}
	if view.Likes != 0 || view.Dislikes != 0 {
		t.Errorf("Expected fresh comment with zero counters, got %d/%d", view.Likes, view.Dislikes)
	}
}

func TestCreateCommentUnknownVideo(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "auth0|alice", "Alice")

	if _, err := env.commentService.Create(user.ID, 9999, "hello"); err != service.ErrVideoNotFound {
		t.Errorf("Expected ErrVideoNotFound, got %v", err)
	}
}

func TestListByVideoRanksByLikesThenDislikes(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "auth0|alice", "Alice")
	video := env.createVideo(t, user.ID, "First video", time.Now())

	// Three comments: ranked by likes desc, ties broken by dislikes asc.
	low := env.createComment(t, user.ID, video.ID, "low", 0, 1)
	midWorse := env.createComment(t, user.ID, video.ID, "mid worse", 1, 2)
	midBetter := env.createComment(t, user.ID, video.ID, "mid better", 1, 0)
	top := env.createComment(t, user.ID, video.ID, "top", 3, 5)

	views, err := env.commentService.ListByVideo(video.ID)
	if err != nil {
		t.Fatalf("ListByVideo failed: %v", err)
	}

	wantOrder := []int64{top.ID, midBetter.ID, midWorse.ID, low.ID}
	if len(views) != len(wantOrder) {
		t.Fatalf("Expected %d comments, got %d", len(wantOrder), len(views))
	}
	for i, want := range wantOrder {
		if views[i].ID != want {
			t.Errorf("Position %d: expected comment %d, got %d (%q)",
				i, want, views[i].ID, views[i].Content)
		}
	}
}

func TestDeleteCommentRequiresAuthorship(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "auth0|alice", "Alice")
	intruder := env.createUser(t, "auth0|mallory", "Mallory")
	video := env.createVideo(t, author.ID, "First video", time.Now())
	comment := env.createComment(t, author.ID, video.ID, "mine", 0, 0)

	if err := env.commentService.Delete(comment.ID, intruder.ID); err != service.ErrCommentNoPermission {
		t.Fatalf("Expected ErrCommentNoPermission, got %v", err)
	}

	// The row is untouched after the refused delete.
	var count int64
	env.db.Model(&model.Comment{}).Where("id = ?", comment.ID).Count(&count)
	if count != 1 {
		t.Fatalf("Expected comment to survive the refused delete")
	}

	if err := env.commentService.Delete(comment.ID, author.ID); err != nil {
		t.Fatalf("Author delete failed: %v", err)
	}

	env.db.Model(&model.Comment{}).Where("id = ?", comment.ID).Count(&count)
	if count != 0 {
		t.Errorf("Expected comment deleted by its author")
	}
}

func TestDeleteUnknownComment(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "auth0|alice", "Alice")

	if err := env.commentService.Delete(9999, user.ID); err != service.ErrCommentNotFound {
		t.Errorf("Expected ErrCommentNotFound, got %v", err)
	}
}

func TestLikeAndDislikeReturnNewCounts(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "auth0|alice", "Alice")
	video := env.createVideo(t, user.ID, "First video", time.Now())
	comment := env.createComment(t, user.ID, video.ID, "count me", 0, 0)

	for want := int64(1); want <= 3; want++ {
		got, err := env.commentService.Like(comment.ID)
		if err != nil {
			t.Fatalf("Like failed: %v", err)
		}
		if got != want {
			t.Errorf("Expected likes %d, got %d", want, got)
		}
	}

	got, err := env.commentService.Dislike(comment.ID)
	if err != nil {
		t.Fatalf("Dislike failed: %v", err)
	}
	if got != 1 {
		t.Errorf("Expected dislikes 1, got %d", got)
	}

	var stored model.Comment
	env.db.First(&stored, comment.ID)
	if stored.Likes != 3 || stored.Dislikes != 1 {
		t.Errorf("Expected persisted counters 3/1, got %d/%d", stored.Likes, stored.Dislikes)
	}
}

func TestLikeUnknownComment(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.commentService.Like(9999); err != service.ErrCommentNotFound {
		t.Errorf("Expected ErrCommentNotFound, got %v", err)
	}
}
