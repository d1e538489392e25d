package service_test

import (
	"os"
	"testing"
	"time"

	"tubeshare-go/internal/config"
	"tubeshare-go/internal/model"
	"tubeshare-go/internal/repository"
	"tubeshare-go/internal/service"
	"tubeshare-go/pkg/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init("error", "console", "stdout", ""); err != nil {
		panic(err)
	}
	config.Set(&config.Config{})
	os.Exit(m.Run())
}

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Favorite{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

type testEnv struct {
	db *gorm.DB

	identityService *service.IdentityService
	videoService    *service.VideoService
	favoriteService *service.FavoriteService
	commentService  *service.CommentService
	searchService   *service.SearchService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	return &testEnv{
		db:              db,
		identityService: service.NewIdentityService(userRepo),
		videoService:    service.NewVideoService(videoRepo, favoriteRepo, userRepo),
		favoriteService: service.NewFavoriteService(favoriteRepo, videoRepo),
		commentService:  service.NewCommentService(commentRepo, videoRepo, userRepo),
		searchService:   service.NewSearchService(videoRepo),
	}
}

func (e *testEnv) createUser(t *testing.T, subjectID, displayName string) *model.User {
	t.Helper()

	user := &model.User{SubjectID: subjectID, DisplayName: displayName}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func (e *testEnv) createVideo(t *testing.T, uploaderID int64, title string, uploadedAt time.Time) *model.Video {
	t.Helper()

	video := &model.Video{
		UploaderID: uploaderID,
		Title:      title,
		UploadDate: uploadedAt,
	}
	if err := e.db.Create(video).Error; err != nil {
		t.Fatalf("Failed to create video: %v", err)
	}
	return video
}

func (e *testEnv) createComment(t *testing.T, userID, videoID int64, content string, likes, dislikes int64) *model.Comment {
	t.Helper()

	comment := &model.Comment{
		UserID:   userID,
		VideoID:  videoID,
		Content:  content,
		Likes:    likes,
		Dislikes: dislikes,
	}
	if err := e.db.Create(comment).Error; err != nil {
		t.Fatalf("Failed to create comment: %v", err)
	}
	return comment
}
