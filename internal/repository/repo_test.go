package repository

import (
	"Zheye/internal/model"
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Email: username + "@zheye.com", PasswordHash: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedTopic(t *testing.T, db *gorm.DB, name string) *model.Topic {
	t.Helper()
	var category model.TopicCategory
	require.NoError(t, db.FirstOrCreate(&category, model.TopicCategory{CategoryName: "默认"}).Error)
	topic := &model.Topic{CategoryID: category.ID, TopicName: name}
	require.NoError(t, db.Create(topic).Error)
	return topic
}

func seedQuestion(t *testing.T, db *gorm.DB, userID uint64, title string, topicIDs ...uint64) *model.Question {
	t.Helper()
	q := &model.Question{UserID: userID, Title: title}
	require.NoError(t, NewQuestionRepo(db).CreateQuestion(context.Background(), q, topicIDs))
	return q
}
