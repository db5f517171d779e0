package repository

import (
	"Zheye/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateAndDeleteAnswer(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	answers := NewAnswerRepo(db)
	comments := NewCommentRepo(db)
	questions := NewQuestionRepo(db)
	u := seedUser(t, db, "writer")
	q := seedQuestion(t, db, u.ID, "q", seedTopic(t, db, "Go").ID)

	a := &model.Answer{QuestionID: q.ID, UserID: u.ID, Body: "<p>hi</p>", Excerpt: "hi"}
	require.NoError(t, answers.CreateAnswer(ctx, a))
	require.NoError(t, comments.CreateComment(ctx, &model.Comment{AnswerID: a.ID, UserID: u.ID, Body: "nice"}))

	got, err := questions.GetQuestionById(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.AnswerCount)

	stored, err := answers.GetAnswerById(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.CommentCount)

	require.NoError(t, answers.DeleteAnswer(ctx, stored))

	got, err = questions.GetQuestionById(ctx, q.ID)
	require.NoError(t, err)
	assert.Zero(t, got.AnswerCount)

	left, err := comments.ListByAnswerIds(ctx, []uint64{a.ID})
	require.NoError(t, err)
	assert.Empty(t, left)

	assert.ErrorIs(t, answers.DeleteAnswer(ctx, stored), gorm.ErrRecordNotFound)
}

func TestCreateAnswerMissingQuestion(t *testing.T) {
	db := newTestDB(t)
	err := NewAnswerRepo(db).CreateAnswer(context.Background(), &model.Answer{QuestionID: 404, UserID: 1, Body: "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateCommentMissingAnswer(t *testing.T) {
	db := newTestDB(t)
	err := NewCommentRepo(db).CreateComment(context.Background(), &model.Comment{AnswerID: 404, UserID: 1, Body: "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBestAnswers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	answers := NewAnswerRepo(db)
	comments := NewCommentRepo(db)
	u := seedUser(t, db, "writer")
	topic := seedTopic(t, db, "Go")
	q1 := seedQuestion(t, db, u.ID, "q1", topic.ID)
	q2 := seedQuestion(t, db, u.ID, "q2", topic.ID)
	q3 := seedQuestion(t, db, u.ID, "q3", topic.ID)

	popular := &model.Answer{QuestionID: q1.ID, UserID: u.ID, Body: "a"}
	quiet := &model.Answer{QuestionID: q1.ID, UserID: u.ID, Body: "b"}
	older := &model.Answer{QuestionID: q2.ID, UserID: u.ID, Body: "c"}
	newer := &model.Answer{QuestionID: q2.ID, UserID: u.ID, Body: "d"}
	for _, a := range []*model.Answer{popular, quiet, older, newer} {
		require.NoError(t, answers.CreateAnswer(ctx, a))
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, comments.CreateComment(ctx, &model.Comment{AnswerID: popular.ID, UserID: u.ID, Body: "+1"}))
	}

	best, err := answers.BestAnswers(ctx, []uint64{q1.ID, q2.ID, q3.ID})
	require.NoError(t, err)
	assert.Len(t, best, 2)
	assert.Equal(t, popular.ID, best[q1.ID].ID)
	assert.Equal(t, newer.ID, best[q2.ID].ID)
	_, ok := best[q3.ID]
	assert.False(t, ok)

	empty, err := answers.BestAnswers(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListAnswersByUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	answers := NewAnswerRepo(db)
	u := seedUser(t, db, "writer")
	topic := seedTopic(t, db, "Go")
	for i := 0; i < 3; i++ {
		q := seedQuestion(t, db, u.ID, "q", topic.ID)
		require.NoError(t, answers.CreateAnswer(ctx, &model.Answer{QuestionID: q.ID, UserID: u.ID, Body: "x"}))
	}

	page, err := answers.ListByUser(ctx, u.ID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	count, err := answers.CountByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
