package service

import (
	"Zheye/internal/api/dto"
	"Zheye/internal/pkg/consts"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitAnswer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	carol := env.register(t, "carol")
	require.NoError(t, env.userFollow.Follow(ctx, carol.ID, "bob"))
	qid := env.ask(t, alice.ID, "q", env.topicNamed(t, "Go").ID)
	qidStr := strconv.FormatUint(qid, 10)

	_, err := env.answer.SubmitAnswer(ctx, bob.ID, &dto.SubmitAnswerDTO{WriteAnswer: "x", QuestionID: "abc"})
	assert.ErrorIs(t, err, ErrFail)
	_, err = env.answer.SubmitAnswer(ctx, bob.ID, &dto.SubmitAnswerDTO{WriteAnswer: "   ", QuestionID: qidStr})
	assert.ErrorIs(t, err, ErrFail)
	_, err = env.answer.SubmitAnswer(ctx, bob.ID, &dto.SubmitAnswerDTO{WriteAnswer: "<script>alert(1)</script>", QuestionID: qidStr})
	assert.ErrorIs(t, err, ErrFail)
	_, err = env.answer.SubmitAnswer(ctx, bob.ID, &dto.SubmitAnswerDTO{WriteAnswer: "x", QuestionID: "999"})
	assert.ErrorIs(t, err, ErrFail)

	answer, err := env.answer.SubmitAnswer(ctx, bob.ID, &dto.SubmitAnswerDTO{
		WriteAnswer: `<p>用 <b>pprof</b></p><script>alert(1)</script>`,
		QuestionID:  qidStr,
	})
	require.NoError(t, err)
	assert.NotContains(t, answer.Body, "script")
	assert.Equal(t, "用 pprof", answer.Excerpt)

	question, err := env.questionRepo.GetQuestionById(ctx, qid)
	require.NoError(t, err)
	assert.Equal(t, 1, question.AnswerCount)

	items := env.inbox.byReceiver(carol.ID)
	require.Len(t, items, 1)
	assert.Equal(t, consts.NotifyAnswer, items[0].Kind)
	assert.Equal(t, qid, items[0].TargetID)
	assert.Equal(t, "用 pprof", items[0].Content)

	dynamics, err := env.dynamic.SearchDynamic(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, dynamics, 1)
	assert.Equal(t, consts.DynamicAnswer, dynamics[0].Kind)
	assert.Equal(t, "q", dynamics[0].Title)
}

func TestDeleteAnswer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	qid := env.ask(t, alice.ID, "q", env.topicNamed(t, "Go").ID)

	answer, err := env.answer.SubmitAnswer(ctx, bob.ID, &dto.SubmitAnswerDTO{WriteAnswer: "a", QuestionID: strconv.FormatUint(qid, 10)})
	require.NoError(t, err)

	assert.ErrorIs(t, env.answer.DeleteAnswer(ctx, alice.ID, answer.ID), ErrFail)
	assert.ErrorIs(t, env.answer.DeleteAnswer(ctx, bob.ID, 999), ErrFail)
	require.NoError(t, env.answer.DeleteAnswer(ctx, bob.ID, answer.ID))
	assert.ErrorIs(t, env.answer.DeleteAnswer(ctx, bob.ID, answer.ID), ErrFail)

	question, err := env.questionRepo.GetQuestionById(ctx, qid)
	require.NoError(t, err)
	assert.Zero(t, question.AnswerCount)
}

func TestSubmitComment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	qid := env.ask(t, alice.ID, "q", env.topicNamed(t, "Go").ID)
	answer, err := env.answer.SubmitAnswer(ctx, alice.ID, &dto.SubmitAnswerDTO{WriteAnswer: "a", QuestionID: strconv.FormatUint(qid, 10)})
	require.NoError(t, err)
	answerID := strconv.FormatUint(answer.ID, 10)

	_, err = env.answer.SubmitComment(ctx, alice.ID, &dto.SubmitCommentDTO{AnswerID: answerID, CommentBody: "  "})
	assert.ErrorIs(t, err, ErrCommentInvalid)
	_, err = env.answer.SubmitComment(ctx, alice.ID, &dto.SubmitCommentDTO{AnswerID: answerID, CommentBody: strings.Repeat("评", 201)})
	assert.ErrorIs(t, err, ErrCommentInvalid)
	_, err = env.answer.SubmitComment(ctx, alice.ID, &dto.SubmitCommentDTO{AnswerID: "x", CommentBody: "hi"})
	assert.ErrorIs(t, err, ErrCommentInvalid)
	_, err = env.answer.SubmitComment(ctx, alice.ID, &dto.SubmitCommentDTO{AnswerID: "999", CommentBody: "hi"})
	assert.ErrorIs(t, err, ErrFail)
	_, err = env.answer.SubmitComment(ctx, 999, &dto.SubmitCommentDTO{AnswerID: answerID, CommentBody: "hi"})
	assert.ErrorIs(t, err, ErrFail)

	res, err := env.answer.SubmitComment(ctx, alice.ID, &dto.SubmitCommentDTO{AnswerID: answerID, CommentBody: strings.Repeat("评", 200)})
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, 200, len([]rune(res.Comment)))
}
