package service

import (
	"context"
	"testing"

	"github.com/planit/api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRepoWith(user *model.User) *mockUserRepo {
	return &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			if user != nil && user.ID == id {
				return user, nil
			}
			return nil, nil
		},
	}
}

func TestUserService_Get(t *testing.T) {
	t.Parallel()

	svc := NewUserService(userRepoWith(&model.User{ID: "user:ana", Username: "analog"}))

	user, err := svc.Get(context.Background(), "user:ana")
	require.NoError(t, err)
	assert.Equal(t, "analog", user.Username)

	_, err = svc.Get(context.Background(), "user:ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_SetInterests(t *testing.T) {
	t.Parallel()

	var stored []string
	repo := userRepoWith(&model.User{ID: "user:ana"})
	repo.updateInterestsFunc = func(ctx context.Context, userID string, interests []string) error {
		stored = interests
		return nil
	}
	svc := NewUserService(repo)

	err := svc.SetInterests(context.Background(), "user:ana", []string{"hiking", "chess"})
	require.NoError(t, err)
	assert.Equal(t, []string{"hiking", "chess"}, stored)
}

func TestUserService_SetInterests_RejectsDuplicates(t *testing.T) {
	t.Parallel()

	svc := NewUserService(userRepoWith(&model.User{ID: "user:ana"}))

	err := svc.SetInterests(context.Background(), "user:ana", []string{"Chess", "chess"})
	assert.ErrorIs(t, err, ErrDuplicateInterests)

	// blank entries count as duplicates of nothing useful
	err = svc.SetInterests(context.Background(), "user:ana", []string{"  "})
	assert.ErrorIs(t, err, ErrDuplicateInterests)
}

func TestUserService_SetInterests_UnknownUser(t *testing.T) {
	t.Parallel()

	svc := NewUserService(userRepoWith(nil))

	err := svc.SetInterests(context.Background(), "user:ghost", []string{"hiking"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_SubmitFeedback(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		createFeedbackFunc: func(ctx context.Context, feedback *model.Feedback) error {
			feedback.ID = "feedback:1"
			return nil
		},
	}
	svc := NewUserService(repo)

	feedback, err := svc.SubmitFeedback(context.Background(), "user:ana", "loved the polls")
	require.NoError(t, err)
	assert.Equal(t, "feedback:1", feedback.ID)
	assert.Equal(t, "user:ana", feedback.UserID)

	_, err = svc.SubmitFeedback(context.Background(), "user:ana", "   ")
	assert.ErrorIs(t, err, ErrBlankFeedback)
}
