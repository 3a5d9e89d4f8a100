package services

import (
	"context"
	"strings"
	"testing"

	"github.com/feed-system/social-demo/internal/models"
	"github.com/feed-system/social-demo/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T, f *repository.Fixtures) *UserService {
	t.Helper()
	log, _ := testLogger()
	return NewUserService(repository.NewUserRepository(repository.NewStore(f)), nil, anyPublisher(t), log)
}

func userIDs(users []models.User) []string {
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

func TestUserServiceGetCurrentUser(t *testing.T) {
	s := newTestUserService(t, testFixtures())

	user, err := s.GetCurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.CurrentUserID, user.ID)

	user.Username = "tampered"
	again, err := s.GetCurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alex_rivera", again.Username)
}

func TestUserServiceGetCurrentUserEmptyStore(t *testing.T) {
	s := newTestUserService(t, &repository.Fixtures{})

	_, err := s.GetCurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserServiceGetByID(t *testing.T) {
	s := newTestUserService(t, testFixtures())

	user, err := s.GetByID(context.Background(), "u2")
	require.NoError(t, err)
	assert.Equal(t, "sam", user.Username)

	_, err = s.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserServiceSearchUsers(t *testing.T) {
	s := newTestUserService(t, testFixtures())
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query matches nobody", query: "", want: []string{}},
		{name: "username case-insensitive", query: "MAYA", want: []string{"u1"}},
		{name: "bio case-insensitive", query: "photographer", want: []string{"u2"}},
		{name: "username or bio", query: "er", want: []string{models.CurrentUserID, "u1", "u2", "u3", "u4", "u5", "u6"}},
		{name: "no match", query: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := s.SearchUsers(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, userIDs(users))

			q := strings.ToLower(tt.query)
			for _, u := range users {
				assert.True(t,
					strings.Contains(strings.ToLower(u.Username), q) || strings.Contains(strings.ToLower(u.Bio), q),
					"user %s does not match %q", u.ID, tt.query)
			}
		})
	}
}

func TestUserServiceFollowUnfollow(t *testing.T) {
	s := newTestUserService(t, testFixtures())
	ctx := context.Background()

	user, err := s.FollowUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 11, user.FollowersCount)

	user, err = s.UnfollowUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 10, user.FollowersCount)

	me, err := s.GetByID(ctx, models.CurrentUserID)
	require.NoError(t, err)
	assert.Equal(t, 3, me.FollowingCount, "acting user's following count is not maintained")

	_, err = s.FollowUser(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.UnfollowUser(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserServiceUnfollowClampsAtZero(t *testing.T) {
	s := newTestUserService(t, testFixtures())

	for i := 0; i < 3; i++ {
		user, err := s.UnfollowUser(context.Background(), "u2")
		require.NoError(t, err)
		assert.Equal(t, 0, user.FollowersCount)
	}
}

func TestUserServiceUpdateProfileVisibleToCurrentUser(t *testing.T) {
	s := newTestUserService(t, testFixtures())
	ctx := context.Background()

	user, err := s.UpdateProfile(ctx, models.CurrentUserID, &models.UserPatch{Bio: ptr("new bio")})
	require.NoError(t, err)
	assert.Equal(t, "new bio", user.Bio)
	assert.Equal(t, "alex_rivera", user.Username)

	current, err := s.GetCurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new bio", current.Bio)

	_, err = s.UpdateProfile(ctx, "u1", &models.UserPatch{Username: ptr("maya")})
	require.NoError(t, err)
	current, err = s.GetCurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alex_rivera", current.Username, "editing another user leaves the current user alone")

	_, err = s.UpdateProfile(ctx, "missing", &models.UserPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserServiceCurrentUserTracksFollowerCount(t *testing.T) {
	s := newTestUserService(t, testFixtures())
	ctx := context.Background()

	_, err := s.UnfollowUser(ctx, models.CurrentUserID)
	require.NoError(t, err)
	_, err = s.FollowUser(ctx, models.CurrentUserID)
	require.NoError(t, err)
	_, err = s.FollowUser(ctx, models.CurrentUserID)
	require.NoError(t, err)

	current, err := s.GetCurrentUser(ctx)
	require.NoError(t, err)
	stored, err := s.GetByID(ctx, models.CurrentUserID)
	require.NoError(t, err)

	assert.Equal(t, 11, current.FollowersCount)
	assert.Equal(t, stored.FollowersCount, current.FollowersCount)
}

func TestUserServiceUpdateProfileClearsAvatar(t *testing.T) {
	f := testFixtures()
	f.Users[1].Avatar = ptr("https://example.com/a.jpg")
	s := newTestUserService(t, f)

	user, err := s.UpdateProfile(context.Background(), "u1", &models.UserPatch{Avatar: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, user.Avatar)
}

func TestUserServiceGetSuggestions(t *testing.T) {
	s := newTestUserService(t, testFixtures())

	users, err := s.GetSuggestions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2", "u3", "u4", "u5"}, userIDs(users))
}
