package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
)

func TestChallengeSolverService_Routes(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	hc := NewMockChallengeSolver(ctrl)

	ch := entity.Challenge{ID: "c1", Type: entity.ChallengeTypeHashcash}
	hc.EXPECT().Solve(gomock.Any(), ch).Return("s:n:1", nil)

	svc := NewChallengeSolverService()
	svc.Register(entity.ChallengeTypeHashcash, hc)

	got, err := svc.Solve(context.Background(), ch)
	require.NoError(t, err)
	assert.Equal(t, "s:n:1", got)

	_, err = svc.Solve(context.Background(), entity.Challenge{Type: entity.ChallengeTypeTurnstile})
	assert.ErrorContains(t, err, "no solver registered")
}

func TestGitHubSolver(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		ch      entity.Challenge
		want    string
		wantErr bool
	}{
		{
			name: "typed",
			ch:   entity.Challenge{Data: &entity.ChallengeData{Case: entity.CaseGitHub, GitHub: &entity.GitHubChallengeData{AuthorizeURL: "https://github.com/login/oauth/authorize?x=1"}}},
			want: "https://github.com/login/oauth/authorize?x=1",
		},
		{
			name: "legacy_raw_url",
			ch:   entity.Challenge{Extra: map[string]string{entity.ExtraChallengeData: "https://github.com/login"}},
			want: "https://github.com/login",
		},
		{
			name: "legacy_json",
			ch:   entity.Challenge{Extra: map[string]string{entity.ExtraChallengeData: `{"authorizeUrl":"https://github.com/a"}`}},
			want: "https://github.com/a",
		},
		{name: "legacy_garbage", ch: entity.Challenge{Extra: map[string]string{entity.ExtraChallengeData: "not a url"}}, wantErr: true},
		{name: "missing", ch: entity.Challenge{}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := GitHubSolver{}.Solve(context.Background(), tc.ch)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTurnstileSolver(t *testing.T) {
	t.Parallel()

	ch := entity.Challenge{Data: &entity.ChallengeData{Case: entity.CaseTurnstile, Turnstile: &entity.TurnstileChallengeData{SiteKey: "site", Action: "login"}}}

	_, err := TurnstileSolver{}.Solve(context.Background(), ch)
	assert.ErrorIs(t, err, ErrValidation)

	s := TurnstileSolver{Provider: func(_ context.Context, siteKey, action string) (string, error) {
		return siteKey + "/" + action, nil
	}}
	got, err := s.Solve(context.Background(), ch)
	require.NoError(t, err)
	assert.Equal(t, "site/login", got)

	boom := errors.New("boom")
	s.Provider = func(context.Context, string, string) (string, error) { return "", boom }
	_, err = s.Solve(context.Background(), ch)
	assert.ErrorIs(t, err, boom)
}
