package session

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
)

func TestRepository_WrapsTransportErrors(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("connection reset")
	client := NewMockSessionServiceClient(ctrl)
	client.EXPECT().InitSession(gomock.Any(), gomock.Any()).Return(entity.InitSessionResponse{}, boom)
	client.EXPECT().Challenge(gomock.Any(), gomock.Any()).Return(entity.ChallengeResponse{}, boom)
	client.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(entity.VerifyResponse{}, boom)
	client.EXPECT().Signout(gomock.Any(), gomock.Any()).Return(entity.SignoutResponse{}, boom)
	client.EXPECT().ChallengeTypes(gomock.Any(), gomock.Any()).Return(entity.ChallengeTypesResponse{}, boom)

	repo := NewRepository(client)
	ctx := context.Background()

	_, err := repo.InitSession(ctx, "", "dev")
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "init session")

	_, err = repo.Challenge(ctx, "s1", entity.ChallengeTypeHashcash)
	assert.ErrorIs(t, err, boom)

	_, err = repo.VerifySession(ctx, entity.VerifyRequest{SessionID: "s1"})
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, repo.DeleteSession(ctx, "s1"), boom)

	_, err = repo.GetChallengeTypes(ctx)
	assert.ErrorIs(t, err, boom)
}

func TestRepository_PassesRequests(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := NewMockSessionServiceClient(ctrl)
	client.EXPECT().
		InitSession(gomock.Any(), entity.InitSessionRequest{SessionID: "s1", DeviceID: "dev"}).
		Return(entity.InitSessionResponse{SessionID: "s1", NeedChallenge: true}, nil)
	client.EXPECT().
		Signout(gomock.Any(), entity.SignoutRequest{SessionID: "s1"}).
		Return(entity.SignoutResponse{}, nil)
	client.EXPECT().
		ChallengeTypes(gomock.Any(), gomock.Any()).
		Return(entity.ChallengeTypesResponse{Types: []entity.ChallengeType{entity.ChallengeTypeHashcash}}, nil)

	repo := NewRepository(client)
	ctx := context.Background()

	resp, err := repo.InitSession(ctx, "s1", "dev")
	require.NoError(t, err)
	assert.True(t, resp.NeedChallenge)

	require.NoError(t, repo.DeleteSession(ctx, "s1"))

	types, err := repo.GetChallengeTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.ChallengeType{entity.ChallengeTypeHashcash}, types)
}

func TestRepository_ChallengeNormalization(t *testing.T) {
	t.Parallel()

	hc := &entity.HashcashChallenge{Difficulty: 1, Subject: "s", Algorithm: entity.AlgorithmSHA256, Nonce: "n", MaxProofLength: 5}
	legacy := map[string]string{entity.ExtraChallengeData: `{"difficulty":1}`}

	cases := []struct {
		name string
		resp entity.ChallengeResponse
		want entity.Challenge
	}{
		{
			name: "typed_hashcash",
			resp: entity.ChallengeResponse{ChallengeID: "c1", ChallengeType: entity.ChallengeTypeHashcash, ChallengeData: &entity.ChallengeData{Case: entity.CaseHashcash, Hashcash: hc}},
			want: entity.Challenge{ID: "c1", Type: entity.ChallengeTypeHashcash, Data: &entity.ChallengeData{Case: entity.CaseHashcash, Hashcash: hc}},
		},
		{
			name: "case_inferred_and_type_filled",
			resp: entity.ChallengeResponse{ChallengeID: "c2", ChallengeData: &entity.ChallengeData{Turnstile: &entity.TurnstileChallengeData{SiteKey: "k"}}},
			want: entity.Challenge{ID: "c2", Type: entity.ChallengeTypeTurnstile, Data: &entity.ChallengeData{Case: entity.CaseTurnstile, Turnstile: &entity.TurnstileChallengeData{SiteKey: "k"}}},
		},
		{
			name: "top_level_authorize_url",
			resp: entity.ChallengeResponse{ChallengeID: "c3", ChallengeType: entity.ChallengeTypeGitHub, AuthorizeURL: "https://github.com/login"},
			want: entity.Challenge{ID: "c3", Type: entity.ChallengeTypeGitHub, Data: &entity.ChallengeData{Case: entity.CaseGitHub, GitHub: &entity.GitHubChallengeData{AuthorizeURL: "https://github.com/login"}}},
		},
		{
			name: "legacy_extra_only",
			resp: entity.ChallengeResponse{ChallengeID: "c4", ChallengeType: entity.ChallengeTypeHashcash, Extra: legacy},
			want: entity.Challenge{ID: "c4", Type: entity.ChallengeTypeHashcash, Extra: legacy},
		},
		{
			name: "case_mismatch_ignored",
			resp: entity.ChallengeResponse{ChallengeID: "c5", ChallengeType: entity.ChallengeTypeHashcash, ChallengeData: &entity.ChallengeData{Case: entity.CaseGitHub, Hashcash: hc}},
			want: entity.Challenge{ID: "c5", Type: entity.ChallengeTypeHashcash},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := NewMockSessionServiceClient(ctrl)
			client.EXPECT().Challenge(gomock.Any(), entity.ChallengeRequest{SessionID: "s1"}).Return(tc.resp, nil)

			got, err := NewRepository(client).Challenge(context.Background(), "s1", "")
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Challenge() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRepository_ChallengeDoesNotAliasResponse(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hc := &entity.HashcashChallenge{Difficulty: 1, Subject: "s", Algorithm: entity.AlgorithmSHA256, Nonce: "n"}
	extra := map[string]string{"k": "v"}
	client := NewMockSessionServiceClient(ctrl)
	client.EXPECT().Challenge(gomock.Any(), gomock.Any()).Return(entity.ChallengeResponse{
		ChallengeType: entity.ChallengeTypeHashcash,
		Extra:         extra,
		ChallengeData: &entity.ChallengeData{Case: entity.CaseHashcash, Hashcash: hc},
	}, nil)

	got, err := NewRepository(client).Challenge(context.Background(), "s1", entity.ChallengeTypeHashcash)
	require.NoError(t, err)

	got.Extra["k"] = "changed"
	got.Data.Hashcash.Difficulty = 9
	assert.Equal(t, "v", extra["k"])
	assert.Equal(t, 1, hc.Difficulty)
}
