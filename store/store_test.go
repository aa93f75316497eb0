// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/campaign-signup/models"
	"github.com/danielhkuo/campaign-signup/testutil"
)

func newParticipant(campaignID int64, name, cpf string) models.Participant {
	return models.Participant{
		FullName:            name,
		BirthDate:           time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
		CPF:                 cpf,
		Address:             "Rua A, 1",
		ResponsibleFullName: name,
		WhatsAppContact:     "11 99999-0000",
		HowHeard:            models.DefaultHowHeard,
		Profession:          models.DefaultProfession,
		HouseholdMembers:    2,
		RegistrationDate:    time.Now(),
		CampaignID:          campaignID,
	}
}

func TestCreateCampaign(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	campaign, err := s.CreateCampaign(ctx, "Natal Solidário", now)
	require.NoError(t, err)
	assert.NotZero(t, campaign.ID)
	assert.False(t, campaign.IsOpen, "new campaigns start closed")

	got, err := s.GetCampaign(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, "Natal Solidário", got.Name)
	assert.False(t, got.IsOpen)
	assert.True(t, now.Equal(got.CreationDate), "creation date %v", got.CreationDate)
}

func TestCreateCampaign_DuplicateName(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	_, err := s.CreateCampaign(ctx, "Natal", time.Now())
	require.NoError(t, err)

	_, err = s.CreateCampaign(ctx, "Natal", time.Now())
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, 1, testutil.CountRows(t, conn, "campaign"))
}

func TestListCampaigns_Ordering(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"Primeira", "Segunda", "Terceira"} {
		_, err := s.CreateCampaign(ctx, name, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
	}

	all, err := s.ListCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Terceira", all[0].Name)
	assert.Equal(t, "Segunda", all[1].Name)
	assert.Equal(t, "Primeira", all[2].Name)

	// Only open campaigns are public
	_, err = s.ToggleCampaign(ctx, all[0].ID)
	require.NoError(t, err)
	_, err = s.ToggleCampaign(ctx, all[2].ID)
	require.NoError(t, err)

	open, err := s.ListOpenCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "Terceira", open[0].Name)
	assert.Equal(t, "Primeira", open[1].Name)
}

func TestListCampaigns_Empty(t *testing.T) {
	s := New(testutil.SetupTestDB(t))

	all, err := s.ListCampaigns(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestToggleCampaign(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	campaign, err := s.CreateCampaign(ctx, "Inverno", time.Now())
	require.NoError(t, err)

	toggled, err := s.ToggleCampaign(ctx, campaign.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsOpen)

	toggled, err = s.ToggleCampaign(ctx, campaign.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsOpen)

	_, err = s.ToggleCampaign(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetOpenCampaign(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	open := testutil.CreateTestCampaign(t, conn, "Aberta", true)
	closed := testutil.CreateTestCampaign(t, conn, "Fechada", false)

	got, err := s.GetOpenCampaign(ctx, open.ID)
	require.NoError(t, err)
	assert.Equal(t, open.ID, got.ID)

	_, err = s.GetOpenCampaign(ctx, closed.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetOpenCampaign(ctx, 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateParticipant(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	campaign := testutil.CreateTestCampaign(t, conn, "Páscoa", true)
	p := newParticipant(campaign.ID, "Maria Silva", "123.456.789-00")
	p.AddressComplement = "Casa 2"

	id, err := s.CreateParticipant(ctx, p)
	require.NoError(t, err)
	assert.NotZero(t, id)

	got, err := s.GetParticipant(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", got.FullName)
	assert.Equal(t, "123.456.789-00", got.CPF)
	assert.Equal(t, "Casa 2", got.AddressComplement)
	assert.Equal(t, 2, got.HouseholdMembers)
	assert.Equal(t, campaign.ID, got.CampaignID)
	assert.False(t, got.IsApproved)
	assert.Equal(t, 1990, got.BirthDate.Year())
}

func TestCreateParticipant_DuplicateCPFAcrossCampaigns(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	first := testutil.CreateTestCampaign(t, conn, "Primeira", true)
	second := testutil.CreateTestCampaign(t, conn, "Segunda", true)

	_, err := s.CreateParticipant(ctx, newParticipant(first.ID, "Maria Silva", "123.456.789-00"))
	require.NoError(t, err)

	_, err = s.CreateParticipant(ctx, newParticipant(first.ID, "Maria S.", "123.456.789-00"))
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = s.CreateParticipant(ctx, newParticipant(second.ID, "Outra Maria", "123.456.789-00"))
	assert.ErrorIs(t, err, ErrDuplicate)

	assert.Equal(t, 1, testutil.CountRows(t, conn, "participant"))
}

func TestCreateParticipant_UnknownCampaign(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)

	_, err := s.CreateParticipant(context.Background(), newParticipant(404, "Ana", "111.111.111-11"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, 0, testutil.CountRows(t, conn, "participant"))
}

func TestCreateParticipant_ConcurrentDuplicates(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	campaign := testutil.CreateTestCampaign(t, conn, "Concorrida", true)

	const attempts = 8
	var ok, dup atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.CreateParticipant(context.Background(),
				newParticipant(campaign.ID, fmt.Sprintf("Pessoa %d", i), "999.999.999-99"))
			switch {
			case err == nil:
				ok.Add(1)
			case err == ErrDuplicate:
				dup.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(attempts-1), dup.Load())
	assert.Equal(t, 1, testutil.CountRows(t, conn, "participant"))
}

func TestApproveParticipant_Idempotent(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	campaign := testutil.CreateTestCampaign(t, conn, "Aprovação", true)
	p := testutil.CreateTestParticipant(t, conn, campaign.ID, "Ana", "222.222.222-22", false)

	approved, err := s.ApproveParticipant(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	again, err := s.ApproveParticipant(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, again.IsApproved)

	_, err = s.ApproveParticipant(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListParticipants(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	campaign := testutil.CreateTestCampaign(t, conn, "Lista", true)
	other := testutil.CreateTestCampaign(t, conn, "Outra", true)

	a := testutil.CreateTestParticipant(t, conn, campaign.ID, "A", "000.000.000-01", true)
	testutil.CreateTestParticipant(t, conn, campaign.ID, "B", "000.000.000-02", false)
	c := testutil.CreateTestParticipant(t, conn, campaign.ID, "C", "000.000.000-03", true)
	testutil.CreateTestParticipant(t, conn, other.ID, "D", "000.000.000-04", true)

	all, err := s.ListParticipants(ctx, campaign.ID, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{all[0].FullName, all[1].FullName, all[2].FullName})

	approved, err := s.ListParticipants(ctx, campaign.ID, true)
	require.NoError(t, err)
	require.Len(t, approved, 2)
	assert.Equal(t, a.ID, approved[0].ID)
	assert.Equal(t, c.ID, approved[1].ID)
}

func TestGetCampaignWithParticipants(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	campaign := testutil.CreateTestCampaign(t, conn, "Detalhe", false)
	testutil.CreateTestParticipant(t, conn, campaign.ID, "A", "000.000.000-01", false)

	detail, err := s.GetCampaignWithParticipants(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, "Detalhe", detail.Campaign.Name)
	assert.Len(t, detail.Participants, 1)

	_, err = s.GetCampaignWithParticipants(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClosingCampaignKeepsParticipants(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	campaign := testutil.CreateTestCampaign(t, conn, "Temporária", true)
	testutil.CreateTestParticipant(t, conn, campaign.ID, "A", "000.000.000-01", false)

	_, err := s.ToggleCampaign(ctx, campaign.ID)
	require.NoError(t, err)

	participants, err := s.ListParticipants(ctx, campaign.ID, false)
	require.NoError(t, err)
	assert.Len(t, participants, 1)
}
