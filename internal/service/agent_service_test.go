package service

import (
	"testing"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAgentInput() CreateAgentInput {
	return CreateAgentInput{
		Name:        "Ravi Kumar",
		PhoneNumber: "9876543210",
		Email:       "ravi@example.com",
		Location:    domain.Location{Address: "4 Station Road", City: "Nagpur", State: "Maharashtra"},
	}
}

func TestCreateAgent_InvalidatesDashboard(t *testing.T) {
	repo := testutil.NewMockAgentRepository()
	cache := testutil.NewMockDashboardCache()
	svc := NewAgentService(repo)
	svc.SetDashboardCache(cache)

	agent, err := svc.CreateAgent(1, uuid.New(), newAgentInput())
	require.NoError(t, err)
	assert.True(t, agent.IsActive)
	assert.Equal(t, 1, cache.Invalidations[1])
}

func TestCreateAgent_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *CreateAgentInput)
		field  string
	}{
		{"phone too short", func(in *CreateAgentInput) { in.PhoneNumber = "98765" }, "phoneNumber"},
		{"phone with letters", func(in *CreateAgentInput) { in.PhoneNumber = "98765abcde" }, "phoneNumber"},
		{"bad email", func(in *CreateAgentInput) { in.Email = "ravi@" }, "email"},
		{"address required", func(in *CreateAgentInput) { in.Location.Address = " " }, "location.address"},
		{"script in city", func(in *CreateAgentInput) { in.Location.City = "<script>" }, "location.city"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAgentService(testutil.NewMockAgentRepository())
			input := newAgentInput()
			tt.mutate(&input)

			_, err := svc.CreateAgent(1, uuid.New(), input)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			verrs := err.(domain.ValidationErrors)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestCreateAgent_DuplicatePhone(t *testing.T) {
	repo := testutil.NewMockAgentRepository()
	repo.AddAgent(&domain.Agent{ID: 1, WorkspaceID: 1, Name: "Existing", PhoneNumber: "9876543210"})
	svc := NewAgentService(repo)

	_, err := svc.CreateAgent(1, uuid.New(), newAgentInput())
	assert.ErrorIs(t, err, domain.ErrAgentPhoneExists)
}

func TestGetAgents_SearchesCity(t *testing.T) {
	repo := testutil.NewMockAgentRepository()
	repo.AddAgent(&domain.Agent{ID: 1, WorkspaceID: 1, Name: "Ravi", PhoneNumber: "9876543210", Location: domain.Location{City: "Nagpur"}})
	repo.AddAgent(&domain.Agent{ID: 2, WorkspaceID: 1, Name: "Meena", PhoneNumber: "9876543211", Location: domain.Location{City: "Pune"}})
	svc := NewAgentService(repo)

	page, err := svc.GetAgents(1, domain.ListParams{Search: "pune"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Meena", page.Items[0].Name)
}

func TestUpdateAgent(t *testing.T) {
	repo := testutil.NewMockAgentRepository()
	repo.AddAgent(&domain.Agent{ID: 1, WorkspaceID: 1, Name: "Ravi", PhoneNumber: "9876543210", Location: domain.Location{Address: "4 Station Road"}, IsActive: true})
	repo.AddAgent(&domain.Agent{ID: 2, WorkspaceID: 1, Name: "Meena", PhoneNumber: "9876543211", Location: domain.Location{Address: "7 FC Road"}, IsActive: true})
	cache := testutil.NewMockDashboardCache()
	svc := NewAgentService(repo)
	svc.SetDashboardCache(cache)

	updated, err := svc.UpdateAgent(1, 1, uuid.New(), UpdateAgentInput{City: strPtr(" Nagpur ")})
	require.NoError(t, err)
	assert.Equal(t, "Nagpur", updated.Location.City)
	assert.Equal(t, "9876543210", updated.PhoneNumber)

	// Keeping its own phone number is not a conflict
	_, err = svc.UpdateAgent(1, 1, uuid.New(), UpdateAgentInput{PhoneNumber: strPtr("9876543210")})
	assert.NoError(t, err)

	_, err = svc.UpdateAgent(1, 1, uuid.New(), UpdateAgentInput{PhoneNumber: strPtr("9876543211")})
	assert.ErrorIs(t, err, domain.ErrAgentPhoneExists)
	assert.Equal(t, 2, cache.Invalidations[1])
}

func TestDeleteAgent(t *testing.T) {
	repo := testutil.NewMockAgentRepository()
	repo.AddAgent(&domain.Agent{ID: 1, WorkspaceID: 1, Name: "Ravi", PhoneNumber: "9876543210", IsActive: true})
	publisher := testutil.NewMockEventPublisher()
	svc := NewAgentService(repo)
	svc.SetEventPublisher(publisher)

	require.NoError(t, svc.DeleteAgent(1, 1))

	count, err := repo.CountActive(1)
	require.NoError(t, err)
	assert.Zero(t, count)

	last, _ := publisher.Last()
	assert.Equal(t, "agent.deleted", last.Event.Type)
}
