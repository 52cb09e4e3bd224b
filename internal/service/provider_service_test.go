package service

import (
	"testing"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProvider_Success(t *testing.T) {
	repo := testutil.NewMockProviderRepository()
	publisher := testutil.NewMockEventPublisher()
	svc := NewProviderService(repo)
	svc.SetEventPublisher(publisher)

	provider, err := svc.CreateProvider(1, uuid.New(), CreateProviderInput{
		Name: "  National Insurance ",
		TDS:  dec("10"),
		GST:  dec("18"),
	})
	require.NoError(t, err)

	assert.Equal(t, "National Insurance", provider.Name)
	assert.True(t, provider.IsActive, "providers are active unless stated otherwise")
	assert.NotZero(t, provider.ID)

	last, ok := publisher.Last()
	require.True(t, ok)
	assert.Equal(t, int32(1), last.WorkspaceID)
	assert.Equal(t, "provider.created", last.Event.Type)
}

func TestCreateProvider_Validation(t *testing.T) {
	svc := NewProviderService(testutil.NewMockProviderRepository())

	_, err := svc.CreateProvider(1, uuid.New(), CreateProviderInput{Name: "", TDS: dec("-1"), GST: dec("120")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	verrs := err.(domain.ValidationErrors)
	assert.Len(t, verrs, 3)
}

func TestCreateProvider_DuplicateNameIsCaseInsensitive(t *testing.T) {
	repo := testutil.NewMockProviderRepository()
	repo.AddProvider(&domain.Provider{ID: 1, WorkspaceID: 1, Name: "National Insurance"})
	svc := NewProviderService(repo)

	_, err := svc.CreateProvider(1, uuid.New(), CreateProviderInput{Name: "national insurance"})
	assert.ErrorIs(t, err, domain.ErrProviderNameExists)

	_, err = svc.CreateProvider(2, uuid.New(), CreateProviderInput{Name: "National Insurance"})
	assert.NoError(t, err, "names are unique per workspace only")
}

func TestGetProviders_SearchAndPaging(t *testing.T) {
	repo := testutil.NewMockProviderRepository()
	for i, name := range []string{"National Insurance", "New India Assurance", "Acme General"} {
		repo.AddProvider(&domain.Provider{ID: int32(i + 1), WorkspaceID: 1, Name: name, IsActive: true})
	}
	svc := NewProviderService(repo)

	page, err := svc.GetProviders(1, domain.ListParams{Search: " n", PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total, "every name contains an n")
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int32(3), page.TotalPages)

	page, err = svc.GetProviders(1, domain.ListParams{Search: "india"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "New India Assurance", page.Items[0].Name)
}

func TestUpdateProvider(t *testing.T) {
	repo := testutil.NewMockProviderRepository()
	repo.AddProvider(&domain.Provider{ID: 1, WorkspaceID: 1, Name: "National", TDS: dec("10"), GST: dec("18"), IsActive: true})
	repo.AddProvider(&domain.Provider{ID: 2, WorkspaceID: 1, Name: "Acme", IsActive: true})
	svc := NewProviderService(repo)

	inactive := false
	updated, err := svc.UpdateProvider(1, 1, uuid.New(), UpdateProviderInput{GST: decPtr("12"), IsActive: &inactive})
	require.NoError(t, err)
	assert.True(t, dec("12").Equal(updated.GST))
	assert.True(t, dec("10").Equal(updated.TDS))
	assert.False(t, updated.IsActive)

	_, err = svc.UpdateProvider(1, 1, uuid.New(), UpdateProviderInput{Name: strPtr("ACME")})
	assert.ErrorIs(t, err, domain.ErrProviderNameExists)

	_, err = svc.UpdateProvider(1, 1, uuid.New(), UpdateProviderInput{TDS: decPtr("101")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stored, err := repo.GetByID(1, 1)
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(stored.TDS), "rejected update leaves the provider unchanged")
}

func TestDeleteProvider(t *testing.T) {
	repo := testutil.NewMockProviderRepository()
	repo.AddProvider(&domain.Provider{ID: 1, WorkspaceID: 1, Name: "National"})
	publisher := testutil.NewMockEventPublisher()
	svc := NewProviderService(repo)
	svc.SetEventPublisher(publisher)

	require.NoError(t, svc.DeleteProvider(1, 1))

	_, err := svc.GetProviderByID(1, 1)
	assert.ErrorIs(t, err, domain.ErrProviderNotFound)

	last, _ := publisher.Last()
	assert.Equal(t, "provider.deleted", last.Event.Type)
	assert.ErrorIs(t, svc.DeleteProvider(2, 1), domain.ErrProviderNotFound)
}
