package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bienestar-app/bienestar-api/internal/models"
)

func TestCareerRepositoryListVisibleOnlyHidesInactive(t *testing.T) {
	db := setupTestDB(t, &models.User{}, &models.Career{})
	repo := NewCareerRepository(db)

	nursing := models.Career{Name: "Nursing", Description: "Care", Institution: "State University", Duration: "5 years", Active: true}
	retired := models.Career{Name: "Telegraphy", Description: "Legacy", Institution: "Old Institute", Duration: "2 years", Active: false}

	require.NoError(t, repo.Create(context.Background(), &nursing))
	require.NoError(t, repo.Create(context.Background(), &retired))

	visible, total, err := repo.List(context.Background(), CareerFilter{VisibleOnly: true})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, visible, 1)
	require.Equal(t, "Nursing", visible[0].Name)

	all, total, err := repo.List(context.Background(), CareerFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, all, 2)
}

func TestCareerRepositoryListSearchesNameAndInstitution(t *testing.T) {
	db := setupTestDB(t, &models.User{}, &models.Career{})
	repo := NewCareerRepository(db)

	careers := []models.Career{
		{Name: "Software Engineering", Description: "d", Institution: "Tech Institute", Duration: "5 years", Active: true},
		{Name: "Medicine", Description: "d", Institution: "Health Academy", Duration: "7 years", Active: true},
		{Name: "Biology", Description: "d", Institution: "Tech Institute", Duration: "4 years", Active: true},
	}
	for i := range careers {
		require.NoError(t, repo.Create(context.Background(), &careers[i]))
	}

	byName, total, err := repo.List(context.Background(), CareerFilter{Search: "Medicine"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "Medicine", byName[0].Name)

	byInstitution, total, err := repo.List(context.Background(), CareerFilter{Search: "Tech"})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, byInstitution, 2)
	require.Equal(t, "Biology", byInstitution[0].Name, "careers ordered by name")
	require.Equal(t, "Software Engineering", byInstitution[1].Name)
}

func TestCareerRepositoryUpdatePersistsSoftDelete(t *testing.T) {
	db := setupTestDB(t, &models.User{}, &models.Career{})
	repo := NewCareerRepository(db)

	career := models.Career{Name: "Architecture", Description: "d", Institution: "Design School", Duration: "6 years", Active: true}
	require.NoError(t, repo.Create(context.Background(), &career))

	career.Active = false
	require.NoError(t, repo.Update(context.Background(), &career))

	stored, err := repo.GetByID(context.Background(), career.ID)
	require.NoError(t, err)
	require.False(t, stored.Active)

	_, err = repo.GetByID(context.Background(), 9999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
