package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobpilot/internal/dtos"
	"jobpilot/internal/models"
)

func seedUser(t *testing.T, svc *ApplicationService, userID string) {
	t.Helper()
	require.NoError(t, svc.DB.Create(&models.User{ID: userID, Email: userID + "@example.com", PasswordHash: "x"}).Error)
}

func createApp(t *testing.T, svc *ApplicationService, userID, company string) *models.Application {
	t.Helper()
	app, err := svc.Create(userID, &dtos.ApplicationCreateRequest{
		CompanyName:    company,
		JobTitle:       "Backend Engineer",
		JobDescription: "build things",
		RecipientEmail: "jobs@" + company + ".com",
	})
	require.NoError(t, err)
	return app
}

func TestCreateStartsPending(t *testing.T) {
	svc := NewApplicationService(newTestDB(t))
	seedUser(t, svc, "user-a")

	app := createApp(t, svc, "user-a", "stripe")
	assert.Equal(t, models.StatusPending, app.Status)
	assert.Nil(t, app.SentAt)
	assert.Nil(t, app.EmailBody)
}

func TestCrossOwnerIsolation(t *testing.T) {
	svc := NewApplicationService(newTestDB(t))
	seedUser(t, svc, "user-a")
	seedUser(t, svc, "user-b")
	app := createApp(t, svc, "user-a", "stripe")

	// Another owner's id behaves like a missing row.
	_, err := svc.GetByID("user-b", app.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete("user-b", app.ID), ErrNotFound)

	_, err = svc.Update("user-b", app.ID, &dtos.ApplicationUpdateRequest{})
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.GetByID("user-a", app.ID)
	require.NoError(t, err)
	assert.Equal(t, "stripe", got.CompanyName)
}

func TestListPagination(t *testing.T) {
	svc := NewApplicationService(newTestDB(t))
	seedUser(t, svc, "user-a")
	var ids []uint
	for _, c := range []string{"a", "b", "c", "d", "e"} {
		ids = append(ids, createApp(t, svc, "user-a", c).ID)
	}

	page, err := svc.List("user-a", 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[2], page[0].ID)
	assert.Equal(t, ids[3], page[1].ID)
}

func TestListByStatusStableOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db)
	seedUser(t, svc, "user-a")
	first := createApp(t, svc, "user-a", "stripe")
	second := createApp(t, svc, "user-a", "linear")
	require.NoError(t, db.Model(&models.Application{}).Where("id = ?", second.ID).
		Update("status", models.StatusSent).Error)

	pending, err := svc.ListByStatus("user-a", models.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, first.ID, pending[0].ID)

	sent, err := svc.ListByStatus("user-a", models.StatusSent)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, second.ID, sent[0].ID)
}

func TestUpdateOnlyProvidedFields(t *testing.T) {
	svc := NewApplicationService(newTestDB(t))
	seedUser(t, svc, "user-a")
	app := createApp(t, svc, "user-a", "stripe")

	newTitle := "Staff Engineer"
	updated, err := svc.Update("user-a", app.ID, &dtos.ApplicationUpdateRequest{JobTitle: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", updated.JobTitle)
	assert.Equal(t, "stripe", updated.CompanyName)
}

func TestDelete(t *testing.T) {
	svc := NewApplicationService(newTestDB(t))
	seedUser(t, svc, "user-a")
	app := createApp(t, svc, "user-a", "stripe")

	require.NoError(t, svc.Delete("user-a", app.ID))
	_, err := svc.GetByID("user-a", app.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
