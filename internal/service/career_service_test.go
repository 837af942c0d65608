package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bienestar-app/bienestar-api/internal/dto"
	"github.com/bienestar-app/bienestar-api/internal/models"
	"github.com/bienestar-app/bienestar-api/internal/repository"
)

type careerRepoStub struct {
	careers    map[uint]models.Career
	nextID     uint
	lastFilter repository.CareerFilter
}

func newCareerRepoStub() *careerRepoStub {
	return &careerRepoStub{careers: map[uint]models.Career{}, nextID: 1}
}

func (c *careerRepoStub) Create(ctx context.Context, career *models.Career) error {
	career.ID = c.nextID
	c.nextID++
	c.careers[career.ID] = *career
	return nil
}

func (c *careerRepoStub) GetByID(ctx context.Context, id uint) (models.Career, error) {
	career, ok := c.careers[id]
	if !ok {
		return models.Career{}, gorm.ErrRecordNotFound
	}
	return career, nil
}

func (c *careerRepoStub) List(ctx context.Context, filter repository.CareerFilter) ([]models.Career, int64, error) {
	c.lastFilter = filter
	items := make([]models.Career, 0, len(c.careers))
	for _, career := range c.careers {
		if filter.VisibleOnly && !career.Active {
			continue
		}
		items = append(items, career)
	}
	return items, int64(len(items)), nil
}

func (c *careerRepoStub) Update(ctx context.Context, career *models.Career) error {
	if _, ok := c.careers[career.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	c.careers[career.ID] = *career
	return nil
}

type auditRecorderStub struct {
	events []AuditEvent
	err    error
}

func (a *auditRecorderStub) Record(ctx context.Context, event AuditEvent) error {
	if a.err != nil {
		return a.err
	}
	a.events = append(a.events, event)
	return nil
}

func teacherActor() Actor {
	return Actor{ID: 1, Role: models.RoleTeacher, SourceIP: "10.0.0.1"}
}

func studentActor() Actor {
	return Actor{ID: 2, Role: models.RoleStudent}
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestCareerServiceCreateRequiresPrivilege(t *testing.T) {
	repo := newCareerRepoStub()
	audit := &auditRecorderStub{}
	svc := NewCareerService(repo, validator.New(validator.WithRequiredStructEnabled()), audit, testLogger())

	payload := dto.CareerRequest{Name: "Nursing", Description: "Care", Institution: "State University", Duration: "5 years"}

	_, err := svc.Create(context.Background(), payload, studentActor())
	require.ErrorIs(t, err, ErrForbidden)
	require.Empty(t, repo.careers)

	created, err := svc.Create(context.Background(), payload, teacherActor())
	require.NoError(t, err)
	require.Equal(t, "Nursing", created.Name)
	require.True(t, created.Active)
	require.NotNil(t, created.CreatedBy)
	require.Equal(t, uint(1), *created.CreatedBy)

	// Creation does not leave an audit trail, only updates and deletes do.
	require.Empty(t, audit.events)
}

func TestCareerServiceUpdateRecordsChangedFields(t *testing.T) {
	repo := newCareerRepoStub()
	audit := &auditRecorderStub{}
	svc := NewCareerService(repo, validator.New(validator.WithRequiredStructEnabled()), audit, testLogger())

	repo.careers[7] = models.Career{ID: 7, Name: "Biology", Description: "d", Institution: "Uni", Duration: "4 years", Active: true}

	name := "Marine Biology"
	updated, err := svc.Update(context.Background(), 7, dto.CareerUpdateRequest{Name: &name}, teacherActor())
	require.NoError(t, err)
	require.Equal(t, "Marine Biology", updated.Name)

	require.Len(t, audit.events, 1)
	event := audit.events[0]
	require.Equal(t, "Career", event.EntityType)
	require.Equal(t, models.AuditUpdate, event.Action)
	changes, ok := event.Details["changes"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "Marine Biology", changes["name"])
}

func TestCareerServiceDeleteSoftDeletesAndAudits(t *testing.T) {
	repo := newCareerRepoStub()
	audit := &auditRecorderStub{}
	svc := NewCareerService(repo, validator.New(validator.WithRequiredStructEnabled()), audit, testLogger())

	repo.careers[3] = models.Career{ID: 3, Name: "Architecture", Description: "d", Institution: "Uni", Duration: "6 years", Active: true}

	require.ErrorIs(t, svc.Delete(context.Background(), 3, studentActor()), ErrForbidden)
	require.NoError(t, svc.Delete(context.Background(), 3, teacherActor()))

	stored := repo.careers[3]
	require.False(t, stored.Active, "delete keeps the row and clears the active flag")

	require.Len(t, audit.events, 1)
	require.Equal(t, models.AuditDelete, audit.events[0].Action)
	require.Equal(t, "Architecture", audit.events[0].Details["name"])

	require.ErrorIs(t, svc.Delete(context.Background(), 99, teacherActor()), ErrCareerNotFound)
}

func TestCareerServiceGetHidesInactiveFromStudents(t *testing.T) {
	repo := newCareerRepoStub()
	svc := NewCareerService(repo, validator.New(validator.WithRequiredStructEnabled()), &auditRecorderStub{}, testLogger())

	repo.careers[5] = models.Career{ID: 5, Name: "Telegraphy", Description: "d", Institution: "Uni", Duration: "2 years", Active: false}

	_, err := svc.Get(context.Background(), 5, studentActor())
	require.ErrorIs(t, err, ErrCareerNotFound)

	career, err := svc.Get(context.Background(), 5, teacherActor())
	require.NoError(t, err)
	require.Equal(t, "Telegraphy", career.Name)
}

func TestCareerServiceListScopesVisibilityByRole(t *testing.T) {
	repo := newCareerRepoStub()
	svc := NewCareerService(repo, validator.New(validator.WithRequiredStructEnabled()), &auditRecorderStub{}, testLogger())

	_, err := svc.List(context.Background(), dto.CareerListRequest{}, studentActor())
	require.NoError(t, err)
	require.True(t, repo.lastFilter.VisibleOnly)

	_, err = svc.List(context.Background(), dto.CareerListRequest{}, teacherActor())
	require.NoError(t, err)
	require.False(t, repo.lastFilter.VisibleOnly)
}
