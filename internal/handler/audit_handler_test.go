package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/bienestar-app/bienestar-api/internal/dto"
	"github.com/bienestar-app/bienestar-api/internal/handler"
	"github.com/bienestar-app/bienestar-api/internal/service"
)

type mockAuditService struct {
	listResponse dto.AuditListResponse
	lastRequest  dto.AuditListRequest
	lastActor    service.Actor
	err          error
}

func (m *mockAuditService) Record(_ context.Context, _ service.AuditEvent) error {
	return m.err
}

func (m *mockAuditService) List(_ context.Context, req dto.AuditListRequest, actor service.Actor) (dto.AuditListResponse, error) {
	m.lastRequest = req
	m.lastActor = actor
	return m.listResponse, m.err
}

func newAuditApp(svc service.AuditService, role string) *fiber.App {
	app := fiber.New()
	app.Use(identityStub(7, role))
	handler.NewAuditHandler(svc, zerolog.Nop()).Register(app.Group("/api/v1/audit"))
	return app
}

func TestAuditHandlerList(t *testing.T) {
	svc := &mockAuditService{listResponse: dto.AuditListResponse{
		Items:      []dto.AuditEntryResponse{{ID: 1, EntityType: "Career", EntityID: "3", Action: "DELETE"}},
		Pagination: dto.PaginationMeta{Page: 1, PageSize: 20, TotalItems: 1, TotalPages: 1},
	}}
	app := newAuditApp(svc, "teacher")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/audit?actorId=3&action=DELETE&entityType=Career", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool                     `json:"success"`
		Data    []dto.AuditEntryResponse `json:"data"`
		Message string                   `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "audit entries retrieved", body.Message)
	require.Len(t, body.Data, 1)

	require.Equal(t, uint(3), svc.lastRequest.ActorID)
	require.Equal(t, "DELETE", svc.lastRequest.Action)
	require.Equal(t, "Career", svc.lastRequest.EntityType)
}

func TestAuditHandlerListForbidden(t *testing.T) {
	svc := &mockAuditService{err: service.ErrForbidden}
	app := newAuditApp(svc, "student")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/audit", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
