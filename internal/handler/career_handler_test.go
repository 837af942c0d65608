package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/bienestar-app/bienestar-api/internal/dto"
	"github.com/bienestar-app/bienestar-api/internal/handler"
	"github.com/bienestar-app/bienestar-api/internal/service"
)

type mockCareerService struct {
	listResponse dto.CareerListResponse
	getResponse  dto.CareerResponse
	lastActor    service.Actor
	deletedID    uint
	err          error
}

func (m *mockCareerService) List(_ context.Context, _ dto.CareerListRequest, actor service.Actor) (dto.CareerListResponse, error) {
	m.lastActor = actor
	return m.listResponse, m.err
}

func (m *mockCareerService) Get(_ context.Context, _ uint, actor service.Actor) (dto.CareerResponse, error) {
	m.lastActor = actor
	return m.getResponse, m.err
}

func (m *mockCareerService) Create(_ context.Context, _ dto.CareerRequest, actor service.Actor) (dto.CareerResponse, error) {
	m.lastActor = actor
	return m.getResponse, m.err
}

func (m *mockCareerService) Update(_ context.Context, _ uint, _ dto.CareerUpdateRequest, actor service.Actor) (dto.CareerResponse, error) {
	m.lastActor = actor
	return m.getResponse, m.err
}

func (m *mockCareerService) Delete(_ context.Context, id uint, actor service.Actor) error {
	m.lastActor = actor
	m.deletedID = id
	return m.err
}

func newCareerApp(svc service.CareerService, role string) *fiber.App {
	app := fiber.New()
	app.Use(identityStub(7, role))
	handler.NewCareerHandler(svc, zerolog.Nop()).Register(app.Group("/api/v1/careers"))
	return app
}

func TestCareerHandlerList(t *testing.T) {
	svc := &mockCareerService{listResponse: dto.CareerListResponse{
		Items:      []dto.CareerResponse{{ID: 1, Name: "Nursing", Institution: "State University", Active: true}},
		Pagination: dto.PaginationMeta{Page: 1, PageSize: 20, TotalItems: 1, TotalPages: 1},
	}}
	app := newCareerApp(svc, "student")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/careers?search=nur", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool                 `json:"success"`
		Data    []dto.CareerResponse `json:"data"`
		Message string               `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "careers retrieved", body.Message)
	require.Len(t, body.Data, 1)
	require.Equal(t, "student", string(svc.lastActor.Role))
}

func TestCareerHandlerGetNotFound(t *testing.T) {
	svc := &mockCareerService{err: service.ErrCareerNotFound}
	app := newCareerApp(svc, "student")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/careers/99", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCareerHandlerGetInvalidID(t *testing.T) {
	app := newCareerApp(&mockCareerService{}, "student")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/careers/banana", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCareerHandlerCreate(t *testing.T) {
	svc := &mockCareerService{getResponse: dto.CareerResponse{ID: 2, Name: "Nursing", Active: true}}
	app := newCareerApp(svc, "teacher")

	payload := `{"name":"Nursing","description":"Care","institution":"State University","duration":"5 years"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/careers", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestCareerHandlerCreateForbidden(t *testing.T) {
	svc := &mockCareerService{err: service.ErrForbidden}
	app := newCareerApp(svc, "guardian")

	payload := `{"name":"Nursing","description":"Care","institution":"State University","duration":"5 years"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/careers", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCareerHandlerDelete(t *testing.T) {
	svc := &mockCareerService{}
	app := newCareerApp(svc, "teacher")

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/careers/4", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(4), svc.deletedID)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "career deactivated", body.Message)
}
