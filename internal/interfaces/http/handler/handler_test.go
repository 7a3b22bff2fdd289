package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appanalytics "github.com/listings/backend/internal/application/analytics"
	"github.com/listings/backend/internal/application/importer"
	applisting "github.com/listings/backend/internal/application/listing"
	appsecurity "github.com/listings/backend/internal/application/security"
	"github.com/listings/backend/internal/domain/listing"
	"github.com/listings/backend/internal/domain/security"
	"github.com/listings/backend/internal/infrastructure/auth"
	"github.com/listings/backend/internal/infrastructure/config"
	"github.com/listings/backend/internal/infrastructure/persistence"
	"github.com/listings/backend/internal/infrastructure/persistence/models"
	"github.com/listings/backend/internal/interfaces/http/handler"
	"github.com/listings/backend/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	engine *gin.Engine
	token  string

	jobs        *persistence.GormImportJobRepository
	projects    *persistence.GormProjectRepository
	developerID uuid.UUID
	cityID      uuid.UUID
	districtID  uuid.UUID
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.ProjectModel{},
		&models.ProjectBankModel{},
		&models.DeveloperModel{},
		&models.BankModel{},
		&models.CityModel{},
		&models.DistrictModel{},
		&models.FavoriteModel{},
		&models.ImportJobModel{},
		&models.ImportJobErrorModel{},
		&models.AuditLogModel{},
		&models.AdminUserModel{},
		&models.IPBanModel{},
		&models.PageViewModel{},
	))

	log := zaptest.NewLogger(t)
	ctx := context.Background()

	projectRepo := persistence.NewGormProjectRepository(db)
	developerRepo := persistence.NewGormDeveloperRepository(db)
	bankRepo := persistence.NewGormBankRepository(db)
	cityRepo := persistence.NewGormCityRepository(db)
	districtRepo := persistence.NewGormDistrictRepository(db)
	favoriteRepo := persistence.NewGormFavoriteRepository(db)
	jobRepo := persistence.NewGormImportJobRepository(db)
	jobErrorRepo := persistence.NewGormImportJobErrorRepository(db)
	auditRepo := persistence.NewGormAuditLogRepository(db)
	adminRepo := persistence.NewGormAdminUserRepository(db)
	banRepo := persistence.NewGormIPBanRepository(db)
	viewRepo := persistence.NewGormPageViewRepository(db)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "handler-test-secret",
		Expiration: time.Hour,
		Issuer:     "listings-test",
	})

	executor := importer.NewExecutor(projectRepo, developerRepo, bankRepo, cityRepo, districtRepo, jobRepo, jobErrorRepo, log)
	runner := importer.NewRunner(executor, jobRepo, log, 8, 1)
	t.Cleanup(runner.Stop)
	undoEngine := importer.NewUndoEngine(projectRepo, developerRepo, bankRepo, jobRepo, log)
	importService := importer.NewService(jobRepo, jobErrorRepo, runner, undoEngine, auditRepo, log)

	projectService := applisting.NewProjectService(projectRepo, developerRepo, cityRepo, districtRepo, bankRepo, auditRepo, log)
	developerService := applisting.NewDeveloperService(developerRepo, auditRepo, log)
	bankService := applisting.NewBankService(bankRepo, auditRepo, log)
	locationService := applisting.NewLocationService(cityRepo, districtRepo, auditRepo, log)
	favoriteService := applisting.NewFavoriteService(favoriteRepo, projectRepo)
	authService := appsecurity.NewAuthService(adminRepo, jwtService, auditRepo, log)
	banService := appsecurity.NewIPBanService(banRepo, nil, auditRepo, log)
	auditService := appsecurity.NewAuditService(auditRepo)
	analyticsService := appanalytics.NewService(viewRepo, projectRepo, log)

	engine := gin.New()
	router.Setup(engine, router.Config{
		JWTService: jwtService,
		System:     handler.NewSystemHandler(db),
		Auth:       handler.NewAuthHandler(authService),
		Admin: []router.RouteRegistrar{
			handler.NewImportHandler(importService, 0),
			handler.NewProjectHandler(projectService),
			handler.NewCatalogHandler(developerService, bankService, locationService),
			handler.NewSecurityHandler(auditService, banService),
		},
		Public: []router.RouteRegistrar{
			handler.NewPublicHandler(projectService, developerService, bankService, locationService, favoriteService),
		},
		Analytics: handler.NewAnalyticsHandler(analyticsService),
	})

	// reference data used by the CSV fixtures
	developer, err := listing.NewDeveloper("Acme Homes")
	require.NoError(t, err)
	require.NoError(t, developerRepo.Save(ctx, developer))
	city, err := listing.NewCity("Springfield")
	require.NoError(t, err)
	require.NoError(t, cityRepo.Save(ctx, city))
	district, err := listing.NewDistrict("North End", city.ID)
	require.NoError(t, err)
	require.NoError(t, districtRepo.Save(ctx, district))

	admin, err := security.NewAdminUser("alice", "correct-horse-battery", "Alice")
	require.NoError(t, err)
	require.NoError(t, adminRepo.Save(ctx, admin))

	srv := &testServer{
		engine:      engine,
		jobs:        jobRepo,
		projects:    projectRepo,
		developerID: developer.ID,
		cityID:      city.ID,
		districtID:  district.ID,
	}
	srv.token = srv.login(t, "alice", "correct-horse-battery")
	return srv
}

func (s *testServer) do(t *testing.T, method, path string, body []byte, authed bool, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	body, _ := json.Marshal(gin.H{"username": username, "password": password})
	w := s.do(t, http.MethodPost, "/api/admin/auth/login", body, false, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func (s *testServer) uploadCSV(t *testing.T, path, filename, contents string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(contents))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) waitForJob(t *testing.T, id uuid.UUID) {
	t.Helper()
	require.Eventually(t, func() bool {
		job, err := s.jobs.FindByID(context.Background(), id)
		if err != nil {
			return false
		}
		return job.Status == "completed" || job.Status == "failed"
	}, 5*time.Second, 20*time.Millisecond)
}

func importJobID(t *testing.T, w *httptest.ResponseRecorder) uuid.UUID {
	t.Helper()
	var resp struct {
		Data struct {
			ImportJobID uuid.UUID `json:"importJobId"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEqual(t, uuid.Nil, resp.Data.ImportJobID)
	return resp.Data.ImportJobID
}

func TestHealthEndpoints(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodGet, "/health", nil, false, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/ready", nil, false, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodGet, "/api/admin/imports", nil, false, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestImportUploadLifecycle(t *testing.T) {
	s := setupServer(t)

	csv := "name,developer,city,district,price_from\n" +
		"Tower One,Acme Homes,Springfield,North End,\"$1,200,000\"\n" +
		"Tower Two,,Springfield,North End,950000\n"

	w := s.uploadCSV(t, "/api/admin/projects/import", "projects.csv", csv)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	jobID := importJobID(t, w)
	s.waitForJob(t, jobID)

	w = s.do(t, http.MethodGet, "/api/admin/imports/"+jobID.String(), nil, true, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var jobResp struct {
		Data struct {
			Status        string `json:"status"`
			TotalRows     int    `json:"total_rows"`
			InsertedCount int    `json:"inserted_count"`
			FailedCount   int    `json:"failed_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &jobResp))
	assert.Equal(t, "completed", jobResp.Data.Status)
	assert.Equal(t, 2, jobResp.Data.TotalRows)
	assert.Equal(t, 1, jobResp.Data.InsertedCount)
	assert.Equal(t, 1, jobResp.Data.FailedCount)

	w = s.do(t, http.MethodGet, "/api/admin/imports/"+jobID.String()+"/errors", nil, true, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var errResp struct {
		Data []struct {
			RowNumber    int    `json:"row_number"`
			ErrorMessage string `json:"error_message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	require.Len(t, errResp.Data, 1)
	assert.Equal(t, 3, errResp.Data[0].RowNumber)
	assert.Equal(t, "Missing required fields: name, developer, city, district", errResp.Data[0].ErrorMessage)

	w = s.do(t, http.MethodGet, "/api/admin/imports?status=completed", nil, true, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "projects.csv")
}

func TestImportUploadRejectsMissingAndNonCSVFiles(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodPost, "/api/admin/projects/import", nil, true, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.uploadCSV(t, "/api/admin/projects/import", "notes.txt", "name\nX\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Only CSV files are accepted")
}

func TestImportUploadHonorsConfiguredSizeLimit(t *testing.T) {
	h := handler.NewImportHandler(nil, 1<<20)
	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api/admin"))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "projects.csv")
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte("a"), 1<<20+1))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/projects/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "File exceeds the 1MB limit")
}

func TestImportUndoFlow(t *testing.T) {
	s := setupServer(t)

	csv := "name,developer,city,district\nTower One,Acme Homes,Springfield,North End\n"
	w := s.uploadCSV(t, "/api/admin/projects/import", "projects.csv", csv)
	require.Equal(t, http.StatusAccepted, w.Code)
	jobID := importJobID(t, w)
	s.waitForJob(t, jobID)

	undoPath := fmt.Sprintf("/api/admin/imports/%s/undo", jobID)
	w = s.do(t, http.MethodPost, undoPath, nil, true, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Import undone successfully")

	// imported project disappears from public listings
	pub := s.do(t, http.MethodGet, "/api/v1/projects", nil, false, nil)
	assert.NotContains(t, pub.Body.String(), "Tower One")

	// second undo conflicts
	w = s.do(t, http.MethodPost, undoPath, nil, true, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Import has already been undone")

	// unknown job is a 404
	w = s.do(t, http.MethodPost, fmt.Sprintf("/api/admin/imports/%s/undo", uuid.New()), nil, true, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Import job not found")
}

func TestPublicProjectVisibility(t *testing.T) {
	s := setupServer(t)

	body, _ := json.Marshal(gin.H{
		"name":         "Harbor View",
		"developer_id": s.developerID,
		"city_id":      s.cityID,
		"district_id":  s.districtID,
	})
	w := s.do(t, http.MethodPost, "/api/admin/projects", body, true, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Data struct {
			ID uuid.UUID `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	pub := s.do(t, http.MethodGet, "/api/v1/projects", nil, false, nil)
	assert.Contains(t, pub.Body.String(), "Harbor View")

	w = s.do(t, http.MethodPost, "/api/admin/projects/"+created.Data.ID.String()+"/hide", nil, true, nil)
	require.Equal(t, http.StatusOK, w.Code)

	pub = s.do(t, http.MethodGet, "/api/v1/projects", nil, false, nil)
	assert.NotContains(t, pub.Body.String(), "Harbor View")

	w = s.do(t, http.MethodGet, "/api/v1/projects/"+created.Data.ID.String(), nil, false, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavoritesRequireVisitorHeader(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/favorites", nil, false, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/favorites", nil, false, map[string]string{"X-Visitor-ID": "visitor-1"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMortgageCalculateEndpoint(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/mortgage/calculate?price=300000&annual_rate=6&years=30", nil, false, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "1798.65")

	w = s.do(t, http.MethodGet, "/api/v1/mortgage/calculate?price=abc&annual_rate=6", nil, false, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackEndpointAlwaysAccepts(t *testing.T) {
	s := setupServer(t)

	body, _ := json.Marshal(gin.H{"path": "/projects/123"})
	w := s.do(t, http.MethodPost, "/api/v1/track", body, false, map[string]string{"X-Visitor-ID": "visitor-1"})
	assert.Equal(t, http.StatusNoContent, w.Code)
}
