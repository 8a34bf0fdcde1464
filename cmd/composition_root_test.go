package cmd_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"studydesk/cmd"
	httpin "studydesk/internal/adapters/in/http"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T, driver string) cmd.Config {
	t.Helper()
	dir := t.TempDir()

	return cmd.Config{
		AdminID:           1,
		ExecutorIDs:       []int64{200},
		StoreDriver:       driver,
		OrdersFile:        filepath.Join(dir, "orders.json"),
		ExecutorsFile:     filepath.Join(dir, "executors.json"),
		SQLitePath:        filepath.Join(dir, "studydesk.db"),
		SessionDriver:     cmd.SessionsMemory,
		WebhookSecret:     "secret",
		PaymentSessionTTL: 15 * time.Minute,
		PaymentSweepSpec:  "0 * * * * *",
		ExportFile:        filepath.Join(dir, "orders.csv"),
	}
}

func TestCompositionRoot_ServesEvents(t *testing.T) {
	for _, driver := range []string{cmd.StoreJSON, cmd.StoreSQLite} {
		t.Run(driver, func(t *testing.T) {
			app, err := cmd.NewCompositionRoot(newTestConfig(t, driver), slog.Default())
			require.NoError(t, err)
			t.Cleanup(func() { assert.NoError(t, app.Close()) })

			router, err := app.CreateRouter()
			require.NoError(t, err)

			e := echo.New()
			app.CreateServer(router).Register(e)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/events",
				strings.NewReader(`{"type":"text","from":{"id":100},"text":"/new"}`))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			req.Header.Set(httpin.SecretHeader, "secret")
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusAccepted, rec.Code)

			req = httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
			req.Header.Set(httpin.SecretHeader, "secret")
			rec = httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `[]`, rec.Body.String())
		})
	}
}

func TestCompositionRoot_JobManager(t *testing.T) {
	app, err := cmd.NewCompositionRoot(newTestConfig(t, cmd.StoreJSON), slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, app.Close()) })

	jobManager := app.CreateJobManager()
	require.NoError(t, jobManager.StartAll())
	jobManager.StopAll()
}
