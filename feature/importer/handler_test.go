package importer_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"pedalbuild/feature/importer"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupImporterApp(t *testing.T) *fiber.App {
	t.Helper()

	db := setupImporterDB(t)
	svc := importer.NewService(db, nil, "", zap.NewNop())
	h := importer.NewHandler(svc)

	app := fiber.New()
	h.RegisterRoutes(app)
	return app
}

func multipartCSV(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestHandleImport(t *testing.T) {
	app := setupImporterApp(t)
	body, contentType := multipartCSV(t, "stock.csv", sampleCSV)

	req := httptest.NewRequest("POST", "/import/inventory", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result importer.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 2, result.Inserted)
	assert.False(t, result.Preview)
}

func TestHandleImportPreviewQuery(t *testing.T) {
	app := setupImporterApp(t)
	body, contentType := multipartCSV(t, "stock.csv", sampleCSV)

	req := httptest.NewRequest("POST", "/import/inventory?preview=true", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result importer.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Preview)
	assert.Zero(t, result.Inserted)
}

func TestHandleImportRejectsNonCSV(t *testing.T) {
	app := setupImporterApp(t)
	body, contentType := multipartCSV(t, "stock.xlsx", "not a csv")

	req := httptest.NewRequest("POST", "/import/inventory", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleImportMissingColumnIs400(t *testing.T) {
	app := setupImporterApp(t)
	body, contentType := multipartCSV(t, "stock.csv", "Category,Quantity\nRESISTOR,10\n")

	req := httptest.NewRequest("POST", "/import/inventory", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleTemplate(t *testing.T) {
	app := setupImporterApp(t)

	req := httptest.NewRequest("GET", "/import/template", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
}

func TestHandleArchiveDisabledIs404(t *testing.T) {
	app := setupImporterApp(t)

	req := httptest.NewRequest("GET", "/import/archive", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
