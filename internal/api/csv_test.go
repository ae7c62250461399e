package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCSV_UploadsMultipartAndDecodesSummary(t *testing.T) {
	t.Parallel()

	var gotFilename, gotContent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/csv/import", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		gotFilename = header.Filename
		buf := make([]byte, header.Size)
		_, _ = file.Read(buf)
		gotContent = string(buf)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"createdTitles":2,"createdCopies":5}}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "tok")
	require.NoError(t, err)

	result, err := c.ImportCSV(testContext(t), "/tmp/catalog.csv", strings.NewReader("isbn13,title\n9780441013593,Dune\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, result.CreatedTitles)
	assert.Equal(t, 5, result.CreatedCopies)
	assert.Equal(t, "catalog.csv", gotFilename)
	assert.Contains(t, gotContent, "9780441013593")
}

func TestImportCSV_ValidationErrorsAreStructured(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"success":false,"message":"validation failed","errors":["row 3: isbn13 must have 13 digits"]}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "")
	require.NoError(t, err)

	_, err = c.ImportCSV(testContext(t), "bad.csv", strings.NewReader("isbn13\n123\n"))
	require.Error(t, err)
	assert.True(t, HasValidationErrors(err))
	require.Len(t, ValidationErrors(err), 1)
	assert.Contains(t, ValidationErrors(err)[0], "row 3")
	assert.Equal(t, "validation failed", ServerMessage(err))
}

func TestExportAndTemplate_ReturnRawBlobs(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		switch r.URL.Path {
		case "/csv/export":
			_, _ = w.Write([]byte("isbn13,title\n9780441013593,Dune\n"))
		case "/csv/template":
			_, _ = w.Write([]byte("isbn13,title,authors\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "")
	require.NoError(t, err)

	blob, err := c.ExportCSV(testContext(t))
	require.NoError(t, err)
	assert.Contains(t, string(blob), "Dune")

	blob, err = c.FetchTemplate(testContext(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(blob), "isbn13,"))
}
