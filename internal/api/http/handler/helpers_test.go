package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/kameti-auth/internal/apierror"
)

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func requireKind(t *testing.T, err error, kind apierror.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, apierror.KindOf(err))
}

func assertSuccess(t *testing.T, rec *httptest.ResponseRecorder, code int, message string) Response {
	t.Helper()
	assert.Equal(t, code, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, statusSuccess, resp.Status)
	assert.Equal(t, message, resp.Message)
	assert.Equal(t, code, resp.StatusCode)
	return resp
}

