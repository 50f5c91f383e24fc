package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construtora/internal/services"
)

func TestNullableID(t *testing.T) {
	type body struct {
		ProjetoID nullableID `json:"projetoId"`
	}
	ptr := func(v int64) *int64 { return &v }

	cases := []struct {
		in      string
		set     bool
		value   *int64
		wantErr bool
	}{
		{in: `{}`, set: false},
		{in: `{"projetoId": null}`, set: true},
		{in: `{"projetoId": ""}`, set: true},
		{in: `{"projetoId": "  "}`, set: true},
		{in: `{"projetoId": 12}`, set: true, value: ptr(12)},
		{in: `{"projetoId": "12"}`, set: true, value: ptr(12)},
		{in: `{"projetoId": "doze"}`, wantErr: true},
		{in: `{"projetoId": -3}`, wantErr: true},
		{in: `{"projetoId": 1.5}`, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			var b body
			err := json.Unmarshal([]byte(tc.in), &b)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.set, b.ProjetoID.Set)
			assert.Equal(t, tc.value, b.ProjetoID.Value)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), d)

	d, err = parseDate("2025-03-10T08:30:00-03:00")
	require.NoError(t, err)
	assert.Equal(t, 11, d.UTC().Hour())

	_, err = parseDate("10/03/2025")
	assert.Error(t, err)
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{services.ErrInvalidStatus, http.StatusBadRequest, services.ErrInvalidStatus.Error()},
		{services.ErrTaskNotFound, http.StatusNotFound, "task not found"},
		{fmt.Errorf("wrapped: %w", services.ErrForbidden), http.StatusForbidden, "forbidden"},
		{services.ErrInvalidCredentials, http.StatusUnauthorized, services.ErrInvalidCredentials.Error()},
		{errors.New(`pq: relation "tasks" does not exist`), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		respondError(c, "[test]", tc.err)

		assert.Equal(t, tc.code, w.Code, tc.err.Error())
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tc.msg, body["message"])
	}
}
