package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespondWithJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	RespondWithJSON(rr, http.StatusCreated, map[string]int{"id": 1})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":1}`, rr.Body.String())
}

func TestRespondWithJSON_Unmarshalable(t *testing.T) {
	rr := httptest.NewRecorder()

	RespondWithJSON(rr, http.StatusOK, make(chan int))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestRespondWithError(t *testing.T) {
	rr := httptest.NewRecorder()

	RespondWithError(rr, http.StatusConflict, "account is not active")

	var resp Response
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "account is not active", resp.Message)
}
