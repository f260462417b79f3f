package test_utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type TestResponse struct {
	StatusCode int
	Body       []byte
}

func MakeRequest(router *gin.Engine, method, url, authToken string, body any) *httptest.ResponseRecorder {
	var requestBody *bytes.Buffer
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		requestBody = bytes.NewBuffer(bodyJSON)
	} else {
		requestBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, requestBody)
	if err != nil {
		panic(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", authToken)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func makeRequestWithStatus(
	t *testing.T,
	router *gin.Engine,
	method, url, authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	t.Helper()

	w := MakeRequest(router, method, url, authToken, body)
	require.Equal(
		t,
		expectedStatus,
		w.Code,
		"unexpected status for %s %s, body: %s",
		method,
		url,
		w.Body.String(),
	)

	return &TestResponse{StatusCode: w.Code, Body: w.Body.Bytes()}
}

func unmarshalInto(t *testing.T, response *TestResponse, target any) {
	t.Helper()

	if target == nil {
		return
	}

	require.NoError(t, json.Unmarshal(response.Body, target), "body: %s", string(response.Body))
}

func MakeGetRequest(t *testing.T, router *gin.Engine, url, authToken string, expectedStatus int) *TestResponse {
	t.Helper()
	return makeRequestWithStatus(t, router, http.MethodGet, url, authToken, nil, expectedStatus)
}

func MakeGetRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	expectedStatus int,
	target any,
) {
	t.Helper()
	unmarshalInto(t, MakeGetRequest(t, router, url, authToken, expectedStatus), target)
}

func MakePostRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	t.Helper()
	return makeRequestWithStatus(t, router, http.MethodPost, url, authToken, body, expectedStatus)
}

func MakePostRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
	target any,
) {
	t.Helper()
	unmarshalInto(t, MakePostRequest(t, router, url, authToken, body, expectedStatus), target)
}

func MakePatchRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	t.Helper()
	return makeRequestWithStatus(t, router, http.MethodPatch, url, authToken, body, expectedStatus)
}

func MakePatchRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
	target any,
) {
	t.Helper()
	unmarshalInto(t, MakePatchRequest(t, router, url, authToken, body, expectedStatus), target)
}

func MakeDeleteRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	expectedStatus int,
) *TestResponse {
	t.Helper()
	return makeRequestWithStatus(t, router, http.MethodDelete, url, authToken, nil, expectedStatus)
}
