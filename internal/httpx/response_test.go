package httpx

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildResponse_FixedHeaders(t *testing.T) {
	resp := BuildResponse(http.StatusOK, nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
}

func TestBuildResponse_NilBodyOmitted(t *testing.T) {
	resp := BuildResponse(http.StatusOK, nil)
	assert.Empty(t, resp.Body)
}

func TestBuildResponse_StringBodyEncodedAsJSON(t *testing.T) {
	resp := BuildResponse(http.StatusOK, "All good")
	assert.Equal(t, `"All good"`, resp.Body)
}

func TestBuildResponse_MapBodyEncodedAsJSON(t *testing.T) {
	resp := BuildResponse(http.StatusNotFound, map[string]any{"Message": "Email a@b.com not found"})
	assert.JSONEq(t, `{"Message":"Email a@b.com not found"}`, resp.Body)
}

func TestBuildResponse_NumbersAndListsStayPlain(t *testing.T) {
	body := map[string]any{
		"age":   float64(31),
		"goals": []string{"sleep", "cycle"},
	}
	resp := BuildResponse(http.StatusOK, body)
	assert.JSONEq(t, `{"age":31,"goals":["sleep","cycle"]}`, resp.Body)
}

func TestBuildResponse_UnencodableBodyDegradesTo500(t *testing.T) {
	resp := BuildResponse(http.StatusOK, map[string]any{"bad": make(chan int)})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"Message":"could not encode response body"}`, resp.Body)
}
