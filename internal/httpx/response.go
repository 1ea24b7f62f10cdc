// Package httpx builds the API Gateway proxy response envelope shared by
// every operation of the user API.
package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

func headers() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
}

// BuildResponse wraps a status code and an optional body into an API Gateway
// proxy response. A nil body produces a response with no body; anything else
// is JSON-encoded. Records read back from DynamoDB carry numbers as float64
// and string lists as plain slices, so both serialize as ordinary JSON
// numbers and arrays.
func BuildResponse(statusCode int, body any) events.APIGatewayProxyResponse {
	resp := events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    headers(),
	}
	if body == nil {
		return resp
	}
	b, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    headers(),
			Body:       `{"Message":"could not encode response body"}`,
		}
	}
	resp.Body = string(b)
	return resp
}
