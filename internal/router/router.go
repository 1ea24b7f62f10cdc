// Package router maps inbound (method, path) pairs onto user-service
// operations. Matching is exact string equality; there are no wildcard or
// parameter segments.
package router

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/dionysus-app/user-api/internal/httpx"
	"github.com/dionysus-app/user-api/internal/identity"
	"github.com/dionysus-app/user-api/internal/logging"
	"github.com/dionysus-app/user-api/internal/users"
)

const (
	healthPath   = "/health"
	userPath     = "/user"
	usersPath    = "/users"
	progressPath = "/user/signup_progress"
	trackerPath  = "/hormonalTracker"
	journalPath  = "/journal"
)

// Router dispatches API Gateway proxy requests. The backing-store clients
// are injected once at construction and shared by reference across
// invocations; all per-request state lives in the users.Service built for
// each call.
type Router struct {
	repo      users.Repository
	directory identity.Directory
}

func New(repo users.Repository, directory identity.Directory) *Router {
	return &Router{repo: repo, directory: directory}
}

// Dispatch selects exactly one operation for the request's (method, path)
// pair and returns its response envelope. Unmatched pairs yield
// 404 "Path Not Found".
func (r *Router) Dispatch(ctx context.Context, log logging.Logger, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {

	svc, err := users.NewService(ctx, r.repo, r.directory, log, req)
	if err != nil {
		return httpx.BuildResponse(http.StatusInternalServerError,
			map[string]any{"Message": "could not parse request body", "Error": err.Error()})
	}

	var status int
	var body any

	switch {
	case req.HTTPMethod == http.MethodGet && req.Path == healthPath:
		status, body = http.StatusOK, "All good"
	case req.HTTPMethod == http.MethodGet && req.Path == userPath:
		status, body = svc.GetUser(ctx)
	case req.HTTPMethod == http.MethodGet && req.Path == usersPath:
		status, body = svc.GetUsers(ctx)
	case req.HTTPMethod == http.MethodPost && req.Path == userPath:
		status, body = svc.SaveUser(ctx)
	case req.HTTPMethod == http.MethodPatch && req.Path == userPath:
		status, body = svc.ModifyUser(ctx)
	case req.HTTPMethod == http.MethodDelete && req.Path == userPath:
		status, body = svc.DeleteUser(ctx)
	case req.HTTPMethod == http.MethodPatch && req.Path == progressPath:
		status, body = svc.UpdateSignUpProgress(ctx)
	case req.HTTPMethod == http.MethodPatch && req.Path == trackerPath:
		status, body = svc.PatchHormonalTracker(ctx)
	case req.HTTPMethod == http.MethodDelete && req.Path == trackerPath:
		status, body = svc.DeleteHormonalTracker(ctx)
	case req.HTTPMethod == http.MethodPost && req.Path == journalPath:
		status, body = svc.PatchJournal(ctx)
	default:
		log.Warn(ctx, "no route matched", "method", req.HTTPMethod, "path", req.Path)
		status, body = http.StatusNotFound, "Path Not Found"
	}

	return httpx.BuildResponse(status, body)
}
