package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/dionysus-app/user-api/internal/common"
	"github.com/dionysus-app/user-api/internal/identity"
	"github.com/dionysus-app/user-api/internal/logging"
)

// Service holds the state of one inbound request: the parsed query
// parameters, the parsed JSON body, and the injected backing-store clients.
// A new instance is built per request; only the clients outlive it.
type Service struct {
	repo      Repository
	directory identity.Directory
	logger    logging.Logger

	query map[string]string
	body  map[string]any
}

// NewService parses the request's query parameters and JSON body. A
// malformed body fails construction; required fields are only checked by the
// operation that needs them.
func NewService(ctx context.Context, repo Repository, directory identity.Directory, logger logging.Logger, req events.APIGatewayProxyRequest) (*Service, error) {

	s := &Service{
		repo:      repo,
		directory: directory,
		logger:    logger,
		query:     req.QueryStringParameters,
	}

	logger.Debug(ctx, "building request service", "method", req.HTTPMethod, "path", req.Path)

	if req.Body != "" {
		if err := json.Unmarshal([]byte(req.Body), &s.body); err != nil {
			logger.Error(ctx, "could not parse request body", "error", err.Error())
			return nil, fmt.Errorf("could not parse request body: %w", err)
		}
	}

	return s, nil
}

func errorBody(message string, err error) map[string]any {
	return map[string]any{"Message": message, "Error": err.Error()}
}

// fail logs the failure and maps it to the standardized 500 body.
func (s *Service) fail(ctx context.Context, message string, err error) (int, any) {
	s.logger.Error(ctx, message, "error", err.Error())
	return http.StatusInternalServerError, errorBody(message, err)
}

func (s *Service) queryParam(name string) (string, error) {
	v := s.query[name]
	if v == "" {
		return "", fmt.Errorf("%w: %s", common.ErrorMissingField, name)
	}
	return v, nil
}

func (s *Service) bodyString(name string) (string, error) {
	v, ok := s.body[name].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", common.ErrorMissingField, name)
	}
	return v, nil
}

func (s *Service) bodyBool(name string) (bool, error) {
	v, ok := s.body[name].(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s", common.ErrorMissingField, name)
	}
	return v, nil
}

// GetUser looks up a single record by the email query parameter.
func (s *Service) GetUser(ctx context.Context) (int, any) {

	email, err := s.queryParam(FieldEmail)
	if err != nil {
		return s.fail(ctx, "Error while getting user", err)
	}

	rec, err := s.repo.Get(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "user not found", "email", email)
			return http.StatusNotFound, map[string]any{"Message": fmt.Sprintf("Email %s not found", email)}
		}
		return s.fail(ctx, "Error while getting user", err)
	}

	return http.StatusOK, rec
}

// GetUsers scans the whole record store, accumulating every page.
func (s *Service) GetUsers(ctx context.Context) (int, any) {

	records, err := s.repo.GetAll(ctx)
	if err != nil {
		return s.fail(ctx, "Error while getting all users", err)
	}

	return http.StatusOK, map[string]any{"users": records}
}

// SaveUser creates the identity-directory entry and then writes the full
// request body as the record-store item. A directory failure aborts before
// anything is written; a store failure rolls the directory entry back so the
// two stores move together.
func (s *Service) SaveUser(ctx context.Context) (int, any) {

	email, err := s.bodyString(FieldEmail)
	if err != nil {
		return s.fail(ctx, "Error while saving user", err)
	}
	isAdmin, err := s.bodyBool(FieldIsDionysusAdmin)
	if err != nil {
		return s.fail(ctx, "Error while saving user", err)
	}

	if err := s.directory.CreateUser(ctx, email, isAdmin); err != nil {
		return s.fail(ctx, "Error while saving user to cognito", err)
	}

	stored, err := s.repo.Put(ctx, Record(s.body))
	if err != nil {
		if derr := s.directory.DeleteUser(ctx, email); derr != nil {
			s.logger.Error(ctx, "rollback of identity user failed", "email", email, "error", derr.Error())
		}
		return s.fail(ctx, "Error while saving user", err)
	}

	return http.StatusOK, map[string]any{
		"operation": "SAVE",
		"Message":   "Success",
		"User":      stored,
	}
}

// ModifyUser applies positionally paired updateKeys/updateValues as
// independent single-field updates, in sequence order.
func (s *Service) ModifyUser(ctx context.Context) (int, any) {

	email, err := s.bodyString(FieldEmail)
	if err != nil {
		return s.fail(ctx, "Error while updating user", err)
	}
	keys, ok := Record(s.body).StringList("updateKeys")
	if !ok {
		return s.fail(ctx, "Error while updating user", fmt.Errorf("%w: updateKeys", common.ErrorMissingField))
	}
	values, ok := s.body["updateValues"].([]any)
	if !ok {
		return s.fail(ctx, "Error while updating user", fmt.Errorf("%w: updateValues", common.ErrorMissingField))
	}

	return s.applyUpdates(ctx, email, keys, values, nil)
}

// applyUpdates is the modify primitive shared with the composite operations:
// one single-field update per (key, value) pair, in order, with no rollback
// on a mid-sequence failure. The response carries the last update's new
// attribute values.
func (s *Service) applyUpdates(ctx context.Context, email string, keys []string, values []any, cond *Condition) (int, any) {

	if len(keys) != len(values) {
		err := fmt.Errorf("%w: updateKeys and updateValues must pair up", common.ErrorMissingField)
		return s.fail(ctx, "Error while updating user", err)
	}

	var updated Record
	for i, key := range keys {
		var err error
		updated, err = s.repo.Update(ctx, email, []Assignment{{Key: key, Value: values[i]}}, cond)
		if err != nil {
			if errors.Is(err, common.ErrorConflict) {
				s.logger.Error(ctx, "concurrent update detected", "email", email, "key", key)
				return http.StatusConflict, errorBody("Error while updating user", err)
			}
			s.logger.Error(ctx, "error while updating user", "email", email, "key", key, "error", err.Error())
			return http.StatusInternalServerError, errorBody("Error while updating user", err)
		}
	}

	return http.StatusOK, map[string]any{
		"operation":        "UPDATE",
		"Message":          "Success",
		"UpdateAttributes": updated,
	}
}

// UpdateSignUpProgress sets page_index, onBoarding and goals in one atomic
// update. onBoarding is derived: the sign-up flow finishes on page "4".
func (s *Service) UpdateSignUpProgress(ctx context.Context) (int, any) {

	email, err := s.bodyString(FieldEmail)
	if err != nil {
		return s.fail(ctx, "Error while updating user", err)
	}
	pageIndex, err := s.bodyString(FieldPageIndex)
	if err != nil {
		return s.fail(ctx, "Error while updating user", err)
	}
	goals, ok := Record(s.body).StringList(FieldGoals)
	if !ok {
		goals = []string{}
	}

	onBoarding := pageIndex == "4"

	updated, err := s.repo.Update(ctx, email, []Assignment{
		{Key: FieldPageIndex, Value: pageIndex},
		{Key: FieldOnBoarding, Value: onBoarding},
		{Key: FieldGoals, Value: goals},
	}, nil)
	if err != nil {
		return s.fail(ctx, "Error while updating user", err)
	}

	return http.StatusOK, map[string]any{
		"operation":        "UPDATE",
		"Message":          "Success",
		"UpdateAttributes": updated,
	}
}

// currentList fetches the user's record and reads a list field, treating a
// missing record or attribute as an empty list. The returned Condition pins
// the observed state so the follow-up write fails instead of clobbering a
// concurrent one.
func (s *Service) currentList(ctx context.Context, email, field string) ([]string, *Condition, error) {

	rec, err := s.repo.Get(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, &Condition{Field: field}, nil
		}
		return nil, nil, err
	}

	list, ok := rec.StringList(field)
	if !ok {
		return nil, &Condition{Field: field}, nil
	}
	return list, &Condition{Field: field, Expected: list, Exists: true}, nil
}

// PatchHormonalTracker appends a tag to the user's tracker list, raising the
// tracker flag. Duplicate tags collapse to the first occurrence.
func (s *Service) PatchHormonalTracker(ctx context.Context) (int, any) {

	email, err := s.bodyString(FieldEmail)
	if err != nil {
		return s.fail(ctx, "Error while updating user", err)
	}
	tag, err := s.bodyString("updateValues")
	if err != nil {
		return s.fail(ctx, "Error while updating user", err)
	}

	list, cond, err := s.currentList(ctx, email, FieldTracker)
	if err != nil {
		return s.fail(ctx, "Error while updating user", err)
	}

	update := common.RemoveDuplicates(append(list, tag))

	return s.applyUpdates(ctx, email,
		[]string{FieldTrackerFlag, FieldTracker},
		[]any{true, update},
		cond)
}

// DeleteHormonalTracker removes a tag from the tracker list. The tag and
// email arrive as query parameters; a tag that is not on the list is an
// error.
func (s *Service) DeleteHormonalTracker(ctx context.Context) (int, any) {

	email, err := s.queryParam(FieldEmail)
	if err != nil {
		return s.fail(ctx, "Error while updating user", err)
	}
	tag, err := s.queryParam("updateValues")
	if err != nil {
		return s.fail(ctx, "Error while updating user", err)
	}

	list, cond, err := s.currentList(ctx, email, FieldTracker)
	if err != nil {
		return s.fail(ctx, "Error while updating user", err)
	}

	remaining, err := removeFirst(list, tag)
	if err != nil {
		return s.fail(ctx, "Error while updating user", err)
	}

	update := common.RemoveDuplicates(remaining)

	return s.applyUpdates(ctx, email,
		[]string{FieldTrackerFlag, FieldTracker},
		[]any{true, update},
		cond)
}

// PatchJournal appends a journal entry to the user's deduplicated journal
// list.
func (s *Service) PatchJournal(ctx context.Context) (int, any) {

	email, err := s.bodyString(FieldEmail)
	if err != nil {
		return s.fail(ctx, "Error while updating user", err)
	}
	entry, err := s.bodyString("journal")
	if err != nil {
		return s.fail(ctx, "Error while updating user", err)
	}

	list, cond, err := s.currentList(ctx, email, FieldJournal)
	if err != nil {
		return s.fail(ctx, "Error while updating user", err)
	}

	update := common.RemoveDuplicates(append(list, entry))

	return s.applyUpdates(ctx, email, []string{FieldJournal}, []any{update}, cond)
}

// DeleteUser removes the identity-directory entry and then the record-store
// item, returning the prior record. If the store delete fails the directory
// entry is restored (without re-sending the invite) so the pair stays
// consistent.
func (s *Service) DeleteUser(ctx context.Context) (int, any) {

	email, err := s.bodyString(FieldEmail)
	if err != nil {
		return s.fail(ctx, "Error while deleting user", err)
	}

	// Snapshot the admin flag first so a failed store delete can restore the
	// directory entry with the same attributes.
	isAdmin := false
	rec, err := s.repo.Get(ctx, email)
	switch {
	case err == nil:
		isAdmin = rec.Bool(FieldIsDionysusAdmin)
	case !errors.Is(err, common.ErrorNotFound):
		return s.fail(ctx, "Error while deleting user", err)
	}

	if err := s.directory.DeleteUser(ctx, email); err != nil {
		return s.fail(ctx, "Error while deleting user", err)
	}

	deleted, err := s.repo.Delete(ctx, email)
	if err != nil {
		if rerr := s.directory.RestoreUser(ctx, email, isAdmin); rerr != nil {
			s.logger.Error(ctx, "restore of identity user failed", "email", email, "error", rerr.Error())
		}
		return s.fail(ctx, "Error while deleting user", err)
	}

	return http.StatusOK, map[string]any{
		"operation":   "DELETE",
		"Message":     "Success",
		"deletedUser": deleted,
	}
}

// removeFirst deletes the first occurrence of v, erroring when v is absent.
func removeFirst(list []string, v string) ([]string, error) {
	for i, item := range list {
		if item == v {
			out := make([]string, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", common.ErrorValueNotFound, v)
}
