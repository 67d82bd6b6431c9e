package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

// newIDToken is the path id the editors use for a record that has not been saved yet.
const newIDToken = "new"

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestErrorWithField("invalid "+name, name, "must be a uuid")
	}
	return id, nil
}

// editorIDParam accepts either a uuid or the "new" token.
func editorIDParam(r *http.Request, name string) (id uuid.UUID, isNew bool, err error) {
	if chi.URLParam(r, name) == newIDToken {
		return uuid.Nil, true, nil
	}
	id, err = uuidParam(r, name)
	return id, false, err
}

// requireConfirmation enforces the two step delete.
func requireConfirmation(r *http.Request, action string) error {
	if r.URL.Query().Get("confirm") != "true" {
		return errs.NewConfirmationRequiredError(action)
	}
	return nil
}
