package handler

import (
	"net/url"

	"postboard/internal/delivery/api/validator"
	domainerrors "postboard/internal/domain/errors"
	"postboard/internal/domain/repository"
	"postboard/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var errInvalidID = domainerrors.ErrValidationFailed.WithMessage("Invalid id")

// pathID parses the :id route parameter. A malformed ID cannot name a resource.
func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errInvalidID
	}

	return id, nil
}

// queryFilter turns the query string into an exact-match filter. Repeated keys keep their first value.
func queryFilter(query url.Values) repository.Fields {
	filter := make(repository.Fields, len(query))
	for key, values := range query {
		if len(values) > 0 {
			filter[key] = values[0]
		}
	}

	return filter
}

// bindChanges decodes the request body into a set of field changes and checks each changed field
// against rules. Fields without a rule are left to the store.
func bindChanges(c echo.Context, rules map[string]string) (repository.Fields, error) {
	var changes map[string]any
	if err := new(echo.DefaultBinder).BindBody(c, &changes); err != nil {
		return nil, errInvalidBody
	}
	if err := c.Validate(validator.Changes{Fields: changes, Rules: rules}); err != nil {
		return nil, errors.WithStack(err)
	}

	return repository.Fields(changes), nil
}
