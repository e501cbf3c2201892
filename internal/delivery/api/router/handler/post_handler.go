package handler

import (
	"net/http"

	"postboard/internal/delivery/api/response"
	"postboard/internal/domain/entity"
	"postboard/internal/errors"
	"postboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// createPostRequest has no sender field; the author is always the caller.
type createPostRequest struct {
	Title string `json:"title" validate:"required,max=255"`
	Body  string `json:"body" validate:"required"`
}

// postChangeRules applies the create rules to the fields an update changes.
var postChangeRules = map[string]string{
	"title": "required,max=255",
	"body":  "required",
}

type postResponse struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	SenderID uuid.UUID `json:"senderID"`
}

// PostHandler serves /post.
type PostHandler struct {
	uc usecase.PostUsecase
}

// PostHandlerParams holds dependencies for PostHandler, injected by Fx.
type PostHandlerParams struct {
	fx.In

	PostUsecase usecase.PostUsecase
}

// NewPostHandler is the constructor for PostHandler.
func NewPostHandler(params PostHandlerParams) *PostHandler {
	return &PostHandler{uc: params.PostUsecase}
}

func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.uc.List(c.Request().Context(), queryFilter(c.QueryParams()))
	if err != nil {
		return errors.WithStack(err)
	}

	body := make([]postResponse, 0, len(posts))
	for _, post := range posts {
		body = append(body, toPostResponse(post))
	}

	return response.Success(c, http.StatusOK, body)
}

func (h *PostHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	post, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPostResponse(post))
}

func (h *PostHandler) Create(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	post, err := h.uc.Create(c.Request().Context(), userID, &entity.Post{Title: req.Title, Body: req.Body})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toPostResponse(post))
}

func (h *PostHandler) Update(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	changes, err := bindChanges(c, postChangeRules)
	if err != nil {
		return err
	}

	post, err := h.uc.Update(c.Request().Context(), userID, id, changes)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPostResponse(post))
}

func (h *PostHandler) Delete(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	post, err := h.uc.Delete(c.Request().Context(), userID, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPostResponse(post))
}

func toPostResponse(post *entity.Post) postResponse {
	return postResponse{
		ID:       post.ID,
		Title:    post.Title,
		Body:     post.Body,
		SenderID: post.SenderID,
	}
}
