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

type createCommentRequest struct {
	PostID  string `json:"postID" validate:"required,uuid"`
	Content string `json:"content" validate:"required"`
}

// commentChangeRules applies the create rules to the fields an update changes.
var commentChangeRules = map[string]string{
	"postID":  "required,uuid",
	"content": "required",
}

type commentResponse struct {
	ID      uuid.UUID `json:"id"`
	PostID  uuid.UUID `json:"postID"`
	UserID  uuid.UUID `json:"userID"`
	Content string    `json:"content"`
}

// CommentHandler serves /comment.
type CommentHandler struct {
	uc usecase.CommentUsecase
}

// CommentHandlerParams holds dependencies for CommentHandler, injected by Fx.
type CommentHandlerParams struct {
	fx.In

	CommentUsecase usecase.CommentUsecase
}

// NewCommentHandler is the constructor for CommentHandler.
func NewCommentHandler(params CommentHandlerParams) *CommentHandler {
	return &CommentHandler{uc: params.CommentUsecase}
}

func (h *CommentHandler) List(c echo.Context) error {
	comments, err := h.uc.List(c.Request().Context(), queryFilter(c.QueryParams()))
	if err != nil {
		return errors.WithStack(err)
	}

	body := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		body = append(body, toCommentResponse(comment))
	}

	return response.Success(c, http.StatusOK, body)
}

func (h *CommentHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	comment, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCommentResponse(comment))
}

func (h *CommentHandler) Create(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	comment, err := h.uc.Create(c.Request().Context(), userID, &entity.Comment{
		PostID:  uuid.MustParse(req.PostID),
		Content: req.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toCommentResponse(comment))
}

func (h *CommentHandler) Update(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	changes, err := bindChanges(c, commentChangeRules)
	if err != nil {
		return err
	}

	comment, err := h.uc.Update(c.Request().Context(), userID, id, changes)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCommentResponse(comment))
}

func (h *CommentHandler) Delete(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	comment, err := h.uc.Delete(c.Request().Context(), userID, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCommentResponse(comment))
}

func toCommentResponse(comment *entity.Comment) commentResponse {
	return commentResponse{
		ID:      comment.ID,
		PostID:  comment.PostID,
		UserID:  comment.UserID,
		Content: comment.Content,
	}
}
