package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"habit-tracker/internal/domain"
	"habit-tracker/internal/service"
)

type DashboardResponse struct {
	Username string          `json:"username"`
	Date     string          `json:"date"`
	Habits   []HabitResponse `json:"habits"`
}

type HabitResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DoneToday   int    `json:"done_today"`
}

type FormResponse struct {
	View   string   `json:"view"`
	Action string   `json:"action"`
	Method string   `json:"method"`
	Fields []string `json:"fields"`
}

type ApologyResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

func newFormView(view, action string, fields ...string) FormResponse {
	return FormResponse{
		View:   view,
		Action: action,
		Method: http.MethodPost,
		Fields: fields,
	}
}

func dashboardToResponse(username string, dash *domain.Dashboard) DashboardResponse {
	resp := DashboardResponse{
		Username: username,
		Date:     dash.Date,
		Habits:   make([]HabitResponse, len(dash.Habits)),
	}
	for i, entry := range dash.Habits {
		done := 0
		if entry.DoneToday {
			done = 1
		}
		resp.Habits[i] = HabitResponse{
			ID:          entry.ID,
			Name:        entry.Name,
			Description: entry.Description,
			DoneToday:   done,
		}
	}
	return resp
}

func (h *Handler) apology(c *gin.Context, status int, message string) {
	c.JSON(status, ApologyResponse{Error: message, Code: status})
}

// fail maps service errors onto apology responses. Anything unexpected is
// recorded on the context for the request logger and hidden from the client.
func (h *Handler) fail(c *gin.Context, err error) {
	var (
		validation *service.ValidationError
		conflict   *service.ConflictError
		auth       *service.AuthError
		notFound   *service.NotFoundError
	)
	switch {
	case errors.As(err, &validation):
		h.apology(c, http.StatusBadRequest, validation.Message)
	case errors.As(err, &conflict):
		h.apology(c, http.StatusConflict, conflict.Message)
	case errors.As(err, &auth):
		h.apology(c, http.StatusUnauthorized, auth.Message)
	case errors.As(err, &notFound):
		h.apology(c, http.StatusNotFound, notFound.Message)
	default:
		_ = c.Error(err)
		h.apology(c, http.StatusInternalServerError, "internal server error")
	}
}
