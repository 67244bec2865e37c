package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"habit-tracker/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	habits   service.HabitService
	sessions *Sessions
	logger   *logrus.Logger
}

func NewHandler(users service.UserService, habits service.HabitService, sessions *Sessions, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:    users,
		habits:   habits,
		sessions: sessions,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(noCacheMiddleware(), requestLogger(h.logger), h.identify())

	router.GET("/register", h.registerForm)
	router.POST("/register", h.register)
	router.GET("/login", h.loginForm)
	router.POST("/login", h.login)
	router.GET("/logout", h.logout)
	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	app := router.Group("/", requireUser())
	{
		app.GET("", h.dashboard)
		app.GET("/add", h.addForm)
		app.POST("/add", h.addHabit)
		app.POST("/track", h.track)
	}
}

type registerRequest struct {
	Username     string `form:"username" json:"username"`
	Password     string `form:"password" json:"password"`
	Confirmation string `form:"confirmation" json:"confirmation"`
}

type loginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

type addHabitRequest struct {
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
}

type trackRequest struct {
	HabitID string `form:"habit_id" json:"habit_id"`
}

func (h *Handler) registerForm(c *gin.Context) {
	c.JSON(http.StatusOK, newFormView("register", "/register", "username", "password", "confirmation"))
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		h.apology(c, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password, req.Confirmation)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.sessions.Establish(c, user); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) loginForm(c *gin.Context) {
	h.sessions.Clear(c)
	c.JSON(http.StatusOK, newFormView("login", "/login", "username", "password"))
}

func (h *Handler) login(c *gin.Context) {
	h.sessions.Clear(c)

	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.apology(c, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.sessions.Establish(c, user); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) logout(c *gin.Context) {
	h.sessions.Clear(c)
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) dashboard(c *gin.Context) {
	user := currentUser(c)
	dash, err := h.habits.Dashboard(c.Request.Context(), user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboardToResponse(user.Username, dash))
}

func (h *Handler) addForm(c *gin.Context) {
	c.JSON(http.StatusOK, newFormView("add", "/add", "name", "description"))
}

func (h *Handler) addHabit(c *gin.Context) {
	var req addHabitRequest
	if err := c.ShouldBind(&req); err != nil {
		h.apology(c, http.StatusBadRequest, "invalid request")
		return
	}

	if _, err := h.habits.AddHabit(c.Request.Context(), currentUser(c).ID, req.Name, req.Description); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) track(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBind(&req); err != nil {
		h.apology(c, http.StatusBadRequest, "invalid request")
		return
	}

	habitID, err := strconv.ParseInt(strings.TrimSpace(req.HabitID), 10, 64)
	if err != nil || habitID <= 0 {
		h.fail(c, &service.ValidationError{Message: "invalid habit"})
		return
	}

	if _, err := h.habits.Track(c.Request.Context(), currentUser(c).ID, habitID); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}
