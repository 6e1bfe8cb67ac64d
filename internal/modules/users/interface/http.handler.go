package transport

import (
	"github.com/labstack/echo/v4"

	"mesaYaCore/internal/modules/users/application/usecase"
	users "mesaYaCore/internal/modules/users/domain"
	"mesaYaCore/internal/shared/httputil"
)

// UserHandler exposes signup and login. Session handling stops here; every other
// handler only consumes the resolved acting user.
type UserHandler struct {
	sessions *usecase.SessionUseCase
}

func NewUserHandler(sessions *usecase.SessionUseCase) *UserHandler {
	return &UserHandler{sessions: sessions}
}

func (h *UserHandler) Register(e *echo.Echo) {
	e.POST("/users", h.signup)
	e.POST("/sessions", h.login)
}

type signupRequest struct {
	Username string        `json:"username"`
	Password string        `json:"password"`
	Email    string        `json:"email"`
	Role     string        `json:"role"`
	Address  users.Address `json:"address"`
}

func (h *UserHandler) signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	if req.Username == "" || req.Password == "" {
		return httputil.BadRequest(c, httputil.ParamsMissing)
	}
	role, ok := users.ParseRole(req.Role)
	if !ok {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	user, err := h.sessions.Register(usecase.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Address:  req.Address,
		Role:     role,
	})
	if err != nil {
		return httputil.Fail(c, err)
	}
	return httputil.OK(c, "user created", user)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *UserHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return httputil.BadRequest(c, httputil.ParamsBadType)
	}
	if req.Username == "" || req.Password == "" {
		return httputil.BadRequest(c, httputil.ParamsMissing)
	}
	token, user, err := h.sessions.Login(req.Username, req.Password)
	if err != nil {
		return httputil.Fail(c, err)
	}
	return httputil.OK(c, "login successful", map[string]any{"token": token, "user": user})
}
