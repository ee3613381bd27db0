package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/taskdesk-api/internal/application"
	"github.com/oksasatya/taskdesk-api/internal/domain/entity"
	"github.com/oksasatya/taskdesk-api/pkg/helpers"
	"github.com/oksasatya/taskdesk-api/pkg/response"
)

const userNotFound = "ERROR: User not found."

type UserHandler struct {
	Svc    *application.UserService
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, jwt *helpers.JWTManager, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, JWT: jwt, Logger: logger}
}

type signupRequest struct {
	Name     string `json:"name" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,min=3"`
	Password string `json:"password" binding:"required,pwd"`
	Company  string `json:"company"`
	Role     string `json:"role" binding:"required,userrole"`
}

var signupMessages = map[string]string{
	"name":     "Name minimum length 3 characters.",
	"email":    "email must be unique and minimum length 3 characters.",
	"password": "Password minimum length 5 characters.",
	"role":     application.RoleMessage,
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// updateUserRequest fields are pointers so absent keys leave the record alone.
type updateUserRequest struct {
	Name     *string   `json:"name"`
	Email    *string   `json:"email"`
	Password *string   `json:"password"`
	Company  *string   `json:"company"`
	Role     *string   `json:"role" binding:"omitempty,userrole"`
	Comments *[]string `json:"comments"`
}

var updateMessages = map[string]string{"role": application.RoleMessage}

type userView struct {
	ID       string   `json:"_id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Company  string   `json:"company,omitempty"`
	Role     string   `json:"role"`
	Comments []string `json:"comments"`
}

func toUserView(u *entity.User) userView {
	comments := u.Comments
	if comments == nil {
		comments = []string{}
	}
	return userView{ID: u.ID, Name: u.Name, Email: u.Email, Company: u.Company, Role: u.Role, Comments: comments}
}

func toUserViews(users []entity.User) []userView {
	out := make([]userView, 0, len(users))
	for i := range users {
		out = append(out, toUserView(&users[i]))
	}
	return out
}

type signinView struct {
	Token     string `json:"token"`
	ID        string `json:"_id"`
	Role      string `json:"role"`
	ExpiresIn int64  `json:"expiresIn"`
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req signupRequest
	if !bindJSON(c, &req, signupMessages) {
		return
	}
	u, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Company:  req.Company,
		Role:     req.Role,
	})
	if err != nil {
		renderError(c, err, userNotFound)
		return
	}
	response.Success(c, http.StatusCreated, toUserView(u), "SUCCESS: User created successfully.", nil)
}

func (h *UserHandler) Signin(c *gin.Context) {
	var req signinRequest
	if !bindJSON(c, &req, nil) {
		return
	}
	res, err := h.Svc.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrUserNotExist) || errors.Is(err, application.ErrWrongPassword) {
			helpers.LogWarn(h.Logger, "signin rejected", logrus.Fields{
				"request_id": c.GetString("request_id"),
				"ip":         c.ClientIP(),
				"reason":     err.Error(),
			})
		}
		renderError(c, err, userNotFound)
		return
	}
	response.Success(c, http.StatusOK, signinView{
		Token:     res.Token,
		ID:        res.User.ID,
		Role:      res.User.Role,
		ExpiresIn: h.JWT.TTL().Milliseconds(),
	}, "SUCCESS: User signin successfully.", gin.H{"expires_at": res.ExpiresAt})
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		renderError(c, err, userNotFound)
		return
	}
	response.Success(c, http.StatusOK, toUserViews(users), "users", gin.H{"count": len(users)})
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err, userNotFound)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "user", nil)
}

func (h *UserHandler) SearchByName(c *gin.Context) {
	users, err := h.Svc.SearchByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		renderError(c, err, "ERROR: No users found")
		return
	}
	response.Success(c, http.StatusOK, toUserViews(users), "users", gin.H{"count": len(users)})
}

func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if !bindJSON(c, &req, updateMessages) {
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), c.Param("id"), entity.UserPatch{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Company:  req.Company,
		Role:     req.Role,
		Comments: req.Comments,
	})
	if err != nil {
		renderError(c, err, "ERROR: User not found when fetching current user data.")
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "SUCCESS: User updated successfully.", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	u, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err, userNotFound)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "SUCCESS: User deleted successfully.", nil)
}
