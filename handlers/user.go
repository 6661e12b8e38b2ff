package handlers

import (
	"errors"
	"net/http"

	"blog/auth"
	"blog/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog/log"
)

func Login(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		render(c, http.StatusOK, "login.tmpl", gin.H{
			"title":  "Log in",
			"next":   c.Query("next"),
			"form":   map[string]string{},
			"errors": FormErrors{},
		})
		return
	}
	form := LoginForm{}
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	errs := validateForm(&form)
	if errs.Valid() {
		user, err := models.UserLogin(form.Username, form.Password)
		if errors.Is(err, models.ErrBadCredentials) {
			errs.Add("form", err.Error())
		} else if err != nil {
			serverError(c, err, DBErrorResponse)
			return
		} else {
			if err = auth.LoadSession(c).LoginUser(&user); err != nil {
				serverError(c, err, Response{"Session Error"})
				return
			}
			log.Info().Str("username", user.Username).Msg("Logged in")
			c.Redirect(http.StatusFound, auth.SafeNext(form.Next))
			return
		}
	}
	render(c, http.StatusOK, "login.tmpl", gin.H{
		"title":  "Log in",
		"next":   form.Next,
		"form":   map[string]string{"username": form.Username},
		"errors": errs,
	})
}

func Signup(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		render(c, http.StatusOK, "signup.tmpl", gin.H{
			"title":  "Sign up",
			"form":   map[string]string{},
			"errors": FormErrors{},
		})
		return
	}
	form := SignupForm{}
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	form.Clean()
	errs := validateForm(&form)
	if _, taken := errs["username"]; !taken && models.UsernameTaken(form.Username) {
		errs.Add("username", msgUsernameTaken)
	}
	if !errs.Valid() {
		render(c, http.StatusOK, "signup.tmpl", gin.H{
			"title":  "Sign up",
			"form":   form.Values(),
			"errors": errs,
		})
		return
	}
	user, err := models.UserCreate(models.UserCreateParams{
		Username:  form.Username,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password1,
	})
	if err != nil {
		serverError(c, err, DBErrorResponse)
		return
	}
	if err = auth.LoadSession(c).LoginUser(&user); err != nil {
		serverError(c, err, Response{"Session Error"})
		return
	}
	log.Info().Str("username", user.Username).Msg("Signed up")
	c.Redirect(http.StatusFound, "/")
}

func Logout(c *gin.Context) {
	if err := auth.LoadSession(c).LogoutUser(); err != nil {
		log.Error().Err(err).Msg("Logout")
	}
	c.Redirect(http.StatusFound, "/")
}
