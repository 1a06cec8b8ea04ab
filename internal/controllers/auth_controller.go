package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"traveling_help/internal/api"
	"traveling_help/internal/forms"
	"traveling_help/internal/session"
	"traveling_help/internal/views"
)

// ShowAuth renders the login or the registration form, picked by ?mode=.
func (ctl *Controller) ShowAuth(c *gin.Context) {
	mode := views.ModeLogin
	if c.Query("mode") == views.ModeRegister {
		mode = views.ModeRegister
	}
	c.HTML(http.StatusOK, "auth.tmpl", views.AuthPage{
		Base: ctl.base(c, "Driver sign in"),
		Mode: mode,
	})
}

// Login validates the form, authenticates and starts a session.
func (ctl *Controller) Login(c *gin.Context) {
	var form forms.Login
	if err := c.ShouldBind(&form); err != nil {
		logrus.WithError(err).Debug("login: partial form bind")
	}

	page := views.AuthPage{Base: ctl.base(c, "Driver sign in"), Mode: views.ModeLogin}
	if errs := forms.ValidateLogin(form); !errs.Valid() {
		page.Login, page.Errors = withoutPassword(form), errs
		c.HTML(http.StatusUnprocessableEntity, "auth.tmpl", page)
		return
	}

	res := ctl.API.Login(c.Request.Context(), api.LoginRequest{
		Identifier: form.Identifier,
		Password:   form.Password,
	})
	if !res.OK() {
		page.Login = withoutPassword(form)
		page.Notice = failureNotice(res, "Login Failed", "Invalid credentials. Please try again.")
		c.HTML(http.StatusOK, "auth.tmpl", page)
		return
	}

	ttl := session.DefaultTTLDays
	if form.RememberMe {
		ttl = session.RememberTTLDays
	}
	if !ctl.startSession(c, res.Value, ttl) {
		page.Login = withoutPassword(form)
		page.Notice = views.Failure("Login Failed", sessionFailed)
		c.HTML(http.StatusOK, "auth.tmpl", page)
		return
	}
	ctl.flash(c, views.Success("Login Successful!", "Welcome back, "+res.Value.Driver.CarOwnerName))
	redirect(c, DashboardPath)
}

// Register validates the sign-up form, creates the account and starts a
// session.
func (ctl *Controller) Register(c *gin.Context) {
	var form forms.Registration
	if err := c.ShouldBind(&form); err != nil {
		logrus.WithError(err).Debug("register: partial form bind")
	}

	page := views.AuthPage{Base: ctl.base(c, "Driver registration"), Mode: views.ModeRegister}
	if errs := forms.ValidateRegistration(form); !errs.Valid() {
		page.Register, page.Errors = withoutPasswords(form), errs
		c.HTML(http.StatusUnprocessableEntity, "auth.tmpl", page)
		return
	}

	res := ctl.API.Register(c.Request.Context(), api.RegisterRequest{
		Email:        form.Email,
		Password:     form.Password,
		CarOwnerName: form.CarOwnerName,
		Mobile:       form.Mobile,
		CarType:      form.CarType,
		CarNo:        form.CarNo,
	})
	if !res.OK() {
		page.Register = withoutPasswords(form)
		page.Notice = failureNotice(res, "Registration Failed", "Something went wrong. Please try again.")
		c.HTML(http.StatusOK, "auth.tmpl", page)
		return
	}

	if !ctl.startSession(c, res.Value, session.DefaultTTLDays) {
		page.Register = withoutPasswords(form)
		page.Notice = views.Failure("Registration Failed", sessionFailed)
		c.HTML(http.StatusOK, "auth.tmpl", page)
		return
	}
	ctl.flash(c, views.Success("Registration Successful!", "Your driver account is ready"))
	redirect(c, DashboardPath)
}

// Logout ends the session.
func (ctl *Controller) Logout(c *gin.Context) {
	ctl.Sessions(c).Clear()
	redirect(c, HomePath)
}

const sessionFailed = "Could not start your session. Please try again."

func (ctl *Controller) startSession(c *gin.Context, auth api.AuthData, ttlDays int) bool {
	if err := ctl.Sessions(c).Save(auth.AccessToken, auth.Driver, ttlDays); err != nil {
		logrus.WithError(err).WithField("driver_id", auth.Driver.ID).Error("could not save session")
		return false
	}
	return true
}

func withoutPassword(l forms.Login) forms.Login {
	l.Password = ""
	return l
}

func withoutPasswords(r forms.Registration) forms.Registration {
	r.Password, r.ConfirmPassword = "", ""
	return r
}
