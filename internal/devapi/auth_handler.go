package devapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"traveling_help/internal/middleware"
	"traveling_help/internal/models"
)

type registerInput struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	CarOwnerName string `json:"carOwnerName" binding:"required"`
	Mobile       string `json:"mobile" binding:"required,numeric,len=10"`
	CarType      string `json:"carType" binding:"required_with=CarNo"`
	CarNo        string `json:"carNo" binding:"required_with=CarType"`
}

type loginInput struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// Register creates a driver and signs them in.
func (h *Handler) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		serverError(c, err, "could not hash password")
		return
	}

	driver := models.Driver{
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Password:     hashedPassword,
		CarOwnerName: strings.TrimSpace(input.CarOwnerName),
		Mobile:       input.Mobile,
		CarType:      strings.TrimSpace(input.CarType),
		CarNo:        strings.ToUpper(strings.TrimSpace(input.CarNo)),
	}
	if err := h.Store.CreateDriver(c.Request.Context(), &driver); err != nil {
		if errors.Is(err, ErrDuplicate) {
			fail(c, http.StatusConflict, "Email or mobile already registered")
			return
		}
		serverError(c, err, "could not create driver")
		return
	}

	h.issue(c, http.StatusCreated, "Driver registered successfully", driver)
}

// Login accepts an email or a mobile number as identifier.
func (h *Handler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	driver, err := h.Store.FindDriver(c.Request.Context(), strings.TrimSpace(input.Identifier))
	if errors.Is(err, ErrNotFound) {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		serverError(c, err, "could not load driver")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(driver.Password), []byte(input.Password)); err != nil {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.issue(c, http.StatusOK, "Login successful", driver)
}

func (h *Handler) issue(c *gin.Context, status int, message string, driver models.Driver) {
	token, err := middleware.GenerateToken(driver.ID, h.Secret, h.TokenTTL)
	if err != nil {
		serverError(c, err, "could not generate token")
		return
	}
	logrus.WithField("driver_id", driver.ID).Info(message)
	respond(c, status, message, gin.H{
		"accessToken": token,
		"driver":      driverResponse(driver),
	})
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
