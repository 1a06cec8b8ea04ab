package forms

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"traveling_help/internal/api"
)

// Layouts of the date and time inputs.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	isoLayout = "2006-01-02T15:04:05.000Z"
)

// RidePost is the shared create/edit form of a ride.
type RidePost struct {
	OwnerName      string  `form:"ownerName" validate:"required"`
	Mobile         string  `form:"mobile" validate:"required"`
	WhatsAppNumber string  `form:"whatsAppNumber"`
	From           string  `form:"from" validate:"required"`
	To             string  `form:"to" validate:"required"`
	Date           string  `form:"date" validate:"required"`
	Time           string  `form:"time" validate:"required"`
	AvailableSeats int     `form:"availableSeats" validate:"min=1"`
	Price          float64 `form:"price" validate:"min=0"`
}

var ridePostMessages = map[string]map[string]string{
	"ownerName":      {"required": "Owner name is required"},
	"mobile":         {"required": "Mobile number is required"},
	"from":           {"required": "From location is required"},
	"to":             {"required": "To location is required"},
	"date":           {"required": "Date is required"},
	"time":           {"required": "Time is required"},
	"availableSeats": {"min": "At least 1 seat required"},
	"price":          {"min": "Price cannot be negative"},
}

// NewRidePost is an empty form prefilled from the driver's profile.
func NewRidePost(profile api.Driver) RidePost {
	return RidePost{
		OwnerName:      profile.CarOwnerName,
		Mobile:         profile.Mobile,
		AvailableSeats: 1,
	}
}

// RidePostFromPost fills the form from a stored post, splitting its
// timestamps back into a UTC calendar date and a local time of day.
func RidePostFromPost(p api.Post, loc *time.Location) RidePost {
	return RidePost{
		OwnerName:      p.OwnerName,
		Mobile:         p.Mobile,
		WhatsAppNumber: p.WhatsAppNumber,
		From:           p.From,
		To:             p.To,
		Date:           p.Date.UTC().Format(DateLayout),
		Time:           p.Time.In(loc).Format(TimeLayout),
		AvailableSeats: p.AvailableSeats,
		Price:          p.Price,
	}
}

// DecodeRidePost reads the form from a POST body. Seat and price inputs
// that are not finite numbers are reported as field errors.
func DecodeRidePost(c *gin.Context) (RidePost, Errors) {
	p := RidePost{
		OwnerName:      strings.TrimSpace(c.PostForm("ownerName")),
		Mobile:         strings.TrimSpace(c.PostForm("mobile")),
		WhatsAppNumber: strings.TrimSpace(c.PostForm("whatsAppNumber")),
		From:           strings.TrimSpace(c.PostForm("from")),
		To:             strings.TrimSpace(c.PostForm("to")),
		Date:           strings.TrimSpace(c.PostForm("date")),
		Time:           strings.TrimSpace(c.PostForm("time")),
	}
	errs := Errors{}

	if seats, err := strconv.Atoi(strings.TrimSpace(c.PostForm("availableSeats"))); err != nil {
		errs["availableSeats"] = "Seats must be a whole number"
	} else {
		p.AvailableSeats = seats
	}
	if price, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm("price")), 64); err != nil || math.IsInf(price, 0) || math.IsNaN(price) {
		errs["price"] = "Price must be a number"
	} else {
		p.Price = price
	}
	return p, errs
}

// ValidateRidePost checks the ride form.
func ValidateRidePost(p RidePost) Errors {
	errs := check(p, ridePostMessages)
	if p.Date != "" && p.Time != "" && errs["date"] == "" && errs["time"] == "" {
		if _, _, err := CombineDateTime(p.Date, p.Time, time.UTC); err != nil {
			errs["time"] = "Date and time must form a valid point in time"
		}
	}
	return errs
}

// CombineDateTime turns the date and time inputs into the two ISO-8601
// timestamps the backend stores: the date at UTC midnight, and the
// departure instant with the time of day read in loc.
func CombineDateTime(date, timeOfDay string, loc *time.Location) (string, string, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", "", fmt.Errorf("parse date %q: %w", date, err)
	}
	at, err := time.ParseInLocation(DateLayout+"T"+TimeLayout, date+"T"+timeOfDay, loc)
	if err != nil {
		return "", "", fmt.Errorf("parse time %q: %w", timeOfDay, err)
	}
	return day.UTC().Format(isoLayout), at.UTC().Format(isoLayout), nil
}

// Input builds the create/update body.
func (p RidePost) Input(loc *time.Location) (api.PostInput, error) {
	date, at, err := CombineDateTime(p.Date, p.Time, loc)
	if err != nil {
		return api.PostInput{}, err
	}
	return api.PostInput{
		OwnerName:      p.OwnerName,
		Mobile:         p.Mobile,
		WhatsAppNumber: p.WhatsAppNumber,
		From:           p.From,
		To:             p.To,
		Date:           date,
		Time:           at,
		AvailableSeats: p.AvailableSeats,
		Price:          p.Price,
	}, nil
}
