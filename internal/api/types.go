// Package api is the REST client for the ride-sharing backend together with
// the wire types it exchanges.
package api

import (
	"bytes"
	"encoding/json"
	"time"
)

// Driver is the profile of an authenticated driver.
type Driver struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	CarOwnerName string `json:"carOwnerName"`
	Mobile       string `json:"mobile"`
	CarType      string `json:"carType,omitempty"`
	CarNo        string `json:"carNo,omitempty"`
}

// PostOwner references the driver that owns a post. The backend sends either
// the bare id or a populated {_id, email} object.
type PostOwner struct {
	ID    string `json:"_id"`
	Email string `json:"email,omitempty"`
}

// UnmarshalJSON accepts both the id string and the populated object.
func (o *PostOwner) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &o.ID)
	}
	type alias PostOwner
	return json.Unmarshal(data, (*alias)(o))
}

// Post is a single offered ride.
type Post struct {
	ID             string    `json:"_id"`
	Driver         PostOwner `json:"driverId"`
	OwnerName      string    `json:"ownerName"`
	Mobile         string    `json:"mobile"`
	WhatsAppNumber string    `json:"whatsAppNumber,omitempty"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	Date           time.Time `json:"date"`
	Time           time.Time `json:"time"`
	AvailableSeats int       `json:"availableSeats"`
	Price          float64   `json:"price"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// PostInput is the body of create and update calls; Date and Time are ISO-8601.
type PostInput struct {
	OwnerName      string  `json:"ownerName"`
	Mobile         string  `json:"mobile"`
	WhatsAppNumber string  `json:"whatsAppNumber"`
	From           string  `json:"from"`
	To             string  `json:"to"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	AvailableSeats int     `json:"availableSeats"`
	Price          float64 `json:"price"`
}

// Pagination describes one page of the public listing.
type Pagination struct {
	Current    int `json:"current"`
	Total      int `json:"total"`
	Count      int `json:"count"`
	TotalPosts int `json:"totalPosts"`
}

// PostPage is the payload of the public listing.
type PostPage struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

// ListQuery filters the public listing. Empty From/To mean no filter.
type ListQuery struct {
	Page  int
	Limit int
	From  string
	To    string
}

// LoginRequest authenticates by email or mobile number.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// RegisterRequest creates a driver account.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	CarOwnerName string `json:"carOwnerName"`
	Mobile       string `json:"mobile"`
	CarType      string `json:"carType,omitempty"`
	CarNo        string `json:"carNo,omitempty"`
}

// AuthData is returned by login and register.
type AuthData struct {
	AccessToken string `json:"accessToken"`
	Driver      Driver `json:"driver"`
}

// Envelope is the response wrapper used by every endpoint.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}
