// Package controller exposes the entity repositories over HTTP. Every
// response is the standard envelope: a success flag plus either a data
// payload (and a count on lists) or a human-readable message.
package controller

import (
	"net/http"

	"github.com/campusbridge/campusbridge/pkg/server/router"
)

// SuccessResponse wraps a payload in the success envelope.
type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Count   *int `json:"count,omitempty"`
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Success sends 200 with the payload.
func Success(c router.Context, data any) error {
	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: data})
}

// Created sends 201 with the payload.
func Created(c router.Context, data any) error {
	return c.JSON(http.StatusCreated, SuccessResponse{Success: true, Data: data})
}

// List sends 200 with the payload and its length.
func List[T any](c router.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	count := len(items)
	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: items, Count: &count})
}

// Error maps err to a status code and sends the failure envelope.
func Error(c router.Context, err error) error {
	status, resp := MapError(err)
	return c.JSON(status, resp)
}

// Fail sends the failure envelope with an explicit status.
func Fail(c router.Context, status int, message string) error {
	return c.JSON(status, ErrorResponse{Success: false, Message: message})
}
