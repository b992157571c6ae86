// Copyright (c) 2026 Textgate. All rights reserved.
// Author: minh.ngo.dev@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/minhngo/textgate/internal/platform/request"
	"github.com/minhngo/textgate/internal/platform/respond"
	"github.com/minhngo/textgate/internal/platform/validate"
)

// # HTTP Handler

// Handler exposes the authentication endpoints over HTTP.
type Handler struct {
	service     *Service
	requireAuth func(http.Handler) http.Handler
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, requireAuth func(http.Handler) http.Handler) *Handler {
	return &Handler{
		service:     service,
		requireAuth: requireAuth,
	}
}

// Routes assembles the user sub-router mounted at /api/v1/users.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	router.Group(func(protected chi.Router) {
		protected.Use(handler.requireAuth)
		protected.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// # Endpoints

/*
register handles POST /register.

Description: Decodes and validates the enrollment payload, then delegates to
the service. Responds 201 with the created user; the password hash never
appears in the projection.
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var payload registerRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 1. Validate payload shape. Password strength is enforced by the service.
	validator := &validate.Validator{}
	validator.
		Required(FieldUsername, payload.Username).
		MaxLen(FieldUsername, payload.Username, 50).
		Required(FieldEmail, payload.Email).
		Email(FieldEmail, payload.Email).
		Required(FieldPassword, payload.Password)

	if validator.HasErrors() {
		respond.Error(writer, request, validator.Err())
		return
	}

	// 2. Register the user.
	user, err := handler.service.Register(request.Context(), RegisterInput{
		Username: payload.Username,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
login handles POST /login.

Description: Exchanges email/password credentials for a bearer access token.
Both unknown-email and wrong-password failures surface as the same 401.
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var payload loginRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldEmail, payload.Email).
		Required(FieldPassword, payload.Password)

	if validator.HasErrors() {
		respond.Error(writer, request, validator.Err())
		return
	}

	result, err := handler.service.Login(request.Context(), payload.Email, payload.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
me handles GET /me.

Description: Returns the profile of the authenticated caller. The principal
carries only identity claims; the profile is re-read from the store so a
deleted account answers 404 even while its token is still live.
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.FindByID(request.Context(), principal.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
