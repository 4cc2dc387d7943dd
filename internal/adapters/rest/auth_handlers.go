package rest

import (
	"net/http"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/contracts"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"
	"github.com/ianmeigh/property-direct-backend/internal/core/port/usecases_port"
)

type AuthHandler struct {
	registerUC    usecases_port.RegisterAccountUseCasePort
	loginUC       usecases_port.LoginAccountUseCasePort
	currentUserUC usecases_port.GetCurrentAccountUseCasePort
}

func NewAuthHandler(registerUC usecases_port.RegisterAccountUseCasePort,
	loginUC usecases_port.LoginAccountUseCasePort,
	currentUserUC usecases_port.GetCurrentAccountUseCasePort) *AuthHandler {
	return &AuthHandler{
		registerUC:    registerUC,
		loginUC:       loginUC,
		currentUserUC: currentUserUC,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Register"})

	var req RegisterRequest
	if err := decodeBody(r, contracts.Register, &req); err != nil {
		RespondWithError(w, logger, err)
		return
	}

	account, token, err := h.registerUC.Execute(r.Context(), usecases_port.RegisterAccountRequest{
		Username:        req.Username,
		Password:        req.Password1,
		PasswordConfirm: req.Password2,
		IsSeller:        req.IsSeller,
	})
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	logger.Info("Account registered", port.Fields{"account_id": account.ID})
	RespondWithJSON(w, http.StatusCreated, AuthResponse{AccessToken: token, User: toAccountResponse(account)})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Login"})

	var req LoginRequest
	if err := decodeBody(r, contracts.Login, &req); err != nil {
		RespondWithError(w, logger, err)
		return
	}

	account, token, err := h.loginUC.Execute(r.Context(), req.Username, req.Password)
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, AuthResponse{AccessToken: token, User: toAccountResponse(account)})
}

func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CurrentUser"})

	current, err := h.currentUserUC.Execute(r.Context(), contextkeys.RequesterFromContext(r.Context()))
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toCurrentAccountResponse(current))
}
