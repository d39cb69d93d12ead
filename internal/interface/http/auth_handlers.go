package http

import (
	"net/http"

	accountuc "example.com/storefront/internal/usecase/account"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// registerRequest fields are checked by the account rules, not by tags.
type registerRequest struct {
	Name                 string `json:"name"`
	LastName             string `json:"last_name"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Birth                string `json:"birth"`
	Country              string `json:"country"`
	City                 string `json:"city"`
	Cologne              string `json:"cologne"`
	Address              string `json:"address"`
	ZipCode              string `json:"zip_code"`
	Terms                bool   `json:"terms"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	profile := getProfile(r.Context())
	if profile == nil {
		respondError(w, http.StatusUnauthorized, errNoProfile)
		return
	}

	var req loginRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	result, err := a.accountSvc.Login(r.Context(), accountuc.LoginInput{
		ProfileID: profile.ID,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	a.writeProfileCookie(w, result.Token)
	writeJSON(w, http.StatusOK, map[string]any{
		"token":        result.Token,
		"welcome_name": result.WelcomeName,
		"email":        result.Account.Email,
	})
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	result, err := a.accountSvc.Register(r.Context(), accountuc.RegisterForm{
		Name:                 req.Name,
		LastName:             req.LastName,
		Email:                req.Email,
		Phone:                req.Phone,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		Birth:                req.Birth,
		Country:              req.Country,
		City:                 req.City,
		Cologne:              req.Cologne,
		Address:              req.Address,
		ZipCode:              req.ZipCode,
		Terms:                req.Terms,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"email":        result.Account.Email,
		"welcome_name": result.WelcomeName,
	})
}
