package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	domaccount "example.com/storefront/internal/domain/account"
	"example.com/storefront/internal/interface/web"
	accountuc "example.com/storefront/internal/usecase/account"
)

// pageSession resolves the session of the request or writes the error page.
func (a *API) pageSession(w http.ResponseWriter, r *http.Request) (*session, bool) {
	profile := getProfile(r.Context())
	if profile == nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return nil, false
	}
	sess, err := a.sessions.get(r.Context(), profile.ID)
	if err != nil {
		a.pageError(w, err)
		return nil, false
	}
	return sess, true
}

func (a *API) pageError(w http.ResponseWriter, err error) {
	status := domainStatus(err)
	if status >= http.StatusInternalServerError {
		a.logger.Error("page request failed", zap.Error(err))
	}
	http.Error(w, err.Error(), status)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *API) handleIndexPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.pageSession(w, r)
	if !ok {
		return
	}

	products, err := a.productSvc.List(r.Context())
	if err != nil {
		a.pageError(w, err)
		return
	}
	liked, err := sess.likes.List(r.Context())
	if err != nil {
		a.pageError(w, err)
		return
	}

	a.renderPage(w, http.StatusOK, "index", web.IndexPage{
		Cards:   web.NewCards(products, liked),
		Cart:    sess.doc.View(),
		Notices: sess.notices.Drain(),
		Email:   getProfile(r.Context()).Email,
	})
}

func (a *API) handleAddToCartForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.pageSession(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(r.PostFormValue("product_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product_id", http.StatusBadRequest)
		return
	}

	p, err := a.productSvc.GetByID(r.Context(), id)
	if err != nil {
		a.pageError(w, err)
		return
	}
	if _, err := sess.cart.Add(r.Context(), *p); err != nil {
		a.pageError(w, err)
		return
	}
	redirectHome(w, r)
}

func (a *API) handleRemoveControl(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.pageSession(w, r)
	if !ok {
		return
	}
	if err := sess.presenter.Activate(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.pageError(w, err)
		return
	}
	redirectHome(w, r)
}

func (a *API) handleTogglePanel(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.pageSession(w, r)
	if !ok {
		return
	}
	sess.doc.TogglePanel()
	redirectHome(w, r)
}

func (a *API) handleCheckoutForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.pageSession(w, r)
	if !ok {
		return
	}
	result, err := a.checkoutSvc.Confirm(r.Context(), sess.cart, sess.doc)
	if err != nil {
		a.pageError(w, err)
		return
	}
	sess.notices.Notify(result.Notice)
	http.Redirect(w, r, result.Redirect, http.StatusSeeOther)
}

func (a *API) handleLikeForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.pageSession(w, r)
	if !ok {
		return
	}
	id, err := parseIDParam(r, "id")
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	if _, err := a.productSvc.GetByID(r.Context(), id); err != nil {
		a.pageError(w, err)
		return
	}
	if _, err := sess.likes.Toggle(r.Context(), id); err != nil {
		a.pageError(w, err)
		return
	}
	redirectHome(w, r)
}

func (a *API) formPage(sess *session, state accountuc.FormState) web.FormPage {
	return web.FormPage{
		Values:        state.Values,
		Invalid:       state.Invalid,
		SubmitEnabled: state.SubmitEnabled,
		Notices:       sess.notices.Drain(),
		Cart:          sess.doc.View(),
	}
}

func (a *API) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.pageSession(w, r)
	if !ok {
		return
	}
	a.renderPage(w, http.StatusOK, "login", a.formPage(sess, accountuc.FormState{SubmitEnabled: true}))
}

func (a *API) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.pageSession(w, r)
	if !ok {
		return
	}

	form, state := a.accountSvc.Validator().ValidateLogin(accountuc.LoginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	})
	if !state.SubmitEnabled {
		a.renderPage(w, http.StatusUnprocessableEntity, "login", a.formPage(sess, state))
		return
	}

	result, err := a.accountSvc.Login(r.Context(), accountuc.LoginInput{
		ProfileID: getProfile(r.Context()).ID,
		Email:     form.Email,
		Password:  form.Password,
	})
	if err != nil {
		status := domainStatus(err)
		if status >= http.StatusInternalServerError {
			a.pageError(w, err)
			return
		}
		state.Invalid = map[string]string{"email": err.Error(), "password": err.Error()}
		state.SubmitEnabled = true
		a.renderPage(w, status, "login", a.formPage(sess, state))
		return
	}

	a.writeProfileCookie(w, result.Token)
	sess.notices.Notify(result.Notice)
	redirectHome(w, r)
}

func (a *API) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.pageSession(w, r)
	if !ok {
		return
	}
	a.renderPage(w, http.StatusOK, "register", a.formPage(sess, accountuc.FormState{}))
}

func registerFormFrom(r *http.Request) accountuc.RegisterForm {
	return accountuc.RegisterForm{
		Name:                 r.PostFormValue("name"),
		LastName:             r.PostFormValue("last_name"),
		Email:                r.PostFormValue("email"),
		Phone:                r.PostFormValue("phone"),
		Password:             r.PostFormValue("password"),
		PasswordConfirmation: r.PostFormValue("password_confirmation"),
		Birth:                r.PostFormValue("birth"),
		Country:              r.PostFormValue("country"),
		City:                 r.PostFormValue("city"),
		Cologne:              r.PostFormValue("cologne"),
		Address:              r.PostFormValue("address"),
		ZipCode:              r.PostFormValue("zip_code"),
		Terms:                r.PostFormValue("terms") != "",
	}
}

func (a *API) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.pageSession(w, r)
	if !ok {
		return
	}

	form := registerFormFrom(r)
	result, err := a.accountSvc.Register(r.Context(), form)
	if err != nil {
		var formErr *accountuc.FormError
		switch {
		case errors.As(err, &formErr):
			a.renderPage(w, http.StatusUnprocessableEntity, "register", a.formPage(sess, formErr.State))
		case errors.Is(err, domaccount.ErrEmailAlreadyUsed):
			_, state := a.accountSvc.Validator().ValidateRegister(form)
			state.Invalid["email"] = err.Error()
			state.SubmitEnabled = false
			a.renderPage(w, http.StatusConflict, "register", a.formPage(sess, state))
		default:
			a.pageError(w, err)
		}
		return
	}

	sess.notices.Notify(result.Notice)
	redirectHome(w, r)
}
