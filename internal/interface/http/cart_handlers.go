package http

import (
	"errors"
	"net/http"

	domcart "example.com/storefront/internal/domain/cart"
)

var errNoProfile = errors.New("no profile")

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

// apiSession resolves the session of the request or writes the JSON error.
func (a *API) apiSession(w http.ResponseWriter, r *http.Request) (*session, bool) {
	profile := getProfile(r.Context())
	if profile == nil {
		respondError(w, http.StatusUnauthorized, errNoProfile)
		return nil, false
	}
	sess, err := a.sessions.get(r.Context(), profile.ID)
	if err != nil {
		handleDomainError(w, err)
		return nil, false
	}
	return sess, true
}

func changeName(c domcart.Change) string {
	if c == domcart.ChangeUpdated {
		return "updated"
	}
	return "added"
}

func (a *API) handleGetCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.apiSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, mapCart(sess.cart.Snapshot()))
}

func (a *API) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.apiSession(w, r)
	if !ok {
		return
	}

	var req addCartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	p, err := a.productSvc.GetByID(r.Context(), req.ProductID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	result, err := sess.cart.Add(r.Context(), *p)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"change":   changeName(result.Change),
		"quantity": result.Item.Quantity,
		"cart":     mapCart(sess.cart.Snapshot()),
	})
}

func (a *API) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.apiSession(w, r)
	if !ok {
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	if err := sess.cart.Remove(r.Context(), id); err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(sess.cart.Snapshot()))
}

func (a *API) handleClearCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.apiSession(w, r)
	if !ok {
		return
	}
	if err := sess.cart.Clear(r.Context()); err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(sess.cart.Snapshot()))
}

func (a *API) handleCheckout(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.apiSession(w, r)
	if !ok {
		return
	}

	result, err := a.checkoutSvc.Confirm(r.Context(), sess.cart, sess.doc)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total":      money(result.Total),
		"item_count": result.ItemCount,
		"redirect":   result.Redirect,
		"notice": map[string]any{
			"text":     result.Notice.Text,
			"timer_ms": result.Notice.Timer.Milliseconds(),
		},
	})
}
