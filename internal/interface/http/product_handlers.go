package http

import (
	"net/http"
	"slices"
)

func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.apiSession(w, r)
	if !ok {
		return
	}

	products, err := a.productSvc.List(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	liked, err := sess.likes.List(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := make([]map[string]any, 0, len(products))
	for _, p := range products {
		resp = append(resp, mapProduct(p, slices.Contains(liked, p.ID)))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.apiSession(w, r)
	if !ok {
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	p, err := a.productSvc.GetByID(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	liked, err := sess.likes.List(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(p, slices.Contains(liked, p.ID)))
}

func (a *API) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.apiSession(w, r)
	if !ok {
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if _, err := a.productSvc.GetByID(r.Context(), id); err != nil {
		handleDomainError(w, err)
		return
	}

	liked, err := sess.likes.Toggle(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"product_id": id,
		"liked":      liked,
	})
}
