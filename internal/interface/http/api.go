package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domaccount "example.com/storefront/internal/domain/account"
	domproduct "example.com/storefront/internal/domain/product"
	"example.com/storefront/internal/interface/web"
	accountuc "example.com/storefront/internal/usecase/account"
	cartuc "example.com/storefront/internal/usecase/cart"
	checkoutuc "example.com/storefront/internal/usecase/checkout"
	productuc "example.com/storefront/internal/usecase/product"
)

type API struct {
	productSvc  *productuc.Service
	accountSvc  *accountuc.Service
	checkoutSvc *checkoutuc.Service
	sessions    *Sessions
	tokenSvc    accountuc.TokenService
	profileTTL  time.Duration
	validator   *validator.Validate
	logger      *zap.Logger
}

type Dependencies struct {
	ProductService  *productuc.Service
	AccountService  *accountuc.Service
	CheckoutService *checkoutuc.Service
	Sessions        *Sessions
	TokenService    accountuc.TokenService
	ProfileTTL      time.Duration
	Logger          *zap.Logger
}

func NewAPI(deps Dependencies) *API {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		productSvc:  deps.ProductService,
		accountSvc:  deps.AccountService,
		checkoutSvc: deps.CheckoutService,
		sessions:    deps.Sessions,
		tokenSvc:    deps.TokenService,
		profileTTL:  deps.ProfileTTL,
		validator:   validator.New(),
		logger:      logger,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(a.requestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(pr chi.Router) {
		pr.Use(a.profileMiddleware)

		pr.Get("/", a.handleIndexPage)
		pr.Get("/login", a.handleLoginPage)
		pr.Post("/login", a.handleLoginForm)
		pr.Get("/register", a.handleRegisterPage)
		pr.Post("/register", a.handleRegisterForm)
		pr.Post("/cart/items", a.handleAddToCartForm)
		pr.Post("/cart/items/{id}/remove", a.handleRemoveControl)
		pr.Post("/cart/toggle", a.handleTogglePanel)
		pr.Post("/checkout", a.handleCheckoutForm)
		pr.Post("/products/{id}/like", a.handleLikeForm)

		pr.Route("/api/v1", func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json", "text/plain"))

			r.Post("/auth/register", a.handleRegister)
			r.Post("/auth/login", a.handleLogin)

			r.Get("/products", a.handleListProducts)
			r.Get("/products/{id}", a.handleGetProduct)
			r.Post("/products/{id}/like", a.handleToggleLike)

			r.Get("/cart", a.handleGetCart)
			r.Post("/cart/items", a.handleAddCartItem)
			r.Delete("/cart/items/{id}", a.handleRemoveCartItem)
			r.Delete("/cart", a.handleClearCart)
			r.Post("/checkout", a.handleCheckout)
		})
	})

	return r
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (a *API) renderPage(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := web.RenderPage(&buf, name, data); err != nil {
		a.logger.Error("render page failed", zap.String("page", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	idStr := chi.URLParam(r, key)
	return strconv.ParseInt(idStr, 10, 64)
}

// money renders a decimal as a JSON number with two decimals.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func mapProduct(p *domproduct.Product, liked bool) map[string]any {
	stars := p.Stars()
	return map[string]any{
		"id":       p.ID,
		"name":     p.Name,
		"price":    money(p.Price),
		"image":    p.Image,
		"category": p.Category,
		"rating":   p.Rating,
		"stars": map[string]int{
			"full":  stars.Full,
			"half":  stars.Half,
			"empty": stars.Empty,
		},
		"liked": liked,
	}
}

func mapCart(s cartuc.Snapshot) map[string]any {
	items := make([]map[string]any, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, map[string]any{
			"id":       item.ID,
			"name":     item.Name,
			"price":    money(item.Price),
			"image":    item.Image,
			"quantity": item.Quantity,
			"subtotal": money(item.Subtotal()),
		})
	}
	return map[string]any{
		"items":      items,
		"total":      money(s.Total),
		"item_count": s.ItemCount,
	}
}

func domainStatus(err error) int {
	switch {
	case errors.Is(err, domaccount.ErrInvalidForm),
		errors.Is(err, domaccount.ErrInvalidCredential):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domaccount.ErrEmailAlreadyUsed):
		return http.StatusConflict
	case errors.Is(err, domproduct.ErrProductNotFound),
		errors.Is(err, domaccount.ErrAccountNotFound),
		errors.Is(err, web.ErrControlNotFound):
		return http.StatusNotFound
	case errors.Is(err, domaccount.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func handleDomainError(w http.ResponseWriter, err error) {
	var formErr *accountuc.FormError
	if errors.As(err, &formErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:   err.Error(),
			Details: formErr.State.Invalid,
		})
		return
	}
	respondError(w, domainStatus(err), err)
}
