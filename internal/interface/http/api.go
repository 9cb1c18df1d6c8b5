package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	domproduct "github.com/JoelVR2k/InventoryManager/internal/domain/product"
	domuser "github.com/JoelVR2k/InventoryManager/internal/domain/user"
	authuc "github.com/JoelVR2k/InventoryManager/internal/usecase/auth"
	metricsuc "github.com/JoelVR2k/InventoryManager/internal/usecase/metrics"
	productuc "github.com/JoelVR2k/InventoryManager/internal/usecase/product"
)

type API struct {
	productSvc *productuc.Service
	metricsSvc *metricsuc.Service
	authSvc    *authuc.Service
	validator  *validator.Validate
	tokenSvc   authuc.TokenService
}

type Dependencies struct {
	ProductService *productuc.Service
	MetricsService *metricsuc.Service
	AuthService    *authuc.Service
	TokenService   authuc.TokenService
}

func NewAPI(deps Dependencies) *API {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &API{
		productSvc: deps.ProductService,
		metricsSvc: deps.MetricsService,
		authSvc:    deps.AuthService,
		tokenSvc:   deps.TokenService,
		validator:  validate,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.AllowContentType("application/json", "text/plain"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", a.handleLogin)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", a.handleListProducts)
			r.Get("/metrics", a.handleMetrics)
			r.Get("/{id}", a.handleGetProduct)

			r.Group(func(pr chi.Router) {
				pr.Use(a.authMiddleware)
				pr.Use(a.requireRoles(domuser.RoleCodeAdmin))
				pr.Post("/", a.handleCreateProduct)
				pr.Put("/{id}", a.handleUpdateProduct)
				pr.Delete("/{id}", a.handleDeleteProduct)
				pr.Post("/{id}/outofstock", a.handleMarkOutOfStock)
				pr.Put("/{id}/instock", a.handleMarkInStock)
			})
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

// respondBadRequest turns validator errors into a per-field detail map so a
// client can show the message next to the offending input.
func respondBadRequest(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fieldMessage(fe)
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Details: details})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or greater", fe.Param())
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must be a calendar date (yyyy-mm-dd)"
	}
	return "is invalid"
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	idStr := chi.URLParam(r, key)
	return strconv.ParseInt(idStr, 10, 64)
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domproduct.ErrProductNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, domproduct.ErrIDMismatch):
		respondError(w, http.StatusBadRequest, err)
	case errors.Is(err, domproduct.ErrInvalidName),
		errors.Is(err, domproduct.ErrInvalidCategory),
		errors.Is(err, domproduct.ErrInvalidPrice),
		errors.Is(err, domproduct.ErrInvalidStock):
		respondError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, domuser.ErrInvalidCredential),
		errors.Is(err, domuser.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, err)
	default:
		respondError(w, http.StatusInternalServerError, err)
	}
}
