// Package handler contains the HTTP layer: request binding, validation and
// translation of domain errors into the API's error envelope. Handlers hold
// no business logic; everything meaningful happens in the service layer.
package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/NicolasGomez268/PuntoTecno/internal/apierror"
	"github.com/NicolasGomez268/PuntoTecno/internal/middleware"
	"github.com/NicolasGomez268/PuntoTecno/internal/service"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Monetary fields are decimal.Decimal; teach the validator to compare
	// them numerically so min/max tags work on them.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// bindAndValidate binds the JSON body and validates it. On failure it writes
// the error response and returns false.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Cuerpo de la solicitud invalido"))
		return false
	}
	return validateStruct(c, req)
}

// bindQuery binds query parameters into a filter struct and validates it.
func bindQuery(c *gin.Context, filter interface{}) bool {
	if err := c.ShouldBindQuery(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametros de consulta invalidos"))
		return false
	}
	return validateStruct(c, filter)
}

func validateStruct(c *gin.Context, v interface{}) bool {
	if err := validate.Struct(v); err != nil {
		fields := map[string]string{}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		c.JSON(http.StatusBadRequest, apierror.NewValidation(fields))
		return false
	}
	return true
}

// uuidParam parses the :id path parameter; on failure it writes a 400 and
// returns false.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Identificador invalido"))
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps domain errors to HTTP statuses. Anything unrecognized is
// a 500 with a generic message so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	var notFound *apierror.NotFoundError
	var insufficient *apierror.InsufficientStockError
	var invalidStatus *apierror.InvalidStatusError
	var invalidOp *apierror.InvalidOperationError
	var conflict *apierror.ReferentialConflictError

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.As(err, &insufficient):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.As(err, &invalidStatus):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.As(err, &invalidOp):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.As(err, &conflict):
		key := conflict.CountKey
		if key == "" {
			key = "blocking_count"
		}
		c.JSON(http.StatusConflict, gin.H{"detail": conflict.Detail, key: conflict.Count})
	default:
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}

// authUserID extracts the authenticated user's id from the JWT claims.
// Returns nil when the route is reachable without auth.
func authUserID(c *gin.Context) *uuid.UUID {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return nil
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil
	}
	return &id
}
