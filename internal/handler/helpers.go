package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/NibsNibsXD/Ferreteria-sub000/internal/apierror"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError translates service sentinel errors into HTTP responses.
// Unknown errors are attached to the Gin context so the ErrorHandler
// middleware logs them and answers with a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.NewWithCode("not_found", err.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, apierror.NewWithCode("forbidden", err.Error()))
	case errors.Is(err, service.ErrCajaAsignada),
		errors.Is(err, service.ErrSesionExistente),
		errors.Is(err, service.ErrCajaLibre),
		errors.Is(err, service.ErrSinCaja),
		errors.Is(err, service.ErrDevolucionDuplicada),
		errors.Is(err, service.ErrStockInsuficiente):
		c.JSON(http.StatusConflict, apierror.NewWithCode("conflict", err.Error()))
	case errors.Is(err, service.ErrReembolsoEfectivo),
		errors.Is(err, service.ErrValorExcedido):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewWithCode("policy_violation", err.Error()))
	case errors.Is(err, service.ErrValidacion):
		c.JSON(http.StatusBadRequest, apierror.NewWithCode("validation_error", err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}

// parseUUIDParam parses a path parameter as UUID, answering 400 on failure.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}
