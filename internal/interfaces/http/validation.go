package http

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Carnes-api/internal/domain"
)

// Validator valida los DTO de entrada con las etiquetas `validate`.
// Los campos se reportan con su nombre JSON (ej. items[0].weight).
type Validator struct {
	v *validator.Validate
}

// NewValidator registra los nombres JSON y el tipo decimal.Decimal (comparado como float64).
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	return &Validator{v: v}
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

// Struct valida s y devuelve *domain.ValidationError con un mensaje por campo.
func (val *Validator) Struct(s interface{}) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.NewValidationError("body", err.Error())
	}
	out := &domain.ValidationError{}
	for _, fe := range verrs {
		out.Add(fieldPath(fe), message(fe))
	}
	return out
}

// bind parsea el cuerpo JSON en dst y lo valida.
func (val *Validator) bind(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cuerpo inválido")
	}
	return val.Struct(dst)
}

// idParam lee un ID de la ruta. Un ID que no es UUID no puede existir: 404 sin tocar la base.
func idParam(c *fiber.Ctx, key string) (string, error) {
	raw := c.Params(key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%s %q: %w", key, raw, domain.ErrNotFound)
	}
	return id.String(), nil
}

// fieldPath quita el nombre del struct raíz: "OrderRequest.items[0].weight" -> "items[0].weight".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "required_without":
		return fmt.Sprintf("es obligatorio si no se indica %s", jsonName(fe.Param()))
	case "gt":
		return "debe ser mayor que " + fe.Param()
	case "gte":
		return "debe ser mayor o igual que " + fe.Param()
	case "lte":
		return "debe ser menor o igual que " + fe.Param()
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("debe tener al menos %s elemento(s)", fe.Param())
		}
		return fmt.Sprintf("longitud mínima %s", fe.Param())
	case "max":
		return fmt.Sprintf("longitud máxima %s", fe.Param())
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "datetime":
		return "formato esperado YYYY-MM-DD"
	case "uuid":
		return "debe ser un UUID válido"
	}
	return "valor inválido"
}

// jsonName nombres de campo Go usados como parámetro de required_without.
func jsonName(goField string) string {
	switch goField {
	case "ProductID":
		return "product_id"
	case "LotID":
		return "meat_cut_id"
	}
	return goField
}
