package dto

import (
	"errors"
	"math"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-console/internal/domain"
)

// asValidationError convierte los errores de ozzo-validation en un
// domain.ValidationError cuyo texto se muestra en el formulario.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return &domain.ValidationError{Err: fieldErrs}
	}
	return err
}

// nonNegativeNumber exige un número finito >= 0.
var nonNegativeNumber = validation.By(func(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return errors.New("must be a number")
	}
	if n < 0 {
		return errors.New("must be zero or more")
	}
	return nil
})

// nonNegativeDecimal exige un decimal >= 0.
var nonNegativeDecimal = validation.By(func(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return errors.New("must be a number")
	}
	if d.IsNegative() {
		return errors.New("must be zero or more")
	}
	return nil
})

// positiveInteger exige un entero >= 1.
var positiveInteger = validation.By(func(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("must be a whole number")
	}
	if n < 1 {
		return errors.New("must be at least 1")
	}
	return nil
})

// parseFloat convierte un campo ya validado.
func parseFloat(s string) float64 {
	n, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return n
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
