package employee

import (
	"github.com/presentia-hr/presentia-backend-go/internal/domain/shift"
	"github.com/presentia-hr/presentia-backend-go/internal/pkg/validator"
)

type EnrollRequest struct {
	Legajo    string    `json:"legajo"`
	Area      string    `json:"area"`
	Role      string    `json:"rol"`
	Shift     string    `json:"turno"`
	Embedding []float32 `json:"embedding"`
}

func (r EnrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Legajo) {
		errs = append(errs, validator.ValidationError{Field: "legajo", Message: "legajo is required"})
	} else if !validator.IsNumeric(r.Legajo) {
		errs = append(errs, validator.ValidationError{Field: "legajo", Message: "legajo must be numeric"})
	}
	if validator.IsEmpty(r.Area) {
		errs = append(errs, validator.ValidationError{Field: "area", Message: "area is required"})
	}
	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{Field: "rol", Message: "rol is required"})
	}
	if _, err := shift.Parse(r.Shift); err != nil {
		errs = append(errs, validator.ValidationError{Field: "turno", Message: "turno must be one of manana, tarde, noche"})
	}
	if len(r.Embedding) == 0 {
		errs = append(errs, validator.ValidationError{Field: "embedding", Message: "embedding is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	Legajo       string `json:"legajo"`
	Area         string `json:"area"`
	Role         string `json:"rol"`
	Shift        string `json:"turno"`
	RegisteredAt string `json:"registered_at"`
}
