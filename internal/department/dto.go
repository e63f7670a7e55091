package department

import "strings"

type CreateUpdateDepartmentDTO struct {
	Name string `json:"name"`
}

type ChangePersonDepartmentDTO struct {
	NewDepartmentName string `json:"new_department_name"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d CreateUpdateDepartmentDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ValidationError{Msg: "name is required"}
	}
	return nil
}

func (d ChangePersonDepartmentDTO) Validate() error {
	if strings.TrimSpace(d.NewDepartmentName) == "" {
		return ValidationError{Msg: "new_department_name is required"}
	}
	return nil
}
