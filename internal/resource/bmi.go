package resource

import (
	"github.com/cmlabs-hris/personnel-web/internal/crud"
	"github.com/cmlabs-hris/personnel-web/internal/domain/bmi"
)

func BMI() *crud.Resource {
	return &crud.Resource{
		Name:       "bmi",
		Title:      "BMI",
		Singular:   "BMI Record",
		Path:       "/bmi",
		ScopeParam: "employee_id",
		ScopeField: "employee",
		Columns: []crud.Column{
			{Key: "employee", Label: "Employee"},
			{Key: "weight", Label: "Weight (kg)", Wide: true},
			{Key: "height", Label: "Height (cm)", Wide: true},
			{Key: "bmi", Label: "BMI"},
			{Key: "createdAt", Label: "Created At", Wide: true},
		},
		Details: []crud.Column{
			{Key: "employee", Label: "Employee"},
			{Key: "weight", Label: "Weight (kg)"},
			{Key: "height", Label: "Height (cm)"},
			{Key: "bmi", Label: "BMI"},
			{Key: "createdAt", Label: "Created At"},
		},
		Fields: []crud.Field{
			employeeRef(),
			{Key: "weight", Label: "Weight (kg)", Kind: crud.KindNumber, Required: true},
			{Key: "height", Label: "Height (cm)", Kind: crud.KindNumber, Required: true},
			{Key: "bmi", Label: "BMI", Kind: crud.KindNumber, Derive: deriveBMI},
		},
		Actions:       crud.Actions{Create: true, Update: true, Delete: true},
		ConfirmDelete: "Are you sure you want to delete this BMI record?",
	}
}

func deriveBMI(v crud.Values) (string, bool) {
	return bmi.FromStrings(v.Get("weight"), v.Get("height"))
}
