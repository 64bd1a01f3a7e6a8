package resource

import (
	"github.com/cmlabs-hris/personnel-web/internal/crud"
	"github.com/cmlabs-hris/personnel-web/internal/domain/medical"
)

func Medical() *crud.Resource {
	return &crud.Resource{
		Name:       "medical",
		Title:      "Medical",
		Singular:   "Medical Record",
		Path:       "/medical",
		ScopeParam: "employee_id",
		ScopeField: "employee",
		Columns: []crud.Column{
			{Key: "employee", Label: "Employee"},
			{Key: "category", Label: "Category"},
			{Key: "date", Label: "Date", Wide: true},
		},
		Details: []crud.Column{
			{Key: "employee", Label: "Employee"},
			{Key: "category", Label: "Category"},
			{Key: "date", Label: "Date"},
			{Key: "description", Label: "Description"},
		},
		Fields: []crud.Field{
			employeeRef(),
			{Key: "date", Label: "Date", Kind: crud.KindDate, Required: true},
			{Key: "category", Label: "Category", Kind: crud.KindSelect, Required: true, Options: options(medical.Categories, nil)},
			{Key: "description", Label: "Description", Kind: crud.KindTextarea},
		},
		Actions:       crud.Actions{Create: true, Update: true, Delete: true},
		ConfirmDelete: "Are you sure you want to delete this medical record?",
	}
}
