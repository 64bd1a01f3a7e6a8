package resource

import (
	"github.com/cmlabs-hris/personnel-web/internal/crud"
	"github.com/cmlabs-hris/personnel-web/internal/domain/equipment"
)

func Equipment(deps Deps) *crud.Resource {
	return &crud.Resource{
		Name:     "equipment",
		Title:    "Equipment",
		Singular: "Equipment",
		Path:     "/equipment",
		Columns: []crud.Column{
			{Key: "name", Label: "Name"},
			{Key: "category", Label: "Category"},
			{Key: "status", Label: "Status", Wide: true},
		},
		Details: []crud.Column{
			{Key: "name", Label: "Name"},
			{Key: "purchaseDate", Label: "Purchase Date"},
			{Key: "category", Label: "Category"},
			{Key: "assignedTo", Label: "Assigned To"},
			{Key: "status", Label: "Status"},
			{Key: "isServiceable", Label: "Serviceable"},
			{Key: "description", Label: "Description"},
			{Key: "remarks", Label: "Remarks"},
			{Key: "manufacturer", Label: "Manufacturer"},
			{Key: "warrantyPeriod", Label: "Warranty Period"},
			{Key: "lastServiced", Label: "Last Serviced"},
		},
		Fields: []crud.Field{
			{Key: "name", Label: "Name", Kind: crud.KindText, Required: true},
			{Key: "purchaseDate", Label: "Purchase Date", Kind: crud.KindDate, Required: true},
			{Key: "category", Label: "Category", Kind: crud.KindSelect, Required: true, OptionsFrom: deps.Categories},
			{Key: "isServiceable", Label: "Serviceable", Kind: crud.KindCheckbox},
			{Key: "description", Label: "Description", Kind: crud.KindTextarea},
			{Key: "remarks", Label: "Remarks", Kind: crud.KindTextarea},
			{Key: "manufacturer", Label: "Manufacturer", Kind: crud.KindText},
			{Key: "warrantyPeriod", Label: "Warranty Period", Kind: crud.KindText},
			{Key: "lastServiced", Label: "Last Serviced", Kind: crud.KindDate},
			{Key: "assignedTo", Label: "Assigned To", Kind: crud.KindReference, Reference: &crud.Reference{Lookup: "employee", Placeholder: "Search by name or regimental no"}},
			{Key: "status", Label: "Status", Kind: crud.KindSelect, Default: string(equipment.StatusInUse), Options: options(equipment.Statuses, nil)},
		},
		Actions:       crud.Actions{Create: true, Update: true, Delete: true},
		ConfirmDelete: "Are you sure you want to delete this equipment?",
	}
}
