package resource

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/personnel-web/internal/crud"
	"github.com/cmlabs-hris/personnel-web/internal/domain/employee"
)

func Employee(deps Deps) *crud.Resource {
	res := &crud.Resource{
		Name:     "employee",
		Title:    "Employees",
		Singular: "Employee",
		Path:     "/employee",
		Columns: []crud.Column{
			{Key: "name", Label: "Name"},
			{Key: "regimentalNo", Label: "Regimental No"},
			{Key: "rank", Label: "Rank", Wide: true},
			{Key: "phone", Label: "Phone", Wide: true},
		},
		Details: []crud.Column{
			{Key: "name", Label: "Name"},
			{Key: "regimentalNo", Label: "Regimental No"},
			{Key: "role", Label: "Role"},
			{Key: "rank", Label: "Rank"},
			{Key: "phone", Label: "Phone"},
			{Key: "dob", Label: "Date of Birth"},
			{Key: "doj", Label: "Date of Joining"},
		},
		Fields: []crud.Field{
			{Key: "name", Label: "Name", Kind: crud.KindText, Required: true},
			{Key: "phone", Label: "Phone", Kind: crud.KindText},
			{Key: "dob", Label: "Date of Birth", Kind: crud.KindDate, Required: true},
			{Key: "role", Label: "Role", Kind: crud.KindSelect, Required: true, Options: options(employee.Roles, nil)},
			{Key: "regimentalNo", Label: "Regimental No", Kind: crud.KindText, Required: true},
			{Key: "rank", Label: "Rank", Kind: crud.KindSelect, Required: true, Options: options(employee.Ranks, nil)},
			{Key: "doj", Label: "Date of Joining", Kind: crud.KindDate, Required: true},
		},
		Actions:       crud.Actions{Create: true, Update: true, Delete: true},
		ConfirmDelete: "Are you sure you want to delete this employee? This action cannot be undone.",
		ShowLoadError: true,
	}

	if deps.Passwords == nil {
		res.Fields = append(res.Fields, crud.Field{
			Key: "password", Label: "Initial Password", Kind: crud.KindText, Required: true, CreateOnly: true,
		})
		return res
	}

	gen := deps.Passwords
	res.OnCreate = func(_ context.Context, payload map[string]any) (string, error) {
		pin, err := gen.SixDigit()
		if err != nil {
			return "", err
		}
		payload["password"] = pin
		name, _ := payload["name"].(string)
		return fmt.Sprintf("Initial password for %s: %s", name, pin), nil
	}
	return res
}

func options(values []string, label func(string) string) []crud.Option {
	out := make([]crud.Option, len(values))
	for i, v := range values {
		l := v
		if label != nil {
			l = label(v)
		}
		out[i] = crud.Option{Value: v, Label: l}
	}
	return out
}
