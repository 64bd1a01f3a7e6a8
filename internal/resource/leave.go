package resource

import (
	"context"

	"github.com/cmlabs-hris/personnel-web/internal/crud"
	"github.com/cmlabs-hris/personnel-web/internal/domain/leave"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/validator"
)

func leaveFields(withStatus bool) []crud.Field {
	fields := []crud.Field{
		employeeRef(),
		{Key: "leaveType", Label: "Leave Type", Kind: crud.KindSelect, Required: true, Options: options(leave.Types, leaveTypeLabel)},
		{Key: "startDate", Label: "Start Date", Kind: crud.KindDate, Required: true},
		{Key: "endDate", Label: "End Date", Kind: crud.KindDate, Required: true},
		{Key: "reason", Label: "Reason", Kind: crud.KindTextarea},
	}
	if withStatus {
		fields = append(fields, crud.Field{
			Key: "status", Label: "Status", Kind: crud.KindSelect, Required: true,
			Default: string(leave.StatusPending), Options: options(leave.Statuses, nil),
		})
	}
	return fields
}

func leaveTypeLabel(t string) string {
	return t + " - " + leave.TypeLabel(t)
}

var leaveDetails = []crud.Column{
	{Key: "employee", Label: "Name"},
	{Key: "leaveType", Label: "Leave Type"},
	{Key: "reason", Label: "Leave Reason"},
	{Key: "startDate", Label: "Start Date"},
	{Key: "endDate", Label: "End Date"},
	{Key: "status", Label: "Status"},
}

func Leave(deps Deps) *crud.Resource {
	return &crud.Resource{
		Name:       "leave",
		Title:      "Leaves",
		Singular:   "Leave",
		Path:       "/leave",
		ScopeParam: "employee_id",
		ScopeField: "employee",
		Columns: []crud.Column{
			{Key: "employee", Label: "Employee"},
			{Key: "leaveType", Label: "Leave Type", Wide: true},
			{Key: "startDate", Label: "Start Date"},
			{Key: "endDate", Label: "End Date", Wide: true},
			{Key: "status", Label: "Status", Wide: true},
		},
		Details:       leaveDetails,
		Fields:        leaveFields(true),
		Actions:       crud.Actions{Create: true, Update: true, Delete: true},
		ConfirmDelete: "Are you sure you want to delete this leave record?",
		Checks:        []crud.Check{leaveDateOrder(deps)},
	}
}

// SelfLeave is the signed-in employee's own leave list. Requests are created
// as pending and cannot be edited afterwards.
func SelfLeave(deps Deps) *crud.Resource {
	return &crud.Resource{
		Name:       "leaves",
		Title:      "My Leaves",
		Singular:   "Leave Request",
		Path:       "/leave",
		ScopeParam: "employee_id",
		ScopeField: "employee",
		Columns: []crud.Column{
			{Key: "leaveType", Label: "Leave Type"},
			{Key: "startDate", Label: "Start Date"},
			{Key: "endDate", Label: "End Date", Wide: true},
			{Key: "status", Label: "Status"},
		},
		Details: leaveDetails[1:],
		Fields:  leaveFields(false),
		Actions: crud.Actions{Create: true},
		Fixed:   map[string]any{"status": string(leave.StatusPending)},
		Checks:  []crud.Check{leaveDateOrder(deps)},
	}
}

// leaveDateOrder warns about an end date before the start date and blocks it
// only when enforcement is switched on.
func leaveDateOrder(deps Deps) crud.Check {
	return func(ctx context.Context, v crud.Values) error {
		err := leave.CheckDateOrder(v.Get("startDate"), v.Get("endDate"))
		if err == nil {
			return nil
		}
		if !deps.EnforceLeaveDateOrder {
			deps.Logger.WarnContext(ctx, "leave end date precedes start date",
				"start_date", v.Get("startDate"),
				"end_date", v.Get("endDate"),
			)
			return nil
		}
		return validator.ValidationErrors{{
			Field:   "endDate",
			Message: "End Date must not be before Start Date",
		}}
	}
}

func employeeRef() crud.Field {
	return crud.Field{
		Key:       "employee",
		Label:     "Employee",
		Kind:      crud.KindReference,
		Required:  true,
		Reference: &crud.Reference{Lookup: "employee", Placeholder: "Search by name or regimental no"},
	}
}
