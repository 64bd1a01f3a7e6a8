package crud

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/personnel-web/internal/pkg/validator"
)

func equipmentResource() *Resource {
	return &Resource{
		Name: "equipment",
		Path: "/equipment",
		Fields: []Field{
			{Key: "name", Label: "Name", Kind: KindText, Required: true},
			{Key: "category", Label: "Category", Kind: KindSelect, OptionsFrom: func(context.Context, Backend) ([]Option, error) {
				return []Option{{Value: "c1", Label: "Radio"}}, nil
			}},
			{Key: "isServiceable", Label: "Serviceable", Kind: KindCheckbox},
			{Key: "purchaseDate", Label: "Purchase Date", Kind: KindDate},
			{Key: "status", Label: "Status", Kind: KindSelect, Default: "In Use"},
			{Key: "assignedTo", Label: "Assigned To", Kind: KindReference, Reference: &Reference{Lookup: "employee"}},
		},
		Actions: Actions{Create: true, Update: true, Delete: true},
	}
}

func TestBind_AbsentCheckboxIsFalse(t *testing.T) {
	res := equipmentResource()

	values, _ := Bind(res, url.Values{"name": {"Radio"}})
	assert.Equal(t, "false", values["isServiceable"])

	values, _ = Bind(res, url.Values{"name": {"Radio"}, "isServiceable": {"on"}})
	assert.Equal(t, "true", values["isServiceable"])
}

func TestBind_ReferenceLabel(t *testing.T) {
	values, labels := Bind(equipmentResource(), url.Values{
		"assignedTo":               {"e1"},
		"assignedTo" + LabelSuffix: {"J. Doe (123)"},
	})
	assert.Equal(t, "e1", values["assignedTo"])
	assert.Equal(t, "J. Doe (123)", labels["assignedTo"])
}

func TestPayload_CheckboxAsBool(t *testing.T) {
	res := equipmentResource()
	body, err := Payload(res.Fields, Values{"name": "Radio", "isServiceable": "false"}, false)
	require.NoError(t, err)
	assert.Equal(t, false, body["isServiceable"])
	assert.Equal(t, "Radio", body["name"])
	assert.NotContains(t, body, "purchaseDate")
}

func TestPayload_Complete(t *testing.T) {
	fields := []Field{
		{Key: "name", Label: "Name", Kind: KindText},
		{Key: "remarks", Label: "Remarks", Kind: KindTextarea},
		{Key: "weight", Label: "Weight", Kind: KindNumber},
		{Key: "lastServiced", Label: "Last Serviced", Kind: KindDate},
		{Key: "bmi", Label: "BMI", Kind: KindText, Derive: func(Values) (string, bool) { return "", false }},
	}
	values := Values{"name": "Radio", "remarks": "  "}

	partial, err := Payload(fields, values, false)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Radio"}, partial)

	full, err := Payload(fields, values, true)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":         "Radio",
		"remarks":      "",
		"weight":       nil,
		"lastServiced": nil,
		"bmi":          nil,
	}, full)
}

func TestNewDialog_Create(t *testing.T) {
	d := NewDialog(equipmentResource(), nil)
	assert.Equal(t, ModeCreate, d.Mode)
	assert.Equal(t, "In Use", d.Values["status"])
	assert.Empty(t, d.ID)
}

func TestNewDialog_EditPrefills(t *testing.T) {
	selected := Record{
		"_id":           "q1",
		"name":          "Radio",
		"category":      map[string]any{"_id": "c1", "name": "Comms"},
		"isServiceable": true,
		"purchaseDate":  "2023-05-01T00:00:00.000Z",
		"assignedTo":    map[string]any{"_id": "e1", "name": "J. Doe", "regimentalNo": "123"},
		"status":        "In Store",
	}

	d := NewDialog(equipmentResource(), selected)
	assert.Equal(t, ModeEdit, d.Mode)
	assert.Equal(t, "q1", d.ID)
	assert.Equal(t, "c1", d.Values["category"])
	assert.Equal(t, "true", d.Values["isServiceable"])
	assert.Equal(t, "2023-05-01", d.Values["purchaseDate"])
	assert.Equal(t, "e1", d.Values["assignedTo"])
	assert.Equal(t, "J. Doe (123)", d.Labels["assignedTo"])
	assert.Equal(t, "In Store", d.Values["status"])
}

func TestReopenDialog(t *testing.T) {
	s := Submission{EditMode: true, Selected: "q1", Values: Values{"name": ""}}

	d := ReopenDialog(s, nil, Validate(equipmentResource().Fields, s.Values))
	assert.Equal(t, ModeEdit, d.Mode)
	assert.Equal(t, "q1", d.ID)
	assert.True(t, d.Errors.Has("name"))
	assert.Empty(t, d.Message)

	d = ReopenDialog(Submission{Values: Values{}}, nil, errors.New("backend down"))
	assert.Equal(t, SaveFailedMessage, d.Message)
}

func TestDerive(t *testing.T) {
	res := &Resource{Fields: []Field{
		{Key: "a", Kind: KindNumber},
		{Key: "twice", Kind: KindNumber, Derive: func(v Values) (string, bool) {
			if v.Get("a") == "" {
				return "", false
			}
			return v.Get("a") + v.Get("a"), true
		}},
	}}

	values, _ := Bind(res, url.Values{"a": {"4"}, "twice": {"999"}})
	assert.Equal(t, "44", values["twice"])

	values, _ = Bind(res, url.Values{"twice": {"999"}})
	assert.Equal(t, "", values["twice"])
}

func TestEngine_FormFields(t *testing.T) {
	engine := NewEngine(equipmentResource(), newFakeBackend())
	d := NewDialog(engine.Resource(), nil)
	d.Errors = Validate(engine.Resource().Fields, Values{}).(validator.ValidationErrors)

	fields, err := engine.FormFields(context.Background(), d, false)
	require.NoError(t, err)
	require.Len(t, fields, 6)
	assert.Equal(t, []Option{{Value: "c1", Label: "Radio"}}, fields[1].Options)
	assert.Equal(t, "Name is required", fields[0].Error)
}
