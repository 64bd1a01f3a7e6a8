package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/personnel-web/internal/crud"
	"github.com/cmlabs-hris/personnel-web/internal/domain/employee"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/validator"
	"github.com/cmlabs-hris/personnel-web/internal/resource"
)

type fakeBackend struct {
	mu      sync.Mutex
	docs    map[string]any
	failing map[string]bool
	gets    []string
	puts    []map[string]any
}

func (f *fakeBackend) Get(_ context.Context, path string, query url.Values, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := path
	if len(query) > 0 {
		key += "?" + query.Encode()
	}
	f.gets = append(f.gets, key)
	if f.failing[path] {
		return errors.New("backend down")
	}
	raw, _ := json.Marshal(f.docs[path])
	return json.Unmarshal(raw, out)
}

func (f *fakeBackend) Post(context.Context, string, any, any) error { return nil }

func (f *fakeBackend) Put(_ context.Context, path string, body, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, _ := json.Marshal(body)
	var m map[string]any
	_ = json.Unmarshal(raw, &m)
	f.puts = append(f.puts, m)
	return nil
}

func (f *fakeBackend) Delete(context.Context, string) error { return nil }

func newService() *Service {
	return NewService(resource.NewRegistry(resource.Deps{}))
}

func TestLoad(t *testing.T) {
	backend := &fakeBackend{
		docs: map[string]any{
			"/employee/e1": map[string]any{"_id": "e1", "name": "J. Doe"},
			"/leave":       []map[string]any{{"_id": "l1"}},
			"/bmi":         []map[string]any{{"_id": "b1"}, {"_id": "b2"}},
		},
		failing: map[string]bool{"/medical": true},
	}

	p, err := newService().Load(context.Background(), backend, "e1", resource.ProfileLists...)
	require.NoError(t, err)
	assert.Equal(t, "J. Doe", p.Employee.String("name"))
	assert.Len(t, p.List("leave"), 1)
	assert.Len(t, p.List("bmi"), 2)
	assert.Empty(t, p.List("medical"))

	assert.Contains(t, backend.gets, "/leave?employee_id=e1")
	assert.Contains(t, backend.gets, "/medical?employee_id=e1")
	assert.Len(t, backend.gets, 4)
}

func TestLoad_EmployeeFailure(t *testing.T) {
	backend := &fakeBackend{failing: map[string]bool{"/employee/e1": true}}

	_, err := newService().Load(context.Background(), backend, "e1")
	assert.Error(t, err)
}

func validDraft() *employee.UpdateProfileRequest {
	return &employee.UpdateProfileRequest{
		Name: "J. Doe", Role: "employee", Rank: "Junior", DOB: "1990-01-01", DOJ: "2020-01-01",
	}
}

func TestSave_RequiredFields(t *testing.T) {
	backend := &fakeBackend{}
	draft := validDraft()
	draft.Rank = ""

	_, err := newService().Save(context.Background(), backend, "e1", crud.Record{}, draft)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("rank"))
	assert.Empty(t, backend.puts)
}

func TestSave_PreservesUnknownFieldsAndReplacesArrays(t *testing.T) {
	backend := &fakeBackend{}
	current := crud.Record{
		"_id":       "e1",
		"name":      "Old",
		"unit":      "3 Bn",
		"password":  "hash",
		"courses":   []any{map[string]any{"name": "Old course", "completed": true}},
		"equipment": []any{},
	}
	draft := validDraft()
	draft.Courses = []employee.Course{{Name: "Signals", Completed: false}}

	_, err := newService().Save(context.Background(), backend, "e1", current, draft)
	require.NoError(t, err)
	require.Len(t, backend.puts, 1)

	doc := backend.puts[0]
	assert.Equal(t, "J. Doe", doc["name"])
	assert.Equal(t, "3 Bn", doc["unit"])
	assert.NotContains(t, doc, "password")
	assert.Equal(t, []any{map[string]any{"name": "Signals", "completed": false}}, doc["courses"])
	assert.Equal(t, []any{}, doc["equipment"])
	assert.Equal(t, "Old", current["name"])
}

func TestUpdate(t *testing.T) {
	t.Run("invalid draft issues no request", func(t *testing.T) {
		backend := &fakeBackend{}
		draft := validDraft()
		draft.Name = " "

		_, err := newService().Update(context.Background(), backend, "e1", draft)
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Empty(t, backend.gets)
		assert.Empty(t, backend.puts)
	})

	t.Run("fetches current then puts once", func(t *testing.T) {
		backend := &fakeBackend{docs: map[string]any{
			"/employee/e1": map[string]any{"_id": "e1", "name": "Old", "unit": "3 Bn"},
		}}

		_, err := newService().Update(context.Background(), backend, "e1", validDraft())
		require.NoError(t, err)
		assert.Equal(t, []string{"/employee/e1"}, backend.gets)
		require.Len(t, backend.puts, 1)
		assert.Equal(t, "3 Bn", backend.puts[0]["unit"])
	})
}

func TestDraftFromRecord(t *testing.T) {
	rec := crud.Record{
		"name": "J. Doe",
		"dob":  "1990-01-01T00:00:00.000Z",
		"courses": []any{
			map[string]any{"name": "Signals", "completed": true},
		},
		"equipment": []any{
			map[string]any{"name": "Radio", "assignedDate": "2023-02-01T00:00:00.000Z"},
		},
	}

	d := DraftFromRecord(rec)
	assert.Equal(t, "1990-01-01", d.DOB)
	assert.Equal(t, []employee.Course{{Name: "Signals", Completed: true}}, d.Courses)
	assert.Equal(t, "2023-02-01", d.Equipment[0].AssignedDate)
}

func TestDraftFromForm(t *testing.T) {
	form := url.Values{
		"name":             {" J. Doe "},
		CourseCount:        {"2"},
		CourseName(0):      {"Signals"},
		CourseCompleted(0): {"on"},
		CourseName(1):      {"Drill"},
		EquipmentCount:     {"1"},
		EquipmentName(0):   {"Radio"},
	}

	d := DraftFromForm(form)
	assert.Equal(t, "J. Doe", d.Name)
	assert.Equal(t, []employee.Course{{Name: "Signals", Completed: true}, {Name: "Drill"}}, d.Courses)
	assert.Equal(t, []employee.Equipment{{Name: "Radio"}}, d.Equipment)

	assert.Empty(t, DraftFromForm(url.Values{CourseCount: {"-3"}}).Courses)
}

func TestDraftFromForm_RowCountBounded(t *testing.T) {
	assert.Empty(t, DraftFromForm(url.Values{CourseCount: {"20000000"}}).Courses)

	form := url.Values{
		CourseCount:    {"3"},
		CourseName(0):  {"Signals"},
		CourseName(1):  {""},
		EquipmentCount: {"1000"},
	}
	for i := 0; i < MaxRows+10; i++ {
		form.Set(EquipmentName(i), "Radio")
	}

	d := DraftFromForm(form)
	assert.Equal(t, []employee.Course{{Name: "Signals"}, {}}, d.Courses)
	assert.Len(t, d.Equipment, MaxRows)
	assert.ErrorIs(t, Apply(d, ActionAddEquipment), employee.ErrTooManyRows)
	assert.Len(t, d.Equipment, MaxRows)
}

func TestApply(t *testing.T) {
	d := validDraft()

	require.NoError(t, Apply(d, ActionAddCourse))
	require.NoError(t, Apply(d, ActionAddCourse))
	require.NoError(t, Apply(d, ActionAddEquipment))
	assert.Len(t, d.Courses, 2)
	assert.Len(t, d.Equipment, 1)

	d.Courses[0].Name = "first"
	d.Courses[1].Name = "second"
	require.NoError(t, Apply(d, ActionRemoveCourse+":0"))
	assert.Equal(t, "second", d.Courses[0].Name)

	assert.ErrorIs(t, Apply(d, ActionRemoveEquipment+":5"), employee.ErrRowOutOfRange)
	assert.ErrorIs(t, Apply(d, "explode"), employee.ErrUnknownAction)
}
