package profile

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/personnel-web/internal/crud"
	"github.com/cmlabs-hris/personnel-web/internal/domain/employee"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/validator"
)

// Draft actions posted by the edit form.
const (
	ActionSave            = "save"
	ActionAddCourse       = "add-course"
	ActionRemoveCourse    = "remove-course"
	ActionAddEquipment    = "add-equipment"
	ActionRemoveEquipment = "remove-equipment"
)

// DraftFromRecord copies the editable fields out of an employee document.
func DraftFromRecord(rec crud.Record) *employee.UpdateProfileRequest {
	d := &employee.UpdateProfileRequest{
		Name:         rec.String("name"),
		Phone:        rec.String("phone"),
		RegimentalNo: rec.String("regimentalNo"),
		Role:         rec.String("role"),
		Rank:         rec.String("rank"),
		DOB:          validator.DateOnly(rec.String("dob")),
		DOJ:          validator.DateOnly(rec.String("doj")),
	}
	if items, ok := rec["courses"].([]any); ok {
		for _, item := range items {
			m, _ := item.(map[string]any)
			c := crud.Record(m)
			d.Courses = append(d.Courses, employee.Course{Name: c.String("name"), Completed: c.Bool("completed")})
		}
	}
	if items, ok := rec["equipment"].([]any); ok {
		for _, item := range items {
			m, _ := item.(map[string]any)
			e := crud.Record(m)
			d.Equipment = append(d.Equipment, employee.Equipment{
				Name:         e.String("name"),
				AssignedDate: validator.DateOnly(e.String("assignedDate")),
			})
		}
	}
	return d
}

// Input names for the nested rows.
func CourseName(i int) string        { return fmt.Sprintf("courses.%d.name", i) }
func CourseCompleted(i int) string   { return fmt.Sprintf("courses.%d.completed", i) }
func EquipmentName(i int) string     { return fmt.Sprintf("equipment.%d.name", i) }
func EquipmentAssigned(i int) string { return fmt.Sprintf("equipment.%d.assignedDate", i) }

const (
	CourseCount    = "courses.count"
	EquipmentCount = "equipment.count"
)

// MaxRows bounds each nested list of a draft.
const MaxRows = 50

// DraftFromForm rebuilds the draft the edit form posted back.
func DraftFromForm(form url.Values) *employee.UpdateProfileRequest {
	d := &employee.UpdateProfileRequest{
		Name:         strings.TrimSpace(form.Get("name")),
		Phone:        strings.TrimSpace(form.Get("phone")),
		RegimentalNo: strings.TrimSpace(form.Get("regimentalNo")),
		Role:         form.Get("role"),
		Rank:         form.Get("rank"),
		DOB:          form.Get("dob"),
		DOJ:          form.Get("doj"),
	}
	for i := 0; i < rows(form, CourseCount, CourseName); i++ {
		d.Courses = append(d.Courses, employee.Course{
			Name:      strings.TrimSpace(form.Get(CourseName(i))),
			Completed: form.Get(CourseCompleted(i)) != "",
		})
	}
	for i := 0; i < rows(form, EquipmentCount, EquipmentName); i++ {
		d.Equipment = append(d.Equipment, employee.Equipment{
			Name:         strings.TrimSpace(form.Get(EquipmentName(i))),
			AssignedDate: form.Get(EquipmentAssigned(i)),
		})
	}
	return d
}

// rows is the posted row count, capped at MaxRows and cut back to the last
// row whose name input was actually posted.
func rows(form url.Values, countKey string, name func(int) string) int {
	n, err := strconv.Atoi(form.Get(countKey))
	if err != nil || n < 0 {
		return 0
	}
	n = min(n, MaxRows)
	for n > 0 {
		if _, ok := form[name(n-1)]; ok {
			break
		}
		n--
	}
	return n
}

// Apply runs an add/remove row action against the draft. action is the
// action name, optionally followed by ":<index>" for removals.
func Apply(d *employee.UpdateProfileRequest, action string) error {
	name, arg, _ := strings.Cut(action, ":")
	switch name {
	case ActionAddCourse:
		if len(d.Courses) >= MaxRows {
			return employee.ErrTooManyRows
		}
		d.Courses = append(d.Courses, employee.Course{})
	case ActionAddEquipment:
		if len(d.Equipment) >= MaxRows {
			return employee.ErrTooManyRows
		}
		d.Equipment = append(d.Equipment, employee.Equipment{})
	case ActionRemoveCourse:
		i, err := index(arg, len(d.Courses))
		if err != nil {
			return err
		}
		d.Courses = append(d.Courses[:i], d.Courses[i+1:]...)
	case ActionRemoveEquipment:
		i, err := index(arg, len(d.Equipment))
		if err != nil {
			return err
		}
		d.Equipment = append(d.Equipment[:i], d.Equipment[i+1:]...)
	default:
		return fmt.Errorf("%w: %s", employee.ErrUnknownAction, name)
	}
	return nil
}

func index(arg string, n int) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 0 || i >= n {
		return 0, employee.ErrRowOutOfRange
	}
	return i, nil
}
