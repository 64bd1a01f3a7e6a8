package resource

import (
	"github.com/cmlabs-hris/personnel-web/internal/crud"
	"github.com/cmlabs-hris/personnel-web/internal/domain/course"
)

func Course() *crud.Resource {
	return &crud.Resource{
		Name:     "course",
		Title:    "Courses",
		Singular: "Course",
		Path:     "/course",
		Columns: []crud.Column{
			{Key: "name", Label: "Course Name"},
			{Key: "type", Label: "Type"},
			{Key: "description", Label: "Description", Wide: true},
			{Key: "duration", Label: "Duration", Wide: true},
		},
		Details: []crud.Column{
			{Key: "name", Label: "Course Name"},
			{Key: "type", Label: "Type"},
			{Key: "description", Label: "Description"},
			{Key: "duration", Label: "Duration"},
		},
		Fields: []crud.Field{
			{Key: "name", Label: "Course Name", Kind: crud.KindText, Required: true},
			{Key: "type", Label: "Type", Kind: crud.KindSelect, Required: true, Options: options(course.Types, nil)},
			{Key: "description", Label: "Description", Kind: crud.KindTextarea},
			{Key: "duration", Label: "Duration", Kind: crud.KindText, Required: true, Placeholder: "e.g., 2 hours"},
		},
		Actions:       crud.Actions{Create: true, Update: true, Delete: true},
		ConfirmDelete: "Are you sure you want to delete this course?",
	}
}
