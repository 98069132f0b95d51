package models

import (
	"time"

	"github.com/houssem11957/excelreader-go/pkg/excelreader/binding"
)

// Person is the sample entity read by the CLI.
type Person struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	DateOfBirth time.Time `json:"date_of_birth"`
	JobTitle    string    `json:"job_title"`
}

// PersonSchema is the field table for Person.
var PersonSchema = binding.MustSchema(
	binding.Int("Id", func(p *Person, v int) { p.ID = v }),
	binding.String("Name", func(p *Person, v string) { p.Name = v }),
	binding.Time("DateOfbirth", func(p *Person, v time.Time) { p.DateOfBirth = v }),
	binding.String("JobTitle", func(p *Person, v string) { p.JobTitle = v }),
)

// PersonMapping returns the header names used by the sample people sheet.
func PersonMapping() *binding.ColumnMapping {
	return binding.NewColumnMapping().
		Add("myId", "Id").
		Add("Name of the Person", "Name").
		Add("Date of birth", "DateOfbirth").
		Add("The Job Title", "JobTitle")
}
