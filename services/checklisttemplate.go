package services

import (
	"time"

	"gotolaunch/model"
)

// TemplateEntry is one generated checklist task, placed OffsetDays calendar
// days from the launch date.
type TemplateEntry struct {
	OffsetDays  int
	Title       string
	Description string
	Category    string
}

var checklistTemplate = []TemplateEntry{
	{
		OffsetDays:  -30,
		Title:       "Prepare PH page",
		Description: "Create and set up your Product Hunt page with compelling copy, visuals, and description",
		Category:    model.CategoryPre,
	},
	{
		OffsetDays:  -21,
		Title:       "Hunter outreach",
		Description: "Reach out to Product Hunt hunters to get early support and feedback",
		Category:    model.CategoryPre,
	},
	{
		OffsetDays:  -14,
		Title:       "Teaser content",
		Description: "Create and schedule teaser content on social media to build anticipation",
		Category:    model.CategoryPre,
	},
	{
		OffsetDays:  -7,
		Title:       "Email draft",
		Description: "Draft and prepare email announcement for your mailing list",
		Category:    model.CategoryPre,
	},
	{
		OffsetDays:  0,
		Title:       "Launch live checklist",
		Description: "Final checks before going live - ensure all systems are ready",
		Category:    model.CategoryLaunch,
	},
	{
		OffsetDays:  1,
		Title:       "Thank you post",
		Description: "Post thank you message and engage with early supporters and feedback",
		Category:    model.CategoryPost,
	},
}

// ChecklistTemplate returns a copy of the launch checklist template.
func ChecklistTemplate() []TemplateEntry {
	entries := make([]TemplateEntry, len(checklistTemplate))
	copy(entries, checklistTemplate)
	return entries
}

// GenerateChecklist builds unsaved checklist items for a launch. Offsets are
// whole calendar days in launchDate's location, so the wall-clock time of the
// launch is kept even across DST changes.
func GenerateChecklist(launchID string, launchDate time.Time) []model.Checklist {
	items := make([]model.Checklist, 0, len(checklistTemplate))
	for _, entry := range checklistTemplate {
		items = append(items, model.Checklist{
			LaunchID:    launchID,
			Title:       entry.Title,
			Description: entry.Description,
			DueDate:     launchDate.AddDate(0, 0, entry.OffsetDays),
			Category:    entry.Category,
			Completed:   false,
		})
	}
	return items
}
