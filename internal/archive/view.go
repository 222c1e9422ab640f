package archive

import "fmt"

// IndexEntryView is one edition link on the index page.
type IndexEntryView struct {
	Filename string
	Label    string
	Count    string
}

// IndexWeekView is one week section on the index page.
type IndexWeekView struct {
	Title   string
	Entries []IndexEntryView
}

// IndexView is the full binding set for the index template.
type IndexView struct {
	Name    string
	Tagline string
	Weeks   []IndexWeekView
}

func indexView(doc Document, branding IndexBranding) IndexView {
	view := IndexView{Name: branding.Name, Tagline: branding.Tagline}
	for _, group := range doc.Newsletters {
		week := IndexWeekView{Title: fmt.Sprintf("Week %d - %d", group.Week, group.Year)}
		for _, entry := range group.Entries {
			label := "Full Week"
			if entry.Day != "" {
				label = fmt.Sprintf("%s, %s", entry.Day, entry.Date)
			}
			count := fmt.Sprintf("%d games", entry.GameCount)
			if entry.GameCount == 1 {
				count = "1 game"
			}
			week.Entries = append(week.Entries, IndexEntryView{
				Filename: entry.Filename,
				Label:    label,
				Count:    count,
			})
		}
		view.Weeks = append(view.Weeks, week)
	}
	return view
}
