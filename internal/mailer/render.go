package mailer

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"nigela/internal/menu"
	"nigela/internal/pantry"
	"nigela/internal/planner"
)

// Subject builds the daily email subject line.
func Subject(date time.Time) string {
	return fmt.Sprintf("Nigela • Complete Menu for %s", date.Format("Monday, 02 Jan 2006"))
}

// RenderText renders the plain-text body: optional prose around a bulleted
// menu, plus a restock section when pantry stock has dropped below par.
// Prose sections may be empty when no LLM is configured.
func RenderText(intro string, plan planner.DayPlan, closing string, lowStock []pantry.Entry) string {
	var b strings.Builder
	if intro != "" {
		b.WriteString(intro)
		b.WriteString("\n")
	}

	for _, meal := range menu.MealOrder {
		slots := plan.Meals[meal]
		if len(slots) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s\n", strings.ToUpper(strings.ReplaceAll(string(meal), "_", " ")))
		for _, slot := range sortedSlots(slots) {
			d := slots[slot]
			fmt.Fprintf(&b, " - %s: %s (%dm)\n", slot, d.Name, d.CookMinutes)
			if d.VariantAdults != "" {
				fmt.Fprintf(&b, "   adults: %s\n", d.VariantAdults)
			}
			if d.VariantKids != "" {
				fmt.Fprintf(&b, "   kids: %s\n", d.VariantKids)
			}
		}
	}

	if len(lowStock) > 0 {
		b.WriteString("\nRUNNING LOW\n")
		for _, e := range sortedEntries(lowStock) {
			fmt.Fprintf(&b, " - %s: %g %s on hand (par %g)\n", e.Ingredient, e.QtyOnHand, e.Unit, e.MinPar)
		}
	}

	if closing != "" {
		b.WriteString(closing)
		b.WriteString("\n")
	}
	return b.String()
}

var htmlTemplate = template.Must(template.New("menu").Parse(`<div style="font-family: Georgia, serif; max-width: 640px; margin: 0 auto; color: #333;">
{{if .Intro}}<p style="white-space: pre-line;">{{.Intro}}</p>{{end}}
{{range .Meals}}<h2 style="color: #8B4513; border-bottom: 1px solid #ddd;">{{.Title}}</h2>
<table style="width: 100%; border-collapse: collapse;">
{{range .Courses}}<tr>
<td style="padding: 6px; font-weight: bold; width: 30%;">{{.Slot}}</td>
<td style="padding: 6px;">{{.Name}} <span style="color: #888;">({{.CookMinutes}}m)</span>{{if .FlavorText}}<br><em style="color: #666;">{{.FlavorText}}</em>{{end}}{{if .VariantAdults}}<br><small>adults: {{.VariantAdults}}</small>{{end}}{{if .VariantKids}}<br><small>kids: {{.VariantKids}}</small>{{end}}</td>
</tr>
{{end}}</table>
{{end}}{{if .LowStock}}<h2 style="color: #B22222;">Running low</h2>
<ul>
{{range .LowStock}}<li>{{.Ingredient}}: {{.QtyOnHand}} {{.Unit}} on hand (par {{.MinPar}})</li>
{{end}}</ul>
{{end}}{{if .Closing}}<p style="white-space: pre-line;">{{.Closing}}</p>{{end}}
</div>
`))

type htmlCourse struct {
	Slot          string
	Name          string
	CookMinutes   int
	FlavorText    string
	VariantAdults string
	VariantKids   string
}

type htmlMeal struct {
	Title   string
	Courses []htmlCourse
}

// RenderHTML renders the HTML body of the daily email.
func RenderHTML(intro string, plan planner.DayPlan, closing string, lowStock []pantry.Entry) (string, error) {
	var meals []htmlMeal
	for _, meal := range menu.MealOrder {
		slots := plan.Meals[meal]
		if len(slots) == 0 {
			continue
		}
		hm := htmlMeal{Title: titleCase(string(meal))}
		for _, slot := range sortedSlots(slots) {
			d := slots[slot]
			hm.Courses = append(hm.Courses, htmlCourse{
				Slot:          slot,
				Name:          d.Name,
				CookMinutes:   d.CookMinutes,
				FlavorText:    d.FlavorText,
				VariantAdults: d.VariantAdults,
				VariantKids:   d.VariantKids,
			})
		}
		meals = append(meals, hm)
	}

	data := struct {
		Intro    string
		Meals    []htmlMeal
		LowStock []pantry.Entry
		Closing  string
	}{intro, meals, sortedEntries(lowStock), closing}

	var b strings.Builder
	if err := htmlTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render menu HTML: %w", err)
	}
	return b.String(), nil
}

func sortedSlots(slots map[string]menu.Dish) []string {
	names := make([]string, 0, len(slots))
	for slot := range slots {
		names = append(names, slot)
	}
	sort.Strings(names)
	return names
}

func sortedEntries(entries []pantry.Entry) []pantry.Entry {
	out := append([]pantry.Entry(nil), entries...)
	sort.Slice(out, func(i, j int) bool { return out[i].Ingredient < out[j].Ingredient })
	return out
}

func titleCase(meal string) string {
	parts := strings.Split(meal, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
