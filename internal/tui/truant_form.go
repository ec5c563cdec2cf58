package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/balkashynov/truant/internal/parser"
)

// ErrFormCancelled is returned when the user leaves a form without saving
var ErrFormCancelled = errors.New("cancelled")

// Choice is one selectable lookup row
type Choice struct {
	Label string
	ID    uint
}

// TruantFormValues holds the fields of a truant; pre-set values become the
// form defaults
type TruantFormValues struct {
	Title       string
	Description string
	CategoryID  uint
	PriorityID  uint
	StatusID    uint
	Link        string
}

// TruantFormOptions lists the lookup rows the user can pick from
type TruantFormOptions struct {
	Heading    string
	Categories []Choice
	Priorities []Choice
	Statuses   []Choice
}

// RunTruantForm asks for every truant field, starting from values
func RunTruantForm(opts TruantFormOptions, values TruantFormValues) (*TruantFormValues, error) {
	if len(opts.Categories) == 0 || len(opts.Priorities) == 0 || len(opts.Statuses) == 0 {
		return nil, errors.New("categories, priorities and statuses must exist first (try 'truant seed')")
	}

	form := newTruantForm(opts, &values)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrFormCancelled
		}
		return nil, err
	}

	values.Title = strings.TrimSpace(values.Title)
	link, err := parser.NormalizeLink(values.Link)
	if err != nil {
		return nil, err
	}
	values.Link = link
	return &values, nil
}

func newTruantForm(opts TruantFormOptions, values *TruantFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(opts.Heading),
			huh.NewInput().
				Title("Title").
				Placeholder("What are you putting off?").
				CharLimit(200).
				Validate(validateTitle).
				Value(&values.Title),
			huh.NewText().
				Title("Description").
				Placeholder("Optional").
				CharLimit(2000).
				Value(&values.Description),
			huh.NewInput().
				Title("Link").
				Placeholder("https://... (optional)").
				Validate(validateLink).
				Value(&values.Link),
		),
		huh.NewGroup(
			huh.NewSelect[uint]().
				Title("Category").
				Options(choiceOptions(opts.Categories)...).
				Value(&values.CategoryID),
			huh.NewSelect[uint]().
				Title("Priority").
				Options(choiceOptions(opts.Priorities)...).
				Value(&values.PriorityID),
			huh.NewSelect[uint]().
				Title("Status").
				Options(choiceOptions(opts.Statuses)...).
				Value(&values.StatusID),
		),
	).WithTheme(huh.ThemeCharm())
}

func choiceOptions(choices []Choice) []huh.Option[uint] {
	options := make([]huh.Option[uint], 0, len(choices))
	for _, c := range choices {
		options = append(options, huh.NewOption(c.Label, c.ID))
	}
	return options
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("title is required")
	}
	return nil
}

func validateLink(s string) error {
	_, err := parser.NormalizeLink(s)
	return err
}
