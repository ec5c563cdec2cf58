package notion

import "github.com/jomei/notionapi"

// Property names are part of the external contract with the Notion
// databases. They differ between collections and must not be normalised.
const (
	propTitle       = "title"
	propDescription = "description"
	propReport      = "report"

	sprintTotalTime = "total time"
	sprintGoalTime  = "goal time"
	sprintStartDate = "start date"
	sprintEndDate   = "end date"
	sprintDays      = "days"

	dayGoalTime  = "goal_time"
	dayTotalTime = "total_time"
	dayDate      = "date"
	dayStatusID  = "statusId"
	dayEvents    = "Event"

	// Days fetched through a sprint were historically read with these names
	dayGoalTimeAlt  = "goal time"
	dayTotalTimeAlt = "total time"

	eventStartTime = "start_time"
	eventEndTime   = "end_time"
	eventWeight    = "weight"
	eventTimeTaken = "time_taken"
	eventTruantID  = "truantId"
	eventStatusID  = "statusId"
	eventDay       = "day"

	untitledSprint = "Untitled Sprint"
	untitledDay    = "Untitled Day"
	untitledEvent  = "Untitled Event"

	defaultPageSize = 10
	maxPageSize     = 100
)

// Sprint is a time-boxed planning period made of days
type Sprint struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	TotalTime   *float64 `json:"total_time"`
	GoalTime    *float64 `json:"goal_time"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Description string   `json:"description"`
	DayIDs      []string `json:"day_ids"`
	Days        []Day    `json:"days"`
}

// Day is a tracked day within a sprint
type Day struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Report    string   `json:"report"`
	GoalTime  *float64 `json:"goal_time"`
	TotalTime *float64 `json:"total_time"`
	Date      string   `json:"date"`
	StatusID  *uint    `json:"status_id"`
	EventIDs  []string `json:"event_ids"`
	Events    []Event  `json:"events"`
}

// Event is a scheduled activity within a day
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Description string   `json:"description"`
	Weight      *float64 `json:"weight"`
	TimeTaken   *float64 `json:"time_taken"`
	Report      string   `json:"report"`
	TruantID    *uint    `json:"truant_id"`
	StatusID    *uint    `json:"status_id"`
	DayIDs      []string `json:"day_ids"`
}

// SprintInput is the full property set written on create and update
type SprintInput struct {
	Title       string
	GoalTime    float64
	TotalTime   float64
	StartDate   string
	EndDate     string
	Description string
	DayIDs      []string
}

type DayInput struct {
	Title     string
	Report    string
	GoalTime  float64
	TotalTime float64
	Date      string
	StatusID  *uint
	EventIDs  []string
}

// EventInput is the full property set of an event. TimeTaken is only
// written when set.
type EventInput struct {
	Title       string
	StartTime   string
	EndTime     string
	Description string
	Report      string
	Weight      float64
	TimeTaken   *float64
	TruantID    *uint
	StatusID    *uint
	DayIDs      []string
}

// Filter is an equality match on one rich text property
type Filter struct {
	Property string
	Value    string
}

type DayQuery struct {
	PageSize   int
	Cursor     string
	Filter     *Filter
	WithEvents bool
}

// DayPage is one page of days; NextCursor is empty on the last page
type DayPage struct {
	Days       []Day  `json:"days"`
	NextCursor string `json:"next_cursor"`
}

type EventQuery struct {
	PageSize int
	Cursor   string
	Filter   *Filter
}

type EventPage struct {
	Events     []Event `json:"events"`
	NextCursor string  `json:"next_cursor"`
}

func toSprint(page *notionapi.Page) Sprint {
	p := page.Properties
	return Sprint{
		ID:          page.ID.String(),
		Title:       readTitle(p, propTitle, untitledSprint),
		TotalTime:   readNumber(p, sprintTotalTime),
		GoalTime:    readNumber(p, sprintGoalTime),
		StartDate:   readDate(p, sprintStartDate),
		EndDate:     readDate(p, sprintEndDate),
		Description: readText(p, propDescription),
		DayIDs:      readRelation(p, sprintDays),
		Days:        []Day{},
	}
}

func toDay(page *notionapi.Page) Day {
	p := page.Properties
	return Day{
		ID:        page.ID.String(),
		Title:     readTitle(p, propTitle, untitledDay),
		Report:    readText(p, propReport),
		GoalTime:  readNumber(p, dayGoalTime, dayGoalTimeAlt),
		TotalTime: readNumber(p, dayTotalTime, dayTotalTimeAlt),
		Date:      readDate(p, dayDate),
		StatusID:  readRef(p, dayStatusID),
		EventIDs:  readRelation(p, dayEvents),
		Events:    []Event{},
	}
}

func toEvent(page *notionapi.Page) Event {
	p := page.Properties
	return Event{
		ID:          page.ID.String(),
		Title:       readTitle(p, propTitle, untitledEvent),
		StartTime:   readTextOrDate(p, eventStartTime),
		EndTime:     readTextOrDate(p, eventEndTime),
		Description: readText(p, propDescription),
		Weight:      readNumber(p, eventWeight),
		TimeTaken:   readNumber(p, eventTimeTaken),
		Report:      readText(p, propReport),
		TruantID:    readRef(p, eventTruantID),
		StatusID:    readRef(p, eventStatusID),
		DayIDs:      readRelation(p, eventDay),
	}
}

func (in SprintInput) properties() (notionapi.Properties, error) {
	start, err := dateProp(in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := dateProp(in.EndDate)
	if err != nil {
		return nil, err
	}
	return notionapi.Properties{
		propTitle:       titleProp(in.Title),
		sprintGoalTime:  numberProp(in.GoalTime),
		sprintTotalTime: numberProp(in.TotalTime),
		sprintStartDate: start,
		sprintEndDate:   end,
		propDescription: textProp(in.Description),
		sprintDays:      relationProp(in.DayIDs),
	}, nil
}

func (in DayInput) properties() (notionapi.Properties, error) {
	date, err := dateProp(in.Date)
	if err != nil {
		return nil, err
	}
	return notionapi.Properties{
		propTitle:    titleProp(in.Title),
		dayGoalTime:  numberProp(in.GoalTime),
		dayTotalTime: numberProp(in.TotalTime),
		dayDate:      date,
		propReport:   textProp(in.Report),
		dayStatusID:  refProp(in.StatusID),
		dayEvents:    relationProp(in.EventIDs),
	}, nil
}

func (in EventInput) properties() notionapi.Properties {
	props := notionapi.Properties{
		propTitle:       titleProp(in.Title),
		eventStartTime:  textProp(in.StartTime),
		eventEndTime:    textProp(in.EndTime),
		propDescription: textProp(in.Description),
		eventWeight:     numberProp(in.Weight),
		propReport:      textProp(in.Report),
		eventTruantID:   refProp(in.TruantID),
		eventStatusID:   refProp(in.StatusID),
		eventDay:        relationProp(in.DayIDs),
	}
	if in.TimeTaken != nil {
		props[eventTimeTaken] = numberProp(*in.TimeTaken)
	}
	return props
}

// clampPageSize applies the default and Notion's upper bound
func clampPageSize(n int) int {
	if n <= 0 {
		return defaultPageSize
	}
	return min(n, maxPageSize)
}
