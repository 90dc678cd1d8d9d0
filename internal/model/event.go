package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Validation constants
const (
	MaxTitleLength       = 25
	MaxDescriptionLength = 400
	CodeLength           = 6

	// DefaultDescription is substituted when no description is given.
	DefaultDescription = "No description yet!"
)

// Visibility controls who may join an event
type Visibility string

const (
	VisibilityPublic  Visibility = "Public"
	VisibilityPrivate Visibility = "Private"
)

// LocationType distinguishes in-person from online events
type LocationType string

const (
	LocationPhysical LocationType = "Physical"
	LocationOnline   LocationType = "Online"
)

// EventRole is a user's role within an event
type EventRole string

const (
	RoleOrganizer   EventRole = "Organizer"
	RoleParticipant EventRole = "Participant"
)

// Money is a validated amount/currency pair
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// String renders the canonical "<amount> <currency>" form.
func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.Amount, m.Currency)
}

// DateFormat is a validated "YYYY-MM-DD HH:MM" timestamp. The empty string
// means "unset".
type DateFormat string

// IsSet reports whether the date carries a value.
func (d DateFormat) IsSet() bool { return d != "" }

// Time parses the date. The second return is false for the unset sentinel.
func (d DateFormat) Time() (time.Time, bool) {
	if !d.IsSet() {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02 15:04", string(d))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Before reports whether the date is set and earlier than t.
func (d DateFormat) Before(t time.Time) bool {
	parsed, ok := d.Time()
	return ok && parsed.Before(t)
}

// Coordinates is a validated latitude/longitude pair
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Event represents a planned event
type Event struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Category     string       `json:"category"`
	Subcategory  string       `json:"subcategory,omitempty"`
	Visibility   Visibility   `json:"visibility"`
	Date         DateFormat   `json:"date,omitempty"`
	EndDate      DateFormat   `json:"end_date,omitempty"`
	Price        Money        `json:"price"`
	LocationType LocationType `json:"location_type"`
	Location     string       `json:"location,omitempty"`
	Coordinates  Coordinates  `json:"coordinates"`
	Code         string       `json:"code,omitempty"`
	Password     string       `json:"-"` // join password for private events
	CreatedBy    string       `json:"created_by"`
	CreatedOn    time.Time    `json:"created_on"`
	UpdatedOn    time.Time    `json:"updated_on"`
}

// HasEnded reports whether the event's end date lies before now.
// Events without an end date never end.
func (e *Event) HasEnded(now time.Time) bool {
	return e.EndDate.Before(now)
}

// Participant links a user to an event with a role
type Participant struct {
	ID       string    `json:"id"`
	EventID  string    `json:"event_id"`
	UserID   string    `json:"user_id"`
	Role     EventRole `json:"role"`
	JoinedOn time.Time `json:"joined_on"`
}

// EventSearchFilters narrow an event search
type EventSearchFilters struct {
	Title       string
	Category    string
	Subcategory string
}

var (
	moneyPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?) ?([A-Za-z]+)$`)
	datePattern  = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2}) (\d{2}):(\d{2})$`)
)

// ValidateTitle checks an event or poll title: 1..25 chars, not blank.
func ValidateTitle(raw string) (string, *FieldError) {
	if strings.TrimSpace(raw) == "" {
		return "", &FieldError{Field: "title", Message: "title is blank"}
	}
	if len(raw) > MaxTitleLength {
		return "", &FieldError{
			Field:   "title",
			Message: fmt.Sprintf("title must be between 1 and %d characters", MaxTitleLength),
		}
	}
	return raw, nil
}

// ValidateDescription checks a description: empty input yields the
// placeholder, otherwise 1..400 chars.
func ValidateDescription(raw string) (string, *FieldError) {
	if raw == "" {
		return DefaultDescription, nil
	}
	if len(raw) > MaxDescriptionLength {
		return "", &FieldError{
			Field:   "description",
			Message: fmt.Sprintf("description must be at most %d characters", MaxDescriptionLength),
		}
	}
	return raw, nil
}

// ValidateMoney parses "<number>[ ]<currency-letters>" into a Money value.
// Anything without a parsable amount and currency token fails.
func ValidateMoney(raw string) (Money, *FieldError) {
	match := moneyPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return Money{}, &FieldError{
			Field:   "price",
			Message: fmt.Sprintf("invalid price %q, expected e.g. \"10.00 EUR\"", raw),
		}
	}
	amount, err := strconv.ParseFloat(match[1], 64)
	if err != nil || amount < 0 {
		return Money{}, &FieldError{Field: "price", Message: fmt.Sprintf("invalid price amount %q", match[1])}
	}
	return Money{Amount: amount, Currency: match[2]}, nil
}

// ValidateDateFormat checks "YYYY-MM-DD HH:MM" with month 1..12 and day
// 1..31 (no days-in-month check). Blank input yields the unset sentinel.
func ValidateDateFormat(field, raw string) (DateFormat, *FieldError) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	match := datePattern.FindStringSubmatch(raw)
	if match == nil {
		return "", &FieldError{
			Field:   field,
			Message: fmt.Sprintf("invalid %s %q, expected \"YYYY-MM-DD HH:MM\"", field, raw),
		}
	}
	month, _ := strconv.Atoi(match[2])
	day, _ := strconv.Atoi(match[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", &FieldError{
			Field:   field,
			Message: fmt.Sprintf("invalid %s %q, month or day out of range", field, raw),
		}
	}
	return DateFormat(raw), nil
}

// ValidateVisibility checks the Public/Private enum.
func ValidateVisibility(raw string) (Visibility, *FieldError) {
	switch Visibility(raw) {
	case VisibilityPublic, VisibilityPrivate:
		return Visibility(raw), nil
	}
	return "", &FieldError{
		Field:   "visibility",
		Message: fmt.Sprintf("invalid visibility %q, must be Public or Private", raw),
	}
}

// ValidateLocationType checks the Physical/Online enum.
func ValidateLocationType(raw string) (LocationType, *FieldError) {
	switch LocationType(raw) {
	case LocationPhysical, LocationOnline:
		return LocationType(raw), nil
	}
	return "", &FieldError{
		Field:   "location_type",
		Message: fmt.Sprintf("invalid location type %q, must be Physical or Online", raw),
	}
}

// ValidateCoordinates checks latitude and longitude ranges. A missing
// coordinate defaults to zero.
func ValidateCoordinates(lat, lng *float64) (Coordinates, *FieldError) {
	coords := Coordinates{}
	if lat != nil {
		coords.Lat = *lat
	}
	if lng != nil {
		coords.Lng = *lng
	}
	if coords.Lat < -90 || coords.Lat > 90 || coords.Lng < -180 || coords.Lng > 180 {
		return Coordinates{}, &FieldError{
			Field:   "coordinates",
			Message: fmt.Sprintf("invalid coordinates (%v, %v)", coords.Lat, coords.Lng),
		}
	}
	return coords, nil
}

// ValidateCode checks an event join code: exactly 6 non-blank characters.
func ValidateCode(raw string) (string, *FieldError) {
	if len(raw) != CodeLength || hasBlank(raw) {
		return "", &FieldError{
			Field:   "code",
			Message: fmt.Sprintf("code must be exactly %d non-blank characters", CodeLength),
		}
	}
	return raw, nil
}

func hasBlank(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return s == ""
}

// CreateEventRequest carries the raw fields for creating or editing an
// event. Edits re-validate the full field set, not a diff.
type CreateEventRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Subcategory  string   `json:"subcategory"`
	Visibility   string   `json:"visibility"`
	Date         string   `json:"date"`
	EndDate      string   `json:"end_date"`
	Price        string   `json:"price"`
	LocationType string   `json:"location_type"`
	Location     string   `json:"location"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
	Password     string   `json:"password"`
}

// ValidatedEventInput is the fully validated composite of an event request.
type ValidatedEventInput struct {
	Title        string
	Description  string
	Category     string
	Subcategory  string
	Visibility   Visibility
	Date         DateFormat
	EndDate      DateFormat
	Price        Money
	LocationType LocationType
	Location     string
	Coordinates  Coordinates
	Password     string
}

// Validate runs every field validator and collects all failures. The input
// is returned only when no validator failed.
func (r *CreateEventRequest) Validate(catalog *CategoryCatalog) (*ValidatedEventInput, []FieldError) {
	var errs []FieldError
	input := &ValidatedEventInput{Location: r.Location, Password: r.Password}

	collect := func(fe *FieldError) {
		if fe != nil {
			errs = append(errs, *fe)
		}
	}

	var fe *FieldError
	input.Title, fe = ValidateTitle(r.Title)
	collect(fe)
	input.Description, fe = ValidateDescription(r.Description)
	collect(fe)
	input.Category, fe = catalog.ValidateCategory(r.Category)
	collect(fe)
	input.Subcategory, fe = catalog.ValidateSubcategory(input.Category, r.Subcategory)
	collect(fe)
	input.Visibility, fe = ValidateVisibility(r.Visibility)
	collect(fe)
	input.Date, fe = ValidateDateFormat("date", r.Date)
	collect(fe)
	input.EndDate, fe = ValidateDateFormat("end_date", r.EndDate)
	collect(fe)
	input.Price, fe = ValidateMoney(r.Price)
	collect(fe)
	input.LocationType, fe = ValidateLocationType(r.LocationType)
	collect(fe)
	input.Coordinates, fe = ValidateCoordinates(r.Lat, r.Lng)
	collect(fe)

	if len(errs) > 0 {
		return nil, errs
	}
	return input, nil
}

// JoinEventRequest carries the raw fields for joining an event by ID.
type JoinEventRequest struct {
	Password string `json:"password"`
}

// AssignRoleRequest carries the target user and role for role assignment.
type AssignRoleRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}
