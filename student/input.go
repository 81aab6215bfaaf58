package student

import (
	"regexp"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// codePattern is the accepted record code shape: 6-12 alphanumeric characters.
var codePattern = regexp.MustCompile(`^[A-Za-z0-9]{6,12}$`)

// CreateInput carries the fields for a new record. Names can be supplied
// either as FirstName+LastName or as a single FullName, which is split on
// whitespace (first word becomes the first name, the rest the last name).
type CreateInput struct {
	RecordCode string     `json:"record_code"`
	FirstName  string     `json:"first_name,omitempty"`
	LastName   string     `json:"last_name,omitempty"`
	FullName   string     `json:"full_name,omitempty"`
	Email      string     `json:"email,omitempty"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	Hometown   string     `json:"hometown,omitempty"`

	MathScore       *float64 `json:"math_score,omitempty"`
	LiteratureScore *float64 `json:"literature_score,omitempty"`
	EnglishScore    *float64 `json:"english_score,omitempty"`
}

// normalize trims and uppercases input the way stored records expect: record
// codes are uppercase, names are whitespace-trimmed, FullName is resolved
// into its parts when the split fields were not provided.
func (in *CreateInput) normalize() {
	in.RecordCode = strings.ToUpper(strings.TrimSpace(in.RecordCode))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Hometown = strings.TrimSpace(in.Hometown)

	if in.FullName != "" && (in.FirstName == "" || in.LastName == "") {
		first, last := splitFullName(in.FullName)
		in.FirstName = first
		in.LastName = last
	}
}

// Validate checks the input after normalization. The returned error is a
// *ValidationError naming the first offending field.
func (in CreateInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.RecordCode, validation.Required, validation.Match(codePattern).Error("must be 6-12 alphanumeric characters")),
		validation.Field(&in.FirstName, validation.Required.Error("a first name or full name is required")),
		validation.Field(&in.LastName, validation.Required.Error("a last name or full name is required")),
		validation.Field(&in.Email, is.Email),
		validation.Field(&in.MathScore, validation.Min(ScoreMin), validation.Max(ScoreMax)),
		validation.Field(&in.LiteratureScore, validation.Min(ScoreMin), validation.Max(ScoreMax)),
		validation.Field(&in.EnglishScore, validation.Min(ScoreMin), validation.Max(ScoreMax)),
	)
	return firstFieldError(err)
}

// record builds the Record to insert; timestamps and id are left to the store.
func (in CreateInput) record() *Record {
	return &Record{
		RecordCode:      in.RecordCode,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Email:           in.Email,
		BirthDate:       cloneTimePtr(in.BirthDate),
		Hometown:        in.Hometown,
		MathScore:       cloneFloatPtr(in.MathScore),
		LiteratureScore: cloneFloatPtr(in.LiteratureScore),
		EnglishScore:    cloneFloatPtr(in.EnglishScore),
	}
}

// UpdateInput is a partial update: nil means "leave the field alone", a
// non-nil pointer means "set it to this value". Clearing an optional text
// field is expressed by supplying an empty string.
type UpdateInput struct {
	RecordCode *string    `json:"record_code,omitempty"`
	FirstName  *string    `json:"first_name,omitempty"`
	LastName   *string    `json:"last_name,omitempty"`
	Email      *string    `json:"email,omitempty"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	Hometown   *string    `json:"hometown,omitempty"`

	MathScore       *float64 `json:"math_score,omitempty"`
	LiteratureScore *float64 `json:"literature_score,omitempty"`
	EnglishScore    *float64 `json:"english_score,omitempty"`
}

// Validate checks only the fields that are supplied.
func (in UpdateInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.RecordCode, validation.Match(codePattern).Error("must be 6-12 alphanumeric characters")),
		validation.Field(&in.FirstName, validation.By(notBlankIfSet("first name"))),
		validation.Field(&in.LastName, validation.By(notBlankIfSet("last name"))),
		validation.Field(&in.Email, is.Email),
		validation.Field(&in.MathScore, validation.Min(ScoreMin), validation.Max(ScoreMax)),
		validation.Field(&in.LiteratureScore, validation.Min(ScoreMin), validation.Max(ScoreMax)),
		validation.Field(&in.EnglishScore, validation.Min(ScoreMin), validation.Max(ScoreMax)),
	)
	return firstFieldError(err)
}

// apply copies the supplied fields onto the record. The caller refreshes
// UpdatedAt and re-checks code uniqueness.
func (in UpdateInput) apply(r *Record) {
	if in.RecordCode != nil {
		r.RecordCode = strings.ToUpper(strings.TrimSpace(*in.RecordCode))
	}
	if in.FirstName != nil {
		r.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		r.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		r.Email = strings.TrimSpace(*in.Email)
	}
	if in.BirthDate != nil {
		r.BirthDate = cloneTimePtr(in.BirthDate)
	}
	if in.Hometown != nil {
		r.Hometown = strings.TrimSpace(*in.Hometown)
	}
	if in.MathScore != nil {
		r.MathScore = cloneFloatPtr(in.MathScore)
	}
	if in.LiteratureScore != nil {
		r.LiteratureScore = cloneFloatPtr(in.LiteratureScore)
	}
	if in.EnglishScore != nil {
		r.EnglishScore = cloneFloatPtr(in.EnglishScore)
	}
}

// changesCode reports whether the update sets a record code different from
// the current one.
func (in UpdateInput) changesCode(current string) bool {
	return in.RecordCode != nil && strings.ToUpper(strings.TrimSpace(*in.RecordCode)) != current
}

func splitFullName(full string) (first, last string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

func notBlankIfSet(label string) validation.RuleFunc {
	return func(value any) error {
		v, isNil := validation.Indirect(value)
		if isNil {
			return nil
		}
		s, ok := v.(string)
		if !ok {
			return nil
		}
		if strings.TrimSpace(s) == "" {
			return validation.NewError("validation_blank", label+" cannot be blank")
		}
		return nil
	}
}

// firstFieldError converts an ozzo validation result into the package's
// *ValidationError, picking the lexically first field so failures are
// deterministic.
func firstFieldError(err error) error {
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validation.Errors)
	if !ok || len(fieldErrs) == 0 {
		return &ValidationError{Field: "input", Message: err.Error()}
	}
	fields := make([]string, 0, len(fieldErrs))
	for f := range fieldErrs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	first := fields[0]
	return &ValidationError{Field: first, Message: fieldErrs[first].Error()}
}
