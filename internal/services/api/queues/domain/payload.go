package domain

import (
	"fmt"
	"time"

	"apisupport/internal/core/pagination"
	"apisupport/internal/core/transform"
	ptime "apisupport/internal/platform/time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Versions at which the queue payload changed
const (
	VersionVenue       = "01-06-2020"
	VersionDisplayName = "01-01-2021"
	VersionOpened      = "01-03-2021"
)

// CreatedAtLayout is how created_at renders before VersionOpened
const CreatedAtLayout = "2006-01-02 15:04:05"

// NewTransformer builds the queue payload pipeline over store rows
//
//	base          uuid, name, status, created_at
//	01-06-2020    + venue
//	01-01-2021    + display_name, the title cased name
//	01-03-2021    created_at is replaced by opened, RFC3339 in UTC
func NewTransformer() *transform.Transformer[pagination.Row] {
	return transform.New(base,
		transform.NewStep[pagination.Row](VersionVenue, func(d transform.Data, row pagination.Row) transform.Data {
			d["venue"] = nullableText(row["venue"])
			return d
		}),
		transform.NewStep[pagination.Row](VersionDisplayName, func(d transform.Data, row pagination.Row) transform.Data {
			// a Caser keeps state, so one per call
			d["display_name"] = cases.Title(language.English).String(text(row["name"]))
			return d
		}),
		transform.NewStep[pagination.Row](VersionOpened, func(d transform.Data, row pagination.Row) transform.Data {
			delete(d, "created_at")
			d["opened"] = ptime.RFC3339(timeOf(row["created_at"]))
			return d
		}),
	)
}

func base(row pagination.Row) transform.Data {
	var created any
	if t := timeOf(row["created_at"]); t != nil {
		created = t.UTC().Format(CreatedAtLayout)
	}
	return transform.Data{
		"uuid":       text(row["uuid"]),
		"name":       text(row["name"]),
		"status":     text(row["status"]),
		"created_at": created,
	}
}

// text renders a column value the way drivers hand it back: strings, bytes or uuid arrays
func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case [16]byte:
		return uuid.UUID(x).String()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func nullableText(v any) any {
	if v == nil {
		return nil
	}
	return text(v)
}

// timeLayouts are the text forms sqlite may return when a column is not declared as a timestamp
var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", CreatedAtLayout}

func timeOf(v any) *time.Time {
	switch x := v.(type) {
	case time.Time:
		return ptime.Ptr(x)
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, x); err == nil {
				return &t
			}
		}
	}
	return nil
}
