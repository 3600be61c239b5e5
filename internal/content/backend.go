// Package content is the data access facade: one operation per change to
// the portfolio document, served by either the hosted store or the local
// fallback slot.
package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/folio/internal/domain"
)

// Table names a record collection.
type Table string

const (
	TableTopics     Table = "topics"
	TableNews       Table = "news"
	TableActivities Table = "activities"
)

// Setting names a site-wide setting.
type Setting string

const (
	SettingHeroWords    Setting = "hero_words"
	SettingProfileImage Setting = "profile_image"
)

// Mode tells which storage answers the facade.
type Mode string

const (
	ModeHosted   Mode = "hosted"
	ModeFallback Mode = "fallback"
)

var (
	// ErrConflict is returned when the local document kept changing under a
	// mutation and every attempt lost the race.
	ErrConflict = errors.New("content changed concurrently, try again")
	// ErrRecordType is returned when a record is written to the wrong table.
	ErrRecordType = errors.New("record type does not match table")
	// ErrUnknownSetting is returned for setting keys the site does not know.
	ErrUnknownSetting = errors.New("unknown setting")
)

// Backend is the storage capability behind the facade. Exactly one
// implementation is selected at startup.
type Backend interface {
	Mode() Mode
	FetchAll(ctx context.Context) (domain.PortfolioData, error)
	Upsert(ctx context.Context, table Table, record domain.Record) error
	Delete(ctx context.Context, table Table, id string) error
	UpdateSetting(ctx context.Context, key Setting, value any) error
}

func checkRecord(table Table, record domain.Record) error {
	var ok bool
	switch table {
	case TableTopics:
		_, ok = record.(domain.Topic)
	case TableNews:
		_, ok = record.(domain.NewsItem)
	case TableActivities:
		_, ok = record.(domain.Activity)
	default:
		return fmt.Errorf("unknown table %q", table)
	}
	if !ok {
		return fmt.Errorf("%T into %s: %w", record, table, ErrRecordType)
	}
	return nil
}

func checkTable(table Table) error {
	switch table {
	case TableTopics, TableNews, TableActivities:
		return nil
	default:
		return fmt.Errorf("unknown table %q", table)
	}
}

func checkSetting(key Setting, value any) error {
	var ok bool
	switch key {
	case SettingHeroWords:
		_, ok = value.([]string)
	case SettingProfileImage:
		_, ok = value.(string)
	default:
		return fmt.Errorf("%q: %w", key, ErrUnknownSetting)
	}
	if !ok {
		return fmt.Errorf("setting %s cannot hold %T", key, value)
	}
	return nil
}
