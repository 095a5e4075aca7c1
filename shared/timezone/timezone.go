// Package timezone keeps every timestamp the service produces in the
// location named by APP_TIMEZONE (an IANA name such as "Asia/Jakarta").
package timezone

import (
	"roomdesk/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// storage keeps microseconds, so timestamps are truncated to match what is read back.
const precision = time.Microsecond

var (
	location *time.Location
	once     sync.Once
)

func load() {
	name := config.Get().App.Timezone
	if name == "" {
		location = time.UTC

		return
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

		location = time.UTC

		return
	}

	location = loc

	log.Debug().Str("timezone", loc.String()).Msg("Application timezone loaded")
}

// Location returns the application timezone, loading it on first use.
func Location() *time.Location {
	once.Do(load)

	return location
}

// SetLocation overrides the application timezone.
func SetLocation(loc *time.Location) {
	once.Do(func() {})

	location = loc
}

func Now() time.Time {
	return time.Now().In(Location()).Truncate(precision)
}

// Format renders t in the application timezone. The zero time renders as an empty string.
func Format(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}

	return t.In(Location()).Format(layout)
}
