// ABOUTME: Time service reading network time over NTP
// ABOUTME: Falls back to the local clock when the NTP server is unreachable
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/beevik/ntp"
	"github.com/harper/agentrouter/internal/models"
	"go.uber.org/zap"
)

var (
	germanWeekdays = [...]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"}
	germanMonths   = [...]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"}
)

// FormatGerman renders t as "Montag, 02. Januar 2006, 15:04:05"
func FormatGerman(t time.Time) string {
	return fmt.Sprintf("%s, %02d. %s %d, %s",
		germanWeekdays[t.Weekday()], t.Day(), germanMonths[t.Month()-1], t.Year(), t.Format("15:04:05"))
}

// ClockConfig configures the time service
type ClockConfig struct {
	Server   string
	Timeout  time.Duration
	Location *time.Location
}

type ntpQueryFunc func(address string, opt ntp.QueryOptions) (*ntp.Response, error)

// Clock reports the current time
type Clock struct {
	server  string
	timeout time.Duration
	loc     *time.Location
	query   ntpQueryFunc
	now     func() time.Time
	logger  *zap.Logger
}

// NewClock creates the time service
func NewClock(cfg ClockConfig, logger *zap.Logger) *Clock {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return &Clock{
		server:  cfg.Server,
		timeout: cfg.Timeout,
		loc:     loc,
		query:   ntp.QueryWithOptions,
		now:     time.Now,
		logger:  logger.Named("time"),
	}
}

// Capabilities lists what the service offers
func (c *Clock) Capabilities() []string {
	return []string{"ntp_time", "local_time", "time_formatting"}
}

// Handle reports the current time; it takes no parameters
func (c *Clock) Handle(ctx context.Context, req models.Request) models.Result {
	if err := ctx.Err(); err != nil {
		return models.Failure(fmt.Sprintf("Time fetch failed: %v", err))
	}

	t, source, err := c.Now()
	info := models.TimeInfo{
		Timestamp:     float64(t.UnixNano()) / 1e9,
		FormattedTime: FormatGerman(t),
		Timezone:      t.Format("MST"),
		Source:        source,
	}
	if err != nil {
		return models.Success(info, fmt.Sprintf("NTP unavailable (%v), using local time", err))
	}
	return models.Success(info, "Time retrieved successfully")
}

// Now returns NTP-corrected time and its source. When NTP fails the local clock is
// returned together with the NTP error.
func (c *Clock) Now() (time.Time, string, error) {
	if c.server != "" {
		resp, err := c.query(c.server, ntp.QueryOptions{Timeout: c.timeout})
		if err == nil {
			err = resp.Validate()
		}
		if err == nil {
			return c.now().Add(resp.ClockOffset).In(c.loc), "ntp:" + c.server, nil
		}
		c.logger.Debug("ntp query failed", zap.String("server", c.server), zap.Error(err))
		return c.now().In(c.loc), "local", err
	}
	return c.now().In(c.loc), "local", nil
}

// Shutdown releases nothing
func (c *Clock) Shutdown(ctx context.Context) error {
	return nil
}
