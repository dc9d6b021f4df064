package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/beevik/ntp"
	"github.com/harper/agentrouter/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, time.March, 4, 9, 5, 7, 0, time.UTC)

func testClock(query ntpQueryFunc) *Clock {
	c := NewClock(ClockConfig{Server: "de.pool.ntp.org", Timeout: time.Second, Location: time.UTC}, zap.NewNop())
	c.query = query
	c.now = func() time.Time { return fixedNow }
	return c
}

func TestFormatGerman(t *testing.T) {
	assert.Equal(t, "Montag, 04. März 2024, 09:05:07", FormatGerman(fixedNow))
	assert.Equal(t, "Sonntag, 31. Dezember 2023, 23:59:59", FormatGerman(time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)))
}

func TestClock_NTP(t *testing.T) {
	c := testClock(func(address string, opt ntp.QueryOptions) (*ntp.Response, error) {
		assert.Equal(t, "de.pool.ntp.org", address)
		assert.Equal(t, time.Second, opt.Timeout)
		return &ntp.Response{Stratum: 2, ClockOffset: 2 * time.Second, Time: fixedNow, ReferenceTime: fixedNow}, nil
	})

	res := c.Handle(context.Background(), models.NewRequest(nil))
	require.True(t, res.OK())

	info := res.Data.(models.TimeInfo)
	assert.Equal(t, "Montag, 04. März 2024, 09:05:09", info.FormattedTime)
	assert.Equal(t, "ntp:de.pool.ntp.org", info.Source)
	assert.Equal(t, "UTC", info.Timezone)
	assert.InDelta(t, float64(fixedNow.Unix()+2), info.Timestamp, 1e-6)
}

func TestClock_FallsBackToLocal(t *testing.T) {
	c := testClock(func(string, ntp.QueryOptions) (*ntp.Response, error) {
		return nil, errors.New("i/o timeout")
	})

	res := c.Handle(context.Background(), models.NewRequest(nil))
	require.True(t, res.OK())
	info := res.Data.(models.TimeInfo)
	assert.Equal(t, "local", info.Source)
	assert.Equal(t, "Montag, 04. März 2024, 09:05:07", info.FormattedTime)
	assert.Contains(t, res.Message, "using local time")
}

func TestClock_InvalidNTPResponseFallsBack(t *testing.T) {
	c := testClock(func(string, ntp.QueryOptions) (*ntp.Response, error) {
		return &ntp.Response{Stratum: 0}, nil
	})

	_, source, err := c.Now()
	assert.Error(t, err)
	assert.Equal(t, "local", source)
}

func TestClock_CancelledContext(t *testing.T) {
	c := testClock(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.Handle(ctx, models.NewRequest(nil))
	assert.Equal(t, models.StatusError, res.Status)
}
