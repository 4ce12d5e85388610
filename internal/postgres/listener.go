package postgres

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/twitsprout/tools"
	"github.com/twitsprout/tools/postgres"
)

// ChangesChannel is the NOTIFY channel written by the catalog triggers. The
// payload is the name of the changed table.
const ChangesChannel = "catalog_changed"

// unstableChannel is reported by the listener after it had to reconnect.
const unstableChannel = "unstable"

// ListenChanges opens a dedicated connection listening on ChangesChannel. The
// returned Listener must be closed by the caller.
func ListenChanges(c Config) (*postgres.Listener, error) {
	// The listener connects by URL, which ignores Port.
	host := c.Host
	if c.Port > 0 {
		host = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	}
	l := postgres.NewListener(30*time.Second, postgres.Options{
		DBName:     c.Name,
		DisableSSL: c.DisableSSL,
		Host:       host,
		Password:   c.Password,
		Username:   c.Username,
	})
	if err := l.Listen(ChangesChannel); err != nil {
		_ = l.Close()
		return nil, errors.Wrap(err, "listen for catalog changes")
	}
	return l, nil
}

// WatchChanges calls onChange for every catalog change notification until ctx
// is done. A reconnect also counts as a change since notifications may have
// been missed while disconnected.
func WatchChanges(ctx context.Context, msgs <-chan postgres.Message, logger tools.Logger, onChange func(ctx context.Context, table string)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("catalog change notifications closed")
			}
			switch msg.Channel {
			case ChangesChannel:
				logger.Debug("catalog change notification",
					"table", msg.Payload,
				)
				onChange(ctx, msg.Payload)
			case unstableChannel:
				logger.Warn("catalog change listener reconnected")
				onChange(ctx, "")
			}
		}
	}
}
