package store

import (
	"fmt"
	"time"
)

type ChannelWatchCount struct {
	Channel string
	Count   int64
}

// GetTopChannels ranks channels by watches in [start, end). Ties go to the
// channel watched first. limit <= 0 returns every channel.
func (s *Store) GetTopChannels(start, end time.Time, limit int) ([]ChannelWatchCount, error) {
	query := `
	SELECT WatchChannel.name, COUNT(Watch.id)
	FROM Watch
	INNER JOIN WatchChannel ON WatchChannel.watch = Watch.id AND WatchChannel.position = 0
	WHERE Watch.date >= ? AND Watch.date < ?
	GROUP BY WatchChannel.name
	ORDER BY COUNT(Watch.id) DESC, MIN(Watch.date)
	LIMIT ?
	`
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(query, start.UnixMilli(), end.UnixMilli(), limit)
	if err != nil {
		return nil, fmt.Errorf("querying top channels: %w", err)
	}
	defer rows.Close()

	var results []ChannelWatchCount
	for rows.Next() {
		var c ChannelWatchCount
		if err := rows.Scan(&c.Channel, &c.Count); err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}
