package counter

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/TontonYahya/tonton-stories/internal/pkg/cache"
	"github.com/TontonYahya/tonton-stories/internal/pkg/database"
)

const storyPlaysKey = "story:counters:plays"

// AddStoryPlay increments the pending play counter for a story in Redis
func AddStoryPlay(storyID uint64) error {
	ctx := context.Background()
	field := strconv.FormatUint(storyID, 10)
	return cache.GetClient().HIncrBy(ctx, storyPlaysKey, field, 1).Err()
}

// FlushAll flushes the pending play counters to the database
func FlushAll() error {
	return flushHashToTable(storyPlaysKey, "stories", "play_count")
}

// StartFlusher flushes the counters on a fixed interval in the background.
func StartFlusher(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			if err := FlushAll(); err != nil {
				log.Printf("failed to flush play counters: %v", err)
			}
		}
	}()
}

// flushHashToTable drains a Redis hash atomically and applies batched
// increments to the target table. Uses RENAME to a temporary key for an
// atomic drain without losing in-flight increments.
func flushHashToTable(redisKey, table, column string) error {
	ctx := context.Background()
	rdb := cache.GetClient()

	// Atomically move the hash to a temp key for draining
	tmpKey := fmt.Sprintf("%s:tmp:%d", redisKey, time.Now().UnixNano())
	if err := rdb.Do(ctx, "RENAME", redisKey, tmpKey).Err(); err != nil {
		// If key does not exist, nothing to flush
		if strings.Contains(strings.ToLower(err.Error()), "no such key") {
			return nil
		}
		if err.Error() == "redis: nil" {
			return nil
		}
		return err
	}

	// Ensure cleanup of tmpKey even if later steps fail
	defer rdb.Del(ctx, tmpKey)

	data, err := rdb.HGetAll(ctx, tmpKey).Result()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	type pair struct {
		id  uint64
		inc int64
	}
	pairs := make([]pair, 0, len(data))
	for k, v := range data {
		id, perr := strconv.ParseUint(k, 10, 64)
		if perr != nil {
			continue
		}
		inc, ierr := strconv.ParseInt(v, 10, 64)
		if ierr != nil || inc == 0 {
			continue
		}
		pairs = append(pairs, pair{id: id, inc: inc})
	}
	if len(pairs) == 0 {
		return nil
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].id < pairs[j].id })

	// UPDATE stories SET play_count = play_count + CASE id WHEN ? THEN ? ... END WHERE id IN (...)
	var builder strings.Builder
	args := make([]interface{}, 0, len(pairs)*3)
	builder.WriteString("UPDATE ")
	builder.WriteString(table)
	builder.WriteString(" SET ")
	builder.WriteString(column)
	builder.WriteString(" = ")
	builder.WriteString(column)
	builder.WriteString(" + CASE id ")
	for _, p := range pairs {
		builder.WriteString(" WHEN ? THEN ?")
		args = append(args, p.id, p.inc)
	}
	builder.WriteString(" END WHERE id IN (")
	for i, p := range pairs {
		if i > 0 {
			builder.WriteString(",")
		}
		builder.WriteString("?")
		args = append(args, p.id)
	}
	builder.WriteString(")")

	db := database.GetDB()
	if err := db.Exec(builder.String(), args...).Error; err != nil {
		return err
	}
	return nil
}
