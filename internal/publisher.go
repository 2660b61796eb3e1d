package internal

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

const countriesKey = "countries"

// ColorsKey is the Redis list holding the hex colors of one country.
func ColorsKey(code string) string {
	return fmt.Sprintf("colors:%s", strings.ToLower(code))
}

type publisher struct {
	r       *redis.Client
	counter *atomic.Uint64
	log     *logrus.Logger

	// routines is the number of countries written concurrently.
	routines int

	// retryDelay is multiplied by the attempt number between pings.
	retryDelay time.Duration
}

type PublisherOptions struct {
	RedisAddr string

	// Routines defaults to 4.
	Routines int
	Logger   *logrus.Logger
}

func NewPublisher(options *PublisherOptions) *publisher {
	p := &publisher{}

	p.r = redis.NewClient(&redis.Options{
		Addr:     options.RedisAddr,
		Password: "",
		DB:       0,
	})

	p.counter = new(atomic.Uint64)

	p.log = options.Logger

	p.routines = options.Routines

	if p.routines < 1 {
		p.routines = 4
	}

	p.retryDelay = 5 * time.Second

	return p
}

func (p *publisher) WaitUntilRedisReady() error {
	attemptLimit := 3
	for attempts := 1; attempts <= attemptLimit; attempts++ {
		_, err := p.r.Ping().Result()

		if err == nil {
			break
		}

		if attempts == attemptLimit {
			return fmt.Errorf("failed to connect to Redis after %d tries: %w", attemptLimit, err)
		}

		delay := p.retryDelay * time.Duration(attempts)
		p.log.WithError(err).Warnf("Failed to connect to Redis, will try again in %s", delay)
		time.Sleep(delay)
	}
	p.log.Infof("Redis is ready!")

	return nil
}

// Publish replaces the stored colors with the contents of table. Countries
// are written by several routines, one pipeline per country. Countries stored
// by an earlier run but missing from table are removed afterwards.
func (p *publisher) Publish(table *ColorTable) error {
	start := time.Now()

	p.counter.Store(0)

	previous, err := p.r.SMembers(countriesKey).Result()

	if err != nil {
		return fmt.Errorf("list stored countries: %w", err)
	}

	codes := make(chan string)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for id := 0; id < p.routines; id++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for code := range codes {
				colors, _ := table.Get(code)

				if err := p.store(code, colors); err != nil {
					p.log.WithError(err).WithField("country", code).Error("Failed to store colors")
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}

				p.counter.Inc()
			}
		}()
	}

	current := make(map[string]struct{}, table.Len())

	for _, code := range table.Codes() {
		current[strings.ToLower(code)] = struct{}{}
		codes <- code
	}

	close(codes)
	wg.Wait()

	if firstErr != nil {
		return fmt.Errorf("publish colors: %w", firstErr)
	}

	if err := p.removeStale(previous, current); err != nil {
		return fmt.Errorf("remove stale countries: %w", err)
	}

	p.log.Infof("Published %d countries to Redis in %s", p.counter.Load(), time.Since(start))

	return nil
}

func (p *publisher) store(code string, colors []string) error {
	key := ColorsKey(code)

	_, err := p.r.Pipelined(func(pipe redis.Pipeliner) error {
		pipe.Del(key)

		if len(colors) > 0 {
			values := make([]interface{}, 0, len(colors))
			for _, c := range colors {
				values = append(values, c)
			}
			pipe.RPush(key, values...)
		}

		pipe.SAdd(countriesKey, strings.ToLower(code))

		return nil
	})

	return err
}

func (p *publisher) removeStale(previous []string, current map[string]struct{}) error {
	var stale []string

	for _, code := range previous {
		if _, ok := current[code]; !ok {
			stale = append(stale, code)
		}
	}

	if len(stale) == 0 {
		return nil
	}

	_, err := p.r.Pipelined(func(pipe redis.Pipeliner) error {
		for _, code := range stale {
			p.log.WithField("country", code).Info("Removing country no longer in source")
			pipe.SRem(countriesKey, code)
			pipe.Del(ColorsKey(code))
		}

		return nil
	})

	return err
}

func (p *publisher) Close() error {
	return p.r.Close()
}
