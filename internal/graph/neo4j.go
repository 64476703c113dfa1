package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Client wraps a Bolt connection to a running Neo4j instance
type Client struct {
	driver   neo4j.DriverWithContext
	database string
}

// Config holds Neo4j connection configuration
type Config struct {
	URI      string
	Username string
	Password string
	Database string
}

// Counts summarizes the contents of a database
type Counts struct {
	Labels            map[string]int64
	RelationshipTypes map[string]int64
}

// Open creates a driver without checking that the server is reachable.
func Open(cfg Config) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("creating neo4j driver: %w", err)
	}

	database := cfg.Database
	if database == "" {
		database = "neo4j"
	}
	return &Client{driver: driver, database: database}, nil
}

// New creates a client and verifies connectivity
func New(ctx context.Context, cfg Config) (*Client, error) {
	c, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	if err := c.driver.VerifyConnectivity(ctx); err != nil {
		c.driver.Close(ctx)
		return nil, fmt.Errorf("connecting to neo4j: %w", err)
	}

	return c, nil
}

// Close closes the Neo4j connection
func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// WaitReady polls until the server accepts Bolt connections or ctx is done.
func (c *Client) WaitReady(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		err := c.driver.VerifyConnectivity(ctx)
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for neo4j: %w (last error: %v)", ctx.Err(), err)
		case <-ticker.C:
		}
	}
}

// Counts returns the number of nodes per label and relationships per type
func (c *Client) Counts(ctx context.Context) (*Counts, error) {
	labels, err := c.countBy(ctx, `
		MATCH (n)
		UNWIND labels(n) AS key
		RETURN key, count(*) AS count
	`)
	if err != nil {
		return nil, fmt.Errorf("counting nodes: %w", err)
	}

	types, err := c.countBy(ctx, `
		MATCH ()-[r]->()
		RETURN type(r) AS key, count(*) AS count
	`)
	if err != nil {
		return nil, fmt.Errorf("counting relationships: %w", err)
	}

	return &Counts{Labels: labels, RelationshipTypes: types}, nil
}

func (c *Client) countBy(ctx context.Context, query string) (map[string]int64, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}

		counts := make(map[string]int64)
		for result.Next(ctx) {
			record := result.Record()
			key, _ := record.Get("key")
			count, _ := record.Get("count")
			name, ok := key.(string)
			if !ok {
				continue
			}
			n, _ := count.(int64)
			counts[name] = n
		}

		return counts, result.Err()
	})

	if err != nil {
		return nil, err
	}

	return result.(map[string]int64), nil
}
