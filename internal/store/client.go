// Package store implements the Store Client and Client Registry: the
// multi-tenant, lazily-initialized pool of graph database handles that
// every gateway and operation executes queries through.
package store

import (
	"context"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/memorybank/memorybank/internal/memerr"
)

// Record is one row of a query result: a mapping from column alias to a
// native scalar, instant, list, or nil value.
type Record map[string]any

// Querier is the boundary every gateway depends on. *Client satisfies it
// against a live graph engine; tests satisfy it with a fake to exercise
// gateway query-building and row-mapping logic without one.
type Querier interface {
	Execute(ctx context.Context, query string, params map[string]any) ([]Record, error)
}

// Client wraps one database handle (a Neo4j/Bolt driver scoped to a single
// target database, one per client project root) and executes parameterized
// queries against it. It owns the handle exclusively; only the Client
// Registry constructs and closes one.
type Client struct {
	driver   neo4j.DriverWithContext
	database string // target database name inside the engine, derived from dbFilename

	// writeMu serializes writes run through ExecuteWrite (schema install)
	// so callers never observe a half-applied batch. Writes run through
	// Execute, bulk deletes included, rely on the driver's own transaction
	// isolation.
	writeMu sync.Mutex
}

// newClient opens a driver against uri and verifies connectivity. database
// is the logical database name this Client is exclusively responsible for.
func newClient(ctx context.Context, uri, username, password, database string) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, memerr.Wrap(memerr.IoErr, err, "opening graph database driver")
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, memerr.Wrap(memerr.IoErr, err, "connecting to graph database")
	}
	return &Client{driver: driver, database: database}, nil
}

// Execute runs a parameterized query and returns its rows as a finite
// sequence of records. Numeric and temporal values are converted to native
// Go scalars/instants by the driver; lists of scalars and JSON strings pass
// through as given.
func (c *Client) Execute(ctx context.Context, query string, params map[string]any) ([]Record, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "running query")
	}

	var records []Record
	for result.Next(ctx) {
		rec := result.Record()
		row := make(Record, len(rec.Keys))
		for _, key := range rec.Keys {
			v, _ := rec.Get(key)
			row[key] = v
		}
		records = append(records, row)
	}
	if err := result.Err(); err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "reading query results")
	}
	return records, nil
}

// ExecuteWrite runs fn inside a single explicit write transaction, holding
// writeMu for its duration, for multi-statement writes that must appear
// atomic to concurrent readers. InstallSchema is its only caller.
func (c *Client) ExecuteWrite(ctx context.Context, fn func(tx neo4j.ManagedTransaction) (any, error)) (any, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database, AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, fn)
	if err != nil {
		if isEngineTransient(err) {
			return nil, memerr.Wrap(memerr.IoErr, err, "executing write transaction")
		}
		return nil, memerr.Wrap(memerr.EngineErr, err, "executing write transaction")
	}
	return result, nil
}

// Close releases the underlying driver's resources. Safe to call once.
func (c *Client) Close(ctx context.Context) error {
	if err := c.driver.Close(ctx); err != nil {
		return memerr.Wrap(memerr.IoErr, err, "closing graph database driver")
	}
	return nil
}

func isEngineTransient(err error) bool {
	if neo4j.IsNeo4jError(err) {
		return false
	}
	return err == context.DeadlineExceeded || err == context.Canceled
}

// ScalarString converts a Record value to a string, tolerating nil.
func ScalarString(v any) string {
	s, _ := v.(string)
	return s
}
