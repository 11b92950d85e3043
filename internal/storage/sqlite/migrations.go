package sqlite

// schema contains the database schema DDL.
const schema = `
-- CGM readings, keyed by the id assigned by the remote source.
CREATE TABLE IF NOT EXISTS readings (
    id TEXT PRIMARY KEY,
    sgv INTEGER,
    date_ms INTEGER,
    date_string TEXT,
    trend INTEGER,
    direction TEXT,
    device TEXT
);
CREATE INDEX IF NOT EXISTS idx_readings_date ON readings(date_ms);
`
