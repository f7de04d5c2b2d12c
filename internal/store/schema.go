package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    run_id          TEXT PRIMARY KEY,
    ran_at          TEXT NOT NULL,
    current_total   TEXT NOT NULL,
    last_total      TEXT NOT NULL,
    delta           TEXT NOT NULL,
    direction       TEXT NOT NULL,
    plan_json       TEXT NOT NULL,
    notified        INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_ran_at ON runs(ran_at);
`
