package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS answers (
    request_key          TEXT PRIMARY KEY,
    answer               TEXT NOT NULL,
    created_at           INTEGER NOT NULL,
    hits                 INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_answers_created ON answers(created_at);
`
