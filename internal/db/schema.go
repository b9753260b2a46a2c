package db

const createResponsesTable = `
CREATE TABLE IF NOT EXISTS responses (
    url TEXT PRIMARY KEY,
    outcome TEXT NOT NULL,
    ok INTEGER NOT NULL DEFAULT 0,
    status INTEGER,
    fetched_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_responses_fetched ON responses(fetched_at);
`

const upsertResponse = `
INSERT OR REPLACE INTO responses (url, outcome, ok, status, fetched_at)
VALUES (?, ?, ?, ?, ?)
`

const selectResponse = `
SELECT outcome, fetched_at FROM responses WHERE url = ?
`

const deleteResponse = `
DELETE FROM responses WHERE url = ?
`

const deleteResponsesBefore = `
DELETE FROM responses WHERE fetched_at < ?
`

const selectResponseCount = `
SELECT COUNT(*) FROM responses
`
