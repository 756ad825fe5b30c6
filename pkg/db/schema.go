package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Articles table: one row per unique physical article.
-- fingerprint is the dedup key; re-ingestion merges into the existing row.
CREATE TABLE IF NOT EXISTS articles (
    article_id INTEGER PRIMARY KEY AUTOINCREMENT,
    fingerprint TEXT NOT NULL UNIQUE,
    source TEXT NOT NULL,
    url TEXT,
    title TEXT,
    body_text TEXT,
    author TEXT,
    topic TEXT,
    language TEXT,
    published_at TIMESTAMP,
    ingested_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_articles_source ON articles(source);
CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published_at);
CREATE INDEX IF NOT EXISTS idx_articles_topic ON articles(topic);

-- Sentiment scores: at most one row per (article, model).
-- Re-scoring overwrites in place; no history kept.
CREATE TABLE IF NOT EXISTS sentiment_scores (
    score_id INTEGER PRIMARY KEY AUTOINCREMENT,
    article_id INTEGER NOT NULL,
    model_name TEXT NOT NULL,
    label TEXT NOT NULL,
    confidence REAL NOT NULL,
    scored_at TIMESTAMP NOT NULL,
    FOREIGN KEY (article_id) REFERENCES articles(article_id) ON DELETE CASCADE,
    UNIQUE(article_id, model_name)
);

CREATE INDEX IF NOT EXISTS idx_scores_article ON sentiment_scores(article_id);
CREATE INDEX IF NOT EXISTS idx_scores_model ON sentiment_scores(model_name);

-- Runs: one row per pipeline invocation, with its summary counters
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TIMESTAMP NOT NULL,
    finished_at TIMESTAMP,
    fetched INTEGER DEFAULT 0,
    normalized INTEGER DEFAULT 0,
    discarded INTEGER DEFAULT 0,
    new_articles INTEGER DEFAULT 0,
    updated_articles INTEGER DEFAULT 0,
    scored INTEGER DEFAULT 0,
    errors TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);
`
