package store

const schema = `
CREATE TABLE IF NOT EXISTS banks (
    bank_id INTEGER PRIMARY KEY AUTOINCREMENT,
    bank_name TEXT NOT NULL UNIQUE,
    app_id TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS reviews (
    review_id INTEGER PRIMARY KEY AUTOINCREMENT,
    bank_id INTEGER NOT NULL,
    review_text TEXT NOT NULL CHECK (length(trim(review_text)) > 0),
    rating INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 5),
    review_date TIMESTAMP,
    sentiment_label TEXT,
    sentiment_score REAL,
    themes TEXT,
    source TEXT NOT NULL DEFAULT 'Google Play Store',
    created_at TIMESTAMP NOT NULL,
    FOREIGN KEY (bank_id) REFERENCES banks(bank_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS theme_keywords (
    bank_id INTEGER NOT NULL,
    theme TEXT NOT NULL,
    keyword TEXT NOT NULL,
    weight REAL NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (bank_id, theme, keyword),
    FOREIGN KEY (bank_id) REFERENCES banks(bank_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    started_at TIMESTAMP NOT NULL,
    finished_at TIMESTAMP,
    reviews_analyzed INTEGER NOT NULL DEFAULT 0,
    sentiment_coverage REAL NOT NULL DEFAULT 0,
    theme_coverage REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_reviews_bank ON reviews(bank_id);
CREATE INDEX IF NOT EXISTS idx_reviews_rating ON reviews(rating);
CREATE INDEX IF NOT EXISTS idx_reviews_sentiment ON reviews(sentiment_label);
CREATE INDEX IF NOT EXISTS idx_theme_keywords_bank ON theme_keywords(bank_id);
`
