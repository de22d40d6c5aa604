package source

// SchemaDDL defines the SQLite schema for the protodoc protocol store.
// Tables: protocols, elements, findings, signatures.
// Execute against a SQLite database with: db.Exec(SchemaDDL)
const SchemaDDL = `
-- Protocol documents
CREATE TABLE IF NOT EXISTS protocols (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

-- Ordered protocol elements; payload holds the per-type JSON fields
CREATE TABLE IF NOT EXISTS elements (
    id TEXT PRIMARY KEY,
    protocol_id TEXT NOT NULL REFERENCES protocols(id),
    type TEXT NOT NULL,
    label TEXT NOT NULL DEFAULT '',
    width INTEGER NOT NULL DEFAULT 1,
    ord INTEGER NOT NULL,
    section TEXT NOT NULL DEFAULT '',
    subsection TEXT NOT NULL DEFAULT '',
    payload TEXT NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS idx_elements_protocol
    ON elements(protocol_id, ord);

-- Finding records related to FINDINGS_SECTION elements
CREATE TABLE IF NOT EXISTS findings (
    id TEXT PRIMARY KEY,
    protocol_id TEXT NOT NULL REFERENCES protocols(id),
    element_id TEXT NOT NULL REFERENCES elements(id),
    title TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    severity TEXT NOT NULL DEFAULT '',
    recorded_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_findings_protocol
    ON findings(protocol_id);

-- Signature records related to SIGNATURE elements
CREATE TABLE IF NOT EXISTS signatures (
    element_id TEXT PRIMARY KEY REFERENCES elements(id),
    protocol_id TEXT NOT NULL REFERENCES protocols(id),
    signer TEXT NOT NULL DEFAULT '',
    signed_at TEXT,
    tz_offset INTEGER NOT NULL DEFAULT 0,
    convert_tz INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_signatures_protocol
    ON signatures(protocol_id);
`
