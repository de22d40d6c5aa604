package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"protodoc/pkg/document"
)

// sqliteTime is the timestamp format used in store columns.
const sqliteTime = "2006-01-02 15:04:05"

// ProtocolNotFoundError reports a lookup of a protocol id that does not
// exist in the store. It enables typed discrimination via errors.As.
type ProtocolNotFoundError struct {
	ID string
}

func (e *ProtocolNotFoundError) Error() string {
	return fmt.Sprintf("protocol %s not found", e.ID)
}

// Store is a SQLite-backed protocol store. It resolves related records
// (findings, signatures) with bulk queries before handing a protocol to
// the layout engine, so the engine performs no data access of its own.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the store at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if _, err := db.Exec(SchemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists a protocol, its elements, and their related finding and
// signature records. Findings and signatures live in their own tables;
// the element payload column holds only the element's own fields.
func (s *Store) Save(ctx context.Context, p document.Protocol) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save protocol: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO protocols (id, title) VALUES (?, ?)`,
		p.ID, p.Title,
	); err != nil {
		return fmt.Errorf("save protocol %s: %w", p.ID, err)
	}

	for _, el := range p.Elements {
		spec := specFromElement(el)

		// Related records are stripped into their own tables.
		findings := spec.Findings
		spec.Findings = nil
		signer := spec.Signer
		signedAt := spec.SignedAt
		spec.Signer = ""
		spec.SignedAt = nil

		payload, err := json.Marshal(spec)
		if err != nil {
			return fmt.Errorf("encode element %s: %w", el.ID, err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO elements
			 (id, protocol_id, type, label, width, ord, section, subsection, payload)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			el.ID, p.ID, string(el.Type), el.Label, el.DeclaredWidth, el.Order,
			el.Section, el.Subsection, string(payload),
		); err != nil {
			return fmt.Errorf("save element %s: %w", el.ID, err)
		}

		for _, f := range findings {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO findings
				 (id, protocol_id, element_id, title, description, severity, recorded_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				f.ID, p.ID, el.ID, f.Title, f.Description, f.Severity,
				formatTime(f.RecordedAt),
			); err != nil {
				return fmt.Errorf("save finding %s: %w", f.ID, err)
			}
		}

		if el.Type == document.TypeSignature {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO signatures
				 (element_id, protocol_id, signer, signed_at, tz_offset, convert_tz)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				el.ID, p.ID, signer, formatTime(signedAt),
				spec.TZOffset, boolToInt(spec.ConvertTZ),
			); err != nil {
				return fmt.Errorf("save signature for %s: %w", el.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save protocol %s: %w", p.ID, err)
	}
	return nil
}

// Load fetches a protocol with all related records resolved. Elements
// come back in a single ordered query; findings and signatures for the
// whole protocol are each bulk-fetched once and grouped by element id in
// a map before being attached, so no per-element queries happen.
func (s *Store) Load(ctx context.Context, id string) (document.Protocol, error) {
	var p document.Protocol
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title FROM protocols WHERE id = ?`, id,
	).Scan(&p.ID, &p.Title)
	if err == sql.ErrNoRows {
		return document.Protocol{}, &ProtocolNotFoundError{ID: id}
	}
	if err != nil {
		return document.Protocol{}, fmt.Errorf("load protocol %s: %w", id, err)
	}

	findings, err := s.findingsByElement(ctx, id)
	if err != nil {
		return document.Protocol{}, err
	}
	signatures, err := s.signaturesByElement(ctx, id)
	if err != nil {
		return document.Protocol{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, label, width, ord, section, subsection, payload
		 FROM elements WHERE protocol_id = ? ORDER BY ord`, id,
	)
	if err != nil {
		return document.Protocol{}, fmt.Errorf("load elements for %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			spec    elementSpec
			payload string
		)
		if err := rows.Scan(&spec.ID, &spec.Type, &spec.Label, &spec.Width,
			&spec.Order, &spec.Section, &spec.Subsection, &payload); err != nil {
			return document.Protocol{}, fmt.Errorf("scan element: %w", err)
		}

		// Re-scan identity columns after decoding the payload union so the
		// columns stay authoritative.
		stored := spec
		if err := json.Unmarshal([]byte(payload), &spec); err != nil {
			return document.Protocol{}, fmt.Errorf("decode element %s: %w", stored.ID, err)
		}
		spec.ID = stored.ID
		spec.Type = stored.Type
		spec.Label = stored.Label
		spec.Width = stored.Width
		spec.Order = stored.Order
		spec.Section = stored.Section
		spec.Subsection = stored.Subsection

		spec.Findings = findings[spec.ID]
		if sig, ok := signatures[spec.ID]; ok {
			spec.Signer = sig.Signer
			spec.SignedAt = sig.SignedAt
			spec.TZOffset = sig.TZOffset
			spec.ConvertTZ = sig.ConvertTZ
		}

		p.Elements = append(p.Elements, spec.toElement())
	}
	if err := rows.Err(); err != nil {
		return document.Protocol{}, fmt.Errorf("load elements for %s: %w", id, err)
	}
	return p, nil
}

// findingsByElement bulk-fetches every finding for the protocol and
// groups them by owning element.
func (s *Store) findingsByElement(ctx context.Context, protocolID string) (map[string][]findingSpec, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT element_id, id, title, description, severity, recorded_at
		 FROM findings WHERE protocol_id = ? ORDER BY id`, protocolID,
	)
	if err != nil {
		return nil, fmt.Errorf("load findings for %s: %w", protocolID, err)
	}
	defer rows.Close()

	grouped := make(map[string][]findingSpec)
	for rows.Next() {
		var (
			elementID  string
			f          findingSpec
			recordedAt sql.NullString
		)
		if err := rows.Scan(&elementID, &f.ID, &f.Title, &f.Description,
			&f.Severity, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan finding: %w", err)
		}
		f.RecordedAt = parseTime(recordedAt)
		grouped[elementID] = append(grouped[elementID], f)
	}
	return grouped, rows.Err()
}

// signatureRow mirrors one signatures table row during load.
type signatureRow struct {
	Signer    string
	SignedAt  *time.Time
	TZOffset  int
	ConvertTZ bool
}

// signaturesByElement bulk-fetches every signature for the protocol
// keyed by owning element.
func (s *Store) signaturesByElement(ctx context.Context, protocolID string) (map[string]signatureRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT element_id, signer, signed_at, tz_offset, convert_tz
		 FROM signatures WHERE protocol_id = ?`, protocolID,
	)
	if err != nil {
		return nil, fmt.Errorf("load signatures for %s: %w", protocolID, err)
	}
	defer rows.Close()

	grouped := make(map[string]signatureRow)
	for rows.Next() {
		var (
			elementID string
			sig       signatureRow
			signedAt  sql.NullString
			convert   int
		)
		if err := rows.Scan(&elementID, &sig.Signer, &signedAt,
			&sig.TZOffset, &convert); err != nil {
			return nil, fmt.Errorf("scan signature: %w", err)
		}
		sig.SignedAt = parseTime(signedAt)
		sig.ConvertTZ = convert != 0
		grouped[elementID] = sig
	}
	return grouped, rows.Err()
}

// ListProtocols returns the id and title of every stored protocol.
func (s *Store) ListProtocols(ctx context.Context) ([]document.Protocol, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title FROM protocols ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list protocols: %w", err)
	}
	defer rows.Close()

	var out []document.Protocol
	for rows.Next() {
		var p document.Protocol
		if err := rows.Scan(&p.ID, &p.Title); err != nil {
			return nil, fmt.Errorf("scan protocol: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(sqliteTime)
}

func parseTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(sqliteTime, s.String)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
