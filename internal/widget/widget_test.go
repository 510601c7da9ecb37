package widget

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
)

// A widget created without a config document and never updated has NULL
// config and updated_at; the repository's scan destinations must accept
// SQL NULL for both.
func TestScanAcceptsFreshRowNulls(t *testing.T) {
	m := pgtype.NewMap()
	w := &Widget{}

	if err := m.Scan(pgtype.TimestamptzOID, pgtype.TextFormatCode, nil, &w.UpdatedAt); err != nil {
		t.Errorf("scanning NULL updated_at: %v", err)
	}
	if err := m.Scan(pgtype.TextOID, pgtype.TextFormatCode, nil, &w.Config); err != nil {
		t.Errorf("scanning NULL config: %v", err)
	}

	if w.UpdatedAt != nil {
		t.Errorf("updated_at = %v, want nil after NULL scan", w.UpdatedAt)
	}
	if w.Config != nil {
		t.Errorf("config = %v, want nil after NULL scan", w.Config)
	}
}
