// internal/repository/domain_record_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dinerozz/tabsnoop-backend/internal/entity"
	"github.com/jmoiron/sqlx"
)

type domainRecordRepository struct {
	db *sqlx.DB
}

// NewDomainRecordRepository works on both the postgres and sqlite3 drivers;
// queries are written with '?' and rebound for the connection.
func NewDomainRecordRepository(db *sqlx.DB) DomainRecordRepository {
	return &domainRecordRepository{db: db}
}

type visitRow struct {
	Domain string `db:"domain"`
	entity.VisitInterval
}

type recordRow struct {
	Domain    string `db:"domain"`
	TotalTime int64  `db:"total_time"`
}

func (r *domainRecordRepository) GetOrDefault(ctx context.Context, domain string) (*entity.DomainRecord, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	record, err := r.load(ctx, tx, domain)
	if err != nil {
		return nil, err
	}

	return record, tx.Commit()
}

func (r *domainRecordRepository) GetAll(ctx context.Context) (map[string]entity.DomainRecord, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var rows []recordRow
	query := "SELECT domain, total_time FROM domain_records ORDER BY domain"
	if err := tx.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to select domain records: %w", err)
	}

	records := make(map[string]entity.DomainRecord, len(rows))
	for _, row := range rows {
		records[row.Domain] = entity.DomainRecord{TotalTime: row.TotalTime, Visits: []entity.VisitInterval{}}
	}

	var visits []visitRow
	query = "SELECT domain, start_ms, end_ms FROM visits ORDER BY domain, seq"
	if err := tx.SelectContext(ctx, &visits, query); err != nil {
		return nil, fmt.Errorf("failed to select visits: %w", err)
	}

	for _, v := range visits {
		record, ok := records[v.Domain]
		if !ok {
			continue
		}
		record.Visits = append(record.Visits, v.VisitInterval)
		records[v.Domain] = record
	}

	return records, tx.Commit()
}

// AppendVisit runs the whole read-modify-write in one transaction. Two
// writers racing on the same domain collide on the (domain, seq) key instead
// of silently dropping a visit.
func (r *domainRecordRepository) AppendVisit(ctx context.Context, domain string, visit entity.VisitInterval) (*entity.DomainRecord, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	record, err := r.load(ctx, tx, domain)
	if err != nil {
		return nil, err
	}

	record.AddVisit(visit)
	seq := len(record.Visits) - 1

	upsert := tx.Rebind(`
		INSERT INTO domain_records (domain, total_time)
		VALUES (?, ?)
		ON CONFLICT (domain) DO UPDATE SET total_time = excluded.total_time`)
	if _, err := tx.ExecContext(ctx, upsert, domain, record.TotalTime); err != nil {
		return nil, fmt.Errorf("failed to upsert domain record: %w", err)
	}

	insert := tx.Rebind("INSERT INTO visits (domain, seq, start_ms, end_ms) VALUES (?, ?, ?, ?)")
	if _, err := tx.ExecContext(ctx, insert, domain, seq, visit.Start, visit.End); err != nil {
		return nil, fmt.Errorf("failed to insert visit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return record, nil
}

func (r *domainRecordRepository) Clear(ctx context.Context) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM visits"); err != nil {
		return fmt.Errorf("failed to clear visits: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM domain_records"); err != nil {
		return fmt.Errorf("failed to clear domain records: %w", err)
	}

	return tx.Commit()
}

func (r *domainRecordRepository) load(ctx context.Context, tx *sqlx.Tx, domain string) (*entity.DomainRecord, error) {
	record := entity.NewDomainRecord()

	query := tx.Rebind("SELECT total_time FROM domain_records WHERE domain = ?")
	err := tx.GetContext(ctx, &record.TotalTime, query, domain)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return record, nil
		}
		return nil, fmt.Errorf("failed to get domain record: %w", err)
	}

	query = tx.Rebind("SELECT start_ms, end_ms FROM visits WHERE domain = ? ORDER BY seq")
	if err := tx.SelectContext(ctx, &record.Visits, query, domain); err != nil {
		return nil, fmt.Errorf("failed to get visits: %w", err)
	}

	if record.Visits == nil {
		record.Visits = []entity.VisitInterval{}
	}

	return record, nil
}
