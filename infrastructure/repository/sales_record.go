package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/margin-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/margin-report-api/internal/domain"
	"github.com/vfg2006/margin-report-api/pkg/utils"
)

const (
	DefaultSalesRecordsTable = "sales_records"
	insertChunkSize          = 500
)

var (
	ErrInvalidTableName = errors.New("nome de tabela inválido")
	ErrEmptyBatch       = errors.New("lote sem linhas")

	tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

	salesRecordColumns = []string{
		"month", "manager", "client_name", "subcategory", "product_name",
		"actual_sales_amount", "cost_amount_d2", "cost_amount_npk",
	}
)

type SalesRecordRepository interface {
	Load(ctx context.Context) ([]domain.RawRecord, error)
	Describe() string
	SaveBatch(ctx context.Context, records []domain.Record) (string, error)
	EnsureSchema(ctx context.Context) error
}

type salesRecordRepository struct {
	conn    postgres.Conn
	table   string
	batchID string
}

// NewSalesRecordRepository cria o repositório sobre a tabela informada. Com batchID
// vazio a leitura usa o lote importado mais recente.
func NewSalesRecordRepository(conn postgres.Conn, table, batchID string) (SalesRecordRepository, error) {
	if table == "" {
		table = DefaultSalesRecordsTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}

	return &salesRecordRepository{
		conn:    conn,
		table:   table,
		batchID: batchID,
	}, nil
}

func (r *salesRecordRepository) Describe() string {
	if r.batchID == "" {
		return "postgres:" + r.table
	}
	return "postgres:" + r.table + "@" + r.batchID
}

func (r *salesRecordRepository) Load(ctx context.Context) ([]domain.RawRecord, error) {
	query, args, err := r.selectQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]domain.RawRecord, 0)
	for rows.Next() {
		var row salesRecordRow
		if err := rows.Scan(
			&row.Month,
			&row.Manager,
			&row.ClientName,
			&row.Subcategory,
			&row.ProductName,
			&row.ActualSalesAmount,
			&row.CostAmountD2,
			&row.CostAmountNPK,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear linha de venda: %w", err)
		}
		records = append(records, row.toRaw())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

func (r *salesRecordRepository) selectQuery() squirrel.SelectBuilder {
	query := squirrel.
		Select(salesRecordColumns...).
		From(r.table).
		OrderBy("row_number ASC").
		PlaceholderFormat(squirrel.Dollar)

	if r.batchID != "" {
		return query.Where(squirrel.Eq{"batch_id": r.batchID})
	}

	return query.Where(fmt.Sprintf(
		"batch_id = (SELECT batch_id FROM %s ORDER BY imported_at DESC, row_number DESC LIMIT 1)",
		r.table,
	))
}

// SaveBatch grava as linhas como um novo lote e retorna o id gerado
func (r *salesRecordRepository) SaveBatch(ctx context.Context, records []domain.Record) (string, error) {
	if len(records) == 0 {
		return "", ErrEmptyBatch
	}

	batchID, err := utils.GenerateID()
	if err != nil {
		return "", fmt.Errorf("erro ao gerar id do lote: %w", err)
	}

	err = r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for start := 0; start < len(records); start += insertChunkSize {
			end := min(start+insertChunkSize, len(records))

			query, args, err := r.insertQuery(batchID, start, records[start:end]).ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				if code, ok := postgres.ErrorCode(err); ok {
					return fmt.Errorf("erro no banco de dados: %w (código: %s)", err, code)
				}
				return fmt.Errorf("erro ao executar a query: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return batchID, nil
}

func (r *salesRecordRepository) insertQuery(batchID string, offset int, records []domain.Record) squirrel.InsertBuilder {
	columns := append([]string{"batch_id", "row_number"}, salesRecordColumns...)

	query := squirrel.StatementBuilder.
		Insert(r.table).
		Columns(columns...).
		PlaceholderFormat(squirrel.Dollar)

	for i, rec := range records {
		query = query.Values(
			batchID,
			offset+i+1,
			nullFloat(rec.Month),
			rec.Manager,
			rec.ClientName,
			nullString(rec.Subcategory),
			rec.ProductName,
			nullFloat(rec.ActualSalesAmount),
			nullFloat(rec.CostAmountD2),
			nullFloat(rec.CostAmountNPK),
		)
	}

	return query
}

// EnsureSchema cria a tabela e o índice de lote quando ainda não existem
func (r *salesRecordRepository) EnsureSchema(ctx context.Context) error {
	stmt := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			batch_id            TEXT NOT NULL,
			row_number          INTEGER NOT NULL,
			month               DOUBLE PRECISION,
			manager             TEXT NOT NULL DEFAULT '',
			client_name         TEXT NOT NULL DEFAULT '',
			subcategory         TEXT,
			product_name        TEXT NOT NULL DEFAULT '',
			actual_sales_amount DOUBLE PRECISION,
			cost_amount_d2      DOUBLE PRECISION,
			cost_amount_npk     DOUBLE PRECISION,
			imported_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (batch_id, row_number)
		)`, r.table)

	if _, err := r.conn.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("erro ao criar tabela %s: %w", r.table, err)
	}

	return nil
}

type salesRecordRow struct {
	Month             sql.NullFloat64
	Manager           sql.NullString
	ClientName        sql.NullString
	Subcategory       sql.NullString
	ProductName       sql.NullString
	ActualSalesAmount sql.NullFloat64
	CostAmountD2      sql.NullFloat64
	CostAmountNPK     sql.NullFloat64
}

// toRaw devolve a linha como texto de célula; NULL vira célula vazia
func (row salesRecordRow) toRaw() domain.RawRecord {
	return domain.RawRecord{
		Month:             floatText(row.Month),
		Manager:           row.Manager.String,
		ClientName:        row.ClientName.String,
		Subcategory:       row.Subcategory.String,
		ProductName:       row.ProductName.String,
		ActualSalesAmount: floatText(row.ActualSalesAmount),
		CostAmountD2:      floatText(row.CostAmountD2),
		CostAmountNPK:     floatText(row.CostAmountNPK),
	}
}

func floatText(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64)
}

func nullFloat(f float64) sql.NullFloat64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
