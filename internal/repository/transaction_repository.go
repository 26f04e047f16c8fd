package repository

import (
	"context"
	"fmt"
	"strings"

	"txdash/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const transactionsTable = "transactions"

// insertChunkSize keeps a batch insert well under PostgreSQL's 65535 bind parameter limit.
const insertChunkSize = 1000

// seq is the surrogate key assigned on insert. Reads order by it so results
// come back in seed order, and id stays a plain column that may repeat.
var transactionColumns = []string{"id", "title", "description", "price", "category", "image", "sold", "date_of_sale"}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

// ReplaceAll deletes every stored transaction and inserts the given set in one database transaction.
func (r *TransactionRepository) ReplaceAll(ctx context.Context, transactions []*models.Transaction) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		sql, args, err := psql.Delete(transactionsTable).ToSql()
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("failed to delete transactions: %w", err)
		}
		r.logger.Debug("Deleted transactions", zap.Int64("rows", tag.RowsAffected()))

		for start := 0; start < len(transactions); start += insertChunkSize {
			end := min(start+insertChunkSize, len(transactions))

			sql, args, err := insertQuery(transactions[start:end]).ToSql()
			if err != nil {
				return err
			}

			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return fmt.Errorf("failed to insert transactions %d-%d: %w", start, end, err)
			}
		}

		return nil
	})
}

func (r *TransactionRepository) Search(ctx context.Context, filter models.SearchFilter) ([]*models.Transaction, error) {
	sql, args, err := searchQuery(filter).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []*models.Transaction{}
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.Title, &tx.Description, &tx.Price, &tx.Category, &tx.Image, &tx.Sold, &tx.DateOfSale,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, &tx)
	}

	return transactions, rows.Err()
}

func (r *TransactionRepository) MonthTotals(ctx context.Context, dateRange models.DateRange) (*models.MonthTotals, error) {
	sql, args, err := totalsQuery(dateRange).ToSql()
	if err != nil {
		return nil, err
	}

	var totals models.MonthTotals
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&totals.TotalSales, &totals.Sold, &totals.Unsold); err != nil {
		return nil, err
	}

	return &totals, nil
}

func (r *TransactionRepository) CountInBand(ctx context.Context, dateRange models.DateRange, band models.PriceBand) (int64, error) {
	sql, args, err := bandCountQuery(dateRange, band).ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *TransactionRepository) CountByCategory(ctx context.Context, dateRange models.DateRange) ([]models.CategoryCount, error) {
	sql, args, err := categoryQuery(dateRange).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []models.CategoryCount{}
	for rows.Next() {
		var cc models.CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, cc)
	}

	return counts, rows.Err()
}

func (r *TransactionRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func insertQuery(transactions []*models.Transaction) squirrel.InsertBuilder {
	builder := psql.Insert(transactionsTable).Columns(transactionColumns...)
	for _, tx := range transactions {
		builder = builder.Values(tx.ID, tx.Title, tx.Description, tx.Price, tx.Category, tx.Image, tx.Sold, tx.DateOfSale)
	}
	return builder
}

func searchQuery(filter models.SearchFilter) squirrel.SelectBuilder {
	pattern := "%" + escapeLike(filter.Term) + "%"

	return psql.Select(transactionColumns...).
		From(transactionsTable).
		Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"description": pattern},
			squirrel.Eq{"price": filter.Price},
		}).
		OrderBy("seq").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))
}

func totalsQuery(dateRange models.DateRange) squirrel.SelectBuilder {
	return psql.Select(
		"COALESCE(SUM(price), 0)",
		"COUNT(*) FILTER (WHERE sold)",
		"COUNT(*) FILTER (WHERE NOT sold)",
	).
		From(transactionsTable).
		Where(inRange(dateRange))
}

func bandCountQuery(dateRange models.DateRange, band models.PriceBand) squirrel.SelectBuilder {
	where := squirrel.And{inRange(dateRange), squirrel.GtOrEq{"price": band.Min}}
	if band.Max != nil {
		where = append(where, squirrel.Lt{"price": *band.Max})
	}

	return psql.Select("COUNT(*)").
		From(transactionsTable).
		Where(where)
}

func categoryQuery(dateRange models.DateRange) squirrel.SelectBuilder {
	return psql.Select("category", "COUNT(*)").
		From(transactionsTable).
		Where(inRange(dateRange)).
		GroupBy("category").
		OrderBy("category")
}

func inRange(dateRange models.DateRange) squirrel.And {
	return squirrel.And{
		squirrel.GtOrEq{"date_of_sale": dateRange.Start},
		squirrel.Lt{"date_of_sale": dateRange.End},
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes the search term match literally inside an ILIKE pattern.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
