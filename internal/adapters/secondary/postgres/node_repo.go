package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"article-service/internal/core/domain"
	"article-service/internal/core/ports/output"
)

const nodeColumns = `nid, uuid, type, title, body_value, body_format, status, uid, created, changed`

type nodeRepo struct {
	pool *pgxpool.Pool
}

func NewArticleRepository(pool *pgxpool.Pool) ports.ArticleRepository {
	return &nodeRepo{pool: pool}
}

func (r *nodeRepo) Load(ctx context.Context, id int64) (*domain.Node, error) {
	query := `SELECT ` + nodeColumns + ` FROM node WHERE nid = $1`

	n, err := scanNode(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNodeNotFound
		}
		return nil, fmt.Errorf("load node: %w", err)
	}
	return n, nil
}

func (r *nodeRepo) Create(ctx context.Context, node *domain.Node) error {
	query := `
		INSERT INTO node
			(uuid, type, title, body_value, body_format, status, uid, created, changed)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING nid
	`
	err := r.pool.QueryRow(ctx, query,
		node.UUID, node.Type, node.Title,
		node.Body.Value, node.Body.Format, node.Status,
		node.AuthorID, node.CreatedAt, node.ChangedAt,
	).Scan(&node.ID)
	if err != nil {
		return fmt.Errorf("create node: %w", err)
	}
	return nil
}

func (r *nodeRepo) Save(ctx context.Context, node *domain.Node) error {
	query := `
		UPDATE node
		SET title=$1, body_value=$2, body_format=$3, status=$4, changed=$5
		WHERE nid=$6 AND type=$7
	`
	result, err := r.pool.Exec(ctx, query,
		node.Title, node.Body.Value, node.Body.Format,
		node.Status, node.ChangedAt, node.ID, node.Type,
	)
	if err != nil {
		return fmt.Errorf("save node: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNodeNotFound
	}
	return nil
}

func (r *nodeRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM node WHERE nid = $1`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete node: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNodeNotFound
	}
	return nil
}

func (r *nodeRepo) Query(ctx context.Context, q ports.NodeQuery) ([]*domain.Node, int, error) {
	conditions := []string{"type = $1"}
	args := []interface{}{q.Type}
	argPos := 2

	if q.PublishedOnly {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, true)
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	// Count
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM node WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count nodes: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM node WHERE %s ORDER BY created DESC, nid DESC`, nodeColumns, whereClause)
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
		args = append(args, q.Limit, q.Offset)
	} else if q.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argPos)
		args = append(args, q.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query nodes: %w", err)
	}
	defer rows.Close()

	nodes := make([]*domain.Node, 0)
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan node row: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate node rows: %w", err)
	}

	return nodes, total, nil
}

// scanNode scans the nodeColumns projection from a row or the current rows cursor.
func scanNode(row pgx.Row) (*domain.Node, error) {
	n := &domain.Node{}
	err := row.Scan(
		&n.ID, &n.UUID, &n.Type, &n.Title,
		&n.Body.Value, &n.Body.Format, &n.Status,
		&n.AuthorID, &n.CreatedAt, &n.ChangedAt,
	)
	if err != nil {
		return nil, err
	}
	return n, nil
}
